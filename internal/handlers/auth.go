// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"blogdesk/internal/middleware"
	"blogdesk/internal/service"
	"blogdesk/internal/session"
)

// SessionStore is the session backend used by the auth handlers:
// session.Store (Valkey) or session.MemoryStore.
type SessionStore interface {
	Create(ctx context.Context, data *session.Data) (string, error)
	Get(ctx context.Context, token string) (*session.Data, error)
	Update(ctx context.Context, token string, data *session.Data) error
	Destroy(ctx context.Context, token string) error
}

// Auth groups the authentication handlers.
type Auth struct {
	svc      *service.Auth
	sessions SessionStore
}

// NewAuth creates the auth handlers.
func NewAuth(svc *service.Auth, sessions SessionStore) *Auth {
	return &Auth{svc: svc, sessions: sessions}
}

// Login checks credentials and opens a session. Users with 2FA enabled get
// a session that only unlocks /auth/2fa/verify until a code is accepted.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	user, err := a.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			slog.Info("login failed", "email", in.Email, "remote", r.RemoteAddr)
		}
		respondError(w, r, err)
		return
	}

	needs2FA := user.Requires2FA()
	token, err := a.sessions.Create(r.Context(), &session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		TwoFADone: !needs2FA,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	slog.Info("user logged in", "email", user.Email, "two_factor", needs2FA)
	writeJSON(w, http.StatusOK, map[string]any{
		"token":             token,
		"user":              user,
		"twoFactorRequired": needs2FA,
	})
}

// Logout destroys the current session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), middleware.TokenFromCtx(r.Context())); err != nil {
		slog.Error("session destroy failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in user.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	user, err := a.svc.User(r.Context(), sess.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// SetupTwoFA starts TOTP enrolment and returns the secret and QR code.
func (a *Auth) SetupTwoFA(w http.ResponseWriter, r *http.Request) {
	setup, err := a.svc.BeginTOTP(r.Context(), middleware.ActorFromCtx(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, setup)
}

// VerifyTwoFA checks a TOTP code. It completes a pending login, or
// confirms enrolment started by SetupTwoFA.
func (a *Auth) VerifyTwoFA(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Code string `json:"code"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	user, err := a.svc.VerifyTOTP(r.Context(), sess.UserID, in.Code)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if !sess.TwoFADone {
		updated := *sess
		updated.TwoFADone = true
		err := a.sessions.Update(r.Context(), middleware.TokenFromCtx(r.Context()), &updated)
		if errors.Is(err, session.ErrNoSession) {
			writeMessage(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if err != nil {
			slog.Error("session update failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Users lists all accounts. Admin only.
func (a *Auth) Users(w http.ResponseWriter, r *http.Request) {
	users, err := a.svc.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}
