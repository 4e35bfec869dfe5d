// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the blogdesk REST API. Handlers decode the
// request, call a service with the session's actor, and encode the
// result; every error body is {"message": "..."}.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"blogdesk/internal/imaging"
	"blogdesk/internal/service"
)

const (
	// maxJSONBody caps JSON request bodies.
	maxJSONBody = 1 << 20

	// maxMultipartBody leaves room for form fields next to the image.
	maxMultipartBody = imaging.MaxUploadSize + 1<<20

	// multipartMemory is how much of a form is kept in memory before
	// spilling file parts to disk.
	multipartMemory = 8 << 20

	tooLargeMessage = "Image must be 5 MB or smaller"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// writeMessage writes {"message": msg}.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// statusFor maps a service error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the client-facing message for err. Server errors are
// logged with their cause, which never reaches the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeMessage(w, status, service.Message(err))
}

// decodeJSON reads a JSON body into dst. It answers 400 or 413 itself and
// reports false when the handler should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}
	writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
	return false
}

// parseMultipart parses a multipart form under a size cap. It answers 400
// or 413 itself and reports false when the handler should stop.
func parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
	err := r.ParseMultipartForm(multipartMemory)
	if err == nil {
		return true
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		writeMessage(w, http.StatusRequestEntityTooLarge, tooLargeMessage)
		return false
	}
	writeMessage(w, http.StatusBadRequest, "Invalid form data")
	return false
}

// formImage returns the bytes of the uploaded file in field, or nil if the
// field is absent. Must be called after parseMultipart.
func formImage(r *http.Request, field string) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	// One byte over the limit is enough for the service to reject it.
	return io.ReadAll(io.LimitReader(f, imaging.MaxUploadSize+1))
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
