package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"

	"blogdesk/internal/models"
	"blogdesk/internal/store"
)

// minPasswordLen applies to users created through the service.
const minPasswordLen = 8

// Auth verifies admin credentials and manages TOTP two-factor auth.
type Auth struct {
	users  UserRepo
	issuer string
}

// NewAuth returns an auth service. issuer names the app in authenticator apps.
func NewAuth(users UserRepo, issuer string) *Auth {
	return &Auth{users: users, issuer: issuer}
}

// TOTPSetup is what a user needs to enrol an authenticator app.
type TOTPSetup struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
	QRCode string `json:"qrCode"` // data URL of a PNG
}

// Login checks an email and password. Unknown emails and wrong passwords
// produce the same error.
func (s *Auth) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, validation("Email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, upstream("find user", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, unauthorized("Invalid credentials")
	}
	return user, nil
}

// User loads the user behind a session.
func (s *Auth) User(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, upstream("find user", err)
	}
	if user == nil {
		return nil, unauthorized("Authentication required")
	}
	return user, nil
}

// BeginTOTP generates and stores a new TOTP secret for the actor. 2FA is
// enabled only once VerifyTOTP accepts a code for it.
func (s *Auth) BeginTOTP(ctx context.Context, actor *Actor) (*TOTPSetup, error) {
	if actor == nil {
		return nil, unauthorized("Authentication required")
	}
	user, err := s.User(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user.TOTPEnabled {
		return nil, conflict("Two-factor authentication is already enabled")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, upstream("generate totp key", err)
	}
	if err := s.users.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, upstream("save totp secret", err)
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return nil, upstream("encode qr code", err)
	}
	return &TOTPSetup{
		Secret: key.Secret(),
		URL:    key.URL(),
		QRCode: "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG),
	}, nil
}

// VerifyTOTP checks a code against the user's secret. The first valid
// code after BeginTOTP turns 2FA on.
func (s *Auth) VerifyTOTP(ctx context.Context, userID uuid.UUID, code string) (*models.User, error) {
	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TOTPSecret == nil {
		return nil, validation("Two-factor authentication is not set up")
	}
	if !totp.Validate(strings.TrimSpace(code), *user.TOTPSecret) {
		return nil, unauthorized("Invalid code")
	}

	if !user.TOTPEnabled {
		if err := s.users.EnableTOTP(ctx, user.ID); err != nil {
			return nil, upstream("enable totp", err)
		}
		user.TOTPEnabled = true
	}
	return user, nil
}

// CreateUser adds an admin or editor account.
func (s *Auth) CreateUser(ctx context.Context, email, password, displayName string, role models.Role) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validation("A valid email is required")
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, validation(fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}
	if !role.Valid() {
		return nil, validation("Role must be admin or editor")
	}
	displayName = collapseSpace(displayName)
	if displayName == "" {
		displayName = email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, upstream("hash password", err)
	}
	user, err := s.users.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         role,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, conflict("User already exists")
	}
	if err != nil {
		return nil, upstream("create user", err)
	}
	return user, nil
}

// ListUsers returns all accounts.
func (s *Auth) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, upstream("list users", err)
	}
	return users, nil
}

// ResetTOTP turns 2FA off for the account with email, for operators
// helping a user who lost their authenticator.
func (s *Auth) ResetTOTP(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return upstream("find user", err)
	}
	if user == nil {
		return notFound("User not found")
	}
	if err := s.users.ResetTOTP(ctx, user.ID); err != nil {
		return upstream("reset totp", err)
	}
	return nil
}
