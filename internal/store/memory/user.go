package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"blogdesk/internal/models"
	"blogdesk/internal/store"
)

// UserStore is the in-memory user repository.
type UserStore struct {
	db *DB
}

func copyUser(u *models.User) *models.User {
	out := *u
	if u.TOTPSecret != nil {
		secret := *u.TOTPSecret
		out.TOTPSecret = &secret
	}
	return &out
}

// FindByEmail returns the user with email, ignoring case, or nil.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

// FindByID returns a user by id, or nil.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if u, ok := s.db.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

// List returns all users ordered by creation time.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	users := make([]models.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		users = append(users, *copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

// Create inserts a user, rejecting a taken email with store.ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, fmt.Errorf("create user: %w (users_email_key)", store.ErrDuplicate)
		}
	}
	now := s.db.now()
	created := &models.User{
		ID:           uuid.New(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		DisplayName:  u.DisplayName,
		Role:         u.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.db.users[created.ID] = created
	return copyUser(created), nil
}

// update applies fn to the stored user. Missing users are ignored, which
// matches an UPDATE that affects no rows.
func (s *UserStore) update(id uuid.UUID, fn func(*models.User)) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if u, ok := s.db.users[id]; ok {
		fn(u)
		u.UpdatedAt = s.db.now()
	}
}

// SetTOTPSecret saves a pending TOTP secret.
func (s *UserStore) SetTOTPSecret(ctx context.Context, userID uuid.UUID, secret string) error {
	s.update(userID, func(u *models.User) { u.TOTPSecret = &secret })
	return nil
}

// EnableTOTP marks 2FA as active.
func (s *UserStore) EnableTOTP(ctx context.Context, userID uuid.UUID) error {
	s.update(userID, func(u *models.User) { u.TOTPEnabled = true })
	return nil
}

// ResetTOTP clears the TOTP secret and disables 2FA.
func (s *UserStore) ResetTOTP(ctx context.Context, userID uuid.UUID) error {
	s.update(userID, func(u *models.User) {
		u.TOTPSecret = nil
		u.TOTPEnabled = false
	})
	return nil
}
