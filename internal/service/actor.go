package service

import (
	"github.com/google/uuid"

	"blogdesk/internal/models"
)

// Actor is the authenticated caller of a write operation. It is resolved
// from the server-side session, never from client-supplied flags.
type Actor struct {
	UserID uuid.UUID
	Role   models.Role
}

// ActorFor returns the Actor for a logged-in user.
func ActorFor(u *models.User) *Actor {
	return &Actor{UserID: u.ID, Role: u.Role}
}

// requireEditor allows admins and editors.
func requireEditor(a *Actor) error {
	if a == nil {
		return unauthorized("Authentication required")
	}
	if a.Role != models.RoleAdmin && a.Role != models.RoleEditor {
		return forbidden("Insufficient permissions")
	}
	return nil
}

// requireAdmin allows admins only.
func requireAdmin(a *Actor) error {
	if a == nil {
		return unauthorized("Authentication required")
	}
	if a.Role != models.RoleAdmin {
		return forbidden("Admin access required")
	}
	return nil
}
