package identity

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

type Role string

const (
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleAdmin
}

// Caller is the identity asserted by the transport layer. It is trusted
// as-is; authentication happens upstream.
type Caller struct {
	UserID uint
	Role   Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Caller) RequireAdmin() error {
	if !c.IsAdmin() {
		return httperr.Unauthorized("admin_only")
	}
	return nil
}

// RequireSelfOrAdmin allows admins, and patients acting on their own records.
func (c Caller) RequireSelfOrAdmin(ownerID uint) error {
	if c.IsAdmin() {
		return nil
	}
	if c.Role == RolePatient && c.UserID != 0 && c.UserID == ownerID {
		return nil
	}
	return httperr.Unauthorized("not_owner")
}
