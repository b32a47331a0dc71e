package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the persisted authorization level of a user. It only gates
// visibility of administrative menu entries; access to administrative
// flows is controlled by session elevation, not by this field.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps user input to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User is a registered bot user, keyed by their Telegram id.
// Every user owns at least one profile, and ActiveProfileID always
// points at one of them.
type User struct {
	ID              int64     `db:"id"`
	Username        string    `db:"username"`
	Role            Role      `db:"role"`
	ActiveProfileID uuid.UUID `db:"active_profile_id"`
	CreatedAt       time.Time `db:"created_at"`
}

// IsAdmin reports whether the persisted role is administrative.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
