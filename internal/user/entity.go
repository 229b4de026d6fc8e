// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsSuperadmin() bool {
	return u.Role == RoleSuperadmin
}

// Roles are disjoint labels, not a ladder.
const (
	RoleClient     = "client"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleClient, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}
