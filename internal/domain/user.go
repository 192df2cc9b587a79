package domain

import "time"

// Role is the coarse-grained permission tier assigned to an account.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleStoreOwner Role = "STORE_OWNER"
	RoleNormalUser Role = "NORMAL_USER"
)

// IsValid reports whether the role is one of the known tiers.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStoreOwner, RoleNormalUser:
		return true
	}
	return false
}

// User is the domain model for platform accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
