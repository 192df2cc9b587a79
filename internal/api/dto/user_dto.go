package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// AdminCreateUserRequest payload for admin user creation with explicit role.
type AdminCreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate enforces the same profile rules as signup plus a known role.
func (r AdminCreateUserRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, nameRule),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Address, addressRule),
		validation.Field(&r.Password, passwordRules()...),
		validation.Field(&r.Role, validation.Required, validation.In(
			string(domain.RoleAdmin),
			string(domain.RoleStoreOwner),
			string(domain.RoleNormalUser),
		)),
	))
}

// UserResponse is the public account view.
type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Role:    string(user.Role),
	}
}
