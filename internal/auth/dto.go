package auth

import (
	"github.com/maskeddeveloper/product-trial-master/internal/users"
)

// RegisterRequest contains the payload required to create an account.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	FirstName string `json:"firstname" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=4"`
}

// LoginRequest carries the credentials presented to the token endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the signed token plus the public account view.
type LoginResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}
