// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphaunicode,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password,max=128"`
}

// LoginRequest is decoded from an urlencoded form. Username may also be
// the account email.
type LoginRequest struct {
	Username string `validate:"required,max=255"`
	Password string `validate:"required,max=128"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// MeResponse adds the expiry of the token that authenticated the request.
type MeResponse struct {
	UserResponse
	SessionExpiresAt *time.Time `json:"session_expires_at,omitempty"`
}

type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
