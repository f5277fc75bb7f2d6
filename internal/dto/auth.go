package dto

import "time"

// RegisterRequest defines the payload for self-registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the payload for credentials login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries a Google ID token obtained by the mobile client.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// SetupRequest bootstraps the initial developer account. The handler
// additionally requires the X-Setup-Token header to match SETUP_SECRET_TOKEN.
type SetupRequest struct {
	Name string `json:"name" binding:"omitempty,max=100"`
}

// LoginResponse returns the access token and the authenticated user.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
