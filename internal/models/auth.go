package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserClaimKey is the context key under which authenticated claims are stored.
type UserClaimKey struct{}

type UserClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Role   Role      `json:"role,omitempty"`
	Aud    string    `json:"aud_type"`
}

type AuthRegisterBody struct {
	Name     string `json:"name"     validate:"required,min=1,max=50"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Role     Role   `json:"role"     validate:"omitempty,oneof=user business admin"`
}

type AuthLoginBody struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=100"`
}

type AuthRefreshBody struct {
	RefreshToken string `json:"refresh_token" validate:"omitempty,max=2048"`
}

// AuthTokenResponse is the register/login response shape: a fresh token pair
// plus the identity with the password hash stripped.
type AuthTokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type AuthRefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthLogoutResponse struct {
	Message string `json:"message"`
}
