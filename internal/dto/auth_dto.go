package dto

import "time"

// LoginRequest represents the credentials for a password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token presented for rotation.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleCodeExchangeRequest carries an OAuth authorization code from the frontend.
type GoogleCodeExchangeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginResponse represents the response for a successful login or refresh.
type LoginResponse struct {
	AccessToken      string       `json:"accessToken"`
	AccessExpiresAt  time.Time    `json:"accessExpiresAt"`
	RefreshToken     string       `json:"refreshToken"`
	RefreshExpiresAt time.Time    `json:"refreshExpiresAt"`
	User             UserResponse `json:"user"`
}
