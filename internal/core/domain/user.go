package domain

import "time"

// User is a staff member of the back office.
type User struct {
	UserID           string     `json:"userID"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"` // empty for OAuth-only users
	AuthProvider     string     `json:"authProvider"`       // "local" or "google"
	ProviderUserID   string     `json:"-"`                  // subject from the external provider
	RefreshTokenHash *string    `json:"-"`                  // bcrypt hash of the active refresh token
	RefreshExpiresAt *time.Time `json:"refreshTokenExpiry"` // expiry of the active refresh token
	IsActive         bool       `json:"isActive"`
	AuditFields
}

// GoogleUserInfo is the profile returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
