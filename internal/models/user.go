package models

import (
	"database/sql"
)

// User represents a staff user row.
// Includes email and password hash for local authentication; OAuth users
// carry a provider and provider subject instead of a password.
type User struct {
	UserID         string `json:"userID" db:"user_id"`
	Name           string `json:"name" db:"name"`
	Email          string `json:"email" db:"email"`
	PasswordHash   string `json:"-" db:"password_hash"`
	AuthProvider   string `json:"authProvider" db:"auth_provider"`
	ProviderUserID string `json:"-" db:"provider_user_id"`
	IsActive       bool   `json:"isActive" db:"is_active"`
	AuditFields

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
}
