package mapping

import (
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/models"
)

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:         m.UserID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		AuthProvider:   m.AuthProvider,
		ProviderUserID: m.ProviderUserID,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = &m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshExpiresAt = &t
	}
	return d
}

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:         d.UserID,
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		AuthProvider:   d.AuthProvider,
		ProviderUserID: d.ProviderUserID,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.RefreshTokenHash != nil {
		m.RefreshTokenHash.Valid = true
		m.RefreshTokenHash.String = *d.RefreshTokenHash
	}
	if d.RefreshExpiresAt != nil {
		m.RefreshTokenExpiryTime.Valid = true
		m.RefreshTokenExpiryTime.Time = *d.RefreshExpiresAt
	}
	return m
}
