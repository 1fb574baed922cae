package models

import "github.com/shopspring/decimal"

// Executive is the persistence shape of a sales executive row.
type Executive struct {
	ExecutiveID    string          `json:"executiveID" db:"executive_id"`
	Name           string          `json:"name" db:"name"`
	Phone          string          `json:"phone" db:"phone"`
	CommissionRate decimal.Decimal `json:"commissionRate" db:"commission_rate"`
	IsActive       bool            `json:"isActive" db:"is_active"`
	AuditFields
}
