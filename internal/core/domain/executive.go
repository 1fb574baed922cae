package domain

import "github.com/shopspring/decimal"

// Executive is a sales executive earning commission on collections against
// bookings they sourced.
type Executive struct {
	ExecutiveID    string          `json:"executiveID"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	CommissionRate decimal.Decimal `json:"commissionRate"` // percent, e.g. 2.5
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// CommissionOn returns the commission accrued on a collected amount.
func (e Executive) CommissionOn(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(e.CommissionRate).Div(decimal.NewFromInt(100)).Round(2)
}
