package models

import "github.com/shopspring/decimal"

// Account is the persistence shape of a party account row.
type Account struct {
	AccountID      string          `json:"accountID" db:"account_id"`
	PartyType      string          `json:"partyType" db:"party_type"`
	PartyID        string          `json:"partyId" db:"party_id"`
	Name           string          `json:"name" db:"name"`
	Class          string          `json:"class" db:"class"`
	OpeningBalance decimal.Decimal `json:"openingBalance" db:"opening_balance"`
	OpeningType    string          `json:"openingType" db:"opening_type"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	Version        int64           `json:"version" db:"version"`
	IsActive       bool            `json:"isActive" db:"is_active"`
	AuditFields
}
