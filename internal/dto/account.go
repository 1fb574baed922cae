package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// CreateLedgerAccountRequest defines the data needed to create a standalone
// ledger account (cash, bank, expense head).
type CreateLedgerAccountRequest struct {
	Name           string                    `json:"name" binding:"required"`
	Class          domain.LedgerAccountClass `json:"class" binding:"required,oneof=CASH BANK OTHER"`
	OpeningBalance decimal.Decimal           `json:"openingBalance"`
	OpeningType    domain.BalanceType        `json:"openingType" binding:"omitempty,oneof=DR CR"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string                    `json:"accountID"`
	PartyType      domain.PartyType          `json:"partyType"`
	PartyID        string                    `json:"partyId"`
	Name           string                    `json:"name"`
	Class          domain.LedgerAccountClass `json:"class,omitempty"`
	OpeningBalance decimal.Decimal           `json:"openingBalance"`
	OpeningType    domain.BalanceType        `json:"openingType"`
	Balance        decimal.Decimal           `json:"balance"`
	BalanceType    domain.BalanceType        `json:"balanceType"`
	IsActive       bool                      `json:"isActive"`
	CreatedAt      time.Time                 `json:"createdAt"`
	CreatedBy      string                    `json:"createdBy"`
	LastUpdatedAt  time.Time                 `json:"lastUpdatedAt"`
	LastUpdatedBy  string                    `json:"lastUpdatedBy"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	PartyType *domain.PartyType `form:"partyType" binding:"omitempty,oneof=CUSTOMER LEDGER_ACCOUNT EXECUTIVE"`
	Limit     int               `form:"limit,default=20"`
	Offset    int               `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	display, balanceType := domain.DisplayBalance(acc.Balance)
	return AccountResponse{
		AccountID:      acc.AccountID,
		PartyType:      acc.PartyType,
		PartyID:        acc.PartyID,
		Name:           acc.Name,
		Class:          acc.Class,
		OpeningBalance: acc.OpeningBalance.Abs(),
		OpeningType:    acc.OpeningType,
		Balance:        display,
		BalanceType:    balanceType,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
