package domain

import (
	"github.com/shopspring/decimal"
)

// BalanceType is the Dr/Cr display tag associated with a balance figure.
type BalanceType string

const (
	BalanceDr BalanceType = "DR"
	BalanceCr BalanceType = "CR"
)

// LedgerAccountClass classifies standalone ledger accounts. Cash and bank
// class accounts together form the cash book.
type LedgerAccountClass string

const (
	ClassCash  LedgerAccountClass = "CASH"
	ClassBank  LedgerAccountClass = "BANK"
	ClassOther LedgerAccountClass = "OTHER"
)

// Account anchors the posting sequence of a single party. Exactly one
// account row exists per (partyType, partyId) pair; it is created together
// with its owning party and carries the opening balance resolved at that
// time.
//
// Sign convention: a credit posting increases Balance, a debit decreases it.
// A negative balance therefore represents money owed to the business
// (displayed Dr), a positive one money held for the party (displayed Cr).
type Account struct {
	AccountID      string             `json:"accountID"`
	PartyType      PartyType          `json:"partyType"`
	PartyID        string             `json:"partyId"`
	Name           string             `json:"name"`
	Class          LedgerAccountClass `json:"class"`          // only meaningful for LEDGER_ACCOUNT parties
	OpeningBalance decimal.Decimal    `json:"openingBalance"` // signed seed of the posting sequence
	OpeningType    BalanceType        `json:"openingType"`    // display tag recorded at account creation
	Balance        decimal.Decimal    `json:"balance"`        // snapshot after the last posting, rewritten under the account lock
	Version        int64              `json:"version"`        // bumped on every balance rewrite
	IsActive       bool               `json:"isActive"`
	AuditFields
}

// Party returns the typed reference to the account's owning entity.
func (a Account) Party() PartyRef {
	return PartyRef{Type: a.PartyType, ID: a.PartyID}
}

// DisplayBalance returns the absolute balance with its Dr/Cr tag.
func DisplayBalance(b decimal.Decimal) (decimal.Decimal, BalanceType) {
	if b.IsNegative() {
		return b.Neg(), BalanceDr
	}
	return b, BalanceCr
}
