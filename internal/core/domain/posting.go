package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType labels the business direction of a transaction entry.
type EntryType string

const (
	Receipt EntryType = "RECEIPT" // money coming in; recorded as a credit
	Payment EntryType = "PAYMENT" // money going out; recorded as a debit
)

// ReferenceType links a posting back to the business event that produced it.
type ReferenceType string

const (
	RefManual     ReferenceType = "MANUAL"
	RefBooking    ReferenceType = "BOOKING"
	RefCommission ReferenceType = "COMMISSION"
	RefJournal    ReferenceType = "JV"
)

// PaymentMode is the instrument used for a receipt or payment.
type PaymentMode string

const (
	ModeCash     PaymentMode = "CASH"
	ModeCheque   PaymentMode = "CHEQUE"
	ModeUPI      PaymentMode = "UPI"
	ModeTransfer PaymentMode = "BANK_TRANSFER"
)

// Posting is a single dated debit/credit ledger entry against one account.
// Exactly one of Debit/Credit is non-zero. Amount fields and the owning
// party are immutable after creation; only metadata (date, narration,
// reference, payment details) may change, and a date change triggers a full
// running-balance recomputation for the account.
type Posting struct {
	PostingID       string          `json:"postingID"`
	PartyType       PartyType       `json:"partyType"`
	PartyID         string          `json:"partyId"`
	AccountID       string          `json:"accountID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Seq             int64           `json:"seq"` // insertion order within the account; tiebreaker for same-date postings
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	EntryType       EntryType       `json:"entryType"`
	Description     string          `json:"description"`
	ReferenceType   ReferenceType   `json:"referenceType"`
	ReferenceID     string          `json:"referenceId"`
	PaymentMode     PaymentMode     `json:"paymentMode"`
	BankName        string          `json:"bankName"`
	ReceiptNumber   string          `json:"receiptNumber"`
	RunningBalance  decimal.Decimal `json:"runningBalance"` // balance immediately after this posting
	AuditFields
}

// Amount returns the non-zero side of the posting.
func (p Posting) Amount() decimal.Decimal {
	if p.Debit.IsPositive() {
		return p.Debit
	}
	return p.Credit
}

// SignedAmount is the posting's effect on the account balance: credit
// increases, debit decreases.
func (p Posting) SignedAmount() decimal.Decimal {
	return p.Credit.Sub(p.Debit)
}

// Party returns the typed reference to the posting's owning entity.
func (p Posting) Party() PartyRef {
	return PartyRef{Type: p.PartyType, ID: p.PartyID}
}
