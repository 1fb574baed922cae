package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is the persistence shape of a ledger posting row.
// Note: Debit/Credit use a precise decimal type; exactly one is non-zero.
type Posting struct {
	PostingID       string          `json:"postingID" db:"posting_id"`
	AccountID       string          `json:"accountID" db:"account_id"`
	PartyType       string          `json:"partyType" db:"party_type"`
	PartyID         string          `json:"partyId" db:"party_id"`
	TransactionDate time.Time       `json:"transactionDate" db:"transaction_date"`
	Seq             int64           `json:"seq" db:"seq"`
	Debit           decimal.Decimal `json:"debit" db:"debit"`
	Credit          decimal.Decimal `json:"credit" db:"credit"`
	EntryType       string          `json:"entryType" db:"entry_type"`
	Description     string          `json:"description" db:"description"`
	ReferenceType   string          `json:"referenceType" db:"reference_type"`
	ReferenceID     string          `json:"referenceId" db:"reference_id"`
	PaymentMode     string          `json:"paymentMode" db:"payment_mode"`
	BankName        string          `json:"bankName" db:"bank_name"`
	ReceiptNumber   string          `json:"receiptNumber" db:"receipt_number"`
	RunningBalance  decimal.Decimal `json:"runningBalance" db:"running_balance"`
	AuditFields
}
