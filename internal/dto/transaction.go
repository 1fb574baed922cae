package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a receipt or payment.
type CreateTransactionRequest struct {
	PartyType       domain.PartyType   `json:"partyType" binding:"required,oneof=CUSTOMER LEDGER_ACCOUNT EXECUTIVE"`
	PartyID         string             `json:"partyId" binding:"required"`
	EntryType       domain.EntryType   `json:"entryType" binding:"required,oneof=RECEIPT PAYMENT"`
	Amount          decimal.Decimal    `json:"amount" binding:"required"`
	TransactionDate time.Time          `json:"transactionDate" binding:"required"`
	Description     string             `json:"description"`
	PaymentMode     domain.PaymentMode `json:"paymentMode" binding:"omitempty,oneof=CASH CHEQUE UPI BANK_TRANSFER"`
	BankName        string             `json:"bankName"`
	ReceiptNumber   string             `json:"receiptNumber"`
	BookingID       string             `json:"bookingId"` // optional; links the receipt to a booking and drives commission accrual
}

// UpdateTransactionRequest defines the mutable metadata of a posting.
// The amount, entry type and owning party cannot change after creation.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	TransactionDate *time.Time          `json:"transactionDate"`
	Description     *string             `json:"description"`
	PaymentMode     *domain.PaymentMode `json:"paymentMode" binding:"omitempty,oneof=CASH CHEQUE UPI BANK_TRANSFER"`
	BankName        *string             `json:"bankName"`
	ReceiptNumber   *string             `json:"receiptNumber"`
	Amount          *decimal.Decimal    `json:"amount"` // rejected if present; kept so the attempt can be reported clearly
}

// TransactionResponse defines the data returned for a posting.
type TransactionResponse struct {
	PostingID       string               `json:"postingID"`
	PartyType       domain.PartyType     `json:"partyType"`
	PartyID         string               `json:"partyId"`
	AccountID       string               `json:"accountID"`
	TransactionDate time.Time            `json:"transactionDate"`
	EntryType       domain.EntryType     `json:"entryType"`
	Debit           decimal.Decimal      `json:"debit"`
	Credit          decimal.Decimal      `json:"credit"`
	Description     string               `json:"description"`
	ReferenceType   domain.ReferenceType `json:"referenceType"`
	ReferenceID     string               `json:"referenceId,omitempty"`
	PaymentMode     domain.PaymentMode   `json:"paymentMode,omitempty"`
	BankName        string               `json:"bankName,omitempty"`
	ReceiptNumber   string               `json:"receiptNumber,omitempty"`
	RunningBalance  decimal.Decimal      `json:"runningBalance"`
	BalanceType     domain.BalanceType   `json:"balanceType"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
}

// ListTransactionsParams defines query parameters for listing postings on an account.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsByPartyParams defines query parameters for listing a party's postings.
type ListTransactionsByPartyParams struct {
	PartyType string  `form:"partyType" binding:"required,oneof=CUSTOMER LEDGER_ACCOUNT EXECUTIVE"`
	PartyID   string  `form:"partyId" binding:"required"`
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of postings in canonical order.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Posting to TransactionResponse DTO.
func ToTransactionResponse(p *domain.Posting) TransactionResponse {
	display, balanceType := domain.DisplayBalance(p.RunningBalance)
	return TransactionResponse{
		PostingID:       p.PostingID,
		PartyType:       p.PartyType,
		PartyID:         p.PartyID,
		AccountID:       p.AccountID,
		TransactionDate: p.TransactionDate,
		EntryType:       p.EntryType,
		Debit:           p.Debit,
		Credit:          p.Credit,
		Description:     p.Description,
		ReferenceType:   p.ReferenceType,
		ReferenceID:     p.ReferenceID,
		PaymentMode:     p.PaymentMode,
		BankName:        p.BankName,
		ReceiptNumber:   p.ReceiptNumber,
		RunningBalance:  display,
		BalanceType:     balanceType,
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Posting to []TransactionResponse.
func ToTransactionResponses(postings []domain.Posting) []TransactionResponse {
	responses := make([]TransactionResponse, len(postings))
	for i, p := range postings {
		responses[i] = ToTransactionResponse(&p)
	}
	return responses
}
