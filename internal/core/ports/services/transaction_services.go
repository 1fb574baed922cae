package services

import (
	"context"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for posting data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific posting by its ID.
	GetTransactionByID(ctx context.Context, postingID string) (*domain.Posting, error)

	// ListTransactionsByAccount retrieves a paginated, canonically ordered list
	// of postings on an account.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListTransactionsByParty resolves the party's account and lists its
	// postings in canonical order.
	ListTransactionsByParty(ctx context.Context, party domain.PartyRef, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for posting data
type TransactionWriterSvc interface {
	// CreateTransaction records a receipt or payment against a party and
	// updates the account's running balances.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Posting, error)

	// UpdateTransaction edits a posting's mutable metadata. Changing the
	// transaction date recomputes downstream running balances; the amount and
	// entry type are immutable.
	UpdateTransaction(ctx context.Context, postingID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Posting, error)

	// DeleteTransaction removes a posting and recomputes downstream running
	// balances. Linked commission postings are removed in the same operation.
	DeleteTransaction(ctx context.Context, postingID string, requestingUserID string) error
}

// TransactionSvcFacade combines all posting-related service interfaces
// This is a facade for clients that need access to all operations
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
