package repositories

import (
	"context"
	"time"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingReader defines read operations for posting data
type PostingReader interface {
	// FindPostingByID retrieves a specific posting by its unique identifier.
	FindPostingByID(ctx context.Context, postingID string) (*domain.Posting, error)

	// FindPostingsByAccountID retrieves every posting of an account in the
	// canonical (transaction_date, seq) order.
	FindPostingsByAccountID(ctx context.Context, accountID string) ([]domain.Posting, error)

	// FindPostingsByReference retrieves postings linked to a business event,
	// e.g. the commission accruals generated by a receipt.
	FindPostingsByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.Posting, error)

	// ListPostingsByAccountID retrieves a paginated list of postings for an
	// account using token-based pagination. It returns the postings, a token
	// for the next page, and an error.
	ListPostingsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Posting, *string, error)
}

// PostingWriter defines write operations for posting data. Every method
// serializes on the owning account (row lock) and leaves the account's
// stored running balances and balance snapshot consistent before returning.
type PostingWriter interface {
	// CreatePosting inserts a posting, assigns its per-account sequence
	// number and running balance, and updates the account snapshot. A
	// backdated posting triggers a full recomputation of the account.
	CreatePosting(ctx context.Context, posting domain.Posting) (*domain.Posting, error)

	// CreatePostings inserts a group of postings in one transaction, in
	// order, each assigned its sequence number and running balance. Either
	// every posting lands or none do. Used by flows that must not leave a
	// partial business event behind, like a receipt and its commission
	// accrual.
	CreatePostings(ctx context.Context, postings []domain.Posting) ([]domain.Posting, error)

	// UpdatePostingMetadata rewrites a posting's mutable fields. A changed
	// transaction date triggers a full recomputation of the account.
	UpdatePostingMetadata(ctx context.Context, posting domain.Posting) (*domain.Posting, error)

	// DeletePosting removes a posting and recomputes all subsequent running
	// balances for the owning account.
	DeletePosting(ctx context.Context, postingID string) error

	// DeletePostings removes a group of postings in one transaction and
	// recomputes every affected account. Either all of them disappear or
	// none do.
	DeletePostings(ctx context.Context, postingIDs []string) error
}

// StatementReader answers range queries against a single account.
type StatementReader interface {
	// GetStatementRows returns the opening balance for the range (the
	// account's opening balance folded with every posting dated strictly
	// before from) and the in-range postings in canonical order with their
	// stored running balances. Nil bounds mean all time. Both reads happen
	// in one snapshot.
	GetStatementRows(ctx context.Context, accountID string, from, to *time.Time) (decimal.Decimal, []domain.Posting, error)
}

// PostingRepositoryFacade combines all posting-related repository interfaces
// This is a facade for clients that need access to all operations
type PostingRepositoryFacade interface {
	PostingReader
	PostingWriter
	StatementReader
}

// PostingRepositoryWithTx extends PostingRepositoryFacade with transaction capabilities
type PostingRepositoryWithTx interface {
	PostingRepositoryFacade
	TransactionManager
}
