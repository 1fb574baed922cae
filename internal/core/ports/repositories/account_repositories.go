package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByParty retrieves the account owned by a party.
	FindAccountByParty(ctx context.Context, party domain.PartyRef) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts, optionally
	// filtered by party type.
	ListAccounts(ctx context.Context, partyType *domain.PartyType, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations used inside posting
// transactions to serialize balance rewrites per account.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an account and locks its row within
	// the given transaction. All posting mutations go through this lock.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// UpdateAccountBalanceInTx rewrites the balance snapshot within a
	// transaction, guarded by the expected version; a mismatch reports
	// apperrors.ErrConflict.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, expectedVersion int64, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
