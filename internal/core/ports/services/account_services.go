package services

import (
	"context"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByParty retrieves the account owned by a party.
	GetAccountByParty(ctx context.Context, party domain.PartyRef) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts, optionally filtered
	// by party type.
	ListAccounts(ctx context.Context, partyType *domain.PartyType, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateLedgerAccount persists a new standalone ledger account (cash,
	// bank, expense heads) with its opening balance.
	CreateLedgerAccount(ctx context.Context, req dto.CreateLedgerAccountRequest, creatorUserID string) (*domain.Account, error)

	// EnsureAccountForParty returns the party's account, creating a zero
	// opening balance account when none exists yet.
	EnsureAccountForParty(ctx context.Context, party domain.PartyRef, name string, creatorUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts with postings
	// cannot be deactivated.
	DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
