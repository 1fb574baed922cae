package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
)

// accountService manages the account rows that anchor posting sequences.
type accountService struct {
	BaseService
	accountRepo   portsrepo.AccountRepositoryFacade
	postingReader portsrepo.PostingReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, postingReader portsrepo.PostingReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:   accountRepo,
		postingReader: postingReader,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// signedOpening converts an absolute opening figure with its Dr/Cr tag into
// the signed seed used internally: credit positive, debit negative.
func signedOpening(amount decimal.Decimal, balanceType domain.BalanceType) decimal.Decimal {
	if balanceType == domain.BalanceDr {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// GetAccountByID retrieves a specific account.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByParty retrieves the account owned by a party.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountByParty(ctx context.Context, party domain.PartyRef) (*domain.Account, error) {
	if err := party.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	account, err := s.accountRepo.FindAccountByParty(ctx, party)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by party", slog.String("party", party.String()))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts.
// Implements portssvc.AccountSvcFacade
func (s *accountService) ListAccounts(ctx context.Context, partyType *domain.PartyType, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, partyType, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// CreateLedgerAccount persists a standalone ledger account with its opening balance.
// Implements portssvc.AccountSvcFacade
func (s *accountService) CreateLedgerAccount(ctx context.Context, req dto.CreateLedgerAccountRequest, creatorUserID string) (*domain.Account, error) {
	openingType := req.OpeningType
	if openingType == "" {
		openingType = domain.BalanceCr
	}

	now := time.Now().UTC()
	accountID := uuid.NewString()
	opening := signedOpening(req.OpeningBalance, openingType)

	// A standalone ledger account is its own party; the account ID doubles
	// as the party ID.
	account := domain.Account{
		AccountID:      accountID,
		PartyType:      domain.PartyLedgerAccount,
		PartyID:        accountID,
		Name:           req.Name,
		Class:          req.Class,
		OpeningBalance: opening,
		OpeningType:    openingType,
		Balance:        opening,
		Version:        1,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save ledger account", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save ledger account: %w", err)
	}

	s.LogInfo(ctx, "Ledger account created successfully", slog.String("account_id", accountID), slog.String("class", string(req.Class)))
	return &account, nil
}

// EnsureAccountForParty returns the party's account, creating one with a
// zero opening balance when none exists yet.
// Implements portssvc.AccountSvcFacade
func (s *accountService) EnsureAccountForParty(ctx context.Context, party domain.PartyRef, name string, creatorUserID string) (*domain.Account, error) {
	if err := party.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	account, err := s.accountRepo.FindAccountByParty(ctx, party)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up account for party", slog.String("party", party.String()))
		return nil, err
	}

	now := time.Now().UTC()
	newAccount := domain.Account{
		AccountID:      uuid.NewString(),
		PartyType:      party.Type,
		PartyID:        party.ID,
		Name:           name,
		OpeningBalance: decimal.Zero,
		OpeningType:    domain.BalanceCr,
		Balance:        decimal.Zero,
		Version:        1,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, newAccount); err != nil {
		// Another request may have created the account between the lookup
		// and the insert; the unique (party_type, party_id) index reports
		// that as a duplicate we can resolve by re-reading.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindAccountByParty(ctx, party)
		}
		s.LogError(ctx, err, "Failed to create account for party", slog.String("party", party.String()))
		return nil, fmt.Errorf("failed to create account for party %s: %w", party, err)
	}

	s.LogInfo(ctx, "Account created for party", slog.String("account_id", newAccount.AccountID), slog.String("party", party.String()))
	return &newAccount, nil
}

// DeactivateAccount marks an account inactive. Accounts that already carry
// postings stay active so their history remains queryable.
// Implements portssvc.AccountSvcFacade
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	postings, _, err := s.postingReader.ListPostingsByAccountID(ctx, accountID, 1, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to check postings before deactivation", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check postings for account %s: %w", accountID, err)
	}
	if len(postings) > 0 {
		return fmt.Errorf("%w: account %s has postings and cannot be deactivated", apperrors.ErrConflict, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, requestingUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
