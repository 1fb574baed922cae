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
	"github.com/plotbooks/plotbooks_backend/internal/middleware"
)

var (
	ErrAmountNotPositive = errors.New("transaction amount must be positive")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrBookingNotActive  = errors.New("booking is not active")
	ErrSystemPosting     = errors.New("system generated postings cannot be modified directly")
)

// conflictRetries bounds how often a write is retried after losing an
// optimistic version check to a concurrent writer on the same account.
const conflictRetries = 3

// transactionService provides the core posting operations: recording
// receipts and payments, editing their metadata and removing them, with
// running balances kept consistent by the repository under the account lock.
type transactionService struct {
	postingRepo   portsrepo.PostingRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
	bookingRepo   portsrepo.BookingRepositoryFacade
	commissionSvc portssvc.CommissionSvcFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(postingRepo portsrepo.PostingRepositoryFacade, accountSvc portssvc.AccountSvcFacade, bookingRepo portsrepo.BookingRepositoryFacade, commissionSvc portssvc.CommissionSvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		postingRepo:   postingRepo,
		accountSvc:    accountSvc,
		bookingRepo:   bookingRepo,
		commissionSvc: commissionSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// withConflictRetry runs fn again when it loses the account version check to
// a concurrent writer. Any other error aborts immediately.
func withConflictRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

// CreateTransaction records a receipt or payment against a party.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Posting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	party := domain.PartyRef{Type: req.PartyType, ID: req.PartyID}
	if err := party.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	account, err := s.accountSvc.GetAccountByParty(ctx, party)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to resolve account for transaction", slog.String("error", err.Error()), slog.String("party", party.String()))
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAccountInactive)
	}

	referenceType := domain.RefManual
	var booking *domain.Booking
	if req.BookingID != "" {
		booking, err = s.bookingRepo.FindBookingByID(ctx, req.BookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve booking %s: %w", req.BookingID, err)
		}
		if booking.Status != domain.BookingActive {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBookingNotActive)
		}
		if booking.CustomerID != req.PartyID || req.PartyType != domain.PartyCustomer {
			return nil, fmt.Errorf("%w: booking %s does not belong to this party", apperrors.ErrValidation, req.BookingID)
		}
		referenceType = domain.RefBooking
	}

	now := time.Now().UTC()
	posting := domain.Posting{
		PostingID:       uuid.NewString(),
		PartyType:       req.PartyType,
		PartyID:         req.PartyID,
		AccountID:       account.AccountID,
		TransactionDate: req.TransactionDate,
		EntryType:       req.EntryType,
		Description:     req.Description,
		ReferenceType:   referenceType,
		ReferenceID:     req.BookingID,
		PaymentMode:     req.PaymentMode,
		BankName:        req.BankName,
		ReceiptNumber:   req.ReceiptNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
		// Seq and RunningBalance are assigned by the repository under the account lock.
	}
	switch req.EntryType {
	case domain.Receipt:
		posting.Credit = req.Amount
		posting.Debit = decimal.Zero
	case domain.Payment:
		posting.Debit = req.Amount
		posting.Credit = decimal.Zero
	default:
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, req.EntryType)
	}

	// Commission accrues only on booking receipts sourced by an executive.
	// The accrual is built up front and saved in the same transaction as
	// the receipt, so neither posting can land without the other.
	postings := []domain.Posting{posting}
	if booking != nil && booking.ExecutiveID != "" && req.EntryType == domain.Receipt {
		accrual, err := s.commissionSvc.BuildAccrual(ctx, posting, booking.ExecutiveID, creatorUserID)
		if err != nil {
			logger.Error("Failed to build commission accrual", slog.String("error", err.Error()), slog.String("posting_id", posting.PostingID), slog.String("executive_id", booking.ExecutiveID))
			return nil, fmt.Errorf("failed to build commission accrual: %w", err)
		}
		if accrual != nil {
			postings = append(postings, *accrual)
		}
	}

	var created []domain.Posting
	err = withConflictRetry(ctx, func() error {
		var createErr error
		created, createErr = s.postingRepo.CreatePostings(ctx, postings)
		return createErr
	})
	if err != nil {
		logger.Error("Failed to save posting", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to save posting: %w", err)
	}

	saved := created[0]
	logger.Info("Transaction created successfully", slog.String("posting_id", saved.PostingID), slog.String("account_id", account.AccountID), slog.String("entry_type", string(req.EntryType)))
	return &saved, nil
}

// GetTransactionByID retrieves a specific posting.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) GetTransactionByID(ctx context.Context, postingID string) (*domain.Posting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	posting, err := s.postingRepo.FindPostingByID(ctx, postingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find posting by ID", slog.String("error", err.Error()), slog.String("posting_id", postingID))
		}
		return nil, err
	}
	return posting, nil
}

// ListTransactionsByAccount retrieves a page of postings for an account in
// canonical order.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	postings, nextToken, err := s.postingRepo.ListPostingsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list postings by account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve postings: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(postings),
		NextToken:    nextToken,
	}

	logger.Debug("Postings listed successfully for account", slog.String("account_id", accountID), slog.Int("count", len(postings)))
	return resp, nil
}

// ListTransactionsByParty resolves the party's account and lists its postings.
func (s *transactionService) ListTransactionsByParty(ctx context.Context, party domain.PartyRef, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountSvc.GetAccountByParty(ctx, party)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to resolve account for party", slog.String("error", err.Error()), slog.String("party_type", string(party.Type)), slog.String("party_id", party.ID))
		}
		return nil, err
	}

	return s.ListTransactionsByAccount(ctx, account.AccountID, params)
}

// UpdateTransaction edits a posting's mutable metadata.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) UpdateTransaction(ctx context.Context, postingID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Posting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount != nil {
		return nil, fmt.Errorf("%w: amount cannot be changed after creation", apperrors.ErrImmutableField)
	}

	posting, err := s.postingRepo.FindPostingByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if posting.ReferenceType == domain.RefCommission {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSystemPosting)
	}

	updated := false
	if req.TransactionDate != nil && !req.TransactionDate.Equal(posting.TransactionDate) {
		posting.TransactionDate = *req.TransactionDate
		updated = true
	}
	if req.Description != nil {
		posting.Description = *req.Description
		updated = true
	}
	if req.PaymentMode != nil {
		posting.PaymentMode = *req.PaymentMode
		updated = true
	}
	if req.BankName != nil {
		posting.BankName = *req.BankName
		updated = true
	}
	if req.ReceiptNumber != nil {
		posting.ReceiptNumber = *req.ReceiptNumber
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for posting update", slog.String("posting_id", postingID))
		return posting, nil
	}

	posting.LastUpdatedAt = time.Now().UTC()
	posting.LastUpdatedBy = requestingUserID

	var saved *domain.Posting
	err = withConflictRetry(ctx, func() error {
		var updateErr error
		saved, updateErr = s.postingRepo.UpdatePostingMetadata(ctx, *posting)
		return updateErr
	})
	if err != nil {
		logger.Error("Failed to update posting", slog.String("error", err.Error()), slog.String("posting_id", postingID))
		return nil, fmt.Errorf("failed to update posting: %w", err)
	}

	logger.Info("Transaction updated successfully", slog.String("posting_id", postingID))
	return saved, nil
}

// DeleteTransaction removes a posting together with any commission postings
// that accrued from it.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) DeleteTransaction(ctx context.Context, postingID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	posting, err := s.postingRepo.FindPostingByID(ctx, postingID)
	if err != nil {
		return err
	}
	if posting.ReferenceType == domain.RefCommission {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSystemPosting)
	}

	// The source posting and its dependent commission accruals go in one
	// atomic delete, so neither can survive without the other.
	accruals, err := s.commissionSvc.LinkedAccruals(ctx, postingID)
	if err != nil {
		logger.Error("Failed to find linked commission postings", slog.String("error", err.Error()), slog.String("posting_id", postingID))
		return fmt.Errorf("failed to find linked commission postings: %w", err)
	}
	postingIDs := []string{postingID}
	for _, accrual := range accruals {
		postingIDs = append(postingIDs, accrual.PostingID)
	}

	err = withConflictRetry(ctx, func() error {
		return s.postingRepo.DeletePostings(ctx, postingIDs)
	})
	if err != nil {
		logger.Error("Failed to delete posting", slog.String("error", err.Error()), slog.String("posting_id", postingID))
		return fmt.Errorf("failed to delete posting: %w", err)
	}

	logger.Info("Transaction deleted successfully", slog.String("posting_id", postingID), slog.String("account_id", posting.AccountID))
	return nil
}
