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
)

var ErrExecutiveInactive = errors.New("executive is inactive")

// commissionService accrues executive commission on booking receipts as
// postings on the executive's own account.
type commissionService struct {
	BaseService
	postingRepo   portsrepo.PostingRepositoryFacade
	executiveRepo portsrepo.ExecutiveRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
}

// NewCommissionService creates a new CommissionService.
func NewCommissionService(postingRepo portsrepo.PostingRepositoryFacade, executiveRepo portsrepo.ExecutiveRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.CommissionSvcFacade {
	return &commissionService{
		postingRepo:   postingRepo,
		executiveRepo: executiveRepo,
		accountSvc:    accountSvc,
	}
}

var _ portssvc.CommissionSvcFacade = (*commissionService)(nil)

// BuildAccrual constructs the executive's commission on a receipt as a
// credit posting on the executive's account, linked back to the source
// posting. The caller persists it together with the receipt.
// Implements portssvc.CommissionSvcFacade
func (s *commissionService) BuildAccrual(ctx context.Context, receipt domain.Posting, executiveID string, creatorUserID string) (*domain.Posting, error) {
	executive, err := s.executiveRepo.FindExecutiveByID(ctx, executiveID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executive %s: %w", executiveID, err)
	}
	if !executive.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrExecutiveInactive)
	}

	commission := executive.CommissionOn(receipt.Credit)
	if commission.LessThanOrEqual(decimal.Zero) {
		s.LogDebug(ctx, "No commission to accrue", slog.String("executive_id", executiveID), slog.String("receipt_id", receipt.PostingID))
		return nil, nil
	}

	account, err := s.accountSvc.EnsureAccountForParty(ctx, domain.PartyRef{Type: domain.PartyExecutive, ID: executiveID}, executive.Name, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executive account: %w", err)
	}

	now := time.Now().UTC()
	posting := domain.Posting{
		PostingID:       uuid.NewString(),
		PartyType:       domain.PartyExecutive,
		PartyID:         executiveID,
		AccountID:       account.AccountID,
		TransactionDate: receipt.TransactionDate,
		EntryType:       domain.Receipt,
		Credit:          commission,
		Debit:           decimal.Zero,
		Description:     fmt.Sprintf("Commission on receipt %s", receipt.ReceiptNumber),
		ReferenceType:   domain.RefCommission,
		ReferenceID:     receipt.PostingID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	s.LogInfo(ctx, "Commission accrual built", slog.String("posting_id", posting.PostingID), slog.String("executive_id", executiveID), slog.String("amount", commission.String()))
	return &posting, nil
}

// LinkedAccruals returns the commission postings accrued against a source
// posting, empty when none exist.
// Implements portssvc.CommissionSvcFacade
func (s *commissionService) LinkedAccruals(ctx context.Context, sourcePostingID string) ([]domain.Posting, error) {
	linked, err := s.postingRepo.FindPostingsByReference(ctx, domain.RefCommission, sourcePostingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find commission postings for %s: %w", sourcePostingID, err)
	}
	return linked, nil
}
