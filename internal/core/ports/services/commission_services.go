package services

import (
	"context"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// CommissionSvcFacade defines commission accrual operations.
type CommissionSvcFacade interface {
	// BuildAccrual constructs the commission posting an executive earns on
	// a booking receipt, without persisting it. Returns nil when the
	// executive's rate yields no commission. The caller saves the receipt
	// and the accrual in one atomic write so neither can land without the
	// other.
	BuildAccrual(ctx context.Context, receipt domain.Posting, executiveID string, creatorUserID string) (*domain.Posting, error)

	// LinkedAccruals returns the commission postings accrued against the
	// given source posting.
	LinkedAccruals(ctx context.Context, sourcePostingID string) ([]domain.Posting, error)
}
