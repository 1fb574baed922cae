package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// ReportingRepositoryFacade exposes the read-side queries behind the
// accounting reports. Implementations must read each report in a single
// snapshot so totals and running balances agree.
type ReportingRepositoryFacade interface {
	// GetCashBookRows returns the combined opening balance of all cash and
	// bank class accounts as of the day before from, plus every posting on
	// those accounts within [from, to], ordered by (transactionDate, seq).
	GetCashBookRows(ctx context.Context, from, to time.Time) (decimal.Decimal, []domain.Posting, error)

	// GetDailyCollectionRows returns all receipt postings dated on the given
	// day across customer accounts.
	GetDailyCollectionRows(ctx context.Context, date time.Time) ([]domain.Posting, error)

	// GetOutstandingCustomers returns one row per customer whose account
	// carries a debit balance, with the customer's name resolved. Accounts
	// in credit (advances) are excluded.
	GetOutstandingCustomers(ctx context.Context) ([]domain.OutstandingRow, error)
}
