package services

import (
	"context"
	"time"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// ReportingService defines operations for generating accounting reports
type ReportingService interface {
	// GetStatement generates a party ledger statement for an inclusive date
	// range. Nil bounds leave that side of the range open.
	GetStatement(ctx context.Context, party domain.PartyRef, from, to *time.Time) (*domain.Statement, error)

	// GetCashBook generates the day-grouped cash book over all cash and bank
	// ledger accounts for an inclusive date range.
	GetCashBook(ctx context.Context, from, to time.Time) (*domain.CashBook, error)

	// GetDailyCollection generates the receipt collection report for a single day.
	GetDailyCollection(ctx context.Context, date time.Time) (*domain.DailyCollection, error)

	// GetOutstanding lists customers carrying a debit account balance.
	GetOutstanding(ctx context.Context) ([]domain.OutstandingRow, error)
}
