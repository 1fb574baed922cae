package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/utils/accounting"
)

// reportingService builds the read-side reports: party statements, the cash
// book, daily collections and outstanding dues.
type reportingService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	statementReader portsrepo.StatementReader
	reportingRepo   portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(accountRepo portsrepo.AccountReader, statementReader portsrepo.StatementReader, reportingRepo portsrepo.ReportingRepositoryFacade) portssvc.ReportingService {
	return &reportingService{
		accountRepo:     accountRepo,
		statementReader: statementReader,
		reportingRepo:   reportingRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// GetStatement generates a party ledger statement for an inclusive date range.
// Implements portssvc.ReportingService
func (s *reportingService) GetStatement(ctx context.Context, party domain.PartyRef, from, to *time.Time) (*domain.Statement, error) {
	if err := party.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	if from != nil && to != nil && accounting.DateOnly(*from).After(accounting.DateOnly(*to)) {
		return nil, apperrors.ErrInvalidRange
	}

	account, err := s.accountRepo.FindAccountByParty(ctx, party)
	if err != nil {
		return nil, err
	}

	opening, postings, err := s.statementReader.GetStatementRows(ctx, account.AccountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to read statement rows", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to read statement rows: %w", err)
	}

	totalDebit, totalCredit := accounting.Totals(postings)
	statement := &domain.Statement{
		Party:          party,
		AccountName:    account.Name,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Postings:       postings,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		ClosingBalance: accounting.Fold(opening, postings),
	}

	s.LogDebug(ctx, "Statement generated", slog.String("account_id", account.AccountID), slog.Int("entries", len(postings)))
	return statement, nil
}

// GetCashBook generates the day-grouped cash book over all cash and bank
// ledger accounts.
// Implements portssvc.ReportingService
func (s *reportingService) GetCashBook(ctx context.Context, from, to time.Time) (*domain.CashBook, error) {
	from = accounting.DateOnly(from)
	to = accounting.DateOnly(to)
	if from.After(to) {
		return nil, apperrors.ErrInvalidRange
	}

	opening, rows, err := s.reportingRepo.GetCashBookRows(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to read cash book rows")
		return nil, fmt.Errorf("failed to read cash book rows: %w", err)
	}

	book := &domain.CashBook{From: from, To: to}
	running := opening
	var day *domain.CashBookDay
	flush := func() {
		if day != nil {
			book.Days = append(book.Days, *day)
			day = nil
		}
	}
	for _, row := range rows {
		date := accounting.DateOnly(row.TransactionDate)
		if day == nil || !day.Date.Equal(date) {
			flush()
			day = &domain.CashBookDay{
				Date:           date,
				OpeningBalance: running,
				TotalReceipt:   decimal.Zero,
				TotalPayment:   decimal.Zero,
			}
		}
		day.Entries = append(day.Entries, row)
		day.TotalReceipt = day.TotalReceipt.Add(row.Credit)
		day.TotalPayment = day.TotalPayment.Add(row.Debit)
		running = running.Add(row.SignedAmount())
		day.ClosingBalance = running
	}
	flush()

	s.LogDebug(ctx, "Cash book generated", slog.Int("days", len(book.Days)), slog.Int("entries", len(rows)))
	return book, nil
}

// GetDailyCollection generates the receipt collection report for a single day.
// Implements portssvc.ReportingService
func (s *reportingService) GetDailyCollection(ctx context.Context, date time.Time) (*domain.DailyCollection, error) {
	date = accounting.DateOnly(date)

	rows, err := s.reportingRepo.GetDailyCollectionRows(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to read daily collection rows")
		return nil, fmt.Errorf("failed to read daily collection rows: %w", err)
	}

	report := &domain.DailyCollection{
		Date:    date,
		Entries: rows,
		Total:   decimal.Zero,
		ByMode:  make(map[domain.PaymentMode]decimal.Decimal),
	}
	for _, row := range rows {
		report.Total = report.Total.Add(row.Credit)
		mode := row.PaymentMode
		if mode == "" {
			mode = domain.ModeCash
		}
		report.ByMode[mode] = report.ByMode[mode].Add(row.Credit)
	}

	s.LogDebug(ctx, "Daily collection generated", slog.String("date", date.Format("2006-01-02")), slog.Int("entries", len(rows)))
	return report, nil
}

// GetOutstanding lists customers carrying a debit account balance.
// Implements portssvc.ReportingService
func (s *reportingService) GetOutstanding(ctx context.Context) ([]domain.OutstandingRow, error) {
	rows, err := s.reportingRepo.GetOutstandingCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read outstanding customers")
		return nil, fmt.Errorf("failed to read outstanding customers: %w", err)
	}

	// Only customers who owe money belong on the report. An account in
	// credit is an advance, not an arrear.
	outstanding := make([]domain.OutstandingRow, 0, len(rows))
	for _, row := range rows {
		if row.Outstanding.IsPositive() {
			outstanding = append(outstanding, row)
		}
	}
	return outstanding, nil
}
