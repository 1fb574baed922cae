package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	"github.com/plotbooks/plotbooks_backend/internal/utils/accounting"
)

// prefixed posting column list for queries that join postings with accounts.
const joinedPostingColumns = `p.posting_id, p.account_id, p.party_type, p.party_id, p.transaction_date, p.seq, p.debit, p.credit, p.entry_type, p.description, p.reference_type, p.reference_id, p.payment_mode, p.bank_name, p.receipt_number, p.running_balance, p.created_at, p.created_by, p.last_updated_at, p.last_updated_by`

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for the read-side
// report queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetCashBookRows returns the combined cash/bank opening balance as of the
// day before from, plus every posting on cash and bank accounts within
// [from, to]. Both reads happen in one repeatable-read transaction so the
// opening figure and the rows describe the same ledger state.
func (r *PgxReportingRepository) GetCashBookRows(ctx context.Context, from, to time.Time) (decimal.Decimal, []domain.Posting, error) {
	fromDay := accounting.DateOnly(from)
	toDay := accounting.DateOnly(to)

	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to begin cash book read: %w", err)
	}
	defer tx.Rollback(ctx)

	openingQuery := `
		SELECT COALESCE(SUM(a.opening_balance), 0) + COALESCE((
			SELECT SUM(p.credit - p.debit)
			FROM postings p
			JOIN accounts a2 ON a2.account_id = p.account_id
			WHERE a2.party_type = $1 AND a2.class IN ($2, $3)
			  AND p.transaction_date < $4
		), 0)
		FROM accounts a
		WHERE a.party_type = $1 AND a.class IN ($2, $3);
	`
	var opening decimal.Decimal
	err = tx.QueryRow(ctx, openingQuery,
		string(domain.PartyLedgerAccount),
		string(domain.ClassCash),
		string(domain.ClassBank),
		fromDay,
	).Scan(&opening)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to compute cash book opening balance: %w", err)
	}

	rowsQuery := `
		SELECT ` + joinedPostingColumns + `
		FROM postings p
		JOIN accounts a ON a.account_id = p.account_id
		WHERE a.party_type = $1 AND a.class IN ($2, $3)
		  AND p.transaction_date >= $4 AND p.transaction_date <= $5
		ORDER BY p.transaction_date, p.seq;
	`
	rows, err := tx.Query(ctx, rowsQuery,
		string(domain.PartyLedgerAccount),
		string(domain.ClassCash),
		string(domain.ClassBank),
		fromDay,
		toDay,
	)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to query cash book rows: %w", err)
	}
	postings, err := collectPostings(rows)
	if err != nil {
		return decimal.Zero, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to commit cash book read: %w", err)
	}
	return opening, postings, nil
}

// GetDailyCollectionRows returns all receipt postings taken from customers on
// the given day.
func (r *PgxReportingRepository) GetDailyCollectionRows(ctx context.Context, date time.Time) ([]domain.Posting, error) {
	day := accounting.DateOnly(date)

	query := `
		SELECT ` + joinedPostingColumns + `
		FROM postings p
		WHERE p.party_type = $1 AND p.credit > 0
		  AND p.transaction_date = $2
		ORDER BY p.transaction_date, p.seq;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.PartyCustomer), day)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily collection rows: %w", err)
	}
	return collectPostings(rows)
}

// GetOutstandingCustomers returns one row per customer whose account carries
// a debit balance. The stored balance is negative for money owed to the
// business, so the outstanding figure is its negation. Customers sitting on
// an advance (credit balance) are not in arrears and are excluded.
func (r *PgxReportingRepository) GetOutstandingCustomers(ctx context.Context) ([]domain.OutstandingRow, error) {
	query := `
		SELECT c.customer_id, c.name, c.phone, -a.balance
		FROM accounts a
		JOIN customers c ON c.customer_id = a.party_id
		WHERE a.party_type = $1 AND a.balance < 0
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.PartyCustomer))
	if err != nil {
		return nil, fmt.Errorf("failed to query outstanding customers: %w", err)
	}
	defer rows.Close()

	result := []domain.OutstandingRow{}
	for rows.Next() {
		var row domain.OutstandingRow
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.Phone, &row.Outstanding); err != nil {
			return nil, fmt.Errorf("failed to scan outstanding row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outstanding rows: %w", err)
	}
	return result, nil
}
