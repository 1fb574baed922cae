package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	"github.com/plotbooks/plotbooks_backend/internal/models"
	"github.com/plotbooks/plotbooks_backend/internal/utils/accounting"
	"github.com/plotbooks/plotbooks_backend/internal/utils/mapping"
	"github.com/plotbooks/plotbooks_backend/internal/utils/pagination"
)

const postingColumns = `posting_id, account_id, party_type, party_id, transaction_date, seq, debit, credit, entry_type, description, reference_type, reference_id, payment_mode, bank_name, receipt_number, running_balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxPostingRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxPostingRepository creates a new repository for posting data. Every
// write serializes on the owning account's row lock and leaves the stored
// running balances and the account snapshot consistent before committing.
func newPgxPostingRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.PostingRepositoryWithTx {
	return &PgxPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxPostingRepository implements portsrepo.PostingRepositoryWithTx
var _ portsrepo.PostingRepositoryWithTx = (*PgxPostingRepository)(nil)

func scanPosting(row pgx.Row) (*domain.Posting, error) {
	var m models.Posting
	err := row.Scan(
		&m.PostingID,
		&m.AccountID,
		&m.PartyType,
		&m.PartyID,
		&m.TransactionDate,
		&m.Seq,
		&m.Debit,
		&m.Credit,
		&m.EntryType,
		&m.Description,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.PaymentMode,
		&m.BankName,
		&m.ReceiptNumber,
		&m.RunningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	domainPosting := mapping.ToDomainPosting(m)
	return &domainPosting, nil
}

func collectPostings(rows pgx.Rows) ([]domain.Posting, error) {
	defer rows.Close()
	postings := []domain.Posting{}
	for rows.Next() {
		posting, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posting row: %w", err)
		}
		postings = append(postings, *posting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posting rows: %w", err)
	}
	return postings, nil
}

func insertPosting(ctx context.Context, tx pgx.Tx, m models.Posting) error {
	query := `
		INSERT INTO postings (` + postingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := tx.Exec(ctx, query,
		m.PostingID,
		m.AccountID,
		m.PartyType,
		m.PartyID,
		m.TransactionDate,
		m.Seq,
		m.Debit,
		m.Credit,
		m.EntryType,
		m.Description,
		m.ReferenceType,
		m.ReferenceID,
		m.PaymentMode,
		m.BankName,
		m.ReceiptNumber,
		m.RunningBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert posting %s: %w", m.PostingID, err)
	}
	return nil
}

// recomputeAccountInTx reloads the account's full posting sequence in
// canonical order, folds the running balances from the opening balance, and
// rewrites both the posting rows and the account snapshot. Must run under
// the account row lock.
func (r *PgxPostingRepository) recomputeAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account, userID string, now time.Time) ([]domain.Posting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM postings
		WHERE account_id = $1
		ORDER BY transaction_date, seq;
	`
	rows, err := tx.Query(ctx, query, account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load postings for recompute of account %s: %w", account.AccountID, err)
	}
	postings, err := collectPostings(rows)
	if err != nil {
		return nil, err
	}

	postings, closing := accounting.ComputeRunningBalances(account.OpeningBalance, postings)

	batch := &pgx.Batch{}
	for _, p := range postings {
		batch.Queue(`UPDATE postings SET running_balance = $2 WHERE posting_id = $1;`, p.PostingID, p.RunningBalance)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return nil, fmt.Errorf("failed to rewrite running balances for account %s: %w", account.AccountID, err)
		}
	}

	if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, closing, account.Version, userID, now); err != nil {
		return nil, err
	}
	return postings, nil
}

// createPostingInTx inserts a posting under the caller's transaction,
// assigning its per-account sequence number and running balance and updating
// the account snapshot. Appending at the ledger tail is a single increment;
// a backdated posting triggers a full recomputation of the account.
func (r *PgxPostingRepository) createPostingInTx(ctx context.Context, tx pgx.Tx, posting domain.Posting) (*domain.Posting, error) {
	account, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, posting.AccountID)
	if err != nil {
		return nil, err
	}

	var maxSeq int64
	var lastDate *time.Time
	err = tx.QueryRow(ctx, `SELECT COALESCE(MAX(seq), 0), MAX(transaction_date) FROM postings WHERE account_id = $1;`, posting.AccountID).Scan(&maxSeq, &lastDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read posting sequence for account %s: %w", posting.AccountID, err)
	}
	posting.Seq = maxSeq + 1
	posting.TransactionDate = accounting.DateOnly(posting.TransactionDate)

	if accounting.AppendsAtTail(posting.TransactionDate, lastDate) {
		posting.RunningBalance = account.Balance.Add(posting.SignedAmount())
		if err := insertPosting(ctx, tx, mapping.ToModelPosting(posting)); err != nil {
			return nil, err
		}
		if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, posting.RunningBalance, account.Version, posting.CreatedBy, posting.LastUpdatedAt); err != nil {
			return nil, err
		}
	} else {
		// Backdated: the new posting lands mid-sequence and shifts every
		// later running balance, so rewrite the whole account.
		if err := insertPosting(ctx, tx, mapping.ToModelPosting(posting)); err != nil {
			return nil, err
		}
		recomputed, err := r.recomputeAccountInTx(ctx, tx, *account, posting.CreatedBy, posting.LastUpdatedAt)
		if err != nil {
			return nil, err
		}
		for _, p := range recomputed {
			if p.PostingID == posting.PostingID {
				posting.RunningBalance = p.RunningBalance
				break
			}
		}
	}

	return &posting, nil
}

// CreatePosting inserts a single posting in its own transaction.
func (r *PgxPostingRepository) CreatePosting(ctx context.Context, posting domain.Posting) (*domain.Posting, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	created, err := r.createPostingInTx(ctx, tx, posting)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return created, nil
}

// lockAccountsInTx takes the row locks of the given accounts in sorted ID
// order so concurrent batches never deadlock on each other.
func (r *PgxPostingRepository) lockAccountsInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) error {
	seen := make(map[string]struct{}, len(accountIDs))
	ids := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}

// CreatePostings inserts a group of postings in one transaction. Either
// every posting lands with its sequence number, running balance and account
// snapshot written, or none do.
func (r *PgxPostingRepository) CreatePostings(ctx context.Context, postings []domain.Posting) ([]domain.Posting, error) {
	if len(postings) == 0 {
		return []domain.Posting{}, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(postings))
	for _, p := range postings {
		accountIDs = append(accountIDs, p.AccountID)
	}
	if err := r.lockAccountsInTx(ctx, tx, accountIDs); err != nil {
		return nil, err
	}

	created := make([]domain.Posting, 0, len(postings))
	for _, posting := range postings {
		saved, err := r.createPostingInTx(ctx, tx, posting)
		if err != nil {
			return nil, err
		}
		created = append(created, *saved)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return created, nil
}

// FindPostingByID retrieves a posting by its ID.
func (r *PgxPostingRepository) FindPostingByID(ctx context.Context, postingID string) (*domain.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE posting_id = $1;`

	posting, err := scanPosting(r.Pool.QueryRow(ctx, query, postingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find posting by ID %s: %w", postingID, err)
	}
	return posting, nil
}

// FindPostingsByAccountID retrieves every posting of an account in canonical order.
func (r *PgxPostingRepository) FindPostingsByAccountID(ctx context.Context, accountID string) ([]domain.Posting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM postings
		WHERE account_id = $1
		ORDER BY transaction_date, seq;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query postings for account %s: %w", accountID, err)
	}
	return collectPostings(rows)
}

// FindPostingsByReference retrieves postings linked to a business event.
func (r *PgxPostingRepository) FindPostingsByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.Posting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM postings
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY transaction_date, seq;
	`
	rows, err := r.Pool.Query(ctx, query, string(refType), refID)
	if err != nil {
		return nil, fmt.Errorf("failed to query postings for reference %s/%s: %w", refType, refID, err)
	}
	return collectPostings(rows)
}

// ListPostingsByAccountID retrieves a paginated list of postings for an
// account using token-based pagination over the canonical
// (transaction_date, seq) ordering.
func (r *PgxPostingRepository) ListPostingsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Posting, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + postingColumns + `
		FROM postings
		WHERE account_id = $1
	`
	orderByClause := `ORDER BY transaction_date, seq`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastSeq, decodeErr := pagination.DecodePostingToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (transaction_date, seq) > ($2, $3)`
		args = append(args, lastDate, lastSeq)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query postings page for account %s: %w", accountID, err)
	}

	postings, err := collectPostings(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(postings) > limit {
		last := postings[limit-1] // last item included in this page
		token := pagination.EncodePostingToken(last.TransactionDate, last.Seq)
		nextTokenVal = &token
		postings = postings[:limit]
	}
	return postings, nextTokenVal, nil
}

// UpdatePostingMetadata rewrites a posting's mutable fields. A changed
// transaction date reorders the account's sequence and triggers a full
// recomputation of its running balances.
func (r *PgxPostingRepository) UpdatePostingMetadata(ctx context.Context, posting domain.Posting) (*domain.Posting, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	account, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, posting.AccountID)
	if err != nil {
		return nil, err
	}

	var storedDate time.Time
	err = tx.QueryRow(ctx, `SELECT transaction_date FROM postings WHERE posting_id = $1;`, posting.PostingID).Scan(&storedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read posting %s before update: %w", posting.PostingID, err)
	}

	posting.TransactionDate = accounting.DateOnly(posting.TransactionDate)
	model := mapping.ToModelPosting(posting)
	query := `
		UPDATE postings
		SET transaction_date = $2, description = $3, payment_mode = $4, bank_name = $5, receipt_number = $6, last_updated_at = $7, last_updated_by = $8
		WHERE posting_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		model.PostingID,
		model.TransactionDate,
		model.Description,
		model.PaymentMode,
		model.BankName,
		model.ReceiptNumber,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update posting %s: %w", model.PostingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	if !accounting.DateOnly(storedDate).Equal(posting.TransactionDate) {
		recomputed, err := r.recomputeAccountInTx(ctx, tx, *account, posting.LastUpdatedBy, posting.LastUpdatedAt)
		if err != nil {
			return nil, err
		}
		for _, p := range recomputed {
			if p.PostingID == posting.PostingID {
				posting = p
				break
			}
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &posting, nil
}

// deletePostingInTx removes a posting under the caller's transaction and
// recomputes the owning account's running balances and snapshot.
func (r *PgxPostingRepository) deletePostingInTx(ctx context.Context, tx pgx.Tx, postingID string) error {
	var accountID string
	var userID string
	err := tx.QueryRow(ctx, `SELECT account_id, last_updated_by FROM postings WHERE posting_id = $1;`, postingID).Scan(&accountID, &userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read posting %s before delete: %w", postingID, err)
	}

	account, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM postings WHERE posting_id = $1;`, postingID)
	if err != nil {
		return fmt.Errorf("failed to delete posting %s: %w", postingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := r.recomputeAccountInTx(ctx, tx, *account, userID, time.Now().UTC()); err != nil {
		return err
	}
	return nil
}

// DeletePosting removes a single posting in its own transaction.
func (r *PgxPostingRepository) DeletePosting(ctx context.Context, postingID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.deletePostingInTx(ctx, tx, postingID); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeletePostings removes a group of postings in one transaction and
// recomputes every affected account. Either all of them disappear or none
// do, so a business event and its dependent entries never part ways.
func (r *PgxPostingRepository) DeletePostings(ctx context.Context, postingIDs []string) error {
	if len(postingIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx, `SELECT DISTINCT account_id FROM postings WHERE posting_id = ANY($1);`, postingIDs)
	if err != nil {
		return fmt.Errorf("failed to read accounts for posting batch delete: %w", err)
	}
	accountIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to collect accounts for posting batch delete: %w", err)
	}
	if err := r.lockAccountsInTx(ctx, tx, accountIDs); err != nil {
		return err
	}

	for _, postingID := range postingIDs {
		if err := r.deletePostingInTx(ctx, tx, postingID); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// GetStatementRows returns the opening balance for the range and the
// in-range postings in canonical order. Both reads run in one repeatable
// read snapshot so the opening balance and the rows always agree.
func (r *PgxPostingRepository) GetStatementRows(ctx context.Context, accountID string, from, to *time.Time) (decimal.Decimal, []domain.Posting, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return decimal.Zero, nil, apperrors.NewAppError(500, "failed to begin statement snapshot", err)
	}
	defer r.Rollback(ctx, tx)

	var fromDate, toDate *time.Time
	if from != nil {
		d := accounting.DateOnly(*from)
		fromDate = &d
	}
	if to != nil {
		d := accounting.DateOnly(*to)
		toDate = &d
	}

	var opening decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT opening_balance FROM accounts WHERE account_id = $1;`, accountID).Scan(&opening)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil, apperrors.ErrNotFound
		}
		return decimal.Zero, nil, fmt.Errorf("failed to read opening balance for account %s: %w", accountID, err)
	}

	if fromDate != nil {
		var carried decimal.Decimal
		err = tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(credit - debit), 0)
			FROM postings
			WHERE account_id = $1 AND transaction_date < $2;
		`, accountID, *fromDate).Scan(&carried)
		if err != nil {
			return decimal.Zero, nil, fmt.Errorf("failed to fold pre-range postings for account %s: %w", accountID, err)
		}
		opening = opening.Add(carried)
	}

	rows, err := tx.Query(ctx, `
		SELECT `+postingColumns+`
		FROM postings
		WHERE account_id = $1
		  AND ($2::timestamptz IS NULL OR transaction_date >= $2)
		  AND ($3::timestamptz IS NULL OR transaction_date <= $3)
		ORDER BY transaction_date, seq;
	`, accountID, fromDate, toDate)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to query statement rows for account %s: %w", accountID, err)
	}
	postings, err := collectPostings(rows)
	if err != nil {
		return decimal.Zero, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, nil, err
	}
	return opening, postings, nil
}
