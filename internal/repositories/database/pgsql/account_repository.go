package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	"github.com/plotbooks/plotbooks_backend/internal/models"
	"github.com/plotbooks/plotbooks_backend/internal/utils/mapping"
)

const accountColumns = `account_id, party_type, party_id, name, class, opening_balance, opening_type, balance, version, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.PartyType,
		&m.PartyID,
		&m.Name,
		&m.Class,
		&m.OpeningBalance,
		&m.OpeningType,
		&m.Balance,
		&m.Version,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

// SaveAccount inserts a new account. The unique (party_type, party_id)
// constraint guarantees one posting sequence per party.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.PartyType,
		modelAcc.PartyID,
		modelAcc.Name,
		modelAcc.Class,
		modelAcc.OpeningBalance,
		modelAcc.OpeningType,
		modelAcc.Balance,
		modelAcc.Version,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account for party %s/%s already exists", apperrors.ErrDuplicate, modelAcc.PartyType, modelAcc.PartyID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// FindAccountByParty retrieves the account owned by a party.
func (r *PgxAccountRepository) FindAccountByParty(ctx context.Context, party domain.PartyRef) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE party_type = $1 AND party_id = $2;`

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, string(party.Type), party.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account for party %s: %w", party, err)
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of active accounts, optionally
// filtered by party type.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, partyType *domain.PartyType, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_active = TRUE AND ($1::text IS NULL OR party_type = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	var partyTypeArg *string
	if partyType != nil {
		s := string(*partyType)
		partyTypeArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, partyTypeArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the account does not exist or it was already inactive.
		_, findErr := r.FindAccountByID(ctx, accountID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check account status after deactivation attempt for %s: %w", accountID, findErr)
		}
		return apperrors.ErrValidation
	}
	return nil
}

// FindAccountByIDForUpdate selects an account and locks its row within the
// given transaction. All posting mutations serialize on this lock.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`

	account, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s for update: %w", accountID, err)
	}
	return account, nil
}

// UpdateAccountBalanceInTx rewrites the balance snapshot within a transaction,
// guarded by the expected version. A version mismatch means a concurrent
// writer got there first and reports apperrors.ErrConflict.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, expectedVersion int64, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2, version = version + 1, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND version = $5;
	`
	cmdTag, err := tx.Exec(ctx, query, accountID, balance, now, userID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s version %d is stale", apperrors.ErrConflict, accountID, expectedVersion)
	}
	return nil
}
