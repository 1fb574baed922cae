package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	"github.com/plotbooks/plotbooks_backend/internal/models"
	"github.com/plotbooks/plotbooks_backend/internal/utils/mapping"
)

const executiveColumns = `executive_id, name, phone, commission_rate, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxExecutiveRepository struct {
	BaseRepository
}

// newPgxExecutiveRepository creates a new repository for sales executive data.
func newPgxExecutiveRepository(pool *pgxpool.Pool) portsrepo.ExecutiveRepositoryFacade {
	return &PgxExecutiveRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxExecutiveRepository implements portsrepo.ExecutiveRepositoryFacade
var _ portsrepo.ExecutiveRepositoryFacade = (*PgxExecutiveRepository)(nil)

func scanExecutive(row pgx.Row) (*domain.Executive, error) {
	var m models.Executive
	err := row.Scan(
		&m.ExecutiveID,
		&m.Name,
		&m.Phone,
		&m.CommissionRate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	domainExec := mapping.ToDomainExecutive(m)
	return &domainExec, nil
}

// SaveExecutive inserts a new executive.
func (r *PgxExecutiveRepository) SaveExecutive(ctx context.Context, executive domain.Executive) error {
	m := mapping.ToModelExecutive(executive)

	query := `
		INSERT INTO executives (` + executiveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExecutiveID,
		m.Name,
		m.Phone,
		m.CommissionRate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: executive %s already exists", apperrors.ErrDuplicate, m.ExecutiveID)
		}
		return fmt.Errorf("failed to save executive %s: %w", m.ExecutiveID, err)
	}
	return nil
}

// FindExecutiveByID retrieves an executive by ID.
func (r *PgxExecutiveRepository) FindExecutiveByID(ctx context.Context, executiveID string) (*domain.Executive, error) {
	query := `SELECT ` + executiveColumns + ` FROM executives WHERE executive_id = $1;`

	executive, err := scanExecutive(r.Pool.QueryRow(ctx, query, executiveID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find executive by ID %s: %w", executiveID, err)
	}
	return executive, nil
}

// ListExecutives retrieves a paginated list of executives.
func (r *PgxExecutiveRepository) ListExecutives(ctx context.Context, limit int, offset int) ([]domain.Executive, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + executiveColumns + `
		FROM executives
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query executives: %w", err)
	}
	defer rows.Close()

	executives := []domain.Executive{}
	for rows.Next() {
		executive, err := scanExecutive(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan executive row: %w", err)
		}
		executives = append(executives, *executive)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating executive rows: %w", err)
	}
	return executives, nil
}

// UpdateExecutive updates an executive's details, rate and active flag.
// A rate change only affects commissions accrued after it.
func (r *PgxExecutiveRepository) UpdateExecutive(ctx context.Context, executive domain.Executive) error {
	m := mapping.ToModelExecutive(executive)

	query := `
		UPDATE executives
		SET name = $2, phone = $3, commission_rate = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE executive_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ExecutiveID,
		m.Name,
		m.Phone,
		m.CommissionRate,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update executive %s: %w", m.ExecutiveID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
