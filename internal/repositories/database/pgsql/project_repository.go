package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	"github.com/plotbooks/plotbooks_backend/internal/models"
	"github.com/plotbooks/plotbooks_backend/internal/utils/mapping"
)

const projectColumns = `project_id, name, location, is_active, created_at, created_by, last_updated_at, last_updated_by`
const plotColumns = `plot_id, project_id, plot_number, area_sq_yd, rate_per_yd, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project and plot data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProjectRepository implements portsrepo.ProjectRepositoryFacade
var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

func scanProject(row pgx.Row) (*domain.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.Name,
		&m.Location,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	domainProject := mapping.ToDomainProject(m)
	return &domainProject, nil
}

func scanPlot(row pgx.Row) (*domain.Plot, error) {
	var m models.Plot
	err := row.Scan(
		&m.PlotID,
		&m.ProjectID,
		&m.PlotNumber,
		&m.AreaSqYd,
		&m.RatePerYd,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	domainPlot := mapping.ToDomainPlot(m)
	return &domainPlot, nil
}

// SaveProject inserts a new project.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProjectID,
		m.Name,
		m.Location,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: project %s already exists", apperrors.ErrDuplicate, m.ProjectID)
		}
		return fmt.Errorf("failed to save project %s: %w", m.ProjectID, err)
	}
	return nil
}

// FindProjectByID retrieves a project by ID.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`

	project, err := scanProject(r.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	return project, nil
}

// ListProjects retrieves a paginated list of projects.
func (r *PgxProjectRepository) ListProjects(ctx context.Context, limit int, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// SavePlot inserts a new plot. The unique (project_id, plot_number)
// constraint keeps plot numbers unambiguous within a project.
func (r *PgxProjectRepository) SavePlot(ctx context.Context, plot domain.Plot) error {
	m := mapping.ToModelPlot(plot)

	query := `
		INSERT INTO plots (` + plotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PlotID,
		m.ProjectID,
		m.PlotNumber,
		m.AreaSqYd,
		m.RatePerYd,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: plot %s already exists in project %s", apperrors.ErrDuplicate, m.PlotNumber, m.ProjectID)
		}
		return fmt.Errorf("failed to save plot %s: %w", m.PlotID, err)
	}
	return nil
}

// FindPlotByID retrieves a plot by ID.
func (r *PgxProjectRepository) FindPlotByID(ctx context.Context, plotID string) (*domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE plot_id = $1;`

	plot, err := scanPlot(r.Pool.QueryRow(ctx, query, plotID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plot by ID %s: %w", plotID, err)
	}
	return plot, nil
}

// ListPlotsByProject retrieves all plots of a project.
func (r *PgxProjectRepository) ListPlotsByProject(ctx context.Context, projectID string) ([]domain.Plot, error) {
	query := `
		SELECT ` + plotColumns + `
		FROM plots
		WHERE project_id = $1
		ORDER BY plot_number;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plots for project %s: %w", projectID, err)
	}
	defer rows.Close()

	plots := []domain.Plot{}
	for rows.Next() {
		plot, err := scanPlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plot row: %w", err)
		}
		plots = append(plots, *plot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plot rows: %w", err)
	}
	return plots, nil
}

// UpdatePlotStatus moves a plot through the sale lifecycle. The expected
// status acts as a compare-and-swap guard; losing the race to another writer
// reports apperrors.ErrConflict.
func (r *PgxProjectRepository) UpdatePlotStatus(ctx context.Context, plotID string, expected, next domain.PlotStatus, userID string, now time.Time) error {
	query := `
		UPDATE plots
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE plot_id = $1 AND status = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, plotID, string(next), now, userID, string(expected))
	if err != nil {
		return fmt.Errorf("failed to update status of plot %s: %w", plotID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindPlotByID(ctx, plotID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check plot status after update attempt for %s: %w", plotID, findErr)
		}
		return fmt.Errorf("%w: plot %s is not %s", apperrors.ErrConflict, plotID, expected)
	}
	return nil
}
