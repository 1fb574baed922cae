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
	"github.com/plotbooks/plotbooks_backend/internal/dto"
)

// projectService manages projects and their plot inventory.
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// CreateProject persists a new project.
// Implements portssvc.ProjectSvcFacade
func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	now := time.Now().UTC()
	project := domain.Project{
		ProjectID: uuid.NewString(),
		Name:      req.Name,
		Location:  req.Location,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	s.LogInfo(ctx, "Project created successfully", slog.String("project_id", project.ProjectID))
	return &project, nil
}

// GetProjectByID retrieves a specific project.
// Implements portssvc.ProjectSvcFacade
func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find project by ID", slog.String("project_id", projectID))
		}
		return nil, err
	}
	return project, nil
}

// ListProjects retrieves a paginated list of projects.
// Implements portssvc.ProjectSvcFacade
func (s *projectService) ListProjects(ctx context.Context, limit int, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	projects, err := s.projectRepo.ListProjects(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreatePlot persists a new plot under a project.
// Implements portssvc.ProjectSvcFacade
func (s *projectService) CreatePlot(ctx context.Context, projectID string, req dto.CreatePlotRequest, creatorUserID string) (*domain.Plot, error) {
	if req.AreaSqYd.LessThanOrEqual(decimal.Zero) || req.RatePerYd.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: plot area and rate must be positive", apperrors.ErrValidation)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsActive {
		return nil, fmt.Errorf("%w: project %s is inactive", apperrors.ErrValidation, projectID)
	}

	now := time.Now().UTC()
	plot := domain.Plot{
		PlotID:     uuid.NewString(),
		ProjectID:  projectID,
		PlotNumber: req.PlotNumber,
		AreaSqYd:   req.AreaSqYd,
		RatePerYd:  req.RatePerYd,
		Status:     domain.PlotAvailable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SavePlot(ctx, plot); err != nil {
		s.LogError(ctx, err, "Failed to save plot", slog.String("project_id", projectID), slog.String("plot_number", req.PlotNumber))
		return nil, fmt.Errorf("failed to save plot: %w", err)
	}

	s.LogInfo(ctx, "Plot created successfully", slog.String("plot_id", plot.PlotID), slog.String("project_id", projectID))
	return &plot, nil
}

// GetPlotByID retrieves a specific plot.
// Implements portssvc.ProjectSvcFacade
func (s *projectService) GetPlotByID(ctx context.Context, plotID string) (*domain.Plot, error) {
	plot, err := s.projectRepo.FindPlotByID(ctx, plotID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find plot by ID", slog.String("plot_id", plotID))
		}
		return nil, err
	}
	return plot, nil
}

// ListPlotsByProject retrieves all plots in a project.
// Implements portssvc.ProjectSvcFacade
func (s *projectService) ListPlotsByProject(ctx context.Context, projectID string) ([]domain.Plot, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	plots, err := s.projectRepo.ListPlotsByProject(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plots", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to list plots for project %s: %w", projectID, err)
	}
	return plots, nil
}
