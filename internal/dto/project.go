package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a new project.
type CreateProjectRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID     string    `json:"projectID"`
	Name          string    `json:"name"`
	Location      string    `json:"location,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListProjectsResponse wraps the list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// CreatePlotRequest defines the data needed to create a plot under a project.
type CreatePlotRequest struct {
	PlotNumber string          `json:"plotNumber" binding:"required"`
	AreaSqYd   decimal.Decimal `json:"areaSqYd" binding:"required"`
	RatePerYd  decimal.Decimal `json:"ratePerYd" binding:"required"`
}

// PlotResponse defines the data returned for a plot.
type PlotResponse struct {
	PlotID     string            `json:"plotID"`
	ProjectID  string            `json:"projectID"`
	PlotNumber string            `json:"plotNumber"`
	AreaSqYd   decimal.Decimal   `json:"areaSqYd"`
	RatePerYd  decimal.Decimal   `json:"ratePerYd"`
	BasePrice  decimal.Decimal   `json:"basePrice"`
	Status     domain.PlotStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	CreatedBy  string            `json:"createdBy"`
}

// ListPlotsResponse wraps the list of plots in a project.
type ListPlotsResponse struct {
	Plots []PlotResponse `json:"plots"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:     p.ProjectID,
		Name:          p.Name,
		Location:      p.Location,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToListProjectResponse converts a slice of domain.Project to ListProjectsResponse DTO
func ToListProjectResponse(projects []domain.Project) ListProjectsResponse {
	res := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		res[i] = ToProjectResponse(&p)
	}
	return ListProjectsResponse{Projects: res}
}

// ToPlotResponse converts a domain.Plot to PlotResponse DTO
func ToPlotResponse(p *domain.Plot) PlotResponse {
	return PlotResponse{
		PlotID:     p.PlotID,
		ProjectID:  p.ProjectID,
		PlotNumber: p.PlotNumber,
		AreaSqYd:   p.AreaSqYd,
		RatePerYd:  p.RatePerYd,
		BasePrice:  p.BasePrice(),
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		CreatedBy:  p.CreatedBy,
	}
}

// ToListPlotResponse converts a slice of domain.Plot to ListPlotsResponse DTO
func ToListPlotResponse(plots []domain.Plot) ListPlotsResponse {
	res := make([]PlotResponse, len(plots))
	for i, p := range plots {
		res[i] = ToPlotResponse(&p)
	}
	return ListPlotsResponse{Plots: res}
}
