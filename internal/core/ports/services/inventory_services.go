package services

import (
	"context"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
)

// ProjectSvcFacade defines operations for managing projects and plots.
type ProjectSvcFacade interface {
	// CreateProject persists a new project.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)

	// GetProjectByID retrieves a specific project by ID.
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves a paginated list of projects.
	ListProjects(ctx context.Context, limit int, offset int) ([]domain.Project, error)

	// CreatePlot persists a new plot under a project.
	CreatePlot(ctx context.Context, projectID string, req dto.CreatePlotRequest, creatorUserID string) (*domain.Plot, error)

	// GetPlotByID retrieves a specific plot by ID.
	GetPlotByID(ctx context.Context, plotID string) (*domain.Plot, error)

	// ListPlotsByProject retrieves all plots in a project.
	ListPlotsByProject(ctx context.Context, projectID string) ([]domain.Plot, error)
}

// BookingSvcFacade defines operations for managing bookings.
type BookingSvcFacade interface {
	// CreateBooking books a plot for a customer, marks the plot BOOKED and
	// posts the consideration as a receivable on the customer's account.
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest, creatorUserID string) (*domain.Booking, error)

	// GetBookingByID retrieves a specific booking by ID.
	GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)

	// ListBookings retrieves a paginated list of bookings.
	ListBookings(ctx context.Context, limit int, offset int) ([]domain.Booking, error)

	// ListBookingsByCustomer retrieves all bookings for a customer.
	ListBookingsByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)

	// CancelBooking cancels a booking, removes its receivable posting and
	// frees the plot.
	CancelBooking(ctx context.Context, bookingID string, requestingUserID string) error

	// CompleteBooking marks a fully paid booking complete and the plot SOLD.
	CompleteBooking(ctx context.Context, bookingID string, requestingUserID string) error
}
