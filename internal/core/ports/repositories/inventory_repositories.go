package repositories

import (
	"context"
	"time"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// ProjectRepositoryFacade defines persistence operations for projects and plots.
type ProjectRepositoryFacade interface {
	SaveProject(ctx context.Context, project domain.Project) error
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, limit int, offset int) ([]domain.Project, error)

	SavePlot(ctx context.Context, plot domain.Plot) error
	FindPlotByID(ctx context.Context, plotID string) (*domain.Plot, error)
	ListPlotsByProject(ctx context.Context, projectID string) ([]domain.Plot, error)

	// UpdatePlotStatus moves a plot through the sale lifecycle. Reports
	// apperrors.ErrConflict when the plot is not in the expected status.
	UpdatePlotStatus(ctx context.Context, plotID string, expected, next domain.PlotStatus, userID string, now time.Time) error
}

// BookingRepositoryFacade defines persistence operations for bookings.
type BookingRepositoryFacade interface {
	SaveBooking(ctx context.Context, booking domain.Booking) error
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListBookingsByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)
	ListBookings(ctx context.Context, limit int, offset int) ([]domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, userID string, now time.Time) error
}
