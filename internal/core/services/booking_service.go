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

var (
	ErrPlotNotAvailable   = errors.New("plot is not available for booking")
	ErrBookingHasReceipts = errors.New("booking has receipts and cannot be cancelled")
	ErrBookingNotPaid     = errors.New("booking is not fully paid")
)

// bookingService ties plot inventory to the ledger: booking a plot posts the
// agreed consideration as a receivable on the customer's account, cancelling
// removes it again.
type bookingService struct {
	BaseService
	bookingRepo   portsrepo.BookingRepositoryFacade
	projectRepo   portsrepo.ProjectRepositoryFacade
	customerRepo  portsrepo.CustomerRepositoryFacade
	executiveRepo portsrepo.ExecutiveRepositoryFacade
	postingRepo   portsrepo.PostingRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
}

// NewBookingService creates a new BookingService.
func NewBookingService(bookingRepo portsrepo.BookingRepositoryFacade, projectRepo portsrepo.ProjectRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, executiveRepo portsrepo.ExecutiveRepositoryFacade, postingRepo portsrepo.PostingRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.BookingSvcFacade {
	return &bookingService{
		bookingRepo:   bookingRepo,
		projectRepo:   projectRepo,
		customerRepo:  customerRepo,
		executiveRepo: executiveRepo,
		postingRepo:   postingRepo,
		accountSvc:    accountSvc,
	}
}

var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// CreateBooking books a plot for a customer.
// Implements portssvc.BookingSvcFacade
func (s *bookingService) CreateBooking(ctx context.Context, req dto.CreateBookingRequest, creatorUserID string) (*domain.Booking, error) {
	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: booking amount must be positive", apperrors.ErrValidation)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer %s: %w", req.CustomerID, err)
	}
	if !customer.IsActive {
		return nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, req.CustomerID)
	}

	plot, err := s.projectRepo.FindPlotByID(ctx, req.PlotID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plot %s: %w", req.PlotID, err)
	}
	if plot.Status != domain.PlotAvailable {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPlotNotAvailable)
	}

	if req.ExecutiveID != "" {
		executive, err := s.executiveRepo.FindExecutiveByID(ctx, req.ExecutiveID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve executive %s: %w", req.ExecutiveID, err)
		}
		if !executive.IsActive {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrExecutiveInactive)
		}
	}

	account, err := s.accountSvc.GetAccountByParty(ctx, domain.PartyRef{Type: domain.PartyCustomer, ID: req.CustomerID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer account: %w", err)
	}

	now := time.Now().UTC()
	booking := domain.Booking{
		BookingID:   uuid.NewString(),
		CustomerID:  req.CustomerID,
		PlotID:      req.PlotID,
		ExecutiveID: req.ExecutiveID,
		BookingDate: req.BookingDate,
		TotalAmount: req.TotalAmount,
		Status:      domain.BookingActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bookingRepo.SaveBooking(ctx, booking); err != nil {
		s.LogError(ctx, err, "Failed to save booking", slog.String("plot_id", req.PlotID))
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	if err := s.projectRepo.UpdatePlotStatus(ctx, req.PlotID, domain.PlotAvailable, domain.PlotBooked, creatorUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark plot booked", slog.String("plot_id", req.PlotID), slog.String("booking_id", booking.BookingID))
		s.cancelSavedBooking(ctx, booking.BookingID, creatorUserID)
		return nil, fmt.Errorf("failed to mark plot %s booked: %w", req.PlotID, err)
	}

	// The agreed consideration becomes a receivable debit on the customer's
	// account, dated on the booking date.
	receivable := domain.Posting{
		PostingID:       uuid.NewString(),
		PartyType:       domain.PartyCustomer,
		PartyID:         req.CustomerID,
		AccountID:       account.AccountID,
		TransactionDate: req.BookingDate,
		EntryType:       domain.Payment,
		Debit:           req.TotalAmount,
		Credit:          decimal.Zero,
		Description:     fmt.Sprintf("Booking of plot %s", plot.PlotNumber),
		ReferenceType:   domain.RefBooking,
		ReferenceID:     booking.BookingID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	err = withConflictRetry(ctx, func() error {
		_, createErr := s.postingRepo.CreatePosting(ctx, receivable)
		return createErr
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post booking receivable", slog.String("booking_id", booking.BookingID))
		s.releasePlot(ctx, req.PlotID, booking.BookingID, creatorUserID)
		s.cancelSavedBooking(ctx, booking.BookingID, creatorUserID)
		return nil, fmt.Errorf("failed to post booking receivable: %w", err)
	}

	s.LogInfo(ctx, "Booking created successfully", slog.String("booking_id", booking.BookingID), slog.String("plot_id", req.PlotID), slog.String("customer_id", req.CustomerID))
	return &booking, nil
}

// cancelSavedBooking marks an already saved booking cancelled after a later
// step of booking creation failed. Best effort: a failure here leaves the
// booking active and is only logged, the caller still reports the original
// error.
func (s *bookingService) cancelSavedBooking(ctx context.Context, bookingID string, userID string) {
	if err := s.bookingRepo.UpdateBookingStatus(ctx, bookingID, domain.BookingCancelled, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to cancel booking after creation failure", slog.String("booking_id", bookingID))
	}
}

// releasePlot puts a plot back to AVAILABLE after a later step of booking
// creation failed. Best effort, logged on failure.
func (s *bookingService) releasePlot(ctx context.Context, plotID string, bookingID string, userID string) {
	if err := s.projectRepo.UpdatePlotStatus(ctx, plotID, domain.PlotBooked, domain.PlotAvailable, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to release plot after creation failure", slog.String("plot_id", plotID), slog.String("booking_id", bookingID))
	}
}

// GetBookingByID retrieves a specific booking.
// Implements portssvc.BookingSvcFacade
func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find booking by ID", slog.String("booking_id", bookingID))
		}
		return nil, err
	}
	return booking, nil
}

// ListBookings retrieves a paginated list of bookings.
// Implements portssvc.BookingSvcFacade
func (s *bookingService) ListBookings(ctx context.Context, limit int, offset int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	bookings, err := s.bookingRepo.ListBookings(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bookings")
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListBookingsByCustomer retrieves all bookings for a customer.
// Implements portssvc.BookingSvcFacade
func (s *bookingService) ListBookingsByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListBookingsByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bookings by customer", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to list bookings for customer %s: %w", customerID, err)
	}
	return bookings, nil
}

// bookingPostings splits the ledger entries linked to a booking into the
// receivable debits and the collected receipts.
func (s *bookingService) bookingPostings(ctx context.Context, bookingID string) (receivables, receipts []domain.Posting, err error) {
	linked, err := s.postingRepo.FindPostingsByReference(ctx, domain.RefBooking, bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find postings for booking %s: %w", bookingID, err)
	}
	for _, p := range linked {
		if p.Debit.IsPositive() {
			receivables = append(receivables, p)
		} else {
			receipts = append(receipts, p)
		}
	}
	return receivables, receipts, nil
}

// CancelBooking cancels an active booking, removes its receivable posting
// and frees the plot. A booking that already collected receipts cannot be
// cancelled until those receipts are deleted.
// Implements portssvc.BookingSvcFacade
func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, requestingUserID string) error {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != domain.BookingActive {
		return fmt.Errorf("%w: booking %s is %s", apperrors.ErrConflict, bookingID, booking.Status)
	}

	receivables, receipts, err := s.bookingPostings(ctx, bookingID)
	if err != nil {
		return err
	}
	if len(receipts) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrBookingHasReceipts)
	}

	receivableIDs := make([]string, 0, len(receivables))
	for _, p := range receivables {
		receivableIDs = append(receivableIDs, p.PostingID)
	}
	err = withConflictRetry(ctx, func() error {
		return s.postingRepo.DeletePostings(ctx, receivableIDs)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete booking receivables", slog.String("booking_id", bookingID))
		return fmt.Errorf("failed to delete booking receivables: %w", err)
	}

	now := time.Now().UTC()
	if err := s.projectRepo.UpdatePlotStatus(ctx, booking.PlotID, domain.PlotBooked, domain.PlotAvailable, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to free plot after cancellation", slog.String("plot_id", booking.PlotID), slog.String("booking_id", bookingID))
		return fmt.Errorf("failed to free plot %s: %w", booking.PlotID, err)
	}
	if err := s.bookingRepo.UpdateBookingStatus(ctx, bookingID, domain.BookingCancelled, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark booking cancelled", slog.String("booking_id", bookingID))
		return fmt.Errorf("failed to mark booking cancelled: %w", err)
	}

	s.LogInfo(ctx, "Booking cancelled", slog.String("booking_id", bookingID), slog.String("plot_id", booking.PlotID))
	return nil
}

// CompleteBooking marks a fully paid booking complete and the plot SOLD.
// Implements portssvc.BookingSvcFacade
func (s *bookingService) CompleteBooking(ctx context.Context, bookingID string, requestingUserID string) error {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != domain.BookingActive {
		return fmt.Errorf("%w: booking %s is %s", apperrors.ErrConflict, bookingID, booking.Status)
	}

	_, receipts, err := s.bookingPostings(ctx, bookingID)
	if err != nil {
		return err
	}
	collected := decimal.Zero
	for _, p := range receipts {
		collected = collected.Add(p.Credit)
	}
	if collected.LessThan(booking.TotalAmount) {
		return fmt.Errorf("%w: collected %s of %s", apperrors.ErrConflict, collected, booking.TotalAmount)
	}

	now := time.Now().UTC()
	if err := s.projectRepo.UpdatePlotStatus(ctx, booking.PlotID, domain.PlotBooked, domain.PlotSold, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark plot sold", slog.String("plot_id", booking.PlotID), slog.String("booking_id", bookingID))
		return fmt.Errorf("failed to mark plot %s sold: %w", booking.PlotID, err)
	}
	if err := s.bookingRepo.UpdateBookingStatus(ctx, bookingID, domain.BookingCompleted, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark booking completed", slog.String("booking_id", bookingID))
		return fmt.Errorf("failed to mark booking completed: %w", err)
	}

	s.LogInfo(ctx, "Booking completed", slog.String("booking_id", bookingID), slog.String("plot_id", booking.PlotID))
	return nil
}
