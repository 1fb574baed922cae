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

const bookingColumns = `booking_id, customer_id, plot_id, executive_id, booking_date, total_amount, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxBookingRepository struct {
	BaseRepository
}

// newPgxBookingRepository creates a new repository for booking data.
func newPgxBookingRepository(pool *pgxpool.Pool) portsrepo.BookingRepositoryFacade {
	return &PgxBookingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBookingRepository implements portsrepo.BookingRepositoryFacade
var _ portsrepo.BookingRepositoryFacade = (*PgxBookingRepository)(nil)

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var m models.Booking
	err := row.Scan(
		&m.BookingID,
		&m.CustomerID,
		&m.PlotID,
		&m.ExecutiveID,
		&m.BookingDate,
		&m.TotalAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	domainBooking := mapping.ToDomainBooking(m)
	return &domainBooking, nil
}

// SaveBooking inserts a new booking.
func (r *PgxBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	m := mapping.ToModelBooking(booking)

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BookingID,
		m.CustomerID,
		m.PlotID,
		m.ExecutiveID,
		m.BookingDate,
		m.TotalAmount,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: booking %s already exists", apperrors.ErrDuplicate, m.BookingID)
		}
		return fmt.Errorf("failed to save booking %s: %w", m.BookingID, err)
	}
	return nil
}

// FindBookingByID retrieves a booking by ID.
func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1;`

	booking, err := scanBooking(r.Pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking by ID %s: %w", bookingID, err)
	}
	return booking, nil
}

// ListBookingsByCustomer retrieves all bookings of a customer, newest first.
func (r *PgxBookingRepository) ListBookingsByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY booking_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for customer %s: %w", customerID, err)
	}
	return collectBookings(rows)
}

// ListBookings retrieves a paginated list of bookings, newest first.
func (r *PgxBookingRepository) ListBookings(ctx context.Context, limit int, offset int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY booking_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()
	bookings := []domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus moves a booking through its lifecycle.
func (r *PgxBookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, userID string, now time.Time) error {
	query := `
		UPDATE bookings
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE booking_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, bookingID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of booking %s: %w", bookingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
