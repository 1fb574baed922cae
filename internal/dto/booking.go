package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// CreateBookingRequest defines the data needed to book a plot for a customer.
type CreateBookingRequest struct {
	CustomerID  string          `json:"customerId" binding:"required"`
	PlotID      string          `json:"plotId" binding:"required"`
	ExecutiveID string          `json:"executiveId"` // optional; empty for walk-ins
	BookingDate time.Time       `json:"bookingDate" binding:"required"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
}

// BookingResponse defines the data returned for a booking.
type BookingResponse struct {
	BookingID   string               `json:"bookingID"`
	CustomerID  string               `json:"customerId"`
	PlotID      string               `json:"plotId"`
	ExecutiveID string               `json:"executiveId,omitempty"`
	BookingDate time.Time            `json:"bookingDate"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Status      domain.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
	CreatedBy   string               `json:"createdBy"`
}

// ListBookingsParams defines query parameters for listing bookings.
type ListBookingsParams struct {
	CustomerID *string `form:"customerId"`
	Limit      int     `form:"limit,default=20"`
	Offset     int     `form:"offset,default=0"`
}

// ListBookingsResponse wraps the list of bookings.
type ListBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ToBookingResponse converts a domain.Booking to BookingResponse DTO
func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:   b.BookingID,
		CustomerID:  b.CustomerID,
		PlotID:      b.PlotID,
		ExecutiveID: b.ExecutiveID,
		BookingDate: b.BookingDate,
		TotalAmount: b.TotalAmount,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		CreatedBy:   b.CreatedBy,
	}
}

// ToListBookingResponse converts a slice of domain.Booking to ListBookingsResponse DTO
func ToListBookingResponse(bookings []domain.Booking) ListBookingsResponse {
	res := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		res[i] = ToBookingResponse(&b)
	}
	return ListBookingsResponse{Bookings: res}
}
