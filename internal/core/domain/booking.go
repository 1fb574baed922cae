package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus tracks a booking from creation to completion or cancellation.
type BookingStatus string

const (
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking ties a customer to a plot at an agreed price. Creating a booking
// marks the plot BOOKED and posts the total consideration as a receivable
// (debit) on the customer's account; cancelling deletes that posting and
// frees the plot.
type Booking struct {
	BookingID   string          `json:"bookingID"`
	CustomerID  string          `json:"customerID"`
	PlotID      string          `json:"plotID"`
	ExecutiveID string          `json:"executiveID"` // sourcing executive; empty for walk-ins
	BookingDate time.Time       `json:"bookingDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"` // agreed consideration, may differ from plot base price
	Status      BookingStatus   `json:"status"`
	AuditFields
}
