package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is the persistence shape of a booking row.
type Booking struct {
	BookingID   string          `json:"bookingID" db:"booking_id"`
	CustomerID  string          `json:"customerID" db:"customer_id"`
	PlotID      string          `json:"plotID" db:"plot_id"`
	ExecutiveID string          `json:"executiveID" db:"executive_id"`
	BookingDate time.Time       `json:"bookingDate" db:"booking_date"`
	TotalAmount decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status      string          `json:"status" db:"status"`
	AuditFields
}
