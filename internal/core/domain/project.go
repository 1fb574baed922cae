package domain

import "github.com/shopspring/decimal"

// Project is a real-estate development containing plots.
type Project struct {
	ProjectID string `json:"projectID"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// PlotStatus tracks a plot through the sale lifecycle.
type PlotStatus string

const (
	PlotAvailable PlotStatus = "AVAILABLE"
	PlotBooked    PlotStatus = "BOOKED"
	PlotSold      PlotStatus = "SOLD"
)

// Plot is a single saleable unit within a project.
type Plot struct {
	PlotID     string          `json:"plotID"`
	ProjectID  string          `json:"projectID"`
	PlotNumber string          `json:"plotNumber"`
	AreaSqYd   decimal.Decimal `json:"areaSqYd"`
	RatePerYd  decimal.Decimal `json:"ratePerYd"`
	Status     PlotStatus      `json:"status"`
	AuditFields
}

// BasePrice is the plot's list price: area times rate.
func (p Plot) BasePrice() decimal.Decimal {
	return p.AreaSqYd.Mul(p.RatePerYd)
}
