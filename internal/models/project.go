package models

import "github.com/shopspring/decimal"

// Project is the persistence shape of a project row.
type Project struct {
	ProjectID string `json:"projectID" db:"project_id"`
	Name      string `json:"name" db:"name"`
	Location  string `json:"location" db:"location"`
	IsActive  bool   `json:"isActive" db:"is_active"`
	AuditFields
}

// Plot is the persistence shape of a plot row.
type Plot struct {
	PlotID     string          `json:"plotID" db:"plot_id"`
	ProjectID  string          `json:"projectID" db:"project_id"`
	PlotNumber string          `json:"plotNumber" db:"plot_number"`
	AreaSqYd   decimal.Decimal `json:"areaSqYd" db:"area_sq_yd"`
	RatePerYd  decimal.Decimal `json:"ratePerYd" db:"rate_per_yd"`
	Status     string          `json:"status" db:"status"`
	AuditFields
}
