package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// CreateExecutiveRequest defines the data needed to create a sales executive.
type CreateExecutiveRequest struct {
	Name           string          `json:"name" binding:"required"`
	Phone          string          `json:"phone"`
	CommissionRate decimal.Decimal `json:"commissionRate" binding:"required"` // percent
}

// UpdateExecutiveRequest defines the data allowed for updating an executive.
// A rate change applies to future accruals only.
type UpdateExecutiveRequest struct {
	Name           *string          `json:"name"`
	Phone          *string          `json:"phone"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
}

// ExecutiveResponse defines the data returned for an executive.
type ExecutiveResponse struct {
	ExecutiveID    string          `json:"executiveID"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ListExecutivesParams defines query parameters for listing executives.
type ListExecutivesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListExecutivesResponse wraps the list of executives.
type ListExecutivesResponse struct {
	Executives []ExecutiveResponse `json:"executives"`
}

// ToExecutiveResponse converts a domain.Executive to ExecutiveResponse DTO
func ToExecutiveResponse(e *domain.Executive) ExecutiveResponse {
	return ExecutiveResponse{
		ExecutiveID:    e.ExecutiveID,
		Name:           e.Name,
		Phone:          e.Phone,
		CommissionRate: e.CommissionRate,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
		LastUpdatedAt:  e.LastUpdatedAt,
		LastUpdatedBy:  e.LastUpdatedBy,
	}
}

// ToListExecutiveResponse converts a slice of domain.Executive to ListExecutivesResponse DTO
func ToListExecutiveResponse(executives []domain.Executive) ListExecutivesResponse {
	res := make([]ExecutiveResponse, len(executives))
	for i, e := range executives {
		res[i] = ToExecutiveResponse(&e)
	}
	return ListExecutivesResponse{Executives: res}
}
