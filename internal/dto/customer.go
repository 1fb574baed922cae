package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a new customer.
// An opening balance, when given, seeds the customer's account.
type CreateCustomerRequest struct {
	Name           string             `json:"name" binding:"required"`
	Phone          string             `json:"phone" binding:"required"`
	Email          string             `json:"email" binding:"omitempty,email"`
	Address        string             `json:"address"`
	IDProof        string             `json:"idProof"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	OpeningType    domain.BalanceType `json:"openingType" binding:"omitempty,oneof=DR CR"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	IDProof *string `json:"idProof"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID    string    `json:"customerID"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	IDProof       string    `json:"idProof,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		IDProof:       c.IDProof,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to ListCustomersResponse DTO
func ToListCustomerResponse(customers []domain.Customer) ListCustomersResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return ListCustomersResponse{Customers: res}
}
