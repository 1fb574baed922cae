package services

import (
	"context"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
)

// CustomerSvcFacade defines operations for managing customers.
type CustomerSvcFacade interface {
	// CreateCustomer persists a new customer and opens their account.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	// GetCustomerByID retrieves a specific customer by ID.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error)

	// DeactivateCustomer marks a customer as inactive.
	DeactivateCustomer(ctx context.Context, customerID string, requestingUserID string) error
}

// ExecutiveSvcFacade defines operations for managing sales executives.
type ExecutiveSvcFacade interface {
	// CreateExecutive persists a new executive and opens their commission account.
	CreateExecutive(ctx context.Context, req dto.CreateExecutiveRequest, creatorUserID string) (*domain.Executive, error)

	// GetExecutiveByID retrieves a specific executive by ID.
	GetExecutiveByID(ctx context.Context, executiveID string) (*domain.Executive, error)

	// ListExecutives retrieves a paginated list of executives.
	ListExecutives(ctx context.Context, limit int, offset int) ([]domain.Executive, error)

	// UpdateExecutive updates an existing executive's details, including the
	// commission rate applied to future accruals.
	UpdateExecutive(ctx context.Context, executiveID string, req dto.UpdateExecutiveRequest, requestingUserID string) (*domain.Executive, error)

	// DeactivateExecutive marks an executive as inactive.
	DeactivateExecutive(ctx context.Context, executiveID string, requestingUserID string) error
}
