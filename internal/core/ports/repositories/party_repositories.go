package repositories

import (
	"context"
	"time"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
)

// CustomerRepositoryFacade defines persistence operations for customers.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error
}

// ExecutiveRepositoryFacade defines persistence operations for sales executives.
type ExecutiveRepositoryFacade interface {
	SaveExecutive(ctx context.Context, executive domain.Executive) error
	FindExecutiveByID(ctx context.Context, executiveID string) (*domain.Executive, error)
	ListExecutives(ctx context.Context, limit int, offset int) ([]domain.Executive, error)
	UpdateExecutive(ctx context.Context, executive domain.Executive) error
}
