package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
)

// customerService manages customers and their accounts. Creating a customer
// always opens the account that anchors their posting sequence.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	accountSvc   portssvc.AccountSvcFacade
	accountRepo  portsrepo.AccountRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, accountSvc portssvc.AccountSvcFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		accountSvc:   accountSvc,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer persists a new customer and opens their account.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		IDProof:    req.IDProof,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	openingType := req.OpeningType
	if openingType == "" {
		openingType = domain.BalanceCr
	}
	opening := signedOpening(req.OpeningBalance, openingType)

	account := domain.Account{
		AccountID:      uuid.NewString(),
		PartyType:      domain.PartyCustomer,
		PartyID:        customer.CustomerID,
		Name:           customer.Name,
		OpeningBalance: opening,
		OpeningType:    openingType,
		Balance:        opening,
		Version:        1,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to open account for customer", slog.String("customer_id", customer.CustomerID))
		return nil, fmt.Errorf("failed to open account for customer %s: %w", customer.CustomerID, err)
	}

	s.LogInfo(ctx, "Customer created successfully", slog.String("customer_id", customer.CustomerID), slog.String("account_id", account.AccountID))
	return &customer, nil
}

// GetCustomerByID retrieves a specific customer.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer by ID", slog.String("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}

// ListCustomers retrieves a paginated list of customers.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	customers, err := s.customerRepo.ListCustomers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer updates an existing customer's details.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		customer.Name = *req.Name
		updated = true
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
		updated = true
	}
	if req.Email != nil {
		customer.Email = *req.Email
		updated = true
	}
	if req.Address != nil {
		customer.Address = *req.Address
		updated = true
	}
	if req.IDProof != nil {
		customer.IDProof = *req.IDProof
		updated = true
	}
	if !updated {
		return customer, nil
	}

	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.LogInfo(ctx, "Customer updated successfully", slog.String("customer_id", customerID))
	return customer, nil
}

// DeactivateCustomer marks a customer as inactive.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) DeactivateCustomer(ctx context.Context, customerID string, requestingUserID string) error {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return err
	}

	if err := s.customerRepo.DeactivateCustomer(ctx, customerID, requestingUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate customer", slog.String("customer_id", customerID))
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}

	s.LogInfo(ctx, "Customer deactivated", slog.String("customer_id", customerID))
	return nil
}
