package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
)

var ErrRateOutOfRange = errors.New("commission rate must be between 0 and 100")

// executiveService manages sales executives and their commission accounts.
type executiveService struct {
	BaseService
	executiveRepo portsrepo.ExecutiveRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
}

// NewExecutiveService creates a new ExecutiveService.
func NewExecutiveService(executiveRepo portsrepo.ExecutiveRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.ExecutiveSvcFacade {
	return &executiveService{
		executiveRepo: executiveRepo,
		accountSvc:    accountSvc,
	}
}

var _ portssvc.ExecutiveSvcFacade = (*executiveService)(nil)

func validateCommissionRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrRateOutOfRange)
	}
	return nil
}

// CreateExecutive persists a new executive and opens their commission account.
// Implements portssvc.ExecutiveSvcFacade
func (s *executiveService) CreateExecutive(ctx context.Context, req dto.CreateExecutiveRequest, creatorUserID string) (*domain.Executive, error) {
	if err := validateCommissionRate(req.CommissionRate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	executive := domain.Executive{
		ExecutiveID:    uuid.NewString(),
		Name:           req.Name,
		Phone:          req.Phone,
		CommissionRate: req.CommissionRate,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.executiveRepo.SaveExecutive(ctx, executive); err != nil {
		s.LogError(ctx, err, "Failed to save executive", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save executive: %w", err)
	}

	if _, err := s.accountSvc.EnsureAccountForParty(ctx, domain.PartyRef{Type: domain.PartyExecutive, ID: executive.ExecutiveID}, executive.Name, creatorUserID); err != nil {
		s.LogError(ctx, err, "Failed to open account for executive", slog.String("executive_id", executive.ExecutiveID))
		return nil, fmt.Errorf("failed to open account for executive %s: %w", executive.ExecutiveID, err)
	}

	s.LogInfo(ctx, "Executive created successfully", slog.String("executive_id", executive.ExecutiveID))
	return &executive, nil
}

// GetExecutiveByID retrieves a specific executive.
// Implements portssvc.ExecutiveSvcFacade
func (s *executiveService) GetExecutiveByID(ctx context.Context, executiveID string) (*domain.Executive, error) {
	executive, err := s.executiveRepo.FindExecutiveByID(ctx, executiveID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find executive by ID", slog.String("executive_id", executiveID))
		}
		return nil, err
	}
	return executive, nil
}

// ListExecutives retrieves a paginated list of executives.
// Implements portssvc.ExecutiveSvcFacade
func (s *executiveService) ListExecutives(ctx context.Context, limit int, offset int) ([]domain.Executive, error) {
	if limit <= 0 {
		limit = 20
	}
	executives, err := s.executiveRepo.ListExecutives(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list executives")
		return nil, fmt.Errorf("failed to list executives: %w", err)
	}
	return executives, nil
}

// UpdateExecutive updates an existing executive. A rate change applies to
// future accruals only; existing commission postings are untouched.
// Implements portssvc.ExecutiveSvcFacade
func (s *executiveService) UpdateExecutive(ctx context.Context, executiveID string, req dto.UpdateExecutiveRequest, requestingUserID string) (*domain.Executive, error) {
	executive, err := s.executiveRepo.FindExecutiveByID(ctx, executiveID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		executive.Name = *req.Name
		updated = true
	}
	if req.Phone != nil {
		executive.Phone = *req.Phone
		updated = true
	}
	if req.CommissionRate != nil {
		if err := validateCommissionRate(*req.CommissionRate); err != nil {
			return nil, err
		}
		executive.CommissionRate = *req.CommissionRate
		updated = true
	}
	if !updated {
		return executive, nil
	}

	executive.LastUpdatedAt = time.Now().UTC()
	executive.LastUpdatedBy = requestingUserID

	if err := s.executiveRepo.UpdateExecutive(ctx, *executive); err != nil {
		s.LogError(ctx, err, "Failed to update executive", slog.String("executive_id", executiveID))
		return nil, fmt.Errorf("failed to update executive: %w", err)
	}

	s.LogInfo(ctx, "Executive updated successfully", slog.String("executive_id", executiveID))
	return executive, nil
}

// DeactivateExecutive marks an executive as inactive. Accrued commission
// stays on their account.
// Implements portssvc.ExecutiveSvcFacade
func (s *executiveService) DeactivateExecutive(ctx context.Context, executiveID string, requestingUserID string) error {
	executive, err := s.executiveRepo.FindExecutiveByID(ctx, executiveID)
	if err != nil {
		return err
	}
	if !executive.IsActive {
		return nil
	}

	executive.IsActive = false
	executive.LastUpdatedAt = time.Now().UTC()
	executive.LastUpdatedBy = requestingUserID

	if err := s.executiveRepo.UpdateExecutive(ctx, *executive); err != nil {
		s.LogError(ctx, err, "Failed to deactivate executive", slog.String("executive_id", executiveID))
		return fmt.Errorf("failed to deactivate executive: %w", err)
	}

	s.LogInfo(ctx, "Executive deactivated", slog.String("executive_id", executiveID))
	return nil
}
