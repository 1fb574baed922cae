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
	"github.com/plotbooks/plotbooks_backend/internal/utils"
)

const (
	providerLocal  = "local"
	providerGoogle = "google"
)

// userService manages staff users and password authentication.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser creates a new staff user with a hashed password.
// Implements portssvc.UserSvcFacade
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if existing, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, req.Email)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		AuthProvider: providerLocal,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "User created successfully", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
// Implements portssvc.UserSvcFacade
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address.
// Implements portssvc.UserSvcFacade
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by email")
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
// Implements portssvc.UserSvcFacade
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser updates an existing user.
// Implements portssvc.UserSvcFacade
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name == nil {
		return user, nil
	}
	user.Name = *req.Name
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.LogInfo(ctx, "User updated successfully", slog.String("user_id", userID))
	return user, nil
}

// UpdateRefreshToken stores the hash and expiry of a user's active refresh token.
// Implements portssvc.UserSvcFacade
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		s.LogError(ctx, err, "Failed to update refresh token", slog.String("user_id", userID))
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return nil
}

// ClearRefreshToken clears the refresh token for a user.
// Implements portssvc.UserSvcFacade
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// DeleteUser marks a user as deleted (soft delete).
// Implements portssvc.UserSvcFacade
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now().UTC(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to mark user deleted", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser authenticates a user with email and password.
// Implements portssvc.UserSvcFacade
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}
	if !user.IsActive || user.PasswordHash == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// GetOrCreateGoogleUser resolves the local user for a Google profile,
// creating one on first login. An existing local user with the same email is
// linked to the Google subject instead of duplicated.
// Implements portssvc.UserSvcFacade
func (s *userService) GetOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProvider(ctx, providerGoogle, info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	now := time.Now().UTC()

	user, err = s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		user.AuthProvider = providerGoogle
		user.ProviderUserID = info.ID
		user.LastUpdatedAt = now
		user.LastUpdatedBy = user.UserID
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			s.LogError(ctx, err, "Failed to link google identity", slog.String("user_id", user.UserID))
			return nil, fmt.Errorf("failed to link google identity: %w", err)
		}
		s.LogInfo(ctx, "Linked google identity to existing user", slog.String("user_id", user.UserID))
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	newUser := domain.User{
		UserID:         uuid.NewString(),
		Name:           info.Name,
		Email:          info.Email,
		AuthProvider:   providerGoogle,
		ProviderUserID: info.ID,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to create google user")
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	s.LogInfo(ctx, "User created from google login", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}
