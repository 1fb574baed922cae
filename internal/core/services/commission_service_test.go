package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/core/services"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
)

// --- Test Suite Setup ---
type CommissionServiceTestSuite struct {
	suite.Suite
	mockPostingRepo   *MockPostingRepository
	mockExecutiveRepo *MockExecutiveRepository
	mockAccountSvc    *MockAccountService
	service           portssvc.CommissionSvcFacade
	executive         domain.Executive
	executiveAccount  domain.Account
	receipt           domain.Posting
	userID            string
}

func (suite *CommissionServiceTestSuite) SetupTest() {
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.mockExecutiveRepo = new(MockExecutiveRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewCommissionService(suite.mockPostingRepo, suite.mockExecutiveRepo, suite.mockAccountSvc)

	suite.userID = uuid.NewString()
	suite.executive = domain.Executive{
		ExecutiveID:    uuid.NewString(),
		Name:           "Vikram Singh",
		CommissionRate: decimal.NewFromFloat(2.5),
		IsActive:       true,
	}
	suite.executiveAccount = domain.Account{
		AccountID: uuid.NewString(),
		PartyType: domain.PartyExecutive,
		PartyID:   suite.executive.ExecutiveID,
		IsActive:  true,
	}
	suite.receipt = domain.Posting{
		PostingID:       uuid.NewString(),
		TransactionDate: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		EntryType:       domain.Receipt,
		Credit:          decimal.NewFromInt(100000),
		ReceiptNumber:   "RCP-0042",
		ReferenceType:   domain.RefBooking,
	}
}

// --- BuildAccrual ---

func (suite *CommissionServiceTestSuite) TestBuildAccrual_Success() {
	ctx := context.Background()

	suite.mockExecutiveRepo.On("FindExecutiveByID", ctx, suite.executive.ExecutiveID).Return(&suite.executive, nil).Once()
	suite.mockAccountSvc.On("EnsureAccountForParty", ctx, domain.PartyRef{Type: domain.PartyExecutive, ID: suite.executive.ExecutiveID}, suite.executive.Name, suite.userID).Return(&suite.executiveAccount, nil).Once()

	accrual, err := suite.service.BuildAccrual(ctx, suite.receipt, suite.executive.ExecutiveID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(accrual)
	// 2.5% of 100000, dated on the receipt and linked back to it.
	suite.True(accrual.Credit.Equal(decimal.NewFromInt(2500)))
	suite.True(accrual.Debit.IsZero())
	suite.Equal(suite.executiveAccount.AccountID, accrual.AccountID)
	suite.Equal(domain.RefCommission, accrual.ReferenceType)
	suite.Equal(suite.receipt.PostingID, accrual.ReferenceID)
	suite.True(accrual.TransactionDate.Equal(suite.receipt.TransactionDate))
	suite.mockAccountSvc.AssertExpectations(suite.T())
	// Building never persists; the caller saves the accrual with the receipt.
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "CreatePosting", mock.Anything, mock.Anything)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "CreatePostings", mock.Anything, mock.Anything)
}

func (suite *CommissionServiceTestSuite) TestBuildAccrual_ZeroRateSkips() {
	ctx := context.Background()
	zeroRate := suite.executive
	zeroRate.CommissionRate = decimal.Zero

	suite.mockExecutiveRepo.On("FindExecutiveByID", ctx, zeroRate.ExecutiveID).Return(&zeroRate, nil).Once()

	accrual, err := suite.service.BuildAccrual(ctx, suite.receipt, zeroRate.ExecutiveID, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(accrual)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "EnsureAccountForParty", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommissionServiceTestSuite) TestBuildAccrual_InactiveExecutive() {
	ctx := context.Background()
	inactive := suite.executive
	inactive.IsActive = false

	suite.mockExecutiveRepo.On("FindExecutiveByID", ctx, inactive.ExecutiveID).Return(&inactive, nil).Once()

	_, err := suite.service.BuildAccrual(ctx, suite.receipt, inactive.ExecutiveID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrExecutiveInactive.Error())
}

// --- LinkedAccruals ---

func (suite *CommissionServiceTestSuite) TestLinkedAccruals_ReturnsAccruals() {
	ctx := context.Background()
	sourceID := suite.receipt.PostingID
	accrual := domain.Posting{
		PostingID:     uuid.NewString(),
		ReferenceType: domain.RefCommission,
		ReferenceID:   sourceID,
		Credit:        decimal.NewFromInt(2500),
	}

	suite.mockPostingRepo.On("FindPostingsByReference", ctx, domain.RefCommission, sourceID).Return([]domain.Posting{accrual}, nil).Once()

	linked, err := suite.service.LinkedAccruals(ctx, sourceID)

	suite.Require().NoError(err)
	suite.Require().Len(linked, 1)
	suite.Equal(accrual.PostingID, linked[0].PostingID)
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestLinkedAccruals_NoneIsEmpty() {
	ctx := context.Background()
	sourceID := uuid.NewString()

	suite.mockPostingRepo.On("FindPostingsByReference", ctx, domain.RefCommission, sourceID).Return([]domain.Posting{}, nil).Once()

	linked, err := suite.service.LinkedAccruals(ctx, sourceID)

	suite.Require().NoError(err)
	suite.Empty(linked)
}

func TestCommissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommissionServiceTestSuite))
}
