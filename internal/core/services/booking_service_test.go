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
	"github.com/plotbooks/plotbooks_backend/internal/dto"
)

// --- Test Suite Setup ---
type BookingServiceTestSuite struct {
	suite.Suite
	mockBookingRepo   *MockBookingRepository
	mockProjectRepo   *MockProjectRepository
	mockCustomerRepo  *MockCustomerRepository
	mockExecutiveRepo *MockExecutiveRepository
	mockPostingRepo   *MockPostingRepository
	mockAccountSvc    *MockAccountService
	service           portssvc.BookingSvcFacade
	customer          domain.Customer
	plot              domain.Plot
	account           domain.Account
	userID            string
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockExecutiveRepo = new(MockExecutiveRepository)
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewBookingService(suite.mockBookingRepo, suite.mockProjectRepo, suite.mockCustomerRepo, suite.mockExecutiveRepo, suite.mockPostingRepo, suite.mockAccountSvc)

	suite.userID = uuid.NewString()
	suite.customer = domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Suresh Patel",
		IsActive:   true,
	}
	suite.plot = domain.Plot{
		PlotID:     uuid.NewString(),
		ProjectID:  uuid.NewString(),
		PlotNumber: "A-101",
		AreaSqYd:   decimal.NewFromInt(200),
		RatePerYd:  decimal.NewFromInt(2500),
		Status:     domain.PlotAvailable,
	}
	suite.account = domain.Account{
		AccountID: uuid.NewString(),
		PartyType: domain.PartyCustomer,
		PartyID:   suite.customer.CustomerID,
		IsActive:  true,
	}
}

func (suite *BookingServiceTestSuite) bookingRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		CustomerID:  suite.customer.CustomerID,
		PlotID:      suite.plot.PlotID,
		BookingDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(500000),
	}
}

// --- CreateBooking ---

func (suite *BookingServiceTestSuite) TestCreateBooking_Success() {
	ctx := context.Background()
	req := suite.bookingRequest()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, req.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockProjectRepo.On("FindPlotByID", ctx, req.PlotID).Return(&suite.plot, nil).Once()
	suite.mockAccountSvc.On("GetAccountByParty", ctx, domain.PartyRef{Type: domain.PartyCustomer, ID: req.CustomerID}).Return(&suite.account, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.CustomerID == req.CustomerID && b.PlotID == req.PlotID &&
			b.TotalAmount.Equal(req.TotalAmount) && b.Status == domain.BookingActive
	})).Return(nil).Once()
	suite.mockProjectRepo.On("UpdatePlotStatus", ctx, req.PlotID, domain.PlotAvailable, domain.PlotBooked, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPostingRepo.On("CreatePosting", ctx, mock.MatchedBy(func(p domain.Posting) bool {
		return p.AccountID == suite.account.AccountID &&
			p.Debit.Equal(req.TotalAmount) &&
			p.Credit.IsZero() &&
			p.ReferenceType == domain.RefBooking &&
			p.TransactionDate.Equal(req.BookingDate)
	})).Return(&domain.Posting{PostingID: uuid.NewString()}, nil).Once()

	booking, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
	suite.NotEmpty(booking.BookingID)
	suite.Equal(domain.BookingActive, booking.Status)
	suite.Equal(suite.userID, booking.CreatedBy)
	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockProjectRepo.AssertExpectations(suite.T())
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateBooking_PlotNotAvailable() {
	ctx := context.Background()
	req := suite.bookingRequest()
	bookedPlot := suite.plot
	bookedPlot.Status = domain.PlotBooked

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, req.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockProjectRepo.On("FindPlotByID", ctx, req.PlotID).Return(&bookedPlot, nil).Once()

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrPlotNotAvailable.Error())
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBooking", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_InactiveCustomer() {
	ctx := context.Background()
	req := suite.bookingRequest()
	inactive := suite.customer
	inactive.IsActive = false

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, req.CustomerID).Return(&inactive, nil).Once()

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "FindPlotByID", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_InactiveExecutive() {
	ctx := context.Background()
	req := suite.bookingRequest()
	req.ExecutiveID = uuid.NewString()
	executive := domain.Executive{ExecutiveID: req.ExecutiveID, IsActive: false}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, req.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockProjectRepo.On("FindPlotByID", ctx, req.PlotID).Return(&suite.plot, nil).Once()
	suite.mockExecutiveRepo.On("FindExecutiveByID", ctx, req.ExecutiveID).Return(&executive, nil).Once()

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrExecutiveInactive.Error())
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBooking", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.bookingRequest()
	req.TotalAmount = decimal.Zero

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "FindCustomerByID", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_PlotUpdateFailureCancelsBooking() {
	ctx := context.Background()
	req := suite.bookingRequest()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, req.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockProjectRepo.On("FindPlotByID", ctx, req.PlotID).Return(&suite.plot, nil).Once()
	suite.mockAccountSvc.On("GetAccountByParty", ctx, mock.Anything).Return(&suite.account, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.Booking")).Return(nil).Once()
	// A racing booking grabbed the plot between the availability check and
	// the status flip.
	suite.mockProjectRepo.On("UpdatePlotStatus", ctx, req.PlotID, domain.PlotAvailable, domain.PlotBooked, suite.userID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrConflict).Once()
	suite.mockBookingRepo.On("UpdateBookingStatus", ctx, mock.AnythingOfType("string"), domain.BookingCancelled, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	// The saved booking is cancelled again, not left dangling as active.
	suite.Require().Error(err)
	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "CreatePosting", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_ReceivableFailureReleasesPlot() {
	ctx := context.Background()
	req := suite.bookingRequest()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, req.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockProjectRepo.On("FindPlotByID", ctx, req.PlotID).Return(&suite.plot, nil).Once()
	suite.mockAccountSvc.On("GetAccountByParty", ctx, mock.Anything).Return(&suite.account, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.Booking")).Return(nil).Once()
	suite.mockProjectRepo.On("UpdatePlotStatus", ctx, req.PlotID, domain.PlotAvailable, domain.PlotBooked, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPostingRepo.On("CreatePosting", ctx, mock.AnythingOfType("domain.Posting")).Return(nil, apperrors.ErrInternal).Once()
	// A failed receivable posting rolls the plot back to AVAILABLE and
	// cancels the just-saved booking.
	suite.mockProjectRepo.On("UpdatePlotStatus", ctx, req.PlotID, domain.PlotBooked, domain.PlotAvailable, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBookingRepo.On("UpdateBookingStatus", ctx, mock.AnythingOfType("string"), domain.BookingCancelled, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err := suite.service.CreateBooking(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.mockProjectRepo.AssertExpectations(suite.T())
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

// --- CancelBooking ---

func (suite *BookingServiceTestSuite) TestCancelBooking_DeletesReceivableAndFreesPlot() {
	ctx := context.Background()
	booking := domain.Booking{
		BookingID:   uuid.NewString(),
		CustomerID:  suite.customer.CustomerID,
		PlotID:      suite.plot.PlotID,
		TotalAmount: decimal.NewFromInt(500000),
		Status:      domain.BookingActive,
	}
	receivable := domain.Posting{
		PostingID:     uuid.NewString(),
		Debit:         booking.TotalAmount,
		ReferenceType: domain.RefBooking,
		ReferenceID:   booking.BookingID,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(&booking, nil).Once()
	suite.mockPostingRepo.On("FindPostingsByReference", ctx, domain.RefBooking, booking.BookingID).Return([]domain.Posting{receivable}, nil).Once()
	suite.mockPostingRepo.On("DeletePostings", ctx, []string{receivable.PostingID}).Return(nil).Once()
	suite.mockProjectRepo.On("UpdatePlotStatus", ctx, booking.PlotID, domain.PlotBooked, domain.PlotAvailable, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBookingRepo.On("UpdateBookingStatus", ctx, booking.BookingID, domain.BookingCancelled, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CancelBooking(ctx, booking.BookingID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPostingRepo.AssertExpectations(suite.T())
	suite.mockProjectRepo.AssertExpectations(suite.T())
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCancelBooking_BlockedByReceipts() {
	ctx := context.Background()
	booking := domain.Booking{
		BookingID:   uuid.NewString(),
		PlotID:      suite.plot.PlotID,
		TotalAmount: decimal.NewFromInt(500000),
		Status:      domain.BookingActive,
	}
	linked := []domain.Posting{
		{PostingID: uuid.NewString(), Debit: booking.TotalAmount, ReferenceID: booking.BookingID},
		{PostingID: uuid.NewString(), Credit: decimal.NewFromInt(100000), ReferenceID: booking.BookingID},
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(&booking, nil).Once()
	suite.mockPostingRepo.On("FindPostingsByReference", ctx, domain.RefBooking, booking.BookingID).Return(linked, nil).Once()

	err := suite.service.CancelBooking(ctx, booking.BookingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrBookingHasReceipts.Error())
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "DeletePostings", mock.Anything, mock.Anything)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "UpdatePlotStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCancelBooking_NotActive() {
	ctx := context.Background()
	booking := domain.Booking{
		BookingID: uuid.NewString(),
		Status:    domain.BookingCancelled,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(&booking, nil).Once()

	err := suite.service.CancelBooking(ctx, booking.BookingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "FindPostingsByReference", mock.Anything, mock.Anything, mock.Anything)
}

// --- CompleteBooking ---

func (suite *BookingServiceTestSuite) TestCompleteBooking_FullyPaid() {
	ctx := context.Background()
	booking := domain.Booking{
		BookingID:   uuid.NewString(),
		PlotID:      suite.plot.PlotID,
		TotalAmount: decimal.NewFromInt(500000),
		Status:      domain.BookingActive,
	}
	linked := []domain.Posting{
		{PostingID: uuid.NewString(), Debit: booking.TotalAmount},
		{PostingID: uuid.NewString(), Credit: decimal.NewFromInt(300000)},
		{PostingID: uuid.NewString(), Credit: decimal.NewFromInt(200000)},
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(&booking, nil).Once()
	suite.mockPostingRepo.On("FindPostingsByReference", ctx, domain.RefBooking, booking.BookingID).Return(linked, nil).Once()
	suite.mockProjectRepo.On("UpdatePlotStatus", ctx, booking.PlotID, domain.PlotBooked, domain.PlotSold, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBookingRepo.On("UpdateBookingStatus", ctx, booking.BookingID, domain.BookingCompleted, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CompleteBooking(ctx, booking.BookingID, suite.userID)

	suite.Require().NoError(err)
	suite.mockProjectRepo.AssertExpectations(suite.T())
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCompleteBooking_Underpaid() {
	ctx := context.Background()
	booking := domain.Booking{
		BookingID:   uuid.NewString(),
		PlotID:      suite.plot.PlotID,
		TotalAmount: decimal.NewFromInt(500000),
		Status:      domain.BookingActive,
	}
	linked := []domain.Posting{
		{PostingID: uuid.NewString(), Debit: booking.TotalAmount},
		{PostingID: uuid.NewString(), Credit: decimal.NewFromInt(100000)},
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(&booking, nil).Once()
	suite.mockPostingRepo.On("FindPostingsByReference", ctx, domain.RefBooking, booking.BookingID).Return(linked, nil).Once()

	err := suite.service.CompleteBooking(ctx, booking.BookingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "UpdatePlotStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}
