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
type TransactionServiceTestSuite struct {
	suite.Suite
	mockPostingRepo   *MockPostingRepository
	mockAccountSvc    *MockAccountService
	mockBookingRepo   *MockBookingRepository
	mockCommissionSvc *MockCommissionService
	service           portssvc.TransactionSvcFacade
	customerAccount   domain.Account
	userID            string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockCommissionSvc = new(MockCommissionService)
	suite.service = services.NewTransactionService(suite.mockPostingRepo, suite.mockAccountSvc, suite.mockBookingRepo, suite.mockCommissionSvc)

	suite.userID = uuid.NewString()
	suite.customerAccount = domain.Account{
		AccountID: uuid.NewString(),
		PartyType: domain.PartyCustomer,
		PartyID:   uuid.NewString(),
		Name:      "Ramesh Kumar",
		Balance:   decimal.Zero,
		Version:   1,
		IsActive:  true,
	}
}

func (suite *TransactionServiceTestSuite) receiptRequest(amount decimal.Decimal) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		PartyType:       domain.PartyCustomer,
		PartyID:         suite.customerAccount.PartyID,
		EntryType:       domain.Receipt,
		Amount:          amount,
		TransactionDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description:     "Part payment",
		PaymentMode:     domain.ModeCash,
	}
}

// --- CreateTransaction ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ReceiptSuccess() {
	ctx := context.Background()
	req := suite.receiptRequest(decimal.NewFromInt(50000))

	saved := domain.Posting{
		PostingID:      uuid.NewString(),
		AccountID:      suite.customerAccount.AccountID,
		EntryType:      domain.Receipt,
		Credit:         req.Amount,
		Seq:            1,
		RunningBalance: req.Amount,
	}
	suite.mockAccountSvc.On("GetAccountByParty", ctx, domain.PartyRef{Type: req.PartyType, ID: req.PartyID}).Return(&suite.customerAccount, nil).Once()
	suite.mockPostingRepo.On("CreatePostings", ctx, mock.MatchedBy(func(postings []domain.Posting) bool {
		if len(postings) != 1 {
			return false
		}
		p := postings[0]
		return p.AccountID == suite.customerAccount.AccountID &&
			p.EntryType == domain.Receipt &&
			p.Credit.Equal(req.Amount) &&
			p.Debit.IsZero() &&
			p.ReferenceType == domain.RefManual &&
			p.CreatedBy == suite.userID
	})).Return([]domain.Posting{saved}, nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(saved.PostingID, created.PostingID)
	suite.True(created.Credit.Equal(req.Amount))
	suite.Equal(int64(1), created.Seq)
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockPostingRepo.AssertExpectations(suite.T())
	suite.mockCommissionSvc.AssertNotCalled(suite.T(), "BuildAccrual", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_PaymentMapsToDebit() {
	ctx := context.Background()
	req := suite.receiptRequest(decimal.NewFromInt(1200))
	req.EntryType = domain.Payment

	saved := domain.Posting{PostingID: uuid.NewString(), Debit: req.Amount, EntryType: domain.Payment}
	suite.mockAccountSvc.On("GetAccountByParty", ctx, mock.Anything).Return(&suite.customerAccount, nil).Once()
	suite.mockPostingRepo.On("CreatePostings", ctx, mock.MatchedBy(func(postings []domain.Posting) bool {
		return len(postings) == 1 && postings[0].Debit.Equal(req.Amount) && postings[0].Credit.IsZero()
	})).Return([]domain.Posting{saved}, nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(created.Debit.Equal(req.Amount))
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.receiptRequest(decimal.Zero)

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountByParty", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	req := suite.receiptRequest(decimal.NewFromInt(100))
	inactive := suite.customerAccount
	inactive.IsActive = false

	suite.mockAccountSvc.On("GetAccountByParty", ctx, mock.Anything).Return(&inactive, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrAccountInactive.Error())
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "CreatePostings", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BookingReceiptAccruesCommission() {
	ctx := context.Background()
	executiveID := uuid.NewString()
	booking := domain.Booking{
		BookingID:   uuid.NewString(),
		CustomerID:  suite.customerAccount.PartyID,
		PlotID:      uuid.NewString(),
		ExecutiveID: executiveID,
		TotalAmount: decimal.NewFromInt(500000),
		Status:      domain.BookingActive,
	}
	req := suite.receiptRequest(decimal.NewFromInt(100000))
	req.BookingID = booking.BookingID

	savedReceipt := domain.Posting{
		PostingID:     uuid.NewString(),
		AccountID:     suite.customerAccount.AccountID,
		EntryType:     domain.Receipt,
		Credit:        req.Amount,
		ReferenceType: domain.RefBooking,
		ReferenceID:   booking.BookingID,
	}
	accrual := domain.Posting{
		PostingID:     uuid.NewString(),
		Credit:        decimal.NewFromInt(2500),
		ReferenceType: domain.RefCommission,
	}
	suite.mockAccountSvc.On("GetAccountByParty", ctx, mock.Anything).Return(&suite.customerAccount, nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(&booking, nil).Once()
	suite.mockCommissionSvc.On("BuildAccrual", ctx, mock.MatchedBy(func(p domain.Posting) bool {
		return p.ReferenceType == domain.RefBooking && p.ReferenceID == booking.BookingID && p.Credit.Equal(req.Amount)
	}), executiveID, suite.userID).Return(&accrual, nil).Once()
	// Receipt and accrual land in one atomic write.
	suite.mockPostingRepo.On("CreatePostings", ctx, mock.MatchedBy(func(postings []domain.Posting) bool {
		return len(postings) == 2 &&
			postings[0].ReferenceType == domain.RefBooking && postings[0].ReferenceID == booking.BookingID &&
			postings[1].PostingID == accrual.PostingID
	})).Return([]domain.Posting{savedReceipt, accrual}, nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RefBooking, created.ReferenceType)
	suite.mockCommissionSvc.AssertExpectations(suite.T())
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccrualFailureSavesNothing() {
	ctx := context.Background()
	executiveID := uuid.NewString()
	booking := domain.Booking{
		BookingID:   uuid.NewString(),
		CustomerID:  suite.customerAccount.PartyID,
		ExecutiveID: executiveID,
		TotalAmount: decimal.NewFromInt(500000),
		Status:      domain.BookingActive,
	}
	req := suite.receiptRequest(decimal.NewFromInt(100000))
	req.BookingID = booking.BookingID

	suite.mockAccountSvc.On("GetAccountByParty", ctx, mock.Anything).Return(&suite.customerAccount, nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(&booking, nil).Once()
	suite.mockCommissionSvc.On("BuildAccrual", ctx, mock.AnythingOfType("domain.Posting"), executiveID, suite.userID).Return(nil, apperrors.ErrInternal).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	// A receipt must never be committed without its commission accrual, so
	// an accrual failure aborts before anything is written.
	suite.Require().Error(err)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "CreatePostings", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BookingBelongsToOtherCustomer() {
	ctx := context.Background()
	booking := domain.Booking{
		BookingID:  uuid.NewString(),
		CustomerID: uuid.NewString(), // someone else's booking
		Status:     domain.BookingActive,
	}
	req := suite.receiptRequest(decimal.NewFromInt(100))
	req.BookingID = booking.BookingID

	suite.mockAccountSvc.On("GetAccountByParty", ctx, mock.Anything).Return(&suite.customerAccount, nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(&booking, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "CreatePostings", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RetriesOnVersionConflict() {
	ctx := context.Background()
	req := suite.receiptRequest(decimal.NewFromInt(100))

	suite.mockAccountSvc.On("GetAccountByParty", ctx, mock.Anything).Return(&suite.customerAccount, nil).Once()
	suite.mockPostingRepo.On("CreatePostings", ctx, mock.AnythingOfType("[]domain.Posting")).Return(nil, apperrors.ErrConflict).Twice()
	suite.mockPostingRepo.On("CreatePostings", ctx, mock.AnythingOfType("[]domain.Posting")).Return([]domain.Posting{{PostingID: uuid.NewString()}}, nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockPostingRepo.AssertNumberOfCalls(suite.T(), "CreatePostings", 3)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ConflictRetriesExhausted() {
	ctx := context.Background()
	req := suite.receiptRequest(decimal.NewFromInt(100))

	suite.mockAccountSvc.On("GetAccountByParty", ctx, mock.Anything).Return(&suite.customerAccount, nil).Once()
	suite.mockPostingRepo.On("CreatePostings", ctx, mock.AnythingOfType("[]domain.Posting")).Return(nil, apperrors.ErrConflict).Times(3)

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPostingRepo.AssertNumberOfCalls(suite.T(), "CreatePostings", 3)
}

// --- UpdateTransaction ---

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountIsImmutable() {
	ctx := context.Background()
	amount := decimal.NewFromInt(999)
	req := dto.UpdateTransactionRequest{Amount: &amount}

	_, err := suite.service.UpdateTransaction(ctx, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutableField)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "FindPostingByID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_CommissionPostingRejected() {
	ctx := context.Background()
	posting := domain.Posting{
		PostingID:     uuid.NewString(),
		ReferenceType: domain.RefCommission,
	}
	desc := "edited"
	req := dto.UpdateTransactionRequest{Description: &desc}

	suite.mockPostingRepo.On("FindPostingByID", ctx, posting.PostingID).Return(&posting, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, posting.PostingID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, services.ErrSystemPosting.Error())
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "UpdatePostingMetadata", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_MetadataSuccess() {
	ctx := context.Background()
	posting := domain.Posting{
		PostingID:       uuid.NewString(),
		AccountID:       suite.customerAccount.AccountID,
		TransactionDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EntryType:       domain.Receipt,
		Credit:          decimal.NewFromInt(100),
		ReferenceType:   domain.RefManual,
		Description:     "old narration",
	}
	desc := "corrected narration"
	mode := domain.ModeUPI
	req := dto.UpdateTransactionRequest{Description: &desc, PaymentMode: &mode}

	updatedPosting := posting
	updatedPosting.Description = desc
	updatedPosting.PaymentMode = mode
	suite.mockPostingRepo.On("FindPostingByID", ctx, posting.PostingID).Return(&posting, nil).Once()
	suite.mockPostingRepo.On("UpdatePostingMetadata", ctx, mock.MatchedBy(func(p domain.Posting) bool {
		return p.Description == desc && p.PaymentMode == mode && p.LastUpdatedBy == suite.userID
	})).Return(&updatedPosting, nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, posting.PostingID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(desc, updated.Description)
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NoFieldsIsNoOp() {
	ctx := context.Background()
	posting := domain.Posting{
		PostingID:     uuid.NewString(),
		ReferenceType: domain.RefManual,
		Description:   "unchanged",
	}

	suite.mockPostingRepo.On("FindPostingByID", ctx, posting.PostingID).Return(&posting, nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, posting.PostingID, dto.UpdateTransactionRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("unchanged", updated.Description)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "UpdatePostingMetadata", mock.Anything, mock.Anything)
}

// --- DeleteTransaction ---

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RemovesAccrualsInSameDelete() {
	ctx := context.Background()
	posting := domain.Posting{
		PostingID:     uuid.NewString(),
		AccountID:     suite.customerAccount.AccountID,
		ReferenceType: domain.RefBooking,
		Credit:        decimal.NewFromInt(100000),
	}
	accrual := domain.Posting{
		PostingID:     uuid.NewString(),
		ReferenceType: domain.RefCommission,
		ReferenceID:   posting.PostingID,
		Credit:        decimal.NewFromInt(2500),
	}

	suite.mockPostingRepo.On("FindPostingByID", ctx, posting.PostingID).Return(&posting, nil).Once()
	suite.mockCommissionSvc.On("LinkedAccruals", ctx, posting.PostingID).Return([]domain.Posting{accrual}, nil).Once()
	// The receipt and its accrual go in one atomic delete so a failure
	// cannot strand the accrual without its source.
	suite.mockPostingRepo.On("DeletePostings", ctx, []string{posting.PostingID, accrual.PostingID}).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, posting.PostingID, suite.userID)

	suite.Require().NoError(err)
	suite.mockCommissionSvc.AssertExpectations(suite.T())
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NoAccruals() {
	ctx := context.Background()
	posting := domain.Posting{
		PostingID:     uuid.NewString(),
		AccountID:     suite.customerAccount.AccountID,
		ReferenceType: domain.RefManual,
		Credit:        decimal.NewFromInt(500),
	}

	suite.mockPostingRepo.On("FindPostingByID", ctx, posting.PostingID).Return(&posting, nil).Once()
	suite.mockCommissionSvc.On("LinkedAccruals", ctx, posting.PostingID).Return([]domain.Posting{}, nil).Once()
	suite.mockPostingRepo.On("DeletePostings", ctx, []string{posting.PostingID}).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, posting.PostingID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_CommissionPostingRejected() {
	ctx := context.Background()
	posting := domain.Posting{
		PostingID:     uuid.NewString(),
		ReferenceType: domain.RefCommission,
	}

	suite.mockPostingRepo.On("FindPostingByID", ctx, posting.PostingID).Return(&posting, nil).Once()

	err := suite.service.DeleteTransaction(ctx, posting.PostingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "DeletePostings", mock.Anything, mock.Anything)
	suite.mockCommissionSvc.AssertNotCalled(suite.T(), "LinkedAccruals", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	postingID := uuid.NewString()

	suite.mockPostingRepo.On("FindPostingByID", ctx, postingID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, postingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListTransactionsByAccount ---

func (suite *TransactionServiceTestSuite) TestListTransactionsByAccount_PassesToken() {
	ctx := context.Background()
	accountID := suite.customerAccount.AccountID
	token := "opaque-cursor"
	nextToken := "next-cursor"
	postings := []domain.Posting{
		{PostingID: uuid.NewString(), AccountID: accountID, Credit: decimal.NewFromInt(10), RunningBalance: decimal.NewFromInt(10)},
		{PostingID: uuid.NewString(), AccountID: accountID, Debit: decimal.NewFromInt(4), RunningBalance: decimal.NewFromInt(6)},
	}

	suite.mockPostingRepo.On("ListPostingsByAccountID", ctx, accountID, 25, &token).Return(postings, &nextToken, nil).Once()

	resp, err := suite.service.ListTransactionsByAccount(ctx, accountID, dto.ListTransactionsParams{Limit: 25, NextToken: &token})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Transactions, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)
	// Running balances surface with their Dr/Cr display split.
	suite.Equal(domain.BalanceCr, resp.Transactions[0].BalanceType)
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactionsByAccount_DefaultLimit() {
	ctx := context.Background()
	accountID := suite.customerAccount.AccountID

	suite.mockPostingRepo.On("ListPostingsByAccountID", ctx, accountID, 50, (*string)(nil)).Return([]domain.Posting{}, nil, nil).Once()

	resp, err := suite.service.ListTransactionsByAccount(ctx, accountID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Empty(resp.Transactions)
	suite.Nil(resp.NextToken)
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
