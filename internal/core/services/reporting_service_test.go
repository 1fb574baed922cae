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
type ReportingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountReader
	mockPostingRepo   *MockPostingRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingService
	party             domain.PartyRef
	account           domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockAccountRepo, suite.mockPostingRepo, suite.mockReportingRepo)

	suite.party = domain.PartyRef{Type: domain.PartyCustomer, ID: uuid.NewString()}
	suite.account = domain.Account{
		AccountID: uuid.NewString(),
		PartyType: suite.party.Type,
		PartyID:   suite.party.ID,
		Name:      "Mahesh Shah",
		IsActive:  true,
	}
}

// --- GetStatement ---

func (suite *ReportingServiceTestSuite) TestGetStatement_Success() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	opening := decimal.NewFromInt(-500000) // receivable carried into the range
	postings := []domain.Posting{
		{PostingID: uuid.NewString(), Credit: decimal.NewFromInt(100000), RunningBalance: decimal.NewFromInt(-400000)},
		{PostingID: uuid.NewString(), Credit: decimal.NewFromInt(50000), RunningBalance: decimal.NewFromInt(-350000)},
	}

	suite.mockAccountRepo.On("FindAccountByParty", ctx, suite.party).Return(&suite.account, nil).Once()
	suite.mockPostingRepo.On("GetStatementRows", ctx, suite.account.AccountID, &from, &to).Return(opening, postings, nil).Once()

	statement, err := suite.service.GetStatement(ctx, suite.party, &from, &to)

	suite.Require().NoError(err)
	suite.Require().NotNil(statement)
	suite.Equal(suite.account.Name, statement.AccountName)
	suite.True(statement.OpeningBalance.Equal(opening))
	suite.True(statement.TotalCredit.Equal(decimal.NewFromInt(150000)))
	suite.True(statement.TotalDebit.IsZero())
	suite.True(statement.ClosingBalance.Equal(decimal.NewFromInt(-350000)))
	suite.Len(statement.Postings, 2)
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetStatement_InvalidRange() {
	ctx := context.Background()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.GetStatement(ctx, suite.party, &from, &to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidRange)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByParty", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetStatement_SameDayRangeAllowed() {
	ctx := context.Background()
	// Different clock times on the same calendar day are a valid range.
	from := time.Date(2025, 4, 15, 18, 30, 0, 0, time.UTC)
	to := time.Date(2025, 4, 15, 9, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByParty", ctx, suite.party).Return(&suite.account, nil).Once()
	suite.mockPostingRepo.On("GetStatementRows", ctx, suite.account.AccountID, &from, &to).Return(decimal.Zero, []domain.Posting{}, nil).Once()

	statement, err := suite.service.GetStatement(ctx, suite.party, &from, &to)

	suite.Require().NoError(err)
	suite.Empty(statement.Postings)
}

func (suite *ReportingServiceTestSuite) TestGetStatement_UnknownParty() {
	ctx := context.Background()

	_, err := suite.service.GetStatement(ctx, domain.PartyRef{Type: "VENDOR", ID: "x"}, nil, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- GetCashBook ---

func (suite *ReportingServiceTestSuite) TestGetCashBook_GroupsByDay() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	opening := decimal.NewFromInt(10000)
	rows := []domain.Posting{
		{PostingID: uuid.NewString(), TransactionDate: from, Credit: decimal.NewFromInt(5000)},
		{PostingID: uuid.NewString(), TransactionDate: from, Debit: decimal.NewFromInt(2000)},
		{PostingID: uuid.NewString(), TransactionDate: to, Credit: decimal.NewFromInt(1000)},
	}

	suite.mockReportingRepo.On("GetCashBookRows", ctx, from, to).Return(opening, rows, nil).Once()

	book, err := suite.service.GetCashBook(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(book.Days, 2)

	day1 := book.Days[0]
	suite.True(day1.OpeningBalance.Equal(decimal.NewFromInt(10000)))
	suite.True(day1.TotalReceipt.Equal(decimal.NewFromInt(5000)))
	suite.True(day1.TotalPayment.Equal(decimal.NewFromInt(2000)))
	suite.True(day1.ClosingBalance.Equal(decimal.NewFromInt(13000)))
	suite.Len(day1.Entries, 2)

	day2 := book.Days[1]
	// Day two opens where day one closed.
	suite.True(day2.OpeningBalance.Equal(day1.ClosingBalance))
	suite.True(day2.ClosingBalance.Equal(decimal.NewFromInt(14000)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetCashBook_InvalidRange() {
	ctx := context.Background()
	from := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.GetCashBook(ctx, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidRange)
}

func (suite *ReportingServiceTestSuite) TestGetCashBook_EmptyRange() {
	ctx := context.Background()
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetCashBookRows", ctx, day, day).Return(decimal.NewFromInt(10000), []domain.Posting{}, nil).Once()

	book, err := suite.service.GetCashBook(ctx, day, day)

	suite.Require().NoError(err)
	suite.Empty(book.Days)
}

// --- GetDailyCollection ---

func (suite *ReportingServiceTestSuite) TestGetDailyCollection_SplitsByMode() {
	ctx := context.Background()
	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	rows := []domain.Posting{
		{PostingID: uuid.NewString(), Credit: decimal.NewFromInt(30000), PaymentMode: domain.ModeCash},
		{PostingID: uuid.NewString(), Credit: decimal.NewFromInt(70000), PaymentMode: domain.ModeCheque},
		{PostingID: uuid.NewString(), Credit: decimal.NewFromInt(5000)}, // mode not recorded, counts as cash
	}

	suite.mockReportingRepo.On("GetDailyCollectionRows", ctx, day).Return(rows, nil).Once()

	report, err := suite.service.GetDailyCollection(ctx, day)

	suite.Require().NoError(err)
	suite.True(report.Total.Equal(decimal.NewFromInt(105000)))
	suite.True(report.ByMode[domain.ModeCash].Equal(decimal.NewFromInt(35000)))
	suite.True(report.ByMode[domain.ModeCheque].Equal(decimal.NewFromInt(70000)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

// --- GetOutstanding ---

func (suite *ReportingServiceTestSuite) TestGetOutstanding_Success() {
	ctx := context.Background()
	rows := []domain.OutstandingRow{
		{CustomerID: uuid.NewString(), CustomerName: "Suresh Patel", Outstanding: decimal.NewFromInt(400000)},
	}

	suite.mockReportingRepo.On("GetOutstandingCustomers", ctx).Return(rows, nil).Once()

	result, err := suite.service.GetOutstanding(ctx)

	suite.Require().NoError(err)
	suite.Equal(rows, result)
}

func (suite *ReportingServiceTestSuite) TestGetOutstanding_ExcludesAdvances() {
	ctx := context.Background()
	debtor := domain.OutstandingRow{CustomerID: uuid.NewString(), CustomerName: "Suresh Patel", Outstanding: decimal.NewFromInt(250000)}
	// A customer who paid ahead carries a credit balance and owes nothing.
	advance := domain.OutstandingRow{CustomerID: uuid.NewString(), CustomerName: "Meena Joshi", Outstanding: decimal.NewFromInt(-50000)}

	suite.mockReportingRepo.On("GetOutstandingCustomers", ctx).Return([]domain.OutstandingRow{debtor, advance}, nil).Once()

	result, err := suite.service.GetOutstanding(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(debtor.CustomerID, result[0].CustomerID)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
