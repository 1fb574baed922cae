package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/plotbooks/plotbooks_backend/internal/apperrors"
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
	"github.com/plotbooks/plotbooks_backend/internal/handlers"
	"github.com/plotbooks/plotbooks_backend/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByParty(ctx context.Context, party domain.PartyRef) (*domain.Account, error) {
	args := m.Called(ctx, party)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, partyType *domain.PartyType, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, partyType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateLedgerAccount(ctx context.Context, req dto.CreateLedgerAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) EnsureAccountForParty(ctx context.Context, party domain.PartyRef, name string, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, party, name, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error {
	args := m.Called(ctx, accountID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, postingID string) (*domain.Posting, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}
func (m *MockTransactionService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) ListTransactionsByParty(ctx context.Context, party domain.PartyRef, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, party, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Posting, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, postingID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Posting, error) {
	args := m.Called(ctx, postingID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, postingID string, requestingUserID string) error {
	args := m.Called(ctx, postingID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockAccountService     *MockAccountService
	mockTransactionService *MockTransactionService
	jwtSecret              string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "plotbooks-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)
	suite.mockTransactionService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService, suite.mockTransactionService)
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestListTransactionsByAccount_Success() {
	accountID := uuid.NewString()
	requestingUserID := uuid.NewString()
	limit := 10

	expectedTransactions := []dto.TransactionResponse{
		{
			PostingID:       uuid.NewString(),
			PartyType:       domain.PartyCustomer,
			PartyID:         uuid.NewString(),
			AccountID:       accountID,
			TransactionDate: time.Now().Truncate(24 * time.Hour),
			EntryType:       domain.Receipt,
			Credit:          decimal.NewFromInt(5000),
			RunningBalance:  decimal.NewFromInt(5000),
			BalanceType:     domain.BalanceCr,
			CreatedAt:       time.Now(),
		},
		{
			PostingID:       uuid.NewString(),
			PartyType:       domain.PartyCustomer,
			PartyID:         uuid.NewString(),
			AccountID:       accountID,
			TransactionDate: time.Now().Truncate(24 * time.Hour),
			EntryType:       domain.Payment,
			Debit:           decimal.NewFromInt(2000),
			RunningBalance:  decimal.NewFromInt(3000),
			BalanceType:     domain.BalanceCr,
			CreatedAt:       time.Now().Add(-time.Hour),
		},
	}
	expectedResponse := &dto.ListTransactionsResponse{
		Transactions: expectedTransactions,
		NextToken:    nil,
	}

	suite.mockTransactionService.On("ListTransactionsByAccount",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit
		}),
	).Return(expectedResponse, nil).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s/transactions?limit=%d", accountID, limit)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	token := suite.generateTestToken(requestingUserID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code, "Expected status OK")

	var responseBody dto.ListTransactionsResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Len(responseBody.Transactions, len(expectedTransactions))
	if len(responseBody.Transactions) == len(expectedTransactions) {
		suite.Equal(expectedTransactions[0].PostingID, responseBody.Transactions[0].PostingID)
		suite.Equal(expectedTransactions[1].PostingID, responseBody.Transactions[1].PostingID)
	}

	suite.mockTransactionService.AssertExpectations(suite.T())
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts")
}

func (suite *AccountHandlerTestSuite) TestListTransactionsByAccount_AccountNotFound() {
	accountID := uuid.NewString()
	requestingUserID := uuid.NewString()

	suite.mockTransactionService.On("ListTransactionsByAccount",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		mock.AnythingOfType("dto.ListTransactionsParams"),
	).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s/transactions", accountID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateLedgerAccount_Success() {
	requestingUserID := uuid.NewString()
	now := time.Now()

	reqBody := dto.CreateLedgerAccountRequest{
		Name:           "Main Cash",
		Class:          domain.ClassCash,
		OpeningBalance: decimal.NewFromInt(10000),
		OpeningType:    domain.BalanceCr,
	}
	expectedAccount := &domain.Account{
		AccountID:      uuid.NewString(),
		PartyType:      domain.PartyLedgerAccount,
		Name:           reqBody.Name,
		Class:          reqBody.Class,
		OpeningBalance: decimal.NewFromInt(10000),
		OpeningType:    domain.BalanceCr,
		Balance:        decimal.NewFromInt(10000),
		Version:        1,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	suite.mockAccountService.On("CreateLedgerAccount",
		mock.AnythingOfType("*context.valueCtx"),
		reqBody,
		requestingUserID,
	).Return(expectedAccount, nil).Once()

	bodyBytes, err := json.Marshal(reqBody)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(expectedAccount.AccountID, responseBody.AccountID)
	suite.Equal(domain.BalanceCr, responseBody.BalanceType)
	suite.True(decimal.NewFromInt(10000).Equal(responseBody.Balance))

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_WithPostings() {
	accountID := uuid.NewString()
	requestingUserID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		requestingUserID,
	).Return(fmt.Errorf("account has postings: %w", apperrors.ErrValidation)).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s", accountID)
	req, _ := http.NewRequest(http.MethodDelete, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_Unauthorized() {
	url := fmt.Sprintf("/api/v1/accounts/%s", uuid.NewString())
	req, _ := http.NewRequest(http.MethodGet, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountByID")
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
