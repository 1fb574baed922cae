package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/dto"
)

// --- Mock PostingRepository ---
type MockPostingRepository struct {
	mock.Mock
}

var _ portsrepo.PostingRepositoryFacade = (*MockPostingRepository)(nil)

func (m *MockPostingRepository) FindPostingByID(ctx context.Context, postingID string) (*domain.Posting, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) FindPostingsByAccountID(ctx context.Context, accountID string) ([]domain.Posting, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) FindPostingsByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.Posting, error) {
	args := m.Called(ctx, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) ListPostingsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Posting, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var postings []domain.Posting
	if args.Get(0) != nil {
		postings = args.Get(0).([]domain.Posting)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return postings, token, args.Error(2)
}

func (m *MockPostingRepository) CreatePosting(ctx context.Context, posting domain.Posting) (*domain.Posting, error) {
	args := m.Called(ctx, posting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) CreatePostings(ctx context.Context, postings []domain.Posting) ([]domain.Posting, error) {
	args := m.Called(ctx, postings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) UpdatePostingMetadata(ctx context.Context, posting domain.Posting) (*domain.Posting, error) {
	args := m.Called(ctx, posting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) DeletePosting(ctx context.Context, postingID string) error {
	args := m.Called(ctx, postingID)
	return args.Error(0)
}

func (m *MockPostingRepository) DeletePostings(ctx context.Context, postingIDs []string) error {
	args := m.Called(ctx, postingIDs)
	return args.Error(0)
}

func (m *MockPostingRepository) GetStatementRows(ctx context.Context, accountID string, from, to *time.Time) (decimal.Decimal, []domain.Posting, error) {
	args := m.Called(ctx, accountID, from, to)
	var postings []domain.Posting
	if args.Get(1) != nil {
		postings = args.Get(1).([]domain.Posting)
	}
	return args.Get(0).(decimal.Decimal), postings, args.Error(2)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

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

// --- Mock CommissionService ---
type MockCommissionService struct {
	mock.Mock
}

var _ portssvc.CommissionSvcFacade = (*MockCommissionService)(nil)

func (m *MockCommissionService) BuildAccrual(ctx context.Context, receipt domain.Posting, executiveID string, creatorUserID string) (*domain.Posting, error) {
	args := m.Called(ctx, receipt, executiveID, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockCommissionService) LinkedAccruals(ctx context.Context, sourcePostingID string) ([]domain.Posting, error) {
	args := m.Called(ctx, sourcePostingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

// --- Mock BookingRepository ---
type MockBookingRepository struct {
	mock.Mock
}

var _ portsrepo.BookingRepositoryFacade = (*MockBookingRepository)(nil)

func (m *MockBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookingsByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookings(ctx context.Context, limit int, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, userID string, now time.Time) error {
	args := m.Called(ctx, bookingID, status, userID, now)
	return args.Error(0)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

var _ portsrepo.ProjectRepositoryFacade = (*MockProjectRepository)(nil)

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, limit int, offset int) ([]domain.Project, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) SavePlot(ctx context.Context, plot domain.Plot) error {
	args := m.Called(ctx, plot)
	return args.Error(0)
}

func (m *MockProjectRepository) FindPlotByID(ctx context.Context, plotID string) (*domain.Plot, error) {
	args := m.Called(ctx, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plot), args.Error(1)
}

func (m *MockProjectRepository) ListPlotsByProject(ctx context.Context, projectID string) ([]domain.Plot, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plot), args.Error(1)
}

func (m *MockProjectRepository) UpdatePlotStatus(ctx context.Context, plotID string, expected, next domain.PlotStatus, userID string, now time.Time) error {
	args := m.Called(ctx, plotID, expected, next, userID, now)
	return args.Error(0)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error {
	args := m.Called(ctx, customerID, userID, now)
	return args.Error(0)
}

// --- Mock ExecutiveRepository ---
type MockExecutiveRepository struct {
	mock.Mock
}

var _ portsrepo.ExecutiveRepositoryFacade = (*MockExecutiveRepository)(nil)

func (m *MockExecutiveRepository) SaveExecutive(ctx context.Context, executive domain.Executive) error {
	args := m.Called(ctx, executive)
	return args.Error(0)
}

func (m *MockExecutiveRepository) FindExecutiveByID(ctx context.Context, executiveID string) (*domain.Executive, error) {
	args := m.Called(ctx, executiveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Executive), args.Error(1)
}

func (m *MockExecutiveRepository) ListExecutives(ctx context.Context, limit int, offset int) ([]domain.Executive, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Executive), args.Error(1)
}

func (m *MockExecutiveRepository) UpdateExecutive(ctx context.Context, executive domain.Executive) error {
	args := m.Called(ctx, executive)
	return args.Error(0)
}

// --- Mock AccountRepository (reader side used by reporting) ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountByParty(ctx context.Context, party domain.PartyRef) (*domain.Account, error) {
	args := m.Called(ctx, party)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, partyType *domain.PartyType, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, partyType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetCashBookRows(ctx context.Context, from, to time.Time) (decimal.Decimal, []domain.Posting, error) {
	args := m.Called(ctx, from, to)
	var rows []domain.Posting
	if args.Get(1) != nil {
		rows = args.Get(1).([]domain.Posting)
	}
	return args.Get(0).(decimal.Decimal), rows, args.Error(2)
}

func (m *MockReportingRepository) GetDailyCollectionRows(ctx context.Context, date time.Time) ([]domain.Posting, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockReportingRepository) GetOutstandingCustomers(ctx context.Context) ([]domain.OutstandingRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutstandingRow), args.Error(1)
}
