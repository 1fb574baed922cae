package services

import (
	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/plotbooks/plotbooks_backend/internal/core/ports/services"
	"github.com/plotbooks/plotbooks_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Account service first since most other services resolve accounts through it
	container.Account = NewAccountService(repos.AccountRepo, repos.PostingRepo)

	container.Customer = NewCustomerService(repos.CustomerRepo, container.Account, repos.AccountRepo)
	container.Executive = NewExecutiveService(repos.ExecutiveRepo, container.Account)
	container.Project = NewProjectService(repos.ProjectRepo)

	container.Commission = NewCommissionService(repos.PostingRepo, repos.ExecutiveRepo, container.Account)
	container.Transaction = NewTransactionService(repos.PostingRepo, container.Account, repos.BookingRepo, container.Commission)
	container.Booking = NewBookingService(repos.BookingRepo, repos.ProjectRepo, repos.CustomerRepo, repos.ExecutiveRepo, repos.PostingRepo, container.Account)

	container.Reporting = NewReportingService(repos.AccountRepo, repos.PostingRepo, repos.ReportingRepo)

	container.User = NewUserService(repos.UserRepo)
	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.BookingSvcFacade     = (*bookingService)(nil)
	_ portssvc.ReportingService     = (*reportingService)(nil)
)
