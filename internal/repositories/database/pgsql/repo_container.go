package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/plotbooks/plotbooks_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	postingRepo := newPgxPostingRepository(dbPool, accountRepo)
	customerRepo := newPgxCustomerRepository(dbPool)
	executiveRepo := newPgxExecutiveRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	bookingRepo := newPgxBookingRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		PostingRepo:   postingRepo,
		CustomerRepo:  customerRepo,
		ExecutiveRepo: executiveRepo,
		ProjectRepo:   projectRepo,
		BookingRepo:   bookingRepo,
		UserRepo:      userRepo,
		ReportingRepo: reportingRepo,
	}
}
