package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:      newPgxCompanyRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		TimeEntryRepo:    newPgxTimeEntryRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
		FeedbackRepo:     newPgxFeedbackRepository(dbPool),
	}
}
