package services

import (
	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The authorizer and the notification emitter come first since most
	// services depend on them.
	container.Authorizer = NewAuthorizerService()
	container.Notification = NewNotificationService(repos.NotificationRepo)

	container.Company = NewCompanyService(repos.CompanyRepo, container.Authorizer)
	container.User = NewUserService(repos.UserRepo, repos.CompanyRepo, container.Authorizer)
	container.TimeEntry = NewTimeEntryService(
		repos.TimeEntryRepo,
		repos.PaymentRepo,
		repos.UserRepo,
		container.Authorizer,
		container.Notification,
	)
	container.Payment = NewPaymentService(
		repos.PaymentRepo,
		repos.TimeEntryRepo,
		repos.UserRepo,
		container.Authorizer,
		container.Notification,
	)
	container.Feedback = NewFeedbackService(repos.FeedbackRepo, repos.UserRepo, container.Notification)

	container.Token = NewTokenService(cfg)
	container.GoogleAuth = NewGoogleAuthService(cfg)

	return container
}
