package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Authorizer   AuthorizerSvc
	Company      CompanySvcFacade
	User         UserSvcFacade
	TimeEntry    TimeEntrySvcFacade
	Payment      PaymentSvcFacade
	Notification NotificationSvcFacade
	Feedback     FeedbackSvcFacade
	Token        TokenSvcFacade
	GoogleAuth   GoogleAuthSvcFacade
}
