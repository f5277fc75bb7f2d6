package services

import (
	"context"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

// NotificationEmitter is the fire-and-forget side of notifications. Emit never
// returns an error: failures are logged and swallowed so the triggering
// operation's success is unaffected.
type NotificationEmitter interface {
	Emit(ctx context.Context, notification domain.Notification)
}

// NotificationReaderSvc defines read operations for a user's notifications
type NotificationReaderSvc interface {
	// ListNotifications retrieves the principal's notifications, newest first.
	ListNotifications(ctx context.Context, principal domain.Principal, params dto.ListNotificationsParams) ([]domain.Notification, error)
}

// NotificationWriterSvc defines owner mutations of notifications
type NotificationWriterSvc interface {
	// SetRead toggles the read flag of one of the principal's notifications.
	SetRead(ctx context.Context, principal domain.Principal, notificationID string, read bool) (*domain.Notification, error)

	// DeleteNotification removes one of the principal's notifications.
	DeleteNotification(ctx context.Context, principal domain.Principal, notificationID string) error
}

// NotificationSvcFacade combines all notification-related service interfaces
type NotificationSvcFacade interface {
	NotificationEmitter
	NotificationReaderSvc
	NotificationWriterSvc
}

// FeedbackSvcFacade defines feedback submission and review
type FeedbackSvcFacade interface {
	// SubmitFeedback stores a feedback message and notifies the developers
	// (best-effort).
	SubmitFeedback(ctx context.Context, principal domain.Principal, req dto.SubmitFeedbackRequest) (*domain.Feedback, error)

	// ListFeedback retrieves all feedback messages (developers only).
	ListFeedback(ctx context.Context, principal domain.Principal, limit, offset int) ([]domain.Feedback, error)
}
