package repositories

import (
	"context"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
)

// NotificationReader defines read operations for notification data
type NotificationReader interface {
	// FindNotificationByID retrieves a specific notification by its ID.
	FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error)

	// ListNotificationsByUser retrieves a user's notifications, newest first.
	// When unreadOnly is true, read notifications are excluded.
	ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool, limit int, offset int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notification data
type NotificationWriter interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// SetNotificationRead toggles the read flag of a notification.
	SetNotificationRead(ctx context.Context, notificationID string, read bool) error

	// DeleteNotification removes a notification.
	DeleteNotification(ctx context.Context, notificationID string) error
}

// NotificationRepositoryFacade combines all notification-related repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}

// FeedbackRepositoryFacade defines operations for feedback data
type FeedbackRepositoryFacade interface {
	// SaveFeedback persists a new feedback message.
	SaveFeedback(ctx context.Context, feedback domain.Feedback) error

	// ListFeedback retrieves all feedback messages, newest first.
	ListFeedback(ctx context.Context, limit int, offset int) ([]domain.Feedback, error)
}
