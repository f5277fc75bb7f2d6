package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

// notificationService implements notification emission and owner access.
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// Emit persists a notification. Failures are logged and swallowed so the
// triggering operation is never affected.
func (s *notificationService) Emit(ctx context.Context, notification domain.Notification) {
	if notification.NotificationID == "" {
		notification.NotificationID = uuid.NewString()
	}
	if notification.Type == "" {
		notification.Type = domain.NotificationInfo
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		s.LogWarn(ctx, "Failed to emit notification",
			slog.String("recipient", notification.UserID),
			slog.String("title", notification.Title),
			slog.Any("error", err))
	}
}

// ListNotifications retrieves the principal's notifications, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, principal domain.Principal, params dto.ListNotificationsParams) ([]domain.Notification, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	return s.notificationRepo.ListNotificationsByUser(ctx, principal.UserID, params.UnreadOnly, limit, params.Offset)
}

// SetRead toggles the read flag of one of the principal's notifications.
func (s *notificationService) SetRead(ctx context.Context, principal domain.Principal, notificationID string, read bool) (*domain.Notification, error) {
	notification, err := s.loadOwned(ctx, principal, notificationID)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.SetNotificationRead(ctx, notificationID, read); err != nil {
		return nil, err
	}
	notification.Read = read
	return notification, nil
}

// DeleteNotification removes one of the principal's notifications.
func (s *notificationService) DeleteNotification(ctx context.Context, principal domain.Principal, notificationID string) error {
	if _, err := s.loadOwned(ctx, principal, notificationID); err != nil {
		return err
	}
	return s.notificationRepo.DeleteNotification(ctx, notificationID)
}

// loadOwned fetches a notification and verifies the principal is its
// recipient. Someone else's notification is reported as not found.
func (s *notificationService) loadOwned(ctx context.Context, principal domain.Principal, notificationID string) (*domain.Notification, error) {
	notification, err := s.notificationRepo.FindNotificationByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.UserID != principal.UserID {
		return nil, apperrors.ErrNotFound
	}
	return notification, nil
}
