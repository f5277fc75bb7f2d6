package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
	"github.com/Drumblow/modularcompany-sub001/internal/models"
)

type PgxNotificationRepository struct {
	db *pgxpool.Pool
}

func newPgxNotificationRepository(db *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{db: db}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func toDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		Title:          m.Title,
		Message:        m.Message,
		Type:           domain.NotificationType(m.Type),
		Read:           m.Read,
		RelatedID:      m.RelatedID,
		RelatedType:    m.RelatedType,
		CreatedAt:      m.CreatedAt,
	}
}

const notificationColumns = `notification_id, user_id, title, message, type, read, related_id, related_type, created_at`

func scanNotification(row pgx.Row) (models.Notification, error) {
	var m models.Notification
	err := row.Scan(
		&m.NotificationID,
		&m.UserID,
		&m.Title,
		&m.Message,
		&m.Type,
		&m.Read,
		&m.RelatedID,
		&m.RelatedType,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	query := `
        INSERT INTO notifications (notification_id, user_id, title, message, type, read, related_id, related_type, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		notification.NotificationID,
		notification.UserID,
		notification.Title,
		notification.Message,
		string(notification.Type),
		notification.Read,
		notification.RelatedID,
		notification.RelatedType,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (r *PgxNotificationRepository) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE notification_id = $1;
	`
	m, err := scanNotification(r.db.QueryRow(ctx, query, notificationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find notification by ID %s: %w", notificationID, err)
	}

	d := toDomainNotification(m)
	return &d, nil
}

func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool, limit int, offset int) ([]domain.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND ($2 = FALSE OR read = FALSE)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.db.Query(ctx, query, userID, unreadOnly, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		m, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, toDomainNotification(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", rows.Err())
	}

	return notifications, nil
}

func (r *PgxNotificationRepository) SetNotificationRead(ctx context.Context, notificationID string, read bool) error {
	query := `UPDATE notifications SET read = $1 WHERE notification_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, read, notificationID)
	if err != nil {
		return fmt.Errorf("failed to update notification read flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxNotificationRepository) DeleteNotification(ctx context.Context, notificationID string) error {
	query := `DELETE FROM notifications WHERE notification_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, notificationID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
