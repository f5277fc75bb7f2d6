package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
	"github.com/Drumblow/modularcompany-sub001/internal/models"
)

type PgxFeedbackRepository struct {
	db *pgxpool.Pool
}

func newPgxFeedbackRepository(db *pgxpool.Pool) portsrepo.FeedbackRepositoryFacade {
	return &PgxFeedbackRepository{db: db}
}

var _ portsrepo.FeedbackRepositoryFacade = (*PgxFeedbackRepository)(nil)

func (r *PgxFeedbackRepository) SaveFeedback(ctx context.Context, feedback domain.Feedback) error {
	query := `
        INSERT INTO feedback (feedback_id, user_id, subject, message, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.db.Exec(ctx, query,
		feedback.FeedbackID,
		feedback.UserID,
		feedback.Subject,
		feedback.Message,
		feedback.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

func (r *PgxFeedbackRepository) ListFeedback(ctx context.Context, limit int, offset int) ([]domain.Feedback, error) {
	query := `
		SELECT feedback_id, user_id, subject, message, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	feedbacks := []domain.Feedback{}
	for rows.Next() {
		var m models.Feedback
		if err := rows.Scan(&m.FeedbackID, &m.UserID, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		feedbacks = append(feedbacks, domain.Feedback{
			FeedbackID: m.FeedbackID,
			UserID:     m.UserID,
			Subject:    m.Subject,
			Message:    m.Message,
			CreatedAt:  m.CreatedAt,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating feedback rows: %w", rows.Err())
	}

	return feedbacks, nil
}
