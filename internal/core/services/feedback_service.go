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

// feedbackService implements feedback submission and developer review.
type feedbackService struct {
	BaseService
	feedbackRepo portsrepo.FeedbackRepositoryFacade
	userRepo     portsrepo.UserReader
	notifier     portssvc.NotificationEmitter
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(
	feedbackRepo portsrepo.FeedbackRepositoryFacade,
	userRepo portsrepo.UserReader,
	notifier portssvc.NotificationEmitter,
) portssvc.FeedbackSvcFacade {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

var _ portssvc.FeedbackSvcFacade = (*feedbackService)(nil)

// SubmitFeedback stores a feedback message and notifies the developers.
func (s *feedbackService) SubmitFeedback(ctx context.Context, principal domain.Principal, req dto.SubmitFeedbackRequest) (*domain.Feedback, error) {
	feedback := domain.Feedback{
		FeedbackID: uuid.NewString(),
		UserID:     principal.UserID,
		Subject:    req.Subject,
		Message:    req.Message,
		CreatedAt:  time.Now(),
	}

	if err := s.feedbackRepo.SaveFeedback(ctx, feedback); err != nil {
		s.LogError(ctx, err, "Failed to save feedback", slog.String("user_id", principal.UserID))
		return nil, err
	}

	s.notifyDevelopers(ctx, feedback)

	s.LogInfo(ctx, "Feedback submitted", slog.String("feedback_id", feedback.FeedbackID))
	return &feedback, nil
}

// notifyDevelopers emits a notification to every developer account.
// Best-effort: lookup failures are logged and the submission still succeeds.
func (s *feedbackService) notifyDevelopers(ctx context.Context, feedback domain.Feedback) {
	developers, err := s.userRepo.FindUsersByRole(ctx, domain.RoleDeveloper)
	if err != nil {
		s.LogWarn(ctx, "Failed to look up developers for feedback notification",
			slog.String("feedback_id", feedback.FeedbackID),
			slog.Any("error", err))
		return
	}

	relatedType := "feedback"
	for _, dev := range developers {
		s.notifier.Emit(ctx, domain.Notification{
			UserID:      dev.UserID,
			Title:       "Novo feedback recebido",
			Message:     feedback.Subject,
			Type:        domain.NotificationInfo,
			RelatedID:   &feedback.FeedbackID,
			RelatedType: &relatedType,
		})
	}
}

// ListFeedback retrieves all feedback messages. Developers only.
func (s *feedbackService) ListFeedback(ctx context.Context, principal domain.Principal, limit, offset int) ([]domain.Feedback, error) {
	if principal.Role != domain.RoleDeveloper {
		return nil, apperrors.ErrForbidden
	}
	if limit <= 0 {
		limit = 50
	}
	return s.feedbackRepo.ListFeedback(ctx, limit, offset)
}
