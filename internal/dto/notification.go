package dto

import (
	"time"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
)

// ListNotificationsParams defines query parameters for listing notifications.
type ListNotificationsParams struct {
	UnreadOnly bool `form:"unread,default=false"`
	Limit      int  `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset     int  `form:"offset,default=0" binding:"omitempty,min=0"`
}

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	Type           domain.NotificationType `json:"type"`
	Read           bool                    `json:"read"`
	RelatedID      *string                 `json:"relatedID,omitempty"`
	RelatedType    *string                 `json:"relatedType,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ToNotificationResponse converts domain.Notification to DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           n.Type,
		Read:           n.Read,
		RelatedID:      n.RelatedID,
		RelatedType:    n.RelatedType,
		CreatedAt:      n.CreatedAt,
	}
}

// ListNotificationsResponse wraps a list of notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ToListNotificationsResponse converts a slice of domain.Notification to DTO.
func ToListNotificationsResponse(ns []domain.Notification) ListNotificationsResponse {
	out := make([]NotificationResponse, len(ns))
	for i := range ns {
		out[i] = ToNotificationResponse(&ns[i])
	}
	return ListNotificationsResponse{Notifications: out}
}

// SubmitFeedbackRequest defines data for submitting feedback to the developers.
type SubmitFeedbackRequest struct {
	Subject string `json:"subject" binding:"required,min=3,max=200"`
	Message string `json:"message" binding:"required,min=3,max=2000"`
}

// FeedbackResponse defines the data returned for a feedback message.
type FeedbackResponse struct {
	FeedbackID string    `json:"feedbackID"`
	UserID     string    `json:"userID"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToFeedbackResponse converts domain.Feedback to DTO.
func ToFeedbackResponse(f *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		FeedbackID: f.FeedbackID,
		UserID:     f.UserID,
		Subject:    f.Subject,
		Message:    f.Message,
		CreatedAt:  f.CreatedAt,
	}
}

// ListFeedbackResponse wraps a list of feedback messages.
type ListFeedbackResponse struct {
	Feedback []FeedbackResponse `json:"feedback"`
}

// ToListFeedbackResponse converts a slice of domain.Feedback to DTO.
func ToListFeedbackResponse(fs []domain.Feedback) ListFeedbackResponse {
	out := make([]FeedbackResponse, len(fs))
	for i := range fs {
		out[i] = ToFeedbackResponse(&fs[i])
	}
	return ListFeedbackResponse{Feedback: out}
}
