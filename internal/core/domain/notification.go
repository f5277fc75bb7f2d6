package domain

import "time"

// NotificationType classifies a notification for client-side presentation.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is an advisory message created as a side effect of time entry
// and payment transitions. Delivery is best-effort; the triggering operation
// never depends on it.
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	UserID         string           `json:"userID"`         // recipient
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Type           NotificationType `json:"type"`
	Read           bool             `json:"read"`
	RelatedID      *string          `json:"relatedID,omitempty"`   // e.g. a time entry or payment ID
	RelatedType    *string          `json:"relatedType,omitempty"` // "time_entry", "payment", "feedback"
	CreatedAt      time.Time        `json:"createdAt"`
}

// Feedback is a message submitted by any authenticated user to the developers.
type Feedback struct {
	FeedbackID string    `json:"feedbackID"` // Primary Key (UUID)
	UserID     string    `json:"userID"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}
