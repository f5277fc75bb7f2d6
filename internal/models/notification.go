package models

import "time"

// Notification is the row shape of the notifications table.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	UserID         string    `db:"user_id"`
	Title          string    `db:"title"`
	Message        string    `db:"message"`
	Type           string    `db:"type"`
	Read           bool      `db:"read"`
	RelatedID      *string   `db:"related_id"`
	RelatedType    *string   `db:"related_type"`
	CreatedAt      time.Time `db:"created_at"`
}

// Feedback is the row shape of the feedback table.
type Feedback struct {
	FeedbackID string    `db:"feedback_id"`
	UserID     string    `db:"user_id"`
	Subject    string    `db:"subject"`
	Message    string    `db:"message"`
	CreatedAt  time.Time `db:"created_at"`
}
