package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a time entry.
// Pending entries await a decision; rejected entries return to pending when
// the owner edits them.
type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryApproved EntryStatus = "approved"
	EntryRejected EntryStatus = "rejected"
)

// TimeEntry represents a block of worked time logged by a user.
type TimeEntry struct {
	EntryID         string          `json:"entryID"` // Primary Key (UUID)
	UserID          string          `json:"userID"`
	Date            time.Time       `json:"date"` // calendar day, midnight UTC
	StartTime       time.Time       `json:"startTime"`
	EndTime         time.Time       `json:"endTime"`
	TotalHours      decimal.Decimal `json:"totalHours"` // derived from end-start
	Status          EntryStatus     `json:"status"`
	RejectionReason *string         `json:"rejectionReason,omitempty"`
	Project         *string         `json:"project,omitempty"`
	AuditFields
}

// HoursBetween computes the worked hours between start and end.
func HoursBetween(start, end time.Time) decimal.Decimal {
	minutes := end.Sub(start).Minutes()
	return decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60)).Round(2)
}

// SameDay reports whether two timestamps fall on the same calendar day (UTC).
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// Overlaps reports whether the [start,end) interval of e intersects the
// interval of other. Both entries are assumed to be on the same date.
// Covers all four cases: e starts inside other, e ends inside other,
// e encloses other, other encloses e.
func (e *TimeEntry) Overlaps(other *TimeEntry) bool {
	return e.StartTime.Before(other.EndTime) && other.StartTime.Before(e.EndTime)
}

// IsEditable reports whether the owner may still edit or delete the entry.
// Approved entries are frozen; rejected entries may be edited (which resets
// them to pending).
func (e *TimeEntry) IsEditable() bool {
	return e.Status != EntryApproved
}
