package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry is the row shape of the time_entries table.
// The lifecycle state is stored as the nullable approved/rejected pair:
// pending has both NULL, approved has approved=true, rejected has
// rejected=true. Exactly one of the three holds at any time.
type TimeEntry struct {
	EntryID         string          `db:"entry_id"`
	UserID          string          `db:"user_id"`
	EntryDate       time.Time       `db:"entry_date"`
	StartTime       time.Time       `db:"start_time"`
	EndTime         time.Time       `db:"end_time"`
	TotalHours      decimal.Decimal `db:"total_hours"`
	Approved        *bool           `db:"approved"`
	Rejected        *bool           `db:"rejected"`
	RejectionReason *string         `db:"rejection_reason"`
	Project         *string         `db:"project"`
	AuditFields
}
