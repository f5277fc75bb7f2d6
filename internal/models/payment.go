package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the row shape of the payments table.
type Payment struct {
	PaymentID   string          `db:"payment_id"`
	UserID      string          `db:"user_id"`
	CreatorID   string          `db:"creator_id"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentDate time.Time       `db:"payment_date"`
	PeriodStart time.Time       `db:"period_start"`
	PeriodEnd   time.Time       `db:"period_end"`
	Status      string          `db:"status"`
	Description *string         `db:"description"`
	ConfirmedAt *time.Time      `db:"confirmed_at"`
	AuditFields
}

// PaymentTimeEntry is the row shape of the payment_time_entries join table.
type PaymentTimeEntry struct {
	PaymentID   string          `db:"payment_id"`
	TimeEntryID string          `db:"time_entry_id"`
	Amount      decimal.Decimal `db:"amount"`
}
