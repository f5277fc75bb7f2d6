package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending              PaymentStatus = "pending"
	PaymentAwaitingConfirmation PaymentStatus = "awaiting_confirmation"
	PaymentCompleted            PaymentStatus = "completed"
	PaymentCancelled            PaymentStatus = "cancelled"
)

// Payment represents money paid (or being paid) to a user for a set of
// approved time entries.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`    // recipient
	CreatorID   string          `json:"creatorID"` // admin/manager who created it
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Status      PaymentStatus   `json:"status"`
	Description *string         `json:"description,omitempty"`
	ConfirmedAt *time.Time      `json:"confirmedAt,omitempty"`
	AuditFields
}

// PaymentTimeEntry links a payment to one of the time entries it covers.
// A time entry appears in at most one link row system-wide; the schema
// enforces this with a unique index on time_entry_id.
type PaymentTimeEntry struct {
	PaymentID   string          `json:"paymentID"`
	TimeEntryID string          `json:"timeEntryID"`
	Amount      decimal.Decimal `json:"amount"` // proportional share of the payment
}

// Balance is the computed pay state of a user over an optional date range.
// It is derived on demand and never stored.
type Balance struct {
	UserID             string          `json:"userID"`
	TotalApprovedHours decimal.Decimal `json:"totalApprovedHours"`
	TotalAmountDue     decimal.Decimal `json:"totalAmountDue"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	PaidHours          decimal.Decimal `json:"paidHours"`
	UnpaidHours        decimal.Decimal `json:"unpaidHours"`
	Balance            decimal.Decimal `json:"balance"`
}
