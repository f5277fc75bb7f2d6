package repositories

import (
	"context"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByUser retrieves a paginated list of payments for a recipient.
	ListPaymentsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Payment, error)

	// ListPaymentsByCompany retrieves a paginated list of payments whose
	// recipients belong to the given company.
	ListPaymentsByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.Payment, error)

	// FindLinksByPaymentID retrieves the join rows of a payment.
	FindLinksByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentTimeEntry, error)

	// FindLinkedEntryIDs returns, out of the given time entry IDs, those that
	// already appear in any payment_time_entries row.
	FindLinkedEntryIDs(ctx context.Context, entryIDs []string) ([]string, error)

	// FindPaidEntryIDs returns the IDs of the user's time entries linked to a
	// payment. When completedOnly is true only links belonging to completed
	// payments count.
	FindPaidEntryIDs(ctx context.Context, userID string, completedOnly bool) (map[string]struct{}, error)

	// SumActivePayments sums the amounts of the user's payments that count
	// against the balance (every status except cancelled).
	SumActivePayments(ctx context.Context, userID string) (decimal.Decimal, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePaymentWithLinks persists the payment and its join rows as a single
	// database transaction. A duplicate time_entry_id surfaces as
	// apperrors.ErrConflict; partial writes are never observable.
	SavePaymentWithLinks(ctx context.Context, payment domain.Payment, links []domain.PaymentTimeEntry) error

	// UpdatePaymentStatus transitions a payment's status, recording
	// confirmed_at when provided.
	UpdatePaymentStatus(ctx context.Context, payment domain.Payment) error

	// DeleteLinksByPaymentID removes the join rows of a payment, releasing its
	// time entries for future payments.
	DeleteLinksByPaymentID(ctx context.Context, paymentID string) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction capabilities
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
