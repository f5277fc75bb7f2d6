package services

import (
	"context"
	"time"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

// PaymentReaderSvc defines read operations for payments and balances
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a payment (with its allocation rows) the
	// principal is allowed to see.
	GetPaymentByID(ctx context.Context, principal domain.Principal, paymentID string) (*domain.Payment, []domain.PaymentTimeEntry, error)

	// ListPayments retrieves payments visible to the principal, optionally
	// filtered to one recipient.
	ListPayments(ctx context.Context, principal domain.Principal, params dto.ListPaymentsParams) ([]domain.Payment, error)

	// ComputeBalance derives the pay state of a user over an optional date
	// range. Idempotent: no writes occur.
	ComputeBalance(ctx context.Context, principal domain.Principal, userID string, from, to *time.Time) (*domain.Balance, error)
}

// PaymentWriterSvc defines payment lifecycle operations
type PaymentWriterSvc interface {
	// CreatePayment creates a payment over a set of approved, unpaid time
	// entries of one recipient. The payment and its allocation rows are
	// written atomically; reusing an already-paid entry fails with
	// apperrors.ErrConflict, unapproved or foreign entries with
	// apperrors.ErrInvalidState.
	CreatePayment(ctx context.Context, principal domain.Principal, req dto.CreatePaymentRequest) (*domain.Payment, []domain.PaymentTimeEntry, error)

	// ConfirmPayment lets the recipient confirm receipt, completing the
	// payment and notifying its creator (best-effort).
	ConfirmPayment(ctx context.Context, principal domain.Principal, paymentID string) (*domain.Payment, error)

	// CancelPayment cancels a not-yet-completed payment and releases its time
	// entries.
	CancelPayment(ctx context.Context, principal domain.Principal, paymentID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
