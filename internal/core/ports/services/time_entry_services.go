package services

import (
	"context"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

// TimeEntryReaderSvc defines read operations for time entries
type TimeEntryReaderSvc interface {
	// GetEntryByID retrieves a time entry the principal is allowed to see.
	GetEntryByID(ctx context.Context, principal domain.Principal, entryID string) (*domain.TimeEntry, error)

	// ListEntries retrieves a page of time entries matching the params,
	// scoped to the principal's visibility.
	ListEntries(ctx context.Context, principal domain.Principal, params dto.ListTimeEntriesParams) ([]domain.TimeEntry, *string, error)
}

// TimeEntryWriterSvc defines owner mutations of time entries
type TimeEntryWriterSvc interface {
	// CreateEntry logs a new time entry for the principal. Overlapping
	// intervals on the same day fail with apperrors.ErrConflict.
	CreateEntry(ctx context.Context, principal domain.Principal, req dto.CreateTimeEntryRequest) (*domain.TimeEntry, error)

	// UpdateEntry edits a pending or rejected entry; editing a rejected entry
	// resets it to pending. Approved entries fail with
	// apperrors.ErrInvalidState, paid entries with apperrors.ErrConflict.
	UpdateEntry(ctx context.Context, principal domain.Principal, entryID string, req dto.UpdateTimeEntryRequest) (*domain.TimeEntry, error)

	// DeleteEntry removes an entry under the same eligibility rules as edits.
	DeleteEntry(ctx context.Context, principal domain.Principal, entryID string) error
}

// TimeEntryApprovalSvc defines the approval workflow
type TimeEntryApprovalSvc interface {
	// ApproveEntry transitions a pending entry to approved and notifies the
	// owner (best-effort).
	ApproveEntry(ctx context.Context, principal domain.Principal, entryID string) (*domain.TimeEntry, error)

	// RejectEntry transitions a pending entry to rejected with the mandatory
	// reason and notifies the owner (best-effort).
	RejectEntry(ctx context.Context, principal domain.Principal, entryID string, reason string) (*domain.TimeEntry, error)
}

// TimeEntrySvcFacade combines all time-entry-related service interfaces
type TimeEntrySvcFacade interface {
	TimeEntryReaderSvc
	TimeEntryWriterSvc
	TimeEntryApprovalSvc
}
