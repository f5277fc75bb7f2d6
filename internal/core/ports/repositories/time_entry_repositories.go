package repositories

import (
	"context"
	"time"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
)

// TimeEntryFilter narrows time entry listings.
type TimeEntryFilter struct {
	UserID    *string
	CompanyID *string
	From      *time.Time
	To        *time.Time
	Status    *domain.EntryStatus
}

// TimeEntryReader defines read operations for time entry data
type TimeEntryReader interface {
	// FindEntryByID retrieves a specific time entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error)

	// ListEntries retrieves time entries matching the filter using token-based
	// pagination over the entry date. It returns the entries and a token for
	// the next page.
	ListEntries(ctx context.Context, filter TimeEntryFilter, limit int, nextToken *string) ([]domain.TimeEntry, *string, error)

	// FindEntriesForDay retrieves all of a user's entries on a calendar day,
	// used for overlap detection. When excludeEntryID is non-empty that entry
	// is left out (edits compare against the others only).
	FindEntriesForDay(ctx context.Context, userID string, day time.Time, excludeEntryID string) ([]domain.TimeEntry, error)

	// FindApprovedEntries retrieves a user's approved entries, optionally
	// bounded by [from, to] on the entry date.
	FindApprovedEntries(ctx context.Context, userID string, from, to *time.Time) ([]domain.TimeEntry, error)
}

// TimeEntryWriter defines write operations for time entry data
type TimeEntryWriter interface {
	// SaveEntry persists a new time entry.
	SaveEntry(ctx context.Context, entry domain.TimeEntry) error

	// UpdateEntry updates an existing time entry, including its lifecycle state.
	UpdateEntry(ctx context.Context, entry domain.TimeEntry) error

	// DeleteEntry removes a time entry.
	DeleteEntry(ctx context.Context, entryID string) error
}

// TimeEntryRepositoryFacade combines all time-entry-related repository interfaces
type TimeEntryRepositoryFacade interface {
	TimeEntryReader
	TimeEntryWriter
}
