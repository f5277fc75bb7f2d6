package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
	"github.com/Drumblow/modularcompany-sub001/internal/models"
	"github.com/Drumblow/modularcompany-sub001/internal/utils/pagination"
)

type PgxTimeEntryRepository struct {
	db *pgxpool.Pool
}

func newPgxTimeEntryRepository(db *pgxpool.Pool) portsrepo.TimeEntryRepositoryFacade {
	return &PgxTimeEntryRepository{db: db}
}

var _ portsrepo.TimeEntryRepositoryFacade = (*PgxTimeEntryRepository)(nil)

func toModelTimeEntry(d domain.TimeEntry) models.TimeEntry {
	m := models.TimeEntry{
		EntryID:         d.EntryID,
		UserID:          d.UserID,
		EntryDate:       d.Date,
		StartTime:       d.StartTime,
		EndTime:         d.EndTime,
		TotalHours:      d.TotalHours,
		RejectionReason: d.RejectionReason,
		Project:         d.Project,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	yes := true
	switch d.Status {
	case domain.EntryApproved:
		m.Approved = &yes
	case domain.EntryRejected:
		m.Rejected = &yes
	}
	return m
}

func toDomainTimeEntry(m models.TimeEntry) domain.TimeEntry {
	d := domain.TimeEntry{
		EntryID:         m.EntryID,
		UserID:          m.UserID,
		Date:            m.EntryDate,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		TotalHours:      m.TotalHours,
		Status:          domain.EntryPending,
		RejectionReason: m.RejectionReason,
		Project:         m.Project,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	switch {
	case m.Approved != nil && *m.Approved:
		d.Status = domain.EntryApproved
	case m.Rejected != nil && *m.Rejected:
		d.Status = domain.EntryRejected
	}
	return d
}

const timeEntryColumns = `e.entry_id, e.user_id, e.entry_date, e.start_time, e.end_time, e.total_hours,
		e.approved, e.rejected, e.rejection_reason, e.project,
		e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`

func scanTimeEntry(row pgx.Row) (models.TimeEntry, error) {
	var m models.TimeEntry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.EntryDate,
		&m.StartTime,
		&m.EndTime,
		&m.TotalHours,
		&m.Approved,
		&m.Rejected,
		&m.RejectionReason,
		&m.Project,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTimeEntryRepository) SaveEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := toModelTimeEntry(entry)
	query := `
        INSERT INTO time_entries (entry_id, user_id, entry_date, start_time, end_time, total_hours,
                                  approved, rejected, rejection_reason, project,
                                  created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.db.Exec(ctx, query,
		m.EntryID,
		m.UserID,
		m.EntryDate,
		m.StartTime,
		m.EndTime,
		m.TotalHours,
		m.Approved,
		m.Rejected,
		m.RejectionReason,
		m.Project,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save time entry: %w", err)
	}
	return nil
}

func (r *PgxTimeEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries e
		WHERE e.entry_id = $1;
	`
	m, err := scanTimeEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find time entry by ID %s: %w", entryID, err)
	}

	d := toDomainTimeEntry(m)
	return &d, nil
}

// ListEntries pages entries ordered by (entry_date, created_at) descending.
// The filter conditions are built dynamically; company scoping joins users.
func (r *PgxTimeEntryRepository) ListEntries(ctx context.Context, filter portsrepo.TimeEntryFilter, limit int, nextToken *string) ([]domain.TimeEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries e
		JOIN users u ON u.user_id = e.user_id
		WHERE u.deleted_at IS NULL
	`
	args := []interface{}{}
	argPos := 1

	addCond := func(cond string, value interface{}) {
		query += fmt.Sprintf(" AND "+cond, argPos)
		args = append(args, value)
		argPos++
	}

	if filter.UserID != nil {
		addCond("e.user_id = $%d", *filter.UserID)
	}
	if filter.CompanyID != nil {
		addCond("u.company_id = $%d", *filter.CompanyID)
	}
	if filter.From != nil {
		addCond("e.entry_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCond("e.entry_date <= $%d", *filter.To)
	}
	if filter.Status != nil {
		switch *filter.Status {
		case domain.EntryApproved:
			query += " AND e.approved = TRUE"
		case domain.EntryRejected:
			query += " AND e.rejected = TRUE"
		case domain.EntryPending:
			query += " AND e.approved IS NULL AND e.rejected IS NULL"
		}
	}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += fmt.Sprintf(" AND (e.entry_date, e.created_at) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, entryDate, createdAt)
		argPos += 2
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY e.entry_date DESC, e.created_at DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.TimeEntry{}
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan time entry row: %w", err)
		}
		entries = append(entries, toDomainTimeEntry(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating time entry rows: %w", rows.Err())
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newToken = &token
	}

	return entries, newToken, nil
}

func (r *PgxTimeEntryRepository) FindEntriesForDay(ctx context.Context, userID string, day time.Time, excludeEntryID string) ([]domain.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries e
		WHERE e.user_id = $1 AND e.entry_date = $2 AND e.entry_id <> $3
		ORDER BY e.start_time;
	`
	rows, err := r.db.Query(ctx, query, userID, day, excludeEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries for day: %w", err)
	}
	defer rows.Close()

	entries := []domain.TimeEntry{}
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry row: %w", err)
		}
		entries = append(entries, toDomainTimeEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", rows.Err())
	}

	return entries, nil
}

func (r *PgxTimeEntryRepository) FindApprovedEntries(ctx context.Context, userID string, from, to *time.Time) ([]domain.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries e
		WHERE e.user_id = $1 AND e.approved = TRUE
		  AND ($2::timestamptz IS NULL OR e.entry_date >= $2)
		  AND ($3::timestamptz IS NULL OR e.entry_date <= $3)
		ORDER BY e.entry_date, e.start_time;
	`
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved time entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.TimeEntry{}
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry row: %w", err)
		}
		entries = append(entries, toDomainTimeEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", rows.Err())
	}

	return entries, nil
}

func (r *PgxTimeEntryRepository) UpdateEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := toModelTimeEntry(entry)
	query := `
        UPDATE time_entries
        SET entry_date = $1, start_time = $2, end_time = $3, total_hours = $4,
            approved = $5, rejected = $6, rejection_reason = $7, project = $8,
            last_updated_at = $9, last_updated_by = $10
        WHERE entry_id = $11;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.EntryDate,
		m.StartTime,
		m.EndTime,
		m.TotalHours,
		m.Approved,
		m.Rejected,
		m.RejectionReason,
		m.Project,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.EntryID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update time entry query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("time entry not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTimeEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM time_entries WHERE entry_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("time entry not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
