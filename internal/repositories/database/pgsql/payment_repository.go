package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
	"github.com/Drumblow/modularcompany-sub001/internal/models"
)

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(db *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &PgxPaymentRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.PaymentRepositoryWithTx = (*PgxPaymentRepository)(nil)

func toModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		UserID:      d.UserID,
		CreatorID:   d.CreatorID,
		Amount:      d.Amount,
		PaymentDate: d.PaymentDate,
		PeriodStart: d.PeriodStart,
		PeriodEnd:   d.PeriodEnd,
		Status:      string(d.Status),
		Description: d.Description,
		ConfirmedAt: d.ConfirmedAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		UserID:      m.UserID,
		CreatorID:   m.CreatorID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		Status:      domain.PaymentStatus(m.Status),
		Description: m.Description,
		ConfirmedAt: m.ConfirmedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const paymentColumns = `p.payment_id, p.user_id, p.creator_id, p.amount, p.payment_date,
		p.period_start, p.period_end, p.status, p.description, p.confirmed_at,
		p.created_at, p.created_by, p.last_updated_at, p.last_updated_by`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.UserID,
		&m.CreatorID,
		&m.Amount,
		&m.PaymentDate,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.Status,
		&m.Description,
		&m.ConfirmedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		WHERE p.payment_id = $1;
	`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}

	d := toDomainPayment(m)
	return &d, nil
}

func (r *PgxPaymentRepository) ListPaymentsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		WHERE p.user_id = $1
		ORDER BY p.payment_date DESC, p.created_at DESC
		LIMIT $2 OFFSET $3;
	`
	return r.queryPayments(ctx, query, userID, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *PgxPaymentRepository) ListPaymentsByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		JOIN users u ON u.user_id = p.user_id
		WHERE u.company_id = $1
		ORDER BY p.payment_date DESC, p.created_at DESC
		LIMIT $2 OFFSET $3;
	`
	return r.queryPayments(ctx, query, companyID, normalizeLimit(limit), normalizeOffset(offset))
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func (r *PgxPaymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]domain.Payment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, toDomainPayment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}

	return payments, nil
}

func (r *PgxPaymentRepository) FindLinksByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentTimeEntry, error) {
	query := `
		SELECT payment_id, time_entry_id, amount
		FROM payment_time_entries
		WHERE payment_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment links: %w", err)
	}
	defer rows.Close()

	links := []domain.PaymentTimeEntry{}
	for rows.Next() {
		var m models.PaymentTimeEntry
		if err := rows.Scan(&m.PaymentID, &m.TimeEntryID, &m.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan payment link row: %w", err)
		}
		links = append(links, domain.PaymentTimeEntry{
			PaymentID:   m.PaymentID,
			TimeEntryID: m.TimeEntryID,
			Amount:      m.Amount,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment link rows: %w", rows.Err())
	}

	return links, nil
}

func (r *PgxPaymentRepository) FindLinkedEntryIDs(ctx context.Context, entryIDs []string) ([]string, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT time_entry_id
		FROM payment_time_entries
		WHERE time_entry_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query linked entry IDs: %w", err)
	}
	defer rows.Close()

	linked := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan linked entry ID: %w", err)
		}
		linked = append(linked, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating linked entry ID rows: %w", rows.Err())
	}

	return linked, nil
}

func (r *PgxPaymentRepository) FindPaidEntryIDs(ctx context.Context, userID string, completedOnly bool) (map[string]struct{}, error) {
	query := `
		SELECT pte.time_entry_id
		FROM payment_time_entries pte
		JOIN payments p ON p.payment_id = pte.payment_id
		WHERE p.user_id = $1 AND ($2 = FALSE OR p.status = 'completed');
	`
	rows, err := r.Pool.Query(ctx, query, userID, completedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query paid entry IDs: %w", err)
	}
	defer rows.Close()

	paid := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan paid entry ID: %w", err)
		}
		paid[id] = struct{}{}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating paid entry ID rows: %w", rows.Err())
	}

	return paid, nil
}

func (r *PgxPaymentRepository) SumActivePayments(ctx context.Context, userID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE user_id = $1 AND status <> 'cancelled';
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}
	return sum, nil
}

// SavePaymentWithLinks writes the payment and its join rows in one
// transaction. The unique index on payment_time_entries.time_entry_id makes
// concurrent double payment of an entry fail here with ErrConflict.
func (r *PgxPaymentRepository) SavePaymentWithLinks(ctx context.Context, payment domain.Payment, links []domain.PaymentTimeEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	m := toModelPayment(payment)
	paymentQuery := `
        INSERT INTO payments (payment_id, user_id, creator_id, amount, payment_date,
                              period_start, period_end, status, description, confirmed_at,
                              created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err = tx.Exec(ctx, paymentQuery,
		m.PaymentID,
		m.UserID,
		m.CreatorID,
		m.Amount,
		m.PaymentDate,
		m.PeriodStart,
		m.PeriodEnd,
		m.Status,
		m.Description,
		m.ConfirmedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}

	linkQuery := `
        INSERT INTO payment_time_entries (payment_id, time_entry_id, amount)
        VALUES ($1, $2, $3);
    `
	for _, link := range links {
		if _, err := tx.Exec(ctx, linkQuery, link.PaymentID, link.TimeEntryID, link.Amount); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("time entry already linked to a payment: %w", apperrors.ErrConflict)
			}
			return fmt.Errorf("failed to save payment link: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPaymentRepository) UpdatePaymentStatus(ctx context.Context, payment domain.Payment) error {
	query := `
        UPDATE payments
        SET status = $1, confirmed_at = $2, last_updated_at = $3, last_updated_by = $4
        WHERE payment_id = $5;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		string(payment.Status),
		payment.ConfirmedAt,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
		payment.PaymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPaymentRepository) DeleteLinksByPaymentID(ctx context.Context, paymentID string) error {
	query := `DELETE FROM payment_time_entries WHERE payment_id = $1;`
	if _, err := r.Pool.Exec(ctx, query, paymentID); err != nil {
		return fmt.Errorf("failed to delete payment links: %w", err)
	}
	return nil
}
