package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
	"github.com/Drumblow/modularcompany-sub001/internal/models"
)

type PgxCompanyRepository struct {
	db *pgxpool.Pool
}

func newPgxCompanyRepository(db *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{db: db}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func toModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID: d.CompanyID,
		Name:      d.Name,
		Plan:      string(d.Plan),
		IsActive:  d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID: m.CompanyID,
		Name:      m.Name,
		Plan:      domain.CompanyPlan(m.Plan),
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const companyColumns = `company_id, name, plan, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.Plan,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := toModelCompany(company)
	query := `
        INSERT INTO companies (company_id, name, plan, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		m.CompanyID,
		m.Name,
		m.Plan,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE company_id = $1;
	`
	m, err := scanCompany(r.db.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}

	d := toDomainCompany(m)
	return &d, nil
}

func (r *PgxCompanyRepository) FindCompanies(ctx context.Context, limit int, offset int) ([]domain.Company, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + companyColumns + `
        FROM companies
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		m, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, toDomainCompany(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", rows.Err())
	}

	return companies, nil
}

func (r *PgxCompanyRepository) CountCompanyUsers(ctx context.Context, companyID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM users
		WHERE company_id = $1 AND deleted_at IS NULL;
	`
	var count int
	if err := r.db.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count company users: %w", err)
	}
	return count, nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := toModelCompany(company)
	query := `
        UPDATE companies
        SET name = $1, plan = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
        WHERE company_id = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name,
		m.Plan,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update company query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCompanyRepository) DeleteCompany(ctx context.Context, companyID string) error {
	query := `DELETE FROM companies WHERE company_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, companyID)
	if err != nil {
		// Users still referencing the company hit the FK constraint.
		if isForeignKeyViolation(err) {
			return fmt.Errorf("company still has users: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
