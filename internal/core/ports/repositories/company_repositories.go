package repositories

import (
	"context"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its ID.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// FindCompanies retrieves a paginated list of companies.
	FindCompanies(ctx context.Context, limit int, offset int) ([]domain.Company, error)

	// CountCompanyUsers returns the number of non-deleted users assigned to a company.
	CountCompanyUsers(ctx context.Context, companyID string) (int, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// UpdateCompany updates an existing company's details.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// DeleteCompany removes a company. Fails with apperrors.ErrConflict while
	// users still reference it.
	DeleteCompany(ctx context.Context, companyID string) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
