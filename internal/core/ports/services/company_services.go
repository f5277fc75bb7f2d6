package services

import (
	"context"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a company the principal is allowed to see.
	GetCompanyByID(ctx context.Context, principal domain.Principal, companyID string) (*domain.Company, error)

	// ListCompanies retrieves a paginated list of companies (developers only).
	ListCompanies(ctx context.Context, principal domain.Principal, limit, offset int) ([]domain.Company, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany creates a new company (developers only).
	CreateCompany(ctx context.Context, principal domain.Principal, req dto.CreateCompanyRequest) (*domain.Company, error)

	// UpdateCompany updates a company the principal administers.
	UpdateCompany(ctx context.Context, principal domain.Principal, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error)

	// DeleteCompany removes a company (developers only). Fails with
	// apperrors.ErrConflict while the company still has users.
	DeleteCompany(ctx context.Context, principal domain.Principal, companyID string) error
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}
