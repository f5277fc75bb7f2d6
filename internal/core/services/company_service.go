package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

var ErrCompanyHasUsers = fmt.Errorf("%w: company still has users", apperrors.ErrConflict)

// companyService implements company management.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	authorizer  portssvc.AuthorizerSvc
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo, authorizer: authorizer}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates a new company. Only developers can do this.
func (s *companyService) CreateCompany(ctx context.Context, principal domain.Principal, req dto.CreateCompanyRequest) (*domain.Company, error) {
	if principal.Role != domain.RoleDeveloper {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		Plan:      req.Plan,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to create company", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Company created", slog.String("company_id", company.CompanyID))
	return &company, nil
}

// GetCompanyByID retrieves a company the principal is allowed to see.
func (s *companyService) GetCompanyByID(ctx context.Context, principal domain.Principal, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	err = s.authorizer.Authorize(ctx, principal, domain.ActionRead, domain.Resource{
		CompanyID: &company.CompanyID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return company, nil
}

// ListCompanies retrieves a paginated list of companies. Developers only.
func (s *companyService) ListCompanies(ctx context.Context, principal domain.Principal, limit, offset int) ([]domain.Company, error) {
	if principal.Role != domain.RoleDeveloper {
		return nil, apperrors.ErrForbidden
	}
	if limit <= 0 {
		limit = 20
	}
	return s.companyRepo.FindCompanies(ctx, limit, offset)
}

// UpdateCompany updates a company the principal administers.
func (s *companyService) UpdateCompany(ctx context.Context, principal domain.Principal, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	err = s.authorizer.Authorize(ctx, principal, domain.ActionManage, domain.Resource{
		CompanyID: &company.CompanyID,
	})
	if err != nil {
		return nil, err
	}
	// Admins manage their own company's details but never its plan.
	if req.Plan != nil && principal.Role != domain.RoleDeveloper {
		return nil, apperrors.ErrForbidden
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Plan != nil {
		company.Plan = *req.Plan
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = principal.UserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Company updated", slog.String("company_id", companyID))
	return company, nil
}

// DeleteCompany removes a company. Developers only, and only while empty.
func (s *companyService) DeleteCompany(ctx context.Context, principal domain.Principal, companyID string) error {
	if principal.Role != domain.RoleDeveloper {
		return apperrors.ErrForbidden
	}

	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return err
	}

	count, err := s.companyRepo.CountCompanyUsers(ctx, companyID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCompanyHasUsers
	}

	if err := s.companyRepo.DeleteCompany(ctx, companyID); err != nil {
		s.LogError(ctx, err, "Failed to delete company", slog.String("company_id", companyID))
		return err
	}

	s.LogInfo(ctx, "Company deleted", slog.String("company_id", companyID))
	return nil
}
