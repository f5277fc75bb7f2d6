package dto

import (
	"time"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
)

// CreateCompanyRequest defines data for creating a new company.
type CreateCompanyRequest struct {
	Name string             `json:"name" binding:"required,min=2,max=100"`
	Plan domain.CompanyPlan `json:"plan" binding:"required,oneof=basic premium enterprise"`
}

// UpdateCompanyRequest defines the data allowed for updating a company.
type UpdateCompanyRequest struct {
	Name     *string             `json:"name" binding:"omitempty,min=2,max=100"`
	Plan     *domain.CompanyPlan `json:"plan" binding:"omitempty,oneof=basic premium enterprise"`
	IsActive *bool               `json:"isActive"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID string             `json:"companyID"`
	Name      string             `json:"name"`
	Plan      domain.CompanyPlan `json:"plan"`
	IsActive  bool               `json:"isActive"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Plan:      c.Plan,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

// ListCompaniesResponse wraps a list of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToListCompaniesResponse converts a slice of domain.Company to DTO.
func ToListCompaniesResponse(cs []domain.Company) ListCompaniesResponse {
	out := make([]CompanyResponse, len(cs))
	for i := range cs {
		out[i] = ToCompanyResponse(&cs[i])
	}
	return ListCompaniesResponse{Companies: out}
}
