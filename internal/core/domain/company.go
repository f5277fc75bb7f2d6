package domain

// CompanyPlan identifies the subscription tier of a company.
type CompanyPlan string

const (
	PlanBasic      CompanyPlan = "basic"
	PlanPremium    CompanyPlan = "premium"
	PlanEnterprise CompanyPlan = "enterprise"
)

// Company represents a tenant. Every non-developer user belongs to exactly one.
type Company struct {
	CompanyID string      `json:"companyID"` // Primary Key (UUID)
	Name      string      `json:"name"`
	Plan      CompanyPlan `json:"plan"`
	IsActive  bool        `json:"isActive"`
	AuditFields
}
