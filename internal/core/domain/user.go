package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role defines the access level of a user.
type Role string

const (
	RoleDeveloper Role = "DEVELOPER"
	RoleAdmin     Role = "ADMIN"
	RoleManager   Role = "MANAGER"
	RoleEmployee  Role = "EMPLOYEE"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleDeveloper, RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// RequiresCompany reports whether a user with this role must belong to a company.
// Developers operate system-wide and may be company-less.
func (r Role) RequiresCompany() bool {
	return r == RoleManager || r == RoleEmployee
}

// User represents an account in the system.
type User struct {
	UserID       string           `json:"userID"` // Primary Key (UUID)
	Name         string           `json:"name"`
	Email        string           `json:"email"` // Unique
	PasswordHash string           `json:"-"`
	Role         Role             `json:"role"`
	CompanyID    *string          `json:"companyID,omitempty"` // nil for company-less developers
	HourlyRate   *decimal.Decimal `json:"hourlyRate,omitempty"`
	ManagerID    *string          `json:"managerID,omitempty"` // only meaningful for employees
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// BelongsTo reports whether the user is assigned to the given company.
func (u *User) BelongsTo(companyID string) bool {
	return u.CompanyID != nil && *u.CompanyID == companyID
}
