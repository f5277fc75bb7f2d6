package dto

import (
	"time"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest defines data for an admin/developer creating a user.
type CreateUserRequest struct {
	Name       string           `json:"name" binding:"required,min=2,max=100"`
	Email      string           `json:"email" binding:"required,email"`
	Password   string           `json:"password" binding:"required,min=8"`
	Role       domain.Role      `json:"role" binding:"required,oneof=DEVELOPER ADMIN MANAGER EMPLOYEE"`
	CompanyID  *string          `json:"companyID"`
	HourlyRate *decimal.Decimal `json:"hourlyRate"`
	ManagerID  *string          `json:"managerID"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateUserRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=2,max=100"`
	Email      *string          `json:"email" binding:"omitempty,email"`
	Password   *string          `json:"password" binding:"omitempty,min=8"`
	Role       *domain.Role     `json:"role" binding:"omitempty,oneof=DEVELOPER ADMIN MANAGER EMPLOYEE"`
	CompanyID  *string          `json:"companyID"`
	HourlyRate *decimal.Decimal `json:"hourlyRate"`
	ManagerID  *string          `json:"managerID"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID     string           `json:"userID"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Role       domain.Role      `json:"role"`
	CompanyID  *string          `json:"companyID,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourlyRate,omitempty"`
	ManagerID  *string          `json:"managerID,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		CompanyID:  u.CompanyID,
		HourlyRate: u.HourlyRate,
		ManagerID:  u.ManagerID,
		CreatedAt:  u.CreatedAt,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to DTO.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: out}
}

// BalanceResponse defines the computed balance returned for a user.
type BalanceResponse struct {
	UserID             string          `json:"userID"`
	TotalApprovedHours decimal.Decimal `json:"totalApprovedHours"`
	TotalAmountDue     decimal.Decimal `json:"totalAmountDue"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	PaidHours          decimal.Decimal `json:"paidHours"`
	UnpaidHours        decimal.Decimal `json:"unpaidHours"`
	Balance            decimal.Decimal `json:"balance"`
}

// ToBalanceResponse converts domain.Balance to DTO.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		UserID:             b.UserID,
		TotalApprovedHours: b.TotalApprovedHours,
		TotalAmountDue:     b.TotalAmountDue,
		TotalPaid:          b.TotalPaid,
		PaidHours:          b.PaidHours,
		UnpaidHours:        b.UnpaidHours,
		Balance:            b.Balance,
	}
}
