package services

import (
	"context"
	"log/slog"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
)

// authorizerService is the single decision table for role-based access.
// Route handlers never compare role strings themselves; every permission
// question goes through Authorize.
type authorizerService struct {
	BaseService
}

// NewAuthorizerService creates the authorization policy service.
func NewAuthorizerService() portssvc.AuthorizerSvc {
	return &authorizerService{}
}

var _ portssvc.AuthorizerSvc = (*authorizerService)(nil)

// Authorize decides whether the principal may perform the action on the
// resource. Rules are evaluated in role precedence order:
//
//	DEVELOPER: allowed everything, system-wide.
//	ADMIN:     own company only; may not mutate other admins or developers
//	           (self-edit permitted) and may not grant ADMIN or DEVELOPER.
//	MANAGER:   read/approve on own company; may view and edit users of the
//	           own company but never escalate roles. A manager with no
//	           company is denied approvals with a distinguishable error.
//	EMPLOYEE:  own resources only; may not change the own role.
func (s *authorizerService) Authorize(ctx context.Context, principal domain.Principal, action domain.Action, resource domain.Resource) error {
	var err error
	switch principal.Role {
	case domain.RoleDeveloper:
		return nil
	case domain.RoleAdmin:
		err = s.authorizeAdmin(principal, action, resource)
	case domain.RoleManager:
		err = s.authorizeManager(principal, action, resource)
	case domain.RoleEmployee:
		err = s.authorizeEmployee(principal, action, resource)
	default:
		err = apperrors.ErrForbidden
	}

	if err != nil {
		s.LogDebug(ctx, "Authorization denied",
			slog.String("user_id", principal.UserID),
			slog.String("role", string(principal.Role)),
			slog.String("action", string(action)),
			slog.String("error", err.Error()))
	}
	return err
}

func (s *authorizerService) authorizeAdmin(principal domain.Principal, action domain.Action, resource domain.Resource) error {
	// Admins may not grant the ADMIN or DEVELOPER role.
	if resource.IsRoleChange && (resource.TargetRole == domain.RoleAdmin || resource.TargetRole == domain.RoleDeveloper) {
		return apperrors.ErrForbidden
	}

	// Admins always act on their own resources (own hours, payments they
	// created, their own profile).
	if resource.OwnerUserID != "" && resource.OwnerUserID == principal.UserID {
		return nil
	}

	if !sameCompany(principal.CompanyID, resource.CompanyID) {
		return apperrors.ErrForbidden
	}

	// Admins may not mutate or delete another admin or a developer. Editing
	// themselves is permitted.
	if isMutation(action) && resource.OwnerUserID != "" && resource.OwnerUserID != principal.UserID {
		if resource.OwnerRole == domain.RoleAdmin || resource.OwnerRole == domain.RoleDeveloper {
			return apperrors.ErrForbidden
		}
	}
	return nil
}

func (s *authorizerService) authorizeManager(principal domain.Principal, action domain.Action, resource domain.Resource) error {
	if action == domain.ActionApprove && principal.CompanyID == nil {
		// Deliberate guard: a manager without a company assignment cannot
		// approve anything, and the client needs to tell this case apart
		// from a plain permission denial.
		return apperrors.ErrManagerWithoutCompany
	}

	// Managers never escalate anyone to ADMIN or DEVELOPER.
	if resource.IsRoleChange && (resource.TargetRole == domain.RoleAdmin || resource.TargetRole == domain.RoleDeveloper) {
		return apperrors.ErrForbidden
	}

	switch action {
	case domain.ActionRead, domain.ActionApprove, domain.ActionUpdate:
		if sameCompany(principal.CompanyID, resource.CompanyID) {
			return nil
		}
		// Managers always see their own resources.
		if resource.OwnerUserID == principal.UserID {
			return nil
		}
		return apperrors.ErrForbidden
	case domain.ActionCreate:
		// Managers create only resources of their own (e.g. their time
		// entries) or payments for their company.
		if resource.OwnerUserID == principal.UserID || sameCompany(principal.CompanyID, resource.CompanyID) {
			return nil
		}
		return apperrors.ErrForbidden
	case domain.ActionDelete:
		// Deletion is limited to the manager's own resources; company users
		// and their data stay out of reach.
		if resource.OwnerUserID == principal.UserID {
			return nil
		}
		return apperrors.ErrForbidden
	default:
		return apperrors.ErrForbidden
	}
}

func (s *authorizerService) authorizeEmployee(principal domain.Principal, action domain.Action, resource domain.Resource) error {
	if resource.OwnerUserID != principal.UserID {
		return apperrors.ErrForbidden
	}
	// Employees may not change their own role.
	if resource.IsRoleChange {
		return apperrors.ErrForbidden
	}
	switch action {
	case domain.ActionRead, domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete:
		return nil
	default:
		return apperrors.ErrForbidden
	}
}

func isMutation(action domain.Action) bool {
	switch action {
	case domain.ActionUpdate, domain.ActionDelete, domain.ActionManage:
		return true
	}
	return false
}

func sameCompany(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}
