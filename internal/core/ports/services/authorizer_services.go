package services

import (
	"context"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
)

// AuthorizerSvc is the single decision point for role-based access control.
// Every handler-facing service routes its permission checks through it instead
// of comparing role strings inline.
type AuthorizerSvc interface {
	// Authorize decides whether the principal may perform the action on the
	// resource. It returns nil on allow, or apperrors.ErrForbidden /
	// apperrors.ErrManagerWithoutCompany on deny.
	Authorize(ctx context.Context, principal domain.Principal, action domain.Action, resource domain.Resource) error
}
