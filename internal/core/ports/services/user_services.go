package services

import (
	"context"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user the principal is allowed to see.
	GetUserByID(ctx context.Context, principal domain.Principal, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users scoped to the principal's
	// visibility (developers see all, others their own company).
	ListUsers(ctx context.Context, principal domain.Principal, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user on behalf of an admin or developer,
	// enforcing the role-grant restrictions of the policy.
	CreateUser(ctx context.Context, principal domain.Principal, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user. Role changes apply the promotion
	// side effects: hourlyRate cleared on promotion to MANAGER, managerID
	// cleared when the role moves away from EMPLOYEE.
	UpdateUser(ctx context.Context, principal domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, principal domain.Principal, userID string) error
}

// UserAuthSvc defines operations used by the authentication endpoints.
type UserAuthSvc interface {
	// Register creates a self-registered EMPLOYEE account.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// AuthenticateUser checks email/password credentials.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves a verified Google profile to a local
	// user, creating a company-less EMPLOYEE on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	// EnsureDeveloper creates the bootstrap developer account if it does not
	// exist yet and returns it. Idempotent.
	EnsureDeveloper(ctx context.Context, name, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
