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
	"github.com/Drumblow/modularcompany-sub001/internal/utils"
)

var (
	ErrCompanyRequired  = fmt.Errorf("%w: managers and employees must belong to a company", apperrors.ErrValidation)
	ErrEmailTaken       = fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	ErrBadCredentials   = fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	ErrUnverifiedGoogle = fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
)

// userService implements user management and credential checks.
type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	companyRepo portsrepo.CompanyReader
	authorizer  portssvc.AuthorizerSvc
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo portsrepo.UserRepositoryFacade,
	companyRepo portsrepo.CompanyReader,
	authorizer portssvc.AuthorizerSvc,
) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		authorizer:  authorizer,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a self-registered EMPLOYEE account without a company.
// An administrator assigns the company later.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "self-registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "self-registration",
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		s.LogError(ctx, err, "Failed to register user", slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// AuthenticateUser checks email/password credentials.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// FindOrCreateGoogleUser resolves a verified Google profile to a local user,
// creating a company-less EMPLOYEE on first sign-in.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	if !info.VerifiedEmail {
		return nil, ErrUnverifiedGoogle
	}

	user, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// First Google sign-in: the account gets an unusable random password so
	// only the Google flow can authenticate it until the user sets one.
	random, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	hash, err := utils.HashPassword(random)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	now := time.Now()
	created := domain.User{
		UserID:       uuid.NewString(),
		Name:         info.Name,
		Email:        info.Email,
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	created.CreatedBy = created.UserID
	created.LastUpdatedBy = created.UserID

	if err := s.userRepo.SaveUser(ctx, created); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User created from Google sign-in", slog.String("user_id", created.UserID))
	return &created, nil
}

// EnsureDeveloper creates the bootstrap developer account if it does not
// exist yet. Idempotent.
func (s *userService) EnsureDeveloper(ctx context.Context, name, email, password string) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	dev := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleDeveloper,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	dev.CreatedBy = dev.UserID
	dev.LastUpdatedBy = dev.UserID

	if err := s.userRepo.SaveUser(ctx, dev); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Bootstrap developer created", slog.String("user_id", dev.UserID))
	return &dev, nil
}

// CreateUser creates a new user on behalf of an admin, manager or developer.
func (s *userService) CreateUser(ctx context.Context, principal domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	if err := s.authorizer.Authorize(ctx, principal, domain.ActionCreate, domain.Resource{
		CompanyID:    req.CompanyID,
		IsRoleChange: true,
		TargetRole:   req.Role,
	}); err != nil {
		return nil, err
	}

	if req.Role.RequiresCompany() && req.CompanyID == nil {
		return nil, ErrCompanyRequired
	}
	if req.CompanyID != nil {
		if _, err := s.companyRepo.FindCompanyByID(ctx, *req.CompanyID); err != nil {
			return nil, err
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		CompanyID:    req.CompanyID,
		HourlyRate:   req.HourlyRate,
		ManagerID:    req.ManagerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
		},
	}
	applyRoleInvariants(&user)

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		s.LogError(ctx, err, "Failed to create user", slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)))
	return &user, nil
}

// applyRoleInvariants enforces the role side effects: managers carry no
// hourly rate and only employees carry a manager reference.
func applyRoleInvariants(user *domain.User) {
	if user.Role == domain.RoleManager {
		user.HourlyRate = nil
	}
	if user.Role != domain.RoleEmployee {
		user.ManagerID = nil
	}
}

// GetUserByID retrieves a user the principal is allowed to see.
func (s *userService) GetUserByID(ctx context.Context, principal domain.Principal, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.authorizer.Authorize(ctx, principal, domain.ActionRead, domain.Resource{
		OwnerUserID: user.UserID,
		CompanyID:   user.CompanyID,
		OwnerRole:   user.Role,
	})
	if err != nil {
		// Cross-tenant users stay invisible.
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users scoped to the principal.
func (s *userService) ListUsers(ctx context.Context, principal domain.Principal, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}

	switch principal.Role {
	case domain.RoleDeveloper:
		return s.userRepo.FindUsers(ctx, nil, limit, offset)
	case domain.RoleAdmin, domain.RoleManager:
		if principal.CompanyID == nil {
			return nil, apperrors.ErrForbidden
		}
		return s.userRepo.FindUsers(ctx, principal.CompanyID, limit, offset)
	default:
		self, err := s.userRepo.FindUserByID(ctx, principal.UserID)
		if err != nil {
			return nil, err
		}
		return []domain.User{*self}, nil
	}
}

// UpdateUser updates an existing user, applying the role side effects.
func (s *userService) UpdateUser(ctx context.Context, principal domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	isRoleChange := req.Role != nil && *req.Role != user.Role
	resource := domain.Resource{
		OwnerUserID:  user.UserID,
		CompanyID:    user.CompanyID,
		OwnerRole:    user.Role,
		IsRoleChange: isRoleChange,
	}
	if isRoleChange {
		resource.TargetRole = *req.Role
	}
	if err := s.authorizer.Authorize(ctx, principal, domain.ActionUpdate, resource); err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.CompanyID != nil {
		if _, err := s.companyRepo.FindCompanyByID(ctx, *req.CompanyID); err != nil {
			return nil, err
		}
		user.CompanyID = req.CompanyID
	}
	if req.HourlyRate != nil {
		user.HourlyRate = req.HourlyRate
	}
	if req.ManagerID != nil {
		user.ManagerID = req.ManagerID
	}
	if isRoleChange {
		user.Role = *req.Role
		if user.Role.RequiresCompany() && user.CompanyID == nil {
			return nil, ErrCompanyRequired
		}
	}
	applyRoleInvariants(user)

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = principal.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", user.UserID))
	return user, nil
}

// DeleteUser soft-deletes a user.
func (s *userService) DeleteUser(ctx context.Context, principal domain.Principal, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.authorizer.Authorize(ctx, principal, domain.ActionDelete, domain.Resource{
		OwnerUserID: user.UserID,
		CompanyID:   user.CompanyID,
		OwnerRole:   user.Role,
	}); err != nil {
		return err
	}

	if err := s.userRepo.MarkUserDeleted(ctx, user.UserID, time.Now(), principal.UserID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", user.UserID))
		return err
	}

	s.LogInfo(ctx, "User deleted", slog.String("user_id", user.UserID))
	return nil
}
