package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/core/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
	"github.com/Drumblow/modularcompany-sub001/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockCompanyRepo *MockCompanyRepository
	service         portssvc.UserSvcFacade

	companyID string
	admin     domain.Principal
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockCompanyRepo = new(MockCompanyRepository)
	s.service = services.NewUserService(s.mockUserRepo, s.mockCompanyRepo, services.NewAuthorizerService())

	s.companyID = uuid.NewString()
	s.admin = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin, CompanyID: &s.companyID}
}

func (s *UserServiceTestSuite) TestRegisterCreatesCompanylessEmployee() {
	ctx := context.Background()
	s.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil)

	user, err := s.service.Register(ctx, dto.RegisterRequest{
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		Password: "s3cret-enough",
	})

	s.Require().NoError(err)
	s.Equal(domain.RoleEmployee, user.Role)
	s.Nil(user.CompanyID)
	s.NotEqual("s3cret-enough", user.PasswordHash)
	s.True(utils.CheckPasswordHash("s3cret-enough", user.PasswordHash))
}

func (s *UserServiceTestSuite) TestRegisterDuplicateEmail() {
	ctx := context.Background()
	s.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate)

	_, err := s.service.Register(ctx, dto.RegisterRequest{
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		Password: "s3cret-enough",
	})

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestAuthenticateUserWrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("right-password")
	s.Require().NoError(err)
	s.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").
		Return(&domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: hash}, nil)

	_, err = s.service.AuthenticateUser(ctx, "ana@example.com", "wrong-password")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestAuthenticateUnknownEmailMasked() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	_, err := s.service.AuthenticateUser(ctx, "ghost@example.com", "whatever")

	// Unknown email and wrong password are indistinguishable to the caller.
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestCreateEmployeeWithoutCompanyFails() {
	ctx := context.Background()
	developer := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleDeveloper}

	_, err := s.service.CreateUser(ctx, developer, dto.CreateUserRequest{
		Name:     "Bruno Lima",
		Email:    "bruno@example.com",
		Password: "s3cret-enough",
		Role:     domain.RoleEmployee,
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestAdminCannotGrantAdminRole() {
	ctx := context.Background()

	_, err := s.service.CreateUser(ctx, s.admin, dto.CreateUserRequest{
		Name:      "Carla Dias",
		Email:     "carla@example.com",
		Password:  "s3cret-enough",
		Role:      domain.RoleAdmin,
		CompanyID: &s.companyID,
	})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *UserServiceTestSuite) TestCreateManagerDropsHourlyRate() {
	ctx := context.Background()
	rate := decimal.NewFromInt(35)
	s.mockCompanyRepo.On("FindCompanyByID", ctx, s.companyID).
		Return(&domain.Company{CompanyID: s.companyID, Name: "Acme"}, nil)
	s.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil)

	user, err := s.service.CreateUser(ctx, s.admin, dto.CreateUserRequest{
		Name:       "Daniel Rocha",
		Email:      "daniel@example.com",
		Password:   "s3cret-enough",
		Role:       domain.RoleManager,
		CompanyID:  &s.companyID,
		HourlyRate: &rate,
	})

	s.Require().NoError(err)
	s.Nil(user.HourlyRate, "managers are unpaid by the hour")
}

func (s *UserServiceTestSuite) TestCreateUserInUnknownCompany() {
	ctx := context.Background()
	developer := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleDeveloper}
	ghostCompany := uuid.NewString()
	s.mockCompanyRepo.On("FindCompanyByID", ctx, ghostCompany).Return(nil, apperrors.ErrNotFound)

	_, err := s.service.CreateUser(ctx, developer, dto.CreateUserRequest{
		Name:      "Elisa Prado",
		Email:     "elisa@example.com",
		Password:  "s3cret-enough",
		Role:      domain.RoleEmployee,
		CompanyID: &ghostCompany,
	})

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *UserServiceTestSuite) TestGetUserCrossCompanyMaskedAsNotFound() {
	ctx := context.Background()
	otherCompany := uuid.NewString()
	target := &domain.User{UserID: uuid.NewString(), Role: domain.RoleEmployee, CompanyID: &otherCompany}
	s.mockUserRepo.On("FindUserByID", ctx, target.UserID).Return(target, nil)

	_, err := s.service.GetUserByID(ctx, s.admin, target.UserID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *UserServiceTestSuite) TestUpdateRoleToEmployeeRequiresCompany() {
	ctx := context.Background()
	developer := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleDeveloper}
	target := &domain.User{UserID: uuid.NewString(), Role: domain.RoleDeveloper}
	s.mockUserRepo.On("FindUserByID", ctx, target.UserID).Return(target, nil)

	newRole := domain.RoleEmployee
	_, err := s.service.UpdateUser(ctx, developer, target.UserID, dto.UpdateUserRequest{Role: &newRole})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestEmployeeCannotChangeOwnRole() {
	ctx := context.Background()
	employee := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleEmployee, CompanyID: &s.companyID}
	self := &domain.User{UserID: employee.UserID, Role: domain.RoleEmployee, CompanyID: &s.companyID}
	s.mockUserRepo.On("FindUserByID", ctx, employee.UserID).Return(self, nil)

	newRole := domain.RoleManager
	_, err := s.service.UpdateUser(ctx, employee, employee.UserID, dto.UpdateUserRequest{Role: &newRole})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *UserServiceTestSuite) TestDeleteUserSoftDeletes() {
	ctx := context.Background()
	target := &domain.User{UserID: uuid.NewString(), Role: domain.RoleEmployee, CompanyID: &s.companyID}
	s.mockUserRepo.On("FindUserByID", ctx, target.UserID).Return(target, nil)
	s.mockUserRepo.On("MarkUserDeleted", ctx, target.UserID, mock.AnythingOfType("time.Time"), s.admin.UserID).Return(nil)

	err := s.service.DeleteUser(ctx, s.admin, target.UserID)

	s.Require().NoError(err)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestEnsureDeveloperIsIdempotent() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "dev@example.com", Role: domain.RoleDeveloper}
	s.mockUserRepo.On("FindUserByEmail", ctx, "dev@example.com").Return(existing, nil)

	dev, err := s.service.EnsureDeveloper(ctx, "Developer", "dev@example.com", "s3cret-enough")

	s.Require().NoError(err)
	s.Equal(existing.UserID, dev.UserID)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUserRejectsUnverified() {
	_, err := s.service.FindOrCreateGoogleUser(context.Background(), domain.GoogleUserInfo{
		Email:         "ana@example.com",
		VerifiedEmail: false,
	})
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
