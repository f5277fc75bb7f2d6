package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/core/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
	"github.com/Drumblow/modularcompany-sub001/internal/handlers"
	"github.com/Drumblow/modularcompany-sub001/internal/platform/config"
	"github.com/Drumblow/modularcompany-sub001/internal/utils"
)

// --- Mock TimeEntryService ---

type MockTimeEntryService struct {
	mock.Mock
}

var _ portssvc.TimeEntrySvcFacade = (*MockTimeEntryService)(nil)

func (m *MockTimeEntryService) GetEntryByID(ctx context.Context, principal domain.Principal, entryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, principal, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryService) ListEntries(ctx context.Context, principal domain.Principal, params dto.ListTimeEntriesParams) ([]domain.TimeEntry, *string, error) {
	args := m.Called(ctx, principal, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.TimeEntry), nextToken, args.Error(2)
}

func (m *MockTimeEntryService) CreateEntry(ctx context.Context, principal domain.Principal, req dto.CreateTimeEntryRequest) (*domain.TimeEntry, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryService) UpdateEntry(ctx context.Context, principal domain.Principal, entryID string, req dto.UpdateTimeEntryRequest) (*domain.TimeEntry, error) {
	args := m.Called(ctx, principal, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryService) DeleteEntry(ctx context.Context, principal domain.Principal, entryID string) error {
	args := m.Called(ctx, principal, entryID)
	return args.Error(0)
}

func (m *MockTimeEntryService) ApproveEntry(ctx context.Context, principal domain.Principal, entryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, principal, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryService) RejectEntry(ctx context.Context, principal domain.Principal, entryID string, reason string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, principal, entryID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

// --- Test Suite ---

type TimeEntryHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockEntrySvc *MockTimeEntryService
	jwtSecret    string
	companyID    string
}

func (s *TimeEntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.jwtSecret = "test-secret-key-that-is-long-enough"
	s.companyID = uuid.NewString()

	cfg := &config.Config{
		JWTSecret:         s.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "test",
		IsProduction:      true, // keeps swagger out of the test router
	}

	s.mockEntrySvc = new(MockTimeEntryService)
	container := &portssvc.ServiceContainer{
		Authorizer: services.NewAuthorizerService(),
		TimeEntry:  s.mockEntrySvc,
	}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, container)
}

func (s *TimeEntryHandlerTestSuite) tokenFor(role domain.Role) string {
	user := &domain.User{
		UserID:    uuid.NewString(),
		Email:     "test@example.com",
		Role:      role,
		CompanyID: &s.companyID,
	}
	token, err := utils.GenerateJWT(user, s.jwtSecret, time.Hour, "test")
	s.Require().NoError(err)
	return token
}

func (s *TimeEntryHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TimeEntryHandlerTestSuite) TestCreateEntrySuccess() {
	entry := &domain.TimeEntry{
		EntryID:    uuid.NewString(),
		UserID:     uuid.NewString(),
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:  time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		TotalHours: decimal.NewFromInt(4),
		Status:     domain.EntryPending,
	}
	s.mockEntrySvc.On("CreateEntry", mock.Anything, mock.AnythingOfType("domain.Principal"), mock.AnythingOfType("dto.CreateTimeEntryRequest")).
		Return(entry, nil).Once()

	w := s.doJSON(http.MethodPost, "/api/v1/time-entries", s.tokenFor(domain.RoleEmployee), gin.H{
		"date":      "2026-03-02",
		"startTime": "08:00",
		"endTime":   "12:00",
	})

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.TimeEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(entry.EntryID, resp.EntryID)
	s.Equal(domain.EntryPending, resp.Status)
	s.mockEntrySvc.AssertExpectations(s.T())
}

func (s *TimeEntryHandlerTestSuite) TestCreateEntryRequiresToken() {
	w := s.doJSON(http.MethodPost, "/api/v1/time-entries", "", gin.H{
		"date":      "2026-03-02",
		"startTime": "08:00",
		"endTime":   "12:00",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockEntrySvc.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TimeEntryHandlerTestSuite) TestCreateEntryMalformedBody() {
	w := s.doJSON(http.MethodPost, "/api/v1/time-entries", s.tokenFor(domain.RoleEmployee), gin.H{
		"date": "not-a-date",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TimeEntryHandlerTestSuite) TestCreateEntryOverlapConflict() {
	s.mockEntrySvc.On("CreateEntry", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, services.ErrEntryOverlap).Once()

	w := s.doJSON(http.MethodPost, "/api/v1/time-entries", s.tokenFor(domain.RoleEmployee), gin.H{
		"date":      "2026-03-02",
		"startTime": "10:00",
		"endTime":   "14:00",
	})

	s.Equal(http.StatusConflict, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Conflito com o estado atual.", resp["error"])
}

func (s *TimeEntryHandlerTestSuite) TestRejectEntryWithoutReason() {
	entryID := uuid.NewString()
	w := s.doJSON(http.MethodPut, fmt.Sprintf("/api/v1/time-entries/%s/reject", entryID), s.tokenFor(domain.RoleManager), gin.H{})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockEntrySvc.AssertNotCalled(s.T(), "RejectEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TimeEntryHandlerTestSuite) TestApproveEntryManagerWithoutCompany() {
	entryID := uuid.NewString()
	s.mockEntrySvc.On("ApproveEntry", mock.Anything, mock.Anything, entryID).
		Return(nil, apperrors.ErrManagerWithoutCompany).Once()

	w := s.doJSON(http.MethodPut, fmt.Sprintf("/api/v1/time-entries/%s/approve", entryID), s.tokenFor(domain.RoleManager), nil)

	s.Equal(http.StatusForbidden, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Gerente sem empresa associada. Contate um administrador.", resp["error"])
}

func (s *TimeEntryHandlerTestSuite) TestGetEntryNotFound() {
	entryID := uuid.NewString()
	s.mockEntrySvc.On("GetEntryByID", mock.Anything, mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := s.doJSON(http.MethodGet, "/api/v1/time-entries/"+entryID, s.tokenFor(domain.RoleAdmin), nil)

	s.Equal(http.StatusNotFound, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Recurso não encontrado.", resp["error"])
}

func TestTimeEntryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TimeEntryHandlerTestSuite))
}
