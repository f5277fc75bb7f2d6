package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/core/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

type TimeEntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockTimeEntryRepository
	mockPaymentRepo *MockPaymentRepository
	mockUserRepo    *MockUserRepository
	notifier        *recordingNotifier
	service         portssvc.TimeEntrySvcFacade

	companyID string
	employee  domain.Principal
	manager   domain.Principal
}

func (s *TimeEntryServiceTestSuite) SetupTest() {
	s.mockEntryRepo = new(MockTimeEntryRepository)
	s.mockPaymentRepo = new(MockPaymentRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.notifier = &recordingNotifier{}
	s.service = services.NewTimeEntryService(
		s.mockEntryRepo,
		s.mockPaymentRepo,
		s.mockUserRepo,
		services.NewAuthorizerService(),
		s.notifier,
	)

	s.companyID = uuid.NewString()
	s.employee = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleEmployee, CompanyID: &s.companyID}
	s.manager = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleManager, CompanyID: &s.companyID}
}

func (s *TimeEntryServiceTestSuite) entryOn(day string, startClock, endClock string, status domain.EntryStatus) domain.TimeEntry {
	date, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	s.Require().NoError(err)
	start, err := time.Parse("15:04", startClock)
	s.Require().NoError(err)
	end, err := time.Parse("15:04", endClock)
	s.Require().NoError(err)
	startAt := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC)
	endAt := time.Date(date.Year(), date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, time.UTC)
	return domain.TimeEntry{
		EntryID:    uuid.NewString(),
		UserID:     s.employee.UserID,
		Date:       date,
		StartTime:  startAt,
		EndTime:    endAt,
		TotalHours: domain.HoursBetween(startAt, endAt),
		Status:     status,
	}
}

func (s *TimeEntryServiceTestSuite) TestCreateEntrySuccess() {
	ctx := context.Background()
	s.mockEntryRepo.On("FindEntriesForDay", ctx, s.employee.UserID, mock.AnythingOfType("time.Time"), "").
		Return([]domain.TimeEntry{}, nil)
	s.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(nil)

	entry, err := s.service.CreateEntry(ctx, s.employee, dto.CreateTimeEntryRequest{
		Date:      "2026-03-02",
		StartTime: "08:00",
		EndTime:   "12:00",
	})

	s.Require().NoError(err)
	s.Equal(s.employee.UserID, entry.UserID)
	s.Equal(domain.EntryPending, entry.Status)
	s.True(entry.TotalHours.Equal(decimal.NewFromInt(4)), "expected 4 hours, got %s", entry.TotalHours)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *TimeEntryServiceTestSuite) TestCreateEntryOverlapRejected() {
	ctx := context.Background()
	existing := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryPending)
	s.mockEntryRepo.On("FindEntriesForDay", ctx, s.employee.UserID, mock.AnythingOfType("time.Time"), "").
		Return([]domain.TimeEntry{existing}, nil)

	_, err := s.service.CreateEntry(ctx, s.employee, dto.CreateTimeEntryRequest{
		Date:      "2026-03-02",
		StartTime: "10:00",
		EndTime:   "14:00",
	})

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *TimeEntryServiceTestSuite) TestCreateEntryIgnoresRejectedWhenCheckingOverlap() {
	ctx := context.Background()
	rejected := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryRejected)
	s.mockEntryRepo.On("FindEntriesForDay", ctx, s.employee.UserID, mock.AnythingOfType("time.Time"), "").
		Return([]domain.TimeEntry{rejected}, nil)
	s.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(nil)

	_, err := s.service.CreateEntry(ctx, s.employee, dto.CreateTimeEntryRequest{
		Date:      "2026-03-02",
		StartTime: "10:00",
		EndTime:   "14:00",
	})

	s.Require().NoError(err)
}

func (s *TimeEntryServiceTestSuite) TestCreateEntryAdjacentIntervalsAllowed() {
	ctx := context.Background()
	existing := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryPending)
	s.mockEntryRepo.On("FindEntriesForDay", ctx, s.employee.UserID, mock.AnythingOfType("time.Time"), "").
		Return([]domain.TimeEntry{existing}, nil)
	s.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(nil)

	_, err := s.service.CreateEntry(ctx, s.employee, dto.CreateTimeEntryRequest{
		Date:      "2026-03-02",
		StartTime: "12:00",
		EndTime:   "16:00",
	})

	s.Require().NoError(err)
}

func (s *TimeEntryServiceTestSuite) TestCreateEntryEndBeforeStart() {
	_, err := s.service.CreateEntry(context.Background(), s.employee, dto.CreateTimeEntryRequest{
		Date:      "2026-03-02",
		StartTime: "12:00",
		EndTime:   "08:00",
	})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TimeEntryServiceTestSuite) TestUpdateApprovedEntryFails() {
	ctx := context.Background()
	approved := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryApproved)
	s.mockEntryRepo.On("FindEntryByID", ctx, approved.EntryID).Return(&approved, nil)

	newEnd := "13:00"
	_, err := s.service.UpdateEntry(ctx, s.employee, approved.EntryID, dto.UpdateTimeEntryRequest{EndTime: &newEnd})

	s.Require().ErrorIs(err, apperrors.ErrInvalidState)
	s.mockEntryRepo.AssertNotCalled(s.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (s *TimeEntryServiceTestSuite) TestUpdatePaidEntryFails() {
	ctx := context.Background()
	entry := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryPending)
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	s.mockPaymentRepo.On("FindLinkedEntryIDs", ctx, []string{entry.EntryID}).
		Return([]string{entry.EntryID}, nil)

	newEnd := "13:00"
	_, err := s.service.UpdateEntry(ctx, s.employee, entry.EntryID, dto.UpdateTimeEntryRequest{EndTime: &newEnd})

	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *TimeEntryServiceTestSuite) TestUpdateRejectedEntryResetsToPending() {
	ctx := context.Background()
	reason := "wrong day"
	rejected := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryRejected)
	rejected.RejectionReason = &reason
	s.mockEntryRepo.On("FindEntryByID", ctx, rejected.EntryID).Return(&rejected, nil)
	s.mockPaymentRepo.On("FindLinkedEntryIDs", ctx, []string{rejected.EntryID}).Return([]string{}, nil)
	s.mockEntryRepo.On("FindEntriesForDay", ctx, s.employee.UserID, mock.AnythingOfType("time.Time"), rejected.EntryID).
		Return([]domain.TimeEntry{}, nil)
	s.mockEntryRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(nil)

	newDate := "2026-03-03"
	updated, err := s.service.UpdateEntry(ctx, s.employee, rejected.EntryID, dto.UpdateTimeEntryRequest{Date: &newDate})

	s.Require().NoError(err)
	s.Equal(domain.EntryPending, updated.Status)
	s.Nil(updated.RejectionReason)
}

func (s *TimeEntryServiceTestSuite) TestUpdateEntryOfAnotherUserDenied() {
	ctx := context.Background()
	entry := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryPending)
	other := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleEmployee, CompanyID: &s.companyID}
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)

	newEnd := "13:00"
	_, err := s.service.UpdateEntry(ctx, other, entry.EntryID, dto.UpdateTimeEntryRequest{EndTime: &newEnd})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *TimeEntryServiceTestSuite) ownerUser() *domain.User {
	return &domain.User{
		UserID:    s.employee.UserID,
		Role:      domain.RoleEmployee,
		CompanyID: &s.companyID,
	}
}

func (s *TimeEntryServiceTestSuite) TestApproveEntryByManager() {
	ctx := context.Background()
	entry := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryPending)
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	s.mockUserRepo.On("FindUserByID", ctx, s.employee.UserID).Return(s.ownerUser(), nil)
	s.mockEntryRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(nil)

	decided, err := s.service.ApproveEntry(ctx, s.manager, entry.EntryID)

	s.Require().NoError(err)
	s.Equal(domain.EntryApproved, decided.Status)
	s.Require().Len(s.notifier.emitted, 1)
	s.Equal(s.employee.UserID, s.notifier.emitted[0].UserID)
	s.Equal(domain.NotificationSuccess, s.notifier.emitted[0].Type)
}

func (s *TimeEntryServiceTestSuite) TestApproveAlreadyDecidedEntry() {
	ctx := context.Background()
	entry := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryApproved)
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	s.mockUserRepo.On("FindUserByID", ctx, s.employee.UserID).Return(s.ownerUser(), nil)

	_, err := s.service.ApproveEntry(ctx, s.manager, entry.EntryID)

	s.Require().ErrorIs(err, apperrors.ErrInvalidState)
	s.Empty(s.notifier.emitted)
}

func (s *TimeEntryServiceTestSuite) TestApproveByManagerWithoutCompany() {
	ctx := context.Background()
	entry := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryPending)
	orphanManager := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleManager}
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	s.mockUserRepo.On("FindUserByID", ctx, s.employee.UserID).Return(s.ownerUser(), nil)

	_, err := s.service.ApproveEntry(ctx, orphanManager, entry.EntryID)

	s.Require().ErrorIs(err, apperrors.ErrManagerWithoutCompany)
}

func (s *TimeEntryServiceTestSuite) TestApproveByEmployeeDenied() {
	ctx := context.Background()
	entry := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryPending)
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	s.mockUserRepo.On("FindUserByID", ctx, s.employee.UserID).Return(s.ownerUser(), nil)

	_, err := s.service.ApproveEntry(ctx, s.employee, entry.EntryID)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *TimeEntryServiceTestSuite) TestRejectEntryRequiresReason() {
	_, err := s.service.RejectEntry(context.Background(), s.manager, uuid.NewString(), "")
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TimeEntryServiceTestSuite) TestRejectEntryStoresReasonAndNotifies() {
	ctx := context.Background()
	entry := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryPending)
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	s.mockUserRepo.On("FindUserByID", ctx, s.employee.UserID).Return(s.ownerUser(), nil)
	s.mockEntryRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.TimeEntry")).Return(nil)

	decided, err := s.service.RejectEntry(ctx, s.manager, entry.EntryID, "hours exceed the schedule")

	s.Require().NoError(err)
	s.Equal(domain.EntryRejected, decided.Status)
	s.Require().NotNil(decided.RejectionReason)
	s.Equal("hours exceed the schedule", *decided.RejectionReason)
	s.Require().Len(s.notifier.emitted, 1)
	s.Equal(domain.NotificationWarning, s.notifier.emitted[0].Type)
}

func (s *TimeEntryServiceTestSuite) TestGetEntryCrossCompanyMaskedAsNotFound() {
	ctx := context.Background()
	entry := s.entryOn("2026-03-02", "08:00", "12:00", domain.EntryPending)
	otherCompany := uuid.NewString()
	outsider := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin, CompanyID: &otherCompany}
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	s.mockUserRepo.On("FindUserByID", ctx, s.employee.UserID).Return(s.ownerUser(), nil)

	_, err := s.service.GetEntryByID(ctx, outsider, entry.EntryID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TimeEntryServiceTestSuite) TestListEntriesScopesEmployeeToSelf() {
	ctx := context.Background()
	s.mockEntryRepo.On("ListEntries", ctx, mock.MatchedBy(func(f portsrepo.TimeEntryFilter) bool {
		return f.UserID != nil && *f.UserID == s.employee.UserID
	}), 50, (*string)(nil)).Return([]domain.TimeEntry{}, nil, nil)

	_, _, err := s.service.ListEntries(ctx, s.employee, dto.ListTimeEntriesParams{})

	s.Require().NoError(err)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func TestTimeEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimeEntryServiceTestSuite))
}
