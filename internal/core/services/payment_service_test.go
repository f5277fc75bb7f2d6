package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/core/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockEntryRepo   *MockTimeEntryRepository
	mockUserRepo    *MockUserRepository
	notifier        *recordingNotifier
	service         portssvc.PaymentSvcFacade

	companyID string
	admin     domain.Principal
	employee  domain.Principal
	recipient *domain.User
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.mockPaymentRepo = new(MockPaymentRepository)
	s.mockEntryRepo = new(MockTimeEntryRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.notifier = &recordingNotifier{}
	s.service = services.NewPaymentService(
		s.mockPaymentRepo,
		s.mockEntryRepo,
		s.mockUserRepo,
		services.NewAuthorizerService(),
		s.notifier,
	)

	s.companyID = uuid.NewString()
	s.admin = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin, CompanyID: &s.companyID}

	rate := decimal.NewFromInt(20)
	s.recipient = &domain.User{
		UserID:     uuid.NewString(),
		Role:       domain.RoleEmployee,
		CompanyID:  &s.companyID,
		HourlyRate: &rate,
	}
	s.employee = domain.Principal{UserID: s.recipient.UserID, Role: domain.RoleEmployee, CompanyID: &s.companyID}
}

func (s *PaymentServiceTestSuite) approvedEntry(hours int64) domain.TimeEntry {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	return domain.TimeEntry{
		EntryID:    uuid.NewString(),
		UserID:     s.recipient.UserID,
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:  start,
		EndTime:    start.Add(time.Duration(hours) * time.Hour),
		TotalHours: decimal.NewFromInt(hours),
		Status:     domain.EntryApproved,
	}
}

func (s *PaymentServiceTestSuite) createRequest(amount decimal.Decimal, entryIDs ...string) dto.CreatePaymentRequest {
	return dto.CreatePaymentRequest{
		UserID:       s.recipient.UserID,
		Amount:       amount,
		PaymentDate:  "2026-03-06",
		PeriodStart:  "2026-03-01",
		PeriodEnd:    "2026-03-05",
		TimeEntryIDs: entryIDs,
	}
}

func (s *PaymentServiceTestSuite) TestCreatePaymentSuccess() {
	ctx := context.Background()
	e1 := s.approvedEntry(3)
	e2 := s.approvedEntry(1)

	s.mockUserRepo.On("FindUserByID", ctx, s.recipient.UserID).Return(s.recipient, nil)
	s.mockEntryRepo.On("FindEntryByID", ctx, e1.EntryID).Return(&e1, nil)
	s.mockEntryRepo.On("FindEntryByID", ctx, e2.EntryID).Return(&e2, nil)
	s.mockPaymentRepo.On("FindLinkedEntryIDs", ctx, []string{e1.EntryID, e2.EntryID}).Return([]string{}, nil)
	s.mockPaymentRepo.On("SavePaymentWithLinks", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.PaymentTimeEntry")).Return(nil)

	payment, links, err := s.service.CreatePayment(ctx, s.admin, s.createRequest(decimal.NewFromInt(80), e1.EntryID, e2.EntryID))

	s.Require().NoError(err)
	s.Equal(domain.PaymentAwaitingConfirmation, payment.Status)
	s.Equal(s.recipient.UserID, payment.UserID)
	s.Equal(s.admin.UserID, payment.CreatorID)

	s.Require().Len(links, 2)
	s.True(links[0].Amount.Equal(decimal.NewFromInt(60)), "3h of 4h should take 60, got %s", links[0].Amount)
	s.True(links[1].Amount.Equal(decimal.NewFromInt(20)), "1h of 4h should take 20, got %s", links[1].Amount)

	s.Require().Len(s.notifier.emitted, 1)
	s.Equal(s.recipient.UserID, s.notifier.emitted[0].UserID)
}

func (s *PaymentServiceTestSuite) TestAllocationSumsExactlyToAmount() {
	ctx := context.Background()
	e1 := s.approvedEntry(1)
	e2 := s.approvedEntry(1)
	e3 := s.approvedEntry(1)

	s.mockUserRepo.On("FindUserByID", ctx, s.recipient.UserID).Return(s.recipient, nil)
	for _, e := range []*domain.TimeEntry{&e1, &e2, &e3} {
		s.mockEntryRepo.On("FindEntryByID", ctx, e.EntryID).Return(e, nil)
	}
	s.mockPaymentRepo.On("FindLinkedEntryIDs", ctx, mock.Anything).Return([]string{}, nil)
	s.mockPaymentRepo.On("SavePaymentWithLinks", ctx, mock.Anything, mock.Anything).Return(nil)

	amount := decimal.NewFromInt(100)
	_, links, err := s.service.CreatePayment(ctx, s.admin, s.createRequest(amount, e1.EntryID, e2.EntryID, e3.EntryID))

	s.Require().NoError(err)
	total := decimal.Zero
	for _, l := range links {
		total = total.Add(l.Amount)
	}
	s.True(total.Equal(amount), "allocations must sum to %s, got %s", amount, total)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentWithUnapprovedEntry() {
	ctx := context.Background()
	pending := s.approvedEntry(2)
	pending.Status = domain.EntryPending

	s.mockUserRepo.On("FindUserByID", ctx, s.recipient.UserID).Return(s.recipient, nil)
	s.mockEntryRepo.On("FindEntryByID", ctx, pending.EntryID).Return(&pending, nil)

	_, _, err := s.service.CreatePayment(ctx, s.admin, s.createRequest(decimal.NewFromInt(40), pending.EntryID))

	s.Require().ErrorIs(err, apperrors.ErrInvalidState)
	s.mockPaymentRepo.AssertNotCalled(s.T(), "SavePaymentWithLinks", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentWithForeignEntry() {
	ctx := context.Background()
	foreign := s.approvedEntry(2)
	foreign.UserID = uuid.NewString()

	s.mockUserRepo.On("FindUserByID", ctx, s.recipient.UserID).Return(s.recipient, nil)
	s.mockEntryRepo.On("FindEntryByID", ctx, foreign.EntryID).Return(&foreign, nil)

	_, _, err := s.service.CreatePayment(ctx, s.admin, s.createRequest(decimal.NewFromInt(40), foreign.EntryID))

	s.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentWithAlreadyPaidEntry() {
	ctx := context.Background()
	entry := s.approvedEntry(2)

	s.mockUserRepo.On("FindUserByID", ctx, s.recipient.UserID).Return(s.recipient, nil)
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	s.mockPaymentRepo.On("FindLinkedEntryIDs", ctx, []string{entry.EntryID}).Return([]string{entry.EntryID}, nil)

	_, _, err := s.service.CreatePayment(ctx, s.admin, s.createRequest(decimal.NewFromInt(40), entry.EntryID))

	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentRaceSurfacesAsConflict() {
	ctx := context.Background()
	entry := s.approvedEntry(2)

	s.mockUserRepo.On("FindUserByID", ctx, s.recipient.UserID).Return(s.recipient, nil)
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	s.mockPaymentRepo.On("FindLinkedEntryIDs", ctx, []string{entry.EntryID}).Return([]string{}, nil)
	s.mockPaymentRepo.On("SavePaymentWithLinks", ctx, mock.Anything, mock.Anything).
		Return(fmt.Errorf("time entry already linked to a payment: %w", apperrors.ErrConflict))

	_, _, err := s.service.CreatePayment(ctx, s.admin, s.createRequest(decimal.NewFromInt(40), entry.EntryID))

	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentDuplicateEntryInRequest() {
	ctx := context.Background()
	entry := s.approvedEntry(2)

	s.mockUserRepo.On("FindUserByID", ctx, s.recipient.UserID).Return(s.recipient, nil)
	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)

	_, _, err := s.service.CreatePayment(ctx, s.admin, s.createRequest(decimal.NewFromInt(40), entry.EntryID, entry.EntryID))

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentByEmployeeDenied() {
	_, _, err := s.service.CreatePayment(context.Background(), s.employee, s.createRequest(decimal.NewFromInt(40), uuid.NewString()))
	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentNonPositiveAmount() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByID", ctx, s.recipient.UserID).Return(s.recipient, nil)

	_, _, err := s.service.CreatePayment(ctx, s.admin, s.createRequest(decimal.Zero, uuid.NewString()))

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *PaymentServiceTestSuite) openPayment() *domain.Payment {
	return &domain.Payment{
		PaymentID: uuid.NewString(),
		UserID:    s.recipient.UserID,
		CreatorID: s.admin.UserID,
		Amount:    decimal.NewFromInt(80),
		Status:    domain.PaymentAwaitingConfirmation,
	}
}

func (s *PaymentServiceTestSuite) TestConfirmPaymentByRecipient() {
	ctx := context.Background()
	payment := s.openPayment()
	s.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil)
	s.mockPaymentRepo.On("UpdatePaymentStatus", ctx, mock.AnythingOfType("domain.Payment")).Return(nil)

	confirmed, err := s.service.ConfirmPayment(ctx, s.employee, payment.PaymentID)

	s.Require().NoError(err)
	s.Equal(domain.PaymentCompleted, confirmed.Status)
	s.NotNil(confirmed.ConfirmedAt)
	s.Require().Len(s.notifier.emitted, 1)
	s.Equal(s.admin.UserID, s.notifier.emitted[0].UserID)
}

func (s *PaymentServiceTestSuite) TestConfirmPaymentByNonRecipientDenied() {
	ctx := context.Background()
	payment := s.openPayment()
	other := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleEmployee, CompanyID: &s.companyID}
	s.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil)

	_, err := s.service.ConfirmPayment(ctx, other, payment.PaymentID)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *PaymentServiceTestSuite) TestConfirmCompletedPaymentFails() {
	ctx := context.Background()
	payment := s.openPayment()
	payment.Status = domain.PaymentCompleted
	s.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil)

	_, err := s.service.ConfirmPayment(ctx, s.employee, payment.PaymentID)

	s.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PaymentServiceTestSuite) TestCancelPaymentReleasesEntries() {
	ctx := context.Background()
	payment := s.openPayment()
	s.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil)
	s.mockPaymentRepo.On("UpdatePaymentStatus", ctx, mock.AnythingOfType("domain.Payment")).Return(nil)
	s.mockPaymentRepo.On("DeleteLinksByPaymentID", ctx, payment.PaymentID).Return(nil)

	cancelled, err := s.service.CancelPayment(ctx, s.admin, payment.PaymentID)

	s.Require().NoError(err)
	s.Equal(domain.PaymentCancelled, cancelled.Status)
	s.mockPaymentRepo.AssertCalled(s.T(), "DeleteLinksByPaymentID", ctx, payment.PaymentID)
}

func (s *PaymentServiceTestSuite) TestCancelCompletedPaymentFails() {
	ctx := context.Background()
	payment := s.openPayment()
	payment.Status = domain.PaymentCompleted
	s.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil)

	_, err := s.service.CancelPayment(ctx, s.admin, payment.PaymentID)

	s.Require().ErrorIs(err, apperrors.ErrInvalidState)
	s.mockPaymentRepo.AssertNotCalled(s.T(), "DeleteLinksByPaymentID", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestComputeBalanceBeforeAndAfterPayment() {
	ctx := context.Background()
	entry := s.approvedEntry(4)

	// Before any payment: 4 approved hours at rate 20 leave 80 outstanding.
	s.mockUserRepo.On("FindUserByID", ctx, s.recipient.UserID).Return(s.recipient, nil)
	s.mockEntryRepo.On("FindApprovedEntries", ctx, s.recipient.UserID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.TimeEntry{entry}, nil).Once()
	s.mockPaymentRepo.On("FindPaidEntryIDs", ctx, s.recipient.UserID, false).
		Return(map[string]struct{}{}, nil).Once()
	s.mockPaymentRepo.On("SumActivePayments", ctx, s.recipient.UserID).
		Return(decimal.Zero, nil).Once()

	balance, err := s.service.ComputeBalance(ctx, s.admin, s.recipient.UserID, nil, nil)
	s.Require().NoError(err)
	s.True(balance.TotalApprovedHours.Equal(decimal.NewFromInt(4)))
	s.True(balance.TotalAmountDue.Equal(decimal.NewFromInt(80)))
	s.True(balance.UnpaidHours.Equal(decimal.NewFromInt(4)))
	s.True(balance.PaidHours.Equal(decimal.Zero))
	s.True(balance.Balance.Equal(decimal.NewFromInt(80)))

	// After a payment of 80 covering the entry the balance reaches zero.
	s.mockEntryRepo.On("FindApprovedEntries", ctx, s.recipient.UserID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.TimeEntry{entry}, nil).Once()
	s.mockPaymentRepo.On("FindPaidEntryIDs", ctx, s.recipient.UserID, false).
		Return(map[string]struct{}{entry.EntryID: {}}, nil).Once()
	s.mockPaymentRepo.On("SumActivePayments", ctx, s.recipient.UserID).
		Return(decimal.NewFromInt(80), nil).Once()

	balance, err = s.service.ComputeBalance(ctx, s.admin, s.recipient.UserID, nil, nil)
	s.Require().NoError(err)
	s.True(balance.PaidHours.Equal(decimal.NewFromInt(4)))
	s.True(balance.UnpaidHours.Equal(decimal.Zero))
	s.True(balance.TotalPaid.Equal(decimal.NewFromInt(80)))
	s.True(balance.Balance.Equal(decimal.Zero))

	// Paid plus unpaid hours always reconcile with the approved total.
	s.True(balance.PaidHours.Add(balance.UnpaidHours).Equal(balance.TotalApprovedHours))
}

func (s *PaymentServiceTestSuite) TestComputeBalanceCrossCompanyDenied() {
	ctx := context.Background()
	otherCompany := uuid.NewString()
	outsider := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin, CompanyID: &otherCompany}
	s.mockUserRepo.On("FindUserByID", ctx, s.recipient.UserID).Return(s.recipient, nil)

	_, err := s.service.ComputeBalance(ctx, outsider, s.recipient.UserID, nil, nil)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
