package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	portsrepo "github.com/Drumblow/modularcompany-sub001/internal/core/ports/repositories"
	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

var (
	ErrEntryAlreadyPaid    = fmt.Errorf("%w: time entry already linked to a payment", apperrors.ErrConflict)
	ErrEntryNotApproved    = fmt.Errorf("%w: time entry is not approved", apperrors.ErrInvalidState)
	ErrEntryWrongOwner     = fmt.Errorf("%w: time entry does not belong to the recipient", apperrors.ErrInvalidState)
	ErrPaymentNotOpen      = fmt.Errorf("%w: payment is not awaiting confirmation", apperrors.ErrInvalidState)
	ErrPaymentCompleted    = fmt.Errorf("%w: completed payments cannot be cancelled", apperrors.ErrInvalidState)
	ErrAmountNotPositive   = fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	ErrDuplicateEntryInSet = fmt.Errorf("%w: duplicate time entry in request", apperrors.ErrValidation)
)

// paymentService implements payment creation with atomic allocation rows and
// the balance reconciliation of approved hours against payment links.
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryWithTx
	entryRepo   portsrepo.TimeEntryReader
	userRepo    portsrepo.UserReader
	authorizer  portssvc.AuthorizerSvc
	notifier    portssvc.NotificationEmitter
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryWithTx,
	entryRepo portsrepo.TimeEntryReader,
	userRepo portsrepo.UserReader,
	authorizer portssvc.AuthorizerSvc,
	notifier portssvc.NotificationEmitter,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		entryRepo:   entryRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
		notifier:    notifier,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// CreatePayment creates a payment over a set of approved, unpaid time entries
// of one recipient. The payment row and its allocation rows are written as a
// single database transaction.
func (s *paymentService) CreatePayment(ctx context.Context, principal domain.Principal, req dto.CreatePaymentRequest) (*domain.Payment, []domain.PaymentTimeEntry, error) {
	if principal.Role == domain.RoleEmployee {
		return nil, nil, apperrors.ErrForbidden
	}

	recipient, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.authorizer.Authorize(ctx, principal, domain.ActionCreate, domain.Resource{
		OwnerUserID: recipient.UserID,
		CompanyID:   recipient.CompanyID,
		OwnerRole:   recipient.Role,
	}); err != nil {
		return nil, nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, nil, ErrAmountNotPositive
	}

	paymentDate, err := time.ParseInLocation(dateLayout, req.PaymentDate, time.UTC)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid payment date", apperrors.ErrValidation)
	}
	periodStart, err := time.ParseInLocation(dateLayout, req.PeriodStart, time.UTC)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid period start", apperrors.ErrValidation)
	}
	periodEnd, err := time.ParseInLocation(dateLayout, req.PeriodEnd, time.UTC)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid period end", apperrors.ErrValidation)
	}
	if periodEnd.Before(periodStart) {
		return nil, nil, fmt.Errorf("%w: period end before period start", apperrors.ErrValidation)
	}

	entries, err := s.loadSelectedEntries(ctx, recipient.UserID, req.TimeEntryIDs)
	if err != nil {
		return nil, nil, err
	}

	// Pre-write existence check; the unique index on time_entry_id closes the
	// remaining race at commit time.
	linked, err := s.paymentRepo.FindLinkedEntryIDs(ctx, req.TimeEntryIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing payment links: %w", err)
	}
	if len(linked) > 0 {
		return nil, nil, ErrEntryAlreadyPaid
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		UserID:      recipient.UserID,
		CreatorID:   principal.UserID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      domain.PaymentAwaitingConfirmation,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
		},
	}

	links := allocateProportionally(payment.PaymentID, payment.Amount, entries)

	if err := s.paymentRepo.SavePaymentWithLinks(ctx, payment, links); err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil, ErrEntryAlreadyPaid
		}
		s.LogError(ctx, err, "Failed to save payment", slog.String("payment_id", payment.PaymentID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Payment created",
		slog.String("payment_id", payment.PaymentID),
		slog.String("recipient_id", payment.UserID),
		slog.String("amount", payment.Amount.String()))

	relatedType := "payment"
	s.notifier.Emit(ctx, domain.Notification{
		UserID:      recipient.UserID,
		Title:       "Pagamento registrado",
		Message:     fmt.Sprintf("Um pagamento de %s foi registrado para você. Confirme o recebimento.", payment.Amount.StringFixed(2)),
		Type:        domain.NotificationInfo,
		RelatedID:   &payment.PaymentID,
		RelatedType: &relatedType,
	})

	return &payment, links, nil
}

// loadSelectedEntries fetches the requested entries and validates that each
// is approved and belongs to the recipient, with no duplicates in the set.
func (s *paymentService) loadSelectedEntries(ctx context.Context, recipientID string, entryIDs []string) ([]domain.TimeEntry, error) {
	seen := make(map[string]struct{}, len(entryIDs))
	entries := make([]domain.TimeEntry, 0, len(entryIDs))
	for _, id := range entryIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateEntryInSet
		}
		seen[id] = struct{}{}

		entry, err := s.entryRepo.FindEntryByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if entry.Status != domain.EntryApproved {
			return nil, ErrEntryNotApproved
		}
		if entry.UserID != recipientID {
			return nil, ErrEntryWrongOwner
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// allocateProportionally splits the payment amount over the entries by their
// share of the total hours. The last entry takes the rounding remainder so
// the allocations always sum exactly to the payment amount.
func allocateProportionally(paymentID string, amount decimal.Decimal, entries []domain.TimeEntry) []domain.PaymentTimeEntry {
	totalHours := decimal.Zero
	for _, e := range entries {
		totalHours = totalHours.Add(e.TotalHours)
	}

	links := make([]domain.PaymentTimeEntry, len(entries))
	allocated := decimal.Zero
	for i, e := range entries {
		var share decimal.Decimal
		if i == len(entries)-1 {
			share = amount.Sub(allocated)
		} else {
			share = amount.Mul(e.TotalHours).Div(totalHours).Round(2)
			allocated = allocated.Add(share)
		}
		links[i] = domain.PaymentTimeEntry{
			PaymentID:   paymentID,
			TimeEntryID: e.EntryID,
			Amount:      share,
		}
	}
	return links
}

// GetPaymentByID retrieves a payment with its allocation rows.
func (s *paymentService) GetPaymentByID(ctx context.Context, principal domain.Principal, paymentID string) (*domain.Payment, []domain.PaymentTimeEntry, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.authorizePaymentRead(ctx, principal, payment); err != nil {
		return nil, nil, err
	}

	links, err := s.paymentRepo.FindLinksByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	return payment, links, nil
}

func (s *paymentService) authorizePaymentRead(ctx context.Context, principal domain.Principal, payment *domain.Payment) error {
	// The creator and the recipient always see the payment.
	if payment.CreatorID == principal.UserID || payment.UserID == principal.UserID {
		return nil
	}
	recipient, err := s.userRepo.FindUserByID(ctx, payment.UserID)
	if err != nil {
		return err
	}
	err = s.authorizer.Authorize(ctx, principal, domain.ActionRead, domain.Resource{
		OwnerUserID: recipient.UserID,
		CompanyID:   recipient.CompanyID,
		OwnerRole:   recipient.Role,
	})
	if errors.Is(err, apperrors.ErrForbidden) {
		// Cross-tenant payments stay invisible.
		return apperrors.ErrNotFound
	}
	return err
}

// ListPayments retrieves payments visible to the principal.
func (s *paymentService) ListPayments(ctx context.Context, principal domain.Principal, params dto.ListPaymentsParams) ([]domain.Payment, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	switch principal.Role {
	case domain.RoleDeveloper:
		if params.UserID != nil {
			return s.paymentRepo.ListPaymentsByUser(ctx, *params.UserID, limit, params.Offset)
		}
		return s.paymentRepo.ListPaymentsByUser(ctx, principal.UserID, limit, params.Offset)
	case domain.RoleAdmin, domain.RoleManager:
		if principal.CompanyID == nil {
			return nil, apperrors.ErrForbidden
		}
		if params.UserID != nil {
			target, err := s.userRepo.FindUserByID(ctx, *params.UserID)
			if err != nil {
				return nil, err
			}
			if !target.BelongsTo(*principal.CompanyID) {
				return nil, apperrors.ErrForbidden
			}
			return s.paymentRepo.ListPaymentsByUser(ctx, target.UserID, limit, params.Offset)
		}
		return s.paymentRepo.ListPaymentsByCompany(ctx, *principal.CompanyID, limit, params.Offset)
	default:
		return s.paymentRepo.ListPaymentsByUser(ctx, principal.UserID, limit, params.Offset)
	}
}

// ConfirmPayment lets the recipient confirm receipt, completing the payment.
func (s *paymentService) ConfirmPayment(ctx context.Context, principal domain.Principal, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	// Only the recipient confirms receipt.
	if err := s.authorizer.Authorize(ctx, principal, domain.ActionUpdate, domain.Resource{OwnerUserID: payment.UserID}); err != nil {
		return nil, err
	}

	if payment.Status != domain.PaymentAwaitingConfirmation && payment.Status != domain.PaymentPending {
		return nil, ErrPaymentNotOpen
	}

	now := time.Now()
	payment.Status = domain.PaymentCompleted
	payment.ConfirmedAt = &now
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = principal.UserID

	if err := s.paymentRepo.UpdatePaymentStatus(ctx, *payment); err != nil {
		s.LogError(ctx, err, "Failed to confirm payment", slog.String("payment_id", payment.PaymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment confirmed", slog.String("payment_id", payment.PaymentID))

	relatedType := "payment"
	s.notifier.Emit(ctx, domain.Notification{
		UserID:      payment.CreatorID,
		Title:       "Pagamento confirmado",
		Message:     fmt.Sprintf("O pagamento de %s foi confirmado pelo destinatário.", payment.Amount.StringFixed(2)),
		Type:        domain.NotificationSuccess,
		RelatedID:   &payment.PaymentID,
		RelatedType: &relatedType,
	})

	return payment, nil
}

// CancelPayment cancels a not-yet-completed payment and releases its entries.
func (s *paymentService) CancelPayment(ctx context.Context, principal domain.Principal, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	// Only the creator (or a developer) cancels.
	if err := s.authorizer.Authorize(ctx, principal, domain.ActionDelete, domain.Resource{OwnerUserID: payment.CreatorID}); err != nil {
		return nil, err
	}

	if payment.Status == domain.PaymentCompleted {
		return nil, ErrPaymentCompleted
	}
	if payment.Status == domain.PaymentCancelled {
		return payment, nil
	}

	now := time.Now()
	payment.Status = domain.PaymentCancelled
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = principal.UserID

	if err := s.paymentRepo.UpdatePaymentStatus(ctx, *payment); err != nil {
		s.LogError(ctx, err, "Failed to cancel payment", slog.String("payment_id", payment.PaymentID))
		return nil, err
	}

	// Release the entries so they can be paid by a future payment.
	if err := s.paymentRepo.DeleteLinksByPaymentID(ctx, payment.PaymentID); err != nil {
		s.LogError(ctx, err, "Failed to release payment links", slog.String("payment_id", payment.PaymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment cancelled", slog.String("payment_id", payment.PaymentID))

	relatedType := "payment"
	s.notifier.Emit(ctx, domain.Notification{
		UserID:      payment.UserID,
		Title:       "Pagamento cancelado",
		Message:     fmt.Sprintf("O pagamento de %s foi cancelado.", payment.Amount.StringFixed(2)),
		Type:        domain.NotificationWarning,
		RelatedID:   &payment.PaymentID,
		RelatedType: &relatedType,
	})

	return payment, nil
}

// ComputeBalance derives the pay state of a user over an optional date range.
// Approved entries are partitioned into paid and unpaid by their presence in
// payment links, so paidHours + unpaidHours always equals totalApprovedHours.
// The computation only reads; calling it twice with no intervening writes
// yields identical output.
func (s *paymentService) ComputeBalance(ctx context.Context, principal domain.Principal, userID string, from, to *time.Time) (*domain.Balance, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.Authorize(ctx, principal, domain.ActionRead, domain.Resource{
		OwnerUserID: user.UserID,
		CompanyID:   user.CompanyID,
		OwnerRole:   user.Role,
	}); err != nil {
		return nil, err
	}

	approved, err := s.entryRepo.FindApprovedEntries(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved entries: %w", err)
	}

	paidSet, err := s.paymentRepo.FindPaidEntryIDs(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment links: %w", err)
	}

	balance := &domain.Balance{
		UserID:             userID,
		TotalApprovedHours: decimal.Zero,
		TotalAmountDue:     decimal.Zero,
		TotalPaid:          decimal.Zero,
		PaidHours:          decimal.Zero,
		UnpaidHours:        decimal.Zero,
		Balance:            decimal.Zero,
	}

	for _, e := range approved {
		balance.TotalApprovedHours = balance.TotalApprovedHours.Add(e.TotalHours)
		if _, paid := paidSet[e.EntryID]; paid {
			balance.PaidHours = balance.PaidHours.Add(e.TotalHours)
		} else {
			balance.UnpaidHours = balance.UnpaidHours.Add(e.TotalHours)
		}
	}

	rate := decimal.Zero
	if user.HourlyRate != nil {
		rate = *user.HourlyRate
	}
	balance.TotalAmountDue = balance.TotalApprovedHours.Mul(rate)

	totalPaid, err := s.paymentRepo.SumActivePayments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	balance.TotalPaid = totalPaid
	balance.Balance = balance.TotalAmountDue.Sub(totalPaid)

	return balance, nil
}
