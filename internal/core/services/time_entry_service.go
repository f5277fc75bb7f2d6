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
)

var (
	ErrEntryOverlap     = fmt.Errorf("%w: time entry overlaps an existing entry", apperrors.ErrConflict)
	ErrEntryNotEditable = fmt.Errorf("%w: approved entries cannot be modified", apperrors.ErrInvalidState)
	ErrEntryNotPending  = fmt.Errorf("%w: entry already decided", apperrors.ErrInvalidState)
	ErrEntryPaid        = fmt.Errorf("%w: entry is linked to a payment", apperrors.ErrConflict)
	ErrEntryZeroHours   = fmt.Errorf("%w: end time must be after start time", apperrors.ErrValidation)
	ErrReasonRequired   = fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// timeEntryService implements the time entry lifecycle: creation with overlap
// detection, owner edits gated by state, and the approval workflow.
type timeEntryService struct {
	BaseService
	entryRepo   portsrepo.TimeEntryRepositoryFacade
	paymentRepo portsrepo.PaymentReader
	userRepo    portsrepo.UserReader
	authorizer  portssvc.AuthorizerSvc
	notifier    portssvc.NotificationEmitter
}

// NewTimeEntryService creates a new time entry service.
func NewTimeEntryService(
	entryRepo portsrepo.TimeEntryRepositoryFacade,
	paymentRepo portsrepo.PaymentReader,
	userRepo portsrepo.UserReader,
	authorizer portssvc.AuthorizerSvc,
	notifier portssvc.NotificationEmitter,
) portssvc.TimeEntrySvcFacade {
	return &timeEntryService{
		entryRepo:   entryRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
		notifier:    notifier,
	}
}

var _ portssvc.TimeEntrySvcFacade = (*timeEntryService)(nil)

// parseDayAndTimes combines the wire format (day + wall-clock strings) into
// the stored timestamps. The end instant must be after the start.
func parseDayAndTimes(dateStr, startStr, endStr string) (day, start, end time.Time, err error) {
	day, err = time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return day, start, end, fmt.Errorf("%w: invalid date", apperrors.ErrValidation)
	}
	startClock, err := time.Parse(clockLayout, startStr)
	if err != nil {
		return day, start, end, fmt.Errorf("%w: invalid start time", apperrors.ErrValidation)
	}
	endClock, err := time.Parse(clockLayout, endStr)
	if err != nil {
		return day, start, end, fmt.Errorf("%w: invalid end time", apperrors.ErrValidation)
	}
	start = time.Date(day.Year(), day.Month(), day.Day(), startClock.Hour(), startClock.Minute(), 0, 0, time.UTC)
	end = time.Date(day.Year(), day.Month(), day.Day(), endClock.Hour(), endClock.Minute(), 0, 0, time.UTC)
	if !end.After(start) {
		return day, start, end, ErrEntryZeroHours
	}
	return day, start, end, nil
}

// checkOverlap rejects the candidate interval when any of the user's other
// non-rejected entries on the same day intersects it.
func (s *timeEntryService) checkOverlap(ctx context.Context, candidate *domain.TimeEntry, excludeEntryID string) error {
	existing, err := s.entryRepo.FindEntriesForDay(ctx, candidate.UserID, candidate.Date, excludeEntryID)
	if err != nil {
		return fmt.Errorf("failed to load entries for overlap check: %w", err)
	}
	for i := range existing {
		other := &existing[i]
		if other.Status == domain.EntryRejected {
			continue
		}
		if candidate.Overlaps(other) {
			return ErrEntryOverlap
		}
	}
	return nil
}

// CreateEntry logs a new time entry for the principal.
func (s *timeEntryService) CreateEntry(ctx context.Context, principal domain.Principal, req dto.CreateTimeEntryRequest) (*domain.TimeEntry, error) {
	if err := s.authorizer.Authorize(ctx, principal, domain.ActionCreate, domain.Resource{OwnerUserID: principal.UserID}); err != nil {
		return nil, err
	}

	day, start, end, err := parseDayAndTimes(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.TimeEntry{
		EntryID:    uuid.NewString(),
		UserID:     principal.UserID,
		Date:       day,
		StartTime:  start,
		EndTime:    end,
		TotalHours: domain.HoursBetween(start, end),
		Status:     domain.EntryPending,
		Project:    req.Project,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
		},
	}

	if err := s.checkOverlap(ctx, &entry, ""); err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save time entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Time entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("total_hours", entry.TotalHours.String()))
	return &entry, nil
}

// loadEditableEntry fetches an entry and verifies the principal may mutate it:
// owner (or developer), state not approved, not linked to a payment.
func (s *timeEntryService) loadEditableEntry(ctx context.Context, principal domain.Principal, entryID string, action domain.Action) (*domain.TimeEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	// Owner-only resource: no company scope, so admins and managers cannot
	// mutate someone else's hours either.
	if err := s.authorizer.Authorize(ctx, principal, action, domain.Resource{OwnerUserID: entry.UserID}); err != nil {
		return nil, err
	}

	if !entry.IsEditable() {
		return nil, ErrEntryNotEditable
	}

	linked, err := s.paymentRepo.FindLinkedEntryIDs(ctx, []string{entry.EntryID})
	if err != nil {
		return nil, fmt.Errorf("failed to check payment links: %w", err)
	}
	if len(linked) > 0 {
		return nil, ErrEntryPaid
	}
	return entry, nil
}

// UpdateEntry edits a pending or rejected entry. Editing a rejected entry is
// the recovery path: it resets the entry to pending and clears the reason.
func (s *timeEntryService) UpdateEntry(ctx context.Context, principal domain.Principal, entryID string, req dto.UpdateTimeEntryRequest) (*domain.TimeEntry, error) {
	entry, err := s.loadEditableEntry(ctx, principal, entryID, domain.ActionUpdate)
	if err != nil {
		return nil, err
	}

	dateStr := entry.Date.Format(dateLayout)
	startStr := entry.StartTime.Format(clockLayout)
	endStr := entry.EndTime.Format(clockLayout)
	if req.Date != nil {
		dateStr = *req.Date
	}
	if req.StartTime != nil {
		startStr = *req.StartTime
	}
	if req.EndTime != nil {
		endStr = *req.EndTime
	}

	day, start, end, err := parseDayAndTimes(dateStr, startStr, endStr)
	if err != nil {
		return nil, err
	}

	entry.Date = day
	entry.StartTime = start
	entry.EndTime = end
	entry.TotalHours = domain.HoursBetween(start, end)
	if req.Project != nil {
		entry.Project = req.Project
	}
	entry.Status = domain.EntryPending
	entry.RejectionReason = nil
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = principal.UserID

	if err := s.checkOverlap(ctx, entry, entry.EntryID); err != nil {
		return nil, err
	}

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update time entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Time entry updated", slog.String("entry_id", entry.EntryID))
	return entry, nil
}

// DeleteEntry removes an entry under the same eligibility rules as edits.
func (s *timeEntryService) DeleteEntry(ctx context.Context, principal domain.Principal, entryID string) error {
	entry, err := s.loadEditableEntry(ctx, principal, entryID, domain.ActionDelete)
	if err != nil {
		return err
	}

	if err := s.entryRepo.DeleteEntry(ctx, entry.EntryID); err != nil {
		s.LogError(ctx, err, "Failed to delete time entry", slog.String("entry_id", entry.EntryID))
		return err
	}

	s.LogInfo(ctx, "Time entry deleted", slog.String("entry_id", entry.EntryID))
	return nil
}

// GetEntryByID retrieves a time entry the principal is allowed to see.
func (s *timeEntryService) GetEntryByID(ctx context.Context, principal domain.Principal, entryID string) (*domain.TimeEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	resource, err := s.entryResource(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, principal, domain.ActionRead, resource); err != nil {
		// Cross-tenant entries stay invisible rather than revealing they exist.
		if errors.Is(err, apperrors.ErrForbidden) && entry.UserID != principal.UserID {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves a page of time entries scoped to the principal.
func (s *timeEntryService) ListEntries(ctx context.Context, principal domain.Principal, params dto.ListTimeEntriesParams) ([]domain.TimeEntry, *string, error) {
	filter := portsrepo.TimeEntryFilter{}

	if params.From != nil {
		from, err := time.ParseInLocation(dateLayout, *params.From, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
		}
		filter.From = &from
	}
	if params.To != nil {
		to, err := time.ParseInLocation(dateLayout, *params.To, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
		}
		filter.To = &to
	}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		filter.Status = &status
	}

	// Visibility scope: employees see themselves, managers and admins their
	// company, developers whatever they ask for.
	switch principal.Role {
	case domain.RoleDeveloper:
		filter.UserID = params.UserID
	case domain.RoleAdmin, domain.RoleManager:
		if principal.CompanyID == nil {
			return nil, nil, apperrors.ErrForbidden
		}
		filter.CompanyID = principal.CompanyID
		filter.UserID = params.UserID
	default:
		userID := principal.UserID
		filter.UserID = &userID
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list time entries")
		return nil, nil, err
	}
	return entries, nextToken, nil
}

// entryResource builds the authorization resource for an entry, resolving the
// owner's company so managers and admins are scoped correctly.
func (s *timeEntryService) entryResource(ctx context.Context, entry *domain.TimeEntry) (domain.Resource, error) {
	owner, err := s.userRepo.FindUserByID(ctx, entry.UserID)
	if err != nil {
		return domain.Resource{}, fmt.Errorf("failed to resolve entry owner: %w", err)
	}
	return domain.Resource{
		OwnerUserID: owner.UserID,
		CompanyID:   owner.CompanyID,
		OwnerRole:   owner.Role,
	}, nil
}

// ApproveEntry transitions a pending entry to approved.
func (s *timeEntryService) ApproveEntry(ctx context.Context, principal domain.Principal, entryID string) (*domain.TimeEntry, error) {
	return s.decideEntry(ctx, principal, entryID, domain.EntryApproved, "")
}

// RejectEntry transitions a pending entry to rejected with the mandatory reason.
func (s *timeEntryService) RejectEntry(ctx context.Context, principal domain.Principal, entryID string, reason string) (*domain.TimeEntry, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.decideEntry(ctx, principal, entryID, domain.EntryRejected, reason)
}

// decideEntry applies an approval decision and emits the advisory
// notification to the owner. The notification is best-effort: the decision is
// the source of truth and is never rolled back on a notification failure.
func (s *timeEntryService) decideEntry(ctx context.Context, principal domain.Principal, entryID string, decision domain.EntryStatus, reason string) (*domain.TimeEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	resource, err := s.entryResource(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, principal, domain.ActionApprove, resource); err != nil {
		return nil, err
	}

	if entry.Status != domain.EntryPending {
		return nil, ErrEntryNotPending
	}

	entry.Status = decision
	if decision == domain.EntryRejected {
		entry.RejectionReason = &reason
	}
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = principal.UserID

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to store approval decision", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Time entry decided",
		slog.String("entry_id", entry.EntryID),
		slog.String("decision", string(decision)))

	s.notifyDecision(ctx, entry)
	return entry, nil
}

func (s *timeEntryService) notifyDecision(ctx context.Context, entry *domain.TimeEntry) {
	day := entry.Date.Format(dateLayout)
	relatedType := "time_entry"
	n := domain.Notification{
		UserID:      entry.UserID,
		RelatedID:   &entry.EntryID,
		RelatedType: &relatedType,
	}
	if entry.Status == domain.EntryApproved {
		n.Title = "Horas aprovadas"
		n.Message = fmt.Sprintf("Suas horas de %s foram aprovadas.", day)
		n.Type = domain.NotificationSuccess
	} else {
		n.Title = "Horas rejeitadas"
		reason := ""
		if entry.RejectionReason != nil {
			reason = *entry.RejectionReason
		}
		n.Message = fmt.Sprintf("Suas horas de %s foram rejeitadas: %s", day, reason)
		n.Type = domain.NotificationWarning
	}
	s.notifier.Emit(ctx, n)
}
