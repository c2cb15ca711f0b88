package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/internship_placement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/internship_placement_app/internal/core/ports/services"
	"github.com/SscSPs/internship_placement_app/internal/dto"
	"github.com/SscSPs/internship_placement_app/internal/platform/metrics"
)

// journalService runs the daily journal review workflow.
type journalService struct {
	BaseService
	txManager     portsrepo.TransactionManager
	journalRepo   portsrepo.JournalRepositoryFacade
	placementRepo portsrepo.PlacementReader
	policy        domain.Policy
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalPolicy overrides the default rule limits.
func WithJournalPolicy(policy domain.Policy) JournalServiceOption {
	return func(s *journalService) {
		s.policy = policy
	}
}

// WithJournalClock replaces the wall clock, for tests.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.Now = now
	}
}

// NewJournalService creates a new JournalSvcFacade.
func NewJournalService(
	txManager portsrepo.TransactionManager,
	journalRepo portsrepo.JournalRepositoryFacade,
	placementRepo portsrepo.PlacementReader,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		txManager:     txManager,
		journalRepo:   journalRepo,
		placementRepo: placementRepo,
		policy:        domain.DefaultPolicy(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// Submit records a new pending entry.
func (s *journalService) Submit(ctx context.Context, actor domain.Actor, req dto.SubmitJournalRequest) (*domain.JournalSubmission, error) {
	logAttrs := []any{slog.String("placement_id", req.PlacementID)}

	var result domain.JournalSubmission
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.placementRepo.FindPlacementByID(ctx, req.PlacementID)
		if err != nil {
			return err
		}
		if !actor.IsStudent(p.StudentID) {
			return notAuthorized("only the placed student may submit journals for placement %s", p.PlacementID)
		}
		if !p.Status.AcceptsJournals() {
			return fmt.Errorf("%w: placement is %s", apperrors.ErrPlacementNotEligible, p.Status)
		}
		if err := s.policy.ValidateNarrative(req.Activity); err != nil {
			return err
		}

		day := asOf(req.EntryDate)
		warnings, err := s.dateWarnings(ctx, p.PlacementID, day, "")
		if err != nil {
			return err
		}

		entry := domain.JournalEntry{
			EntryID:       uuid.NewString(),
			PlacementID:   p.PlacementID,
			EntryDate:     day,
			Activity:      req.Activity,
			Obstacles:     req.Obstacles,
			AttachmentRef: req.AttachmentRef,
			Status:        domain.ReviewPending,
			AuditFields:   domain.NewAuditFields(actor.ID, s.now()),
		}
		if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
			return err
		}
		result = domain.JournalSubmission{Entry: entry, Warnings: warnings}
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Journal submission failed", logAttrs...)
		return nil, err
	}

	if len(result.Warnings) > 0 {
		s.GetLogger(ctx).Warn("Journal entry duplicates an existing date", append(logAttrs, slog.String("entry_id", result.Entry.EntryID))...)
	}
	s.LogInfo(ctx, "Journal entry submitted", append(logAttrs, slog.String("entry_id", result.Entry.EntryID))...)
	return &result, nil
}

// Edit updates the provided fields of a pending or rejected entry. A rejected
// entry re-opens as pending and loses its reviewer note.
func (s *journalService) Edit(ctx context.Context, actor domain.Actor, entryID string, req dto.EditJournalRequest) (*domain.JournalSubmission, error) {
	logAttrs := []any{slog.String("entry_id", entryID)}

	var result domain.JournalSubmission
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindJournalEntryByIDForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		p, err := s.placementRepo.FindPlacementByID(ctx, entry.PlacementID)
		if err != nil {
			return err
		}
		if !actor.IsStudent(p.StudentID) {
			return notAuthorized("only the placed student may edit journal entry %s", entryID)
		}
		if entry.IsLocked() {
			return apperrors.ErrEntryLocked
		}

		if req.Activity != nil {
			entry.Activity = *req.Activity
		}
		if err := s.policy.ValidateNarrative(entry.Activity); err != nil {
			return err
		}
		if req.EntryDate != nil {
			entry.EntryDate = asOf(*req.EntryDate)
		}
		if req.Obstacles != nil {
			entry.Obstacles = req.Obstacles
		}
		if req.AttachmentRef != nil {
			entry.AttachmentRef = req.AttachmentRef
		}

		warnings, err := s.dateWarnings(ctx, entry.PlacementID, entry.EntryDate, entry.EntryID)
		if err != nil {
			return err
		}

		if entry.Status == domain.ReviewRejected {
			entry.Status = domain.ReviewPending
			entry.ReviewerNote = nil
			entry.ReviewedBy = nil
			entry.ReviewedAt = nil
		}
		entry.Touch(actor.ID, s.now())

		if err := s.journalRepo.UpdateJournalEntry(ctx, *entry); err != nil {
			return err
		}
		result = domain.JournalSubmission{Entry: *entry, Warnings: warnings}
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Journal edit failed", logAttrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry edited", logAttrs...)
	return &result, nil
}

// Review records the assigned supervisor's decision. Approval is final;
// rejecting an already rejected entry just replaces the note.
func (s *journalService) Review(ctx context.Context, actor domain.Actor, entryID string, req dto.ReviewJournalRequest) (*domain.JournalEntry, error) {
	logAttrs := []any{
		slog.String("entry_id", entryID),
		slog.String("decision", string(req.Decision)),
	}

	var reviewed *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindJournalEntryByIDForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		p, err := s.placementRepo.FindPlacementByID(ctx, entry.PlacementID)
		if err != nil {
			return err
		}
		if !actor.IsSupervisor(p.SupervisorID) {
			return notAuthorized("only the assigned supervisor may review journal entry %s", entryID)
		}
		if entry.Status == domain.ReviewApproved {
			return apperrors.ErrAlreadyApproved
		}

		switch req.Decision {
		case domain.DecisionApprove:
			entry.Status = domain.ReviewApproved
		case domain.DecisionReject:
			entry.Status = domain.ReviewRejected
		default:
			return fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidation, req.Decision)
		}

		now := s.now()
		reviewer := actor.ID
		entry.ReviewerNote = req.Note
		entry.ReviewedBy = &reviewer
		entry.ReviewedAt = &now
		entry.Touch(actor.ID, now)

		if err := s.journalRepo.UpdateJournalEntry(ctx, *entry); err != nil {
			return err
		}
		reviewed = entry
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Journal review failed", logAttrs...)
		return nil, err
	}

	metrics.RecordJournalReview(string(req.Decision))
	s.LogInfo(ctx, "Journal entry reviewed", logAttrs...)
	return reviewed, nil
}

// Delete removes an entry: the owning student while it is pending, an
// administrator at any time.
func (s *journalService) Delete(ctx context.Context, actor domain.Actor, entryID string) error {
	logAttrs := []any{slog.String("entry_id", entryID)}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindJournalEntryByIDForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			p, err := s.placementRepo.FindPlacementByID(ctx, entry.PlacementID)
			if err != nil {
				return err
			}
			if !actor.IsStudent(p.StudentID) || entry.Status != domain.ReviewPending {
				return notAuthorized("%s %s may not delete %s journal entry %s", actor.Role, actor.ID, entry.Status, entryID)
			}
		}
		return s.journalRepo.DeleteJournalEntry(ctx, entryID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Journal deletion failed", logAttrs...)
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted", logAttrs...)
	return nil
}

func (s *journalService) GetJournalEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, entryID)
	if err != nil {
		s.LogFailure(ctx, err, "Journal lookup failed", slog.String("entry_id", entryID))
		return nil, err
	}
	p, err := s.placementRepo.FindPlacementByID(ctx, entry.PlacementID)
	if err != nil {
		s.LogFailure(ctx, err, "Journal lookup failed", slog.String("entry_id", entryID))
		return nil, err
	}
	if err := canViewJournals(actor, p); err != nil {
		s.LogFailure(ctx, err, "Journal lookup refused", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListJournalsByPlacement(ctx context.Context, actor domain.Actor, placementID string, params dto.ListJournalsParams) ([]domain.JournalEntry, error) {
	logAttrs := []any{slog.String("placement_id", placementID)}

	var status *domain.ReviewStatus
	if params.Status != "" {
		st, err := domain.ParseLegacyReviewStatus(params.Status)
		if err != nil {
			s.LogFailure(ctx, err, "Journal listing refused", logAttrs...)
			return nil, err
		}
		status = &st
	}

	p, err := s.placementRepo.FindPlacementByID(ctx, placementID)
	if err != nil {
		s.LogFailure(ctx, err, "Journal listing failed", logAttrs...)
		return nil, err
	}
	if err := canViewJournals(actor, p); err != nil {
		s.LogFailure(ctx, err, "Journal listing refused", logAttrs...)
		return nil, err
	}

	entries, err := s.journalRepo.ListJournalEntriesByPlacement(ctx, placementID, status)
	if err != nil {
		s.LogFailure(ctx, err, "Journal listing failed", logAttrs...)
		return nil, err
	}
	return entries, nil
}

// dateWarnings flags a second entry on the same day. Duplicates are allowed.
func (s *journalService) dateWarnings(ctx context.Context, placementID string, day time.Time, excludeEntryID string) ([]domain.Warning, error) {
	n, err := s.journalRepo.CountJournalEntriesOnDate(ctx, placementID, day, excludeEntryID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return []domain.Warning{{
		Code:    domain.WarningDuplicateJournalDate,
		Message: fmt.Sprintf("placement already has %d entry(s) dated %s", n, day.Format(time.DateOnly)),
	}}, nil
}

func canViewJournals(actor domain.Actor, p *domain.Placement) error {
	if actor.IsAdmin() || actor.IsStudent(p.StudentID) || actor.IsSupervisor(p.SupervisorID) {
		return nil
	}
	return notAuthorized("%s %s may not view journals of placement %s", actor.Role, actor.ID, p.PlacementID)
}
