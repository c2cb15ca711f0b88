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

const defaultPlacementPageSize = 20

// placementService is the placement allocation engine.
type placementService struct {
	BaseService
	txManager     portsrepo.TransactionManager
	placementRepo portsrepo.PlacementRepositoryFacade
	orgRepo       portsrepo.OrganizationReader
	journalRepo   portsrepo.JournalWriter
	ledger        portssvc.CapacityLedgerSvc
	policy        domain.Policy
}

// PlacementServiceOption is a functional option for configuring the placement service
type PlacementServiceOption func(*placementService)

// WithPlacementPolicy overrides the default rule limits.
func WithPlacementPolicy(policy domain.Policy) PlacementServiceOption {
	return func(s *placementService) {
		s.policy = policy
	}
}

// WithPlacementJournalWriter lets administrative deletion remove journal entries.
func WithPlacementJournalWriter(repo portsrepo.JournalWriter) PlacementServiceOption {
	return func(s *placementService) {
		s.journalRepo = repo
	}
}

// WithPlacementClock replaces the wall clock, for tests.
func WithPlacementClock(now func() time.Time) PlacementServiceOption {
	return func(s *placementService) {
		s.Now = now
	}
}

// NewPlacementService creates a new PlacementSvcFacade.
func NewPlacementService(
	txManager portsrepo.TransactionManager,
	placementRepo portsrepo.PlacementRepositoryFacade,
	orgRepo portsrepo.OrganizationReader,
	ledger portssvc.CapacityLedgerSvc,
	options ...PlacementServiceOption,
) portssvc.PlacementSvcFacade {
	svc := &placementService{
		txManager:     txManager,
		placementRepo: placementRepo,
		orgRepo:       orgRepo,
		ledger:        ledger,
		policy:        domain.DefaultPolicy(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PlacementSvcFacade = (*placementService)(nil)

// Register creates a pending placement. Every check runs before the slot is
// reserved, and reservation and insert share one unit of work.
func (s *placementService) Register(ctx context.Context, actor domain.Actor, req dto.RegisterPlacementRequest) (*domain.Placement, error) {
	logAttrs := []any{
		slog.String("student_id", req.StudentID),
		slog.String("organization_id", req.OrganizationID),
	}

	if !actor.IsAdmin() && !actor.IsStudent(req.StudentID) {
		err := notAuthorized("%s %s may not register student %s", actor.Role, actor.ID, req.StudentID)
		s.LogFailure(ctx, err, "Registration refused", logAttrs...)
		return nil, err
	}
	if err := domain.ValidatePeriod(req.PeriodStart, req.PeriodEnd); err != nil {
		s.LogFailure(ctx, err, "Registration refused", logAttrs...)
		return nil, err
	}

	var placement domain.Placement
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		org, err := s.orgRepo.FindOrganizationByID(ctx, req.OrganizationID)
		if err != nil {
			return err
		}
		if org.Status != domain.OrganizationActive {
			return fmt.Errorf("%w: organization %s is %s", apperrors.ErrOrganizationInactive, org.OrganizationID, org.Status)
		}

		if err := s.placementRepo.LockStudentApplications(ctx, req.StudentID); err != nil {
			return err
		}

		dup, err := s.placementRepo.HasOpenPlacementAt(ctx, req.StudentID, req.OrganizationID)
		if err != nil {
			return err
		}
		if dup {
			return apperrors.ErrDuplicateRegistration
		}

		open, err := s.placementRepo.CountOpenPlacementsByStudent(ctx, req.StudentID)
		if err != nil {
			return err
		}
		if open >= s.policy.MaxOpenApplications {
			return fmt.Errorf("%w: %d of %d", apperrors.ErrApplicationLimitReached, open, s.policy.MaxOpenApplications)
		}

		if _, err := s.ledger.ReserveSlot(ctx, req.OrganizationID); err != nil {
			return err
		}

		now := s.now()
		placement = domain.Placement{
			PlacementID:    uuid.NewString(),
			StudentID:      req.StudentID,
			OrganizationID: req.OrganizationID,
			PeriodStart:    req.PeriodStart,
			PeriodEnd:      req.PeriodEnd,
			Status:         domain.PlacementPending,
			AuditFields:    domain.NewAuditFields(actor.ID, now),
		}
		return s.placementRepo.SavePlacement(ctx, placement)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Registration failed", logAttrs...)
		return nil, err
	}

	metrics.RecordPlacementStatus(string(placement.Status))
	s.LogInfo(ctx, "Placement registered", append(logAttrs, slog.String("placement_id", placement.PlacementID))...)
	return &placement, nil
}

// Transition applies a lifecycle event. A grade is only accepted alongside
// complete. Cancel is routed to Cancel so that its idempotent behavior is shared.
func (s *placementService) Transition(ctx context.Context, actor domain.Actor, placementID string, req dto.TransitionPlacementRequest) (*domain.Placement, error) {
	logAttrs := []any{
		slog.String("placement_id", placementID),
		slog.String("event", string(req.Event)),
	}

	if req.Grade != nil {
		if req.Event != domain.EventComplete {
			err := fmt.Errorf("%w: grade is only accepted with complete", apperrors.ErrValidation)
			s.LogFailure(ctx, err, "Transition refused", logAttrs...)
			return nil, err
		}
		if err := s.policy.ValidateGrade(*req.Grade); err != nil {
			s.LogFailure(ctx, err, "Transition refused", logAttrs...)
			return nil, err
		}
	}

	if req.Event == domain.EventCancel {
		return s.Cancel(ctx, actor, placementID)
	}

	var placement *domain.Placement
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.placementRepo.FindPlacementByIDForUpdate(ctx, placementID)
		if err != nil {
			return err
		}
		if err := s.authorizeTransition(actor, p, req); err != nil {
			return err
		}

		next, err := domain.NextStatus(p.Status, req.Event)
		if err != nil {
			return err
		}

		switch req.Event {
		case domain.EventAccept:
			supervisorID := actor.ID
			if req.SupervisorID != nil {
				supervisorID = *req.SupervisorID
			}
			p.SupervisorID = &supervisorID
		case domain.EventBegin:
			start := s.now()
			if req.EffectiveDate != nil {
				start = *req.EffectiveDate
			}
			start = asOf(start)
			if err := domain.ValidatePeriod(&start, p.PeriodEnd); err != nil {
				return err
			}
			p.PeriodStart = &start
		case domain.EventComplete:
			if req.Grade != nil {
				grade := *req.Grade
				p.FinalGrade = &grade
			}
		}

		if domain.ReleasesSlot(req.Event) {
			if _, err := s.ledger.ReleaseSlot(ctx, p.OrganizationID); err != nil {
				return err
			}
		}

		p.Status = next
		p.Touch(actor.ID, s.now())
		if err := s.placementRepo.UpdatePlacement(ctx, *p); err != nil {
			return err
		}
		placement = p
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Transition failed", logAttrs...)
		return nil, err
	}

	metrics.RecordPlacementStatus(string(placement.Status))
	s.LogInfo(ctx, "Placement transitioned", append(logAttrs, slog.String("status", string(placement.Status)))...)
	return placement, nil
}

func (s *placementService) authorizeTransition(actor domain.Actor, p *domain.Placement, req dto.TransitionPlacementRequest) error {
	switch req.Event {
	case domain.EventAccept:
		switch {
		case actor.IsAdmin():
			if req.SupervisorID == nil || *req.SupervisorID == "" {
				return fmt.Errorf("%w: supervisorID is required when an administrator accepts", apperrors.ErrValidation)
			}
			return nil
		case actor.Role == domain.RoleSupervisor:
			if req.SupervisorID != nil && *req.SupervisorID != actor.ID {
				return notAuthorized("supervisor %s may not assign another supervisor", actor.ID)
			}
			return nil
		}
		return notAuthorized("%s %s may not accept placements", actor.Role, actor.ID)
	case domain.EventReject:
		if actor.IsAdmin() || actor.Role == domain.RoleSupervisor {
			return nil
		}
		return notAuthorized("%s %s may not reject placements", actor.Role, actor.ID)
	case domain.EventBegin, domain.EventComplete:
		if actor.IsAdmin() || actor.IsSupervisor(p.SupervisorID) {
			return nil
		}
		return notAuthorized("only the assigned supervisor may %s placement %s", req.Event, p.PlacementID)
	}
	return fmt.Errorf("%w: unknown event %q", apperrors.ErrValidation, req.Event)
}

// Cancel withdraws an open placement. A terminal placement is returned unchanged.
func (s *placementService) Cancel(ctx context.Context, actor domain.Actor, placementID string) (*domain.Placement, error) {
	logAttrs := []any{slog.String("placement_id", placementID)}

	var placement *domain.Placement
	released := false
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.placementRepo.FindPlacementByIDForUpdate(ctx, placementID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !actor.IsStudent(p.StudentID) && !actor.IsSupervisor(p.SupervisorID) {
			return notAuthorized("%s %s may not cancel placement %s", actor.Role, actor.ID, p.PlacementID)
		}

		placement = p
		if p.Status.IsTerminal() {
			return nil
		}

		next, err := domain.NextStatus(p.Status, domain.EventCancel)
		if err != nil {
			return err
		}
		if _, err := s.ledger.ReleaseSlot(ctx, p.OrganizationID); err != nil {
			return err
		}
		p.Status = next
		p.Touch(actor.ID, s.now())
		released = true
		return s.placementRepo.UpdatePlacement(ctx, *p)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Cancellation failed", logAttrs...)
		return nil, err
	}

	if !released {
		s.LogInfo(ctx, "Cancellation of terminal placement ignored", append(logAttrs, slog.String("status", string(placement.Status)))...)
		return placement, nil
	}
	metrics.RecordPlacementStatus(string(placement.Status))
	s.LogInfo(ctx, "Placement cancelled", logAttrs...)
	return placement, nil
}

// DeletePlacement is the administrative override. A placement still holding
// a slot gives it back before the row and its journal entries are removed.
func (s *placementService) DeletePlacement(ctx context.Context, actor domain.Actor, placementID string) error {
	logAttrs := []any{slog.String("placement_id", placementID)}

	if !actor.IsAdmin() {
		err := notAuthorized("%s %s may not delete placements", actor.Role, actor.ID)
		s.LogFailure(ctx, err, "Deletion refused", logAttrs...)
		return err
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.placementRepo.FindPlacementByIDForUpdate(ctx, placementID)
		if err != nil {
			return err
		}
		if p.Status.HoldsSlot() {
			if _, err := s.ledger.ReleaseSlot(ctx, p.OrganizationID); err != nil {
				return err
			}
		}
		if s.journalRepo != nil {
			if err := s.journalRepo.DeleteJournalEntriesByPlacement(ctx, placementID); err != nil {
				return err
			}
		}
		return s.placementRepo.DeletePlacement(ctx, placementID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Deletion failed", logAttrs...)
		return err
	}

	s.LogInfo(ctx, "Placement deleted", logAttrs...)
	return nil
}

func (s *placementService) GetPlacement(ctx context.Context, actor domain.Actor, placementID string) (*domain.Placement, error) {
	p, err := s.placementRepo.FindPlacementByID(ctx, placementID)
	if err != nil {
		s.LogFailure(ctx, err, "Placement lookup failed", slog.String("placement_id", placementID))
		return nil, err
	}
	if actor.Role == domain.RoleStudent && actor.ID != p.StudentID {
		err := notAuthorized("student %s may not view placement %s", actor.ID, placementID)
		s.LogFailure(ctx, err, "Placement lookup refused", slog.String("placement_id", placementID))
		return nil, err
	}
	return p, nil
}

func (s *placementService) ListPlacementsByOrganization(ctx context.Context, actor domain.Actor, organizationID string, params dto.ListPlacementsParams) (*dto.ListPlacementsResponse, error) {
	if actor.Role == domain.RoleStudent {
		err := notAuthorized("students may not list organization placements")
		s.LogFailure(ctx, err, "Placement listing refused", slog.String("organization_id", organizationID))
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultPlacementPageSize
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	placements, next, err := s.placementRepo.ListPlacementsByOrganization(ctx, organizationID, limit, token)
	if err != nil {
		s.LogFailure(ctx, err, "Placement listing failed", slog.String("organization_id", organizationID))
		return nil, err
	}

	return &dto.ListPlacementsResponse{
		Placements: dto.ToPlacementResponses(placements),
		NextToken:  next,
	}, nil
}

func (s *placementService) ListPlacementsByStudent(ctx context.Context, actor domain.Actor, studentID string) ([]domain.Placement, error) {
	if actor.Role == domain.RoleStudent && actor.ID != studentID {
		err := notAuthorized("student %s may not list placements of %s", actor.ID, studentID)
		s.LogFailure(ctx, err, "Placement listing refused", slog.String("student_id", studentID))
		return nil, err
	}

	placements, err := s.placementRepo.ListPlacementsByStudent(ctx, studentID)
	if err != nil {
		s.LogFailure(ctx, err, "Placement listing failed", slog.String("student_id", studentID))
		return nil, err
	}
	return placements, nil
}

func (s *placementService) GetPlacementStats(ctx context.Context, actor domain.Actor, organizationID string) (*domain.PlacementStats, error) {
	if actor.Role == domain.RoleStudent {
		err := notAuthorized("students may not view placement statistics")
		s.LogFailure(ctx, err, "Statistics refused", slog.String("organization_id", organizationID))
		return nil, err
	}

	if _, err := s.orgRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		s.LogFailure(ctx, err, "Statistics failed", slog.String("organization_id", organizationID))
		return nil, err
	}

	counts, err := s.placementRepo.CountPlacementsByStatus(ctx, organizationID)
	if err != nil {
		s.LogFailure(ctx, err, "Statistics failed", slog.String("organization_id", organizationID))
		return nil, err
	}

	stats := &domain.PlacementStats{OrganizationID: organizationID, ByStatus: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}
