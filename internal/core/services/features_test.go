package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portssvc "github.com/SscSPs/internship_placement_app/internal/core/ports/services"
	"github.com/SscSPs/internship_placement_app/internal/core/services"
	"github.com/SscSPs/internship_placement_app/internal/dto"
	"github.com/SscSPs/internship_placement_app/internal/repositories/memory"
)

// placementSteps holds state shared between step definitions of one scenario.
type placementSteps struct {
	ctx        context.Context
	store      *memory.Store
	ledger     portssvc.CapacityLedgerSvc
	placements portssvc.PlacementSvcFacade
	journals   portssvc.JournalSvcFacade

	byStudent map[string]*domain.Placement
	lastErr   error
	lastEntry *domain.JournalEntry
}

func newPlacementSteps() *placementSteps {
	store := memory.NewStore()
	repos := memory.NewRepositoryProvider(store)
	ledger := services.NewCapacityLedgerService(repos.OrganizationRepo)
	return &placementSteps{
		ctx:        context.Background(),
		store:      store,
		ledger:     ledger,
		placements: services.NewPlacementService(repos.TxManager, repos.PlacementRepo, repos.OrganizationRepo, ledger),
		journals:   services.NewJournalService(repos.TxManager, repos.JournalRepo, repos.PlacementRepo),
		byStudent:  make(map[string]*domain.Placement),
	}
}

// RegisterSteps registers all step definitions
func (s *placementSteps) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^an active organization "([^"]*)" with capacity (\d+)$`, s.anActiveOrganizationWithCapacity)
	sc.Step(`^student "([^"]*)" registers at "([^"]*)"$`, s.studentRegistersAt)
	sc.Step(`^the placement of "([^"]*)" is "([^"]*)"$`, s.thePlacementOfIs)
	sc.Step(`^organization "([^"]*)" has (\d+) committed slots$`, s.organizationHasCommittedSlots)
	sc.Step(`^the (?:registration|submission) fails with "([^"]*)"$`, s.theLastCallFailsWith)
	sc.Step(`^supervisor "([^"]*)" rejects the placement of "([^"]*)"$`, s.supervisorRejectsThePlacementOf)
	sc.Step(`^student "([^"]*)" has a placement at "([^"]*)" accepted by supervisor "([^"]*)"$`, s.studentHasAcceptedPlacement)
	sc.Step(`^student "([^"]*)" submits a journal entry with a (\d+)-character narrative$`, s.studentSubmitsJournal)
	sc.Step(`^the journal entry is "([^"]*)"$`, s.theJournalEntryIs)
}

func (s *placementSteps) anActiveOrganizationWithCapacity(orgID string, capacity int) error {
	return s.store.UpsertOrganization(s.ctx, domain.HostOrganization{
		OrganizationID: orgID,
		Name:           orgID,
		Capacity:       &capacity,
		Status:         domain.OrganizationActive,
	})
}

func (s *placementSteps) studentRegistersAt(studentID, orgID string) error {
	actor := domain.Actor{ID: studentID, Role: domain.RoleStudent}
	p, err := s.placements.Register(s.ctx, actor, dto.RegisterPlacementRequest{StudentID: studentID, OrganizationID: orgID})
	s.lastErr = err
	if err == nil {
		s.byStudent[studentID] = p
	}
	return nil
}

func (s *placementSteps) thePlacementOfIs(studentID, status string) error {
	if s.lastErr != nil {
		return fmt.Errorf("last call failed: %w", s.lastErr)
	}
	p, ok := s.byStudent[studentID]
	if !ok {
		return fmt.Errorf("student %s has no placement", studentID)
	}
	if string(p.Status) != status {
		return fmt.Errorf("expected status %s, got %s", status, p.Status)
	}
	return nil
}

func (s *placementSteps) organizationHasCommittedSlots(orgID string, want int) error {
	snap, err := s.ledger.Query(s.ctx, orgID)
	if err != nil {
		return err
	}
	if snap.Committed != want {
		return fmt.Errorf("expected %d committed slots, got %d", want, snap.Committed)
	}
	return nil
}

func (s *placementSteps) theLastCallFailsWith(code string) error {
	if s.lastErr == nil {
		return errors.New("expected a failure, got success")
	}
	if got := apperrors.RuleCode(s.lastErr); got != code {
		return fmt.Errorf("expected %s, got %s (%v)", code, got, s.lastErr)
	}
	return nil
}

func (s *placementSteps) supervisorRejectsThePlacementOf(supervisorID, studentID string) error {
	p, ok := s.byStudent[studentID]
	if !ok {
		return fmt.Errorf("student %s has no placement", studentID)
	}
	actor := domain.Actor{ID: supervisorID, Role: domain.RoleSupervisor}
	updated, err := s.placements.Transition(s.ctx, actor, p.PlacementID, dto.TransitionPlacementRequest{Event: domain.EventReject})
	if err != nil {
		return err
	}
	s.byStudent[studentID] = updated
	return nil
}

func (s *placementSteps) studentHasAcceptedPlacement(studentID, orgID, supervisorID string) error {
	if err := s.studentRegistersAt(studentID, orgID); err != nil {
		return err
	}
	if s.lastErr != nil {
		return s.lastErr
	}
	actor := domain.Actor{ID: supervisorID, Role: domain.RoleSupervisor}
	p, err := s.placements.Transition(s.ctx, actor, s.byStudent[studentID].PlacementID, dto.TransitionPlacementRequest{Event: domain.EventAccept})
	if err != nil {
		return err
	}
	s.byStudent[studentID] = p
	return nil
}

func (s *placementSteps) studentSubmitsJournal(studentID string, length int) error {
	p, ok := s.byStudent[studentID]
	if !ok {
		return fmt.Errorf("student %s has no placement", studentID)
	}
	sub, err := s.journals.Submit(s.ctx, domain.Actor{ID: studentID, Role: domain.RoleStudent}, dto.SubmitJournalRequest{
		PlacementID: p.PlacementID,
		EntryDate:   time.Now(),
		Activity:    strings.Repeat("a", length),
	})
	s.lastErr = err
	s.lastEntry = nil
	if err == nil {
		s.lastEntry = &sub.Entry
	}
	return nil
}

func (s *placementSteps) theJournalEntryIs(status string) error {
	if s.lastErr != nil {
		return fmt.Errorf("last call failed: %w", s.lastErr)
	}
	if string(s.lastEntry.Status) != status {
		return fmt.Errorf("expected entry status %s, got %s", status, s.lastEntry.Status)
	}
	return nil
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			newPlacementSteps().RegisterSteps(sc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("Non-zero status returned, failed to run feature tests")
	}
}
