package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portssvc "github.com/SscSPs/internship_placement_app/internal/core/ports/services"
	"github.com/SscSPs/internship_placement_app/internal/core/services"
	"github.com/SscSPs/internship_placement_app/internal/dto"
	"github.com/SscSPs/internship_placement_app/internal/repositories/memory"
)

var (
	admin           = domain.Actor{ID: "admin-1", Role: domain.RoleAdministrator}
	supervisor      = domain.Actor{ID: "guru-1", Role: domain.RoleSupervisor}
	otherSupervisor = domain.Actor{ID: "guru-2", Role: domain.RoleSupervisor}
)

func student(id string) domain.Actor {
	return domain.Actor{ID: id, Role: domain.RoleStudent}
}

func intPtr(i int) *int { return &i }

func strPtr(v string) *string { return &v }

// storeSuite wires the real services over an in-memory store.
type storeSuite struct {
	suite.Suite
	ctx        context.Context
	now        time.Time
	store      *memory.Store
	ledger     portssvc.CapacityLedgerSvc
	placements portssvc.PlacementSvcFacade
	journals   portssvc.JournalSvcFacade
}

func (s *storeSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return s.now }

	s.store = memory.NewStore()
	repos := memory.NewRepositoryProvider(s.store)
	s.ledger = services.NewCapacityLedgerService(repos.OrganizationRepo)
	s.placements = services.NewPlacementService(repos.TxManager, repos.PlacementRepo, repos.OrganizationRepo, s.ledger,
		services.WithPlacementJournalWriter(repos.JournalRepo),
		services.WithPlacementClock(clock),
	)
	s.journals = services.NewJournalService(repos.TxManager, repos.JournalRepo, repos.PlacementRepo,
		services.WithJournalClock(clock),
	)
}

func (s *storeSuite) addOrg(id string, capacity *int, status domain.OrganizationStatus) {
	s.Require().NoError(s.store.UpsertOrganization(s.ctx, domain.HostOrganization{
		OrganizationID: id,
		Name:           "Org " + id,
		Capacity:       capacity,
		Status:         status,
		AuditFields:    domain.NewAuditFields("test", s.now),
	}))
}

func (s *storeSuite) committed(orgID string) int {
	snap, err := s.ledger.Query(s.ctx, orgID)
	s.Require().NoError(err)
	return snap.Committed
}

func (s *storeSuite) register(studentID, orgID string) *domain.Placement {
	p, err := s.placements.Register(s.ctx, student(studentID), dto.RegisterPlacementRequest{StudentID: studentID, OrganizationID: orgID})
	s.Require().NoError(err)
	return p
}

func (s *storeSuite) transition(actor domain.Actor, placementID string, event domain.PlacementEvent) *domain.Placement {
	p, err := s.placements.Transition(s.ctx, actor, placementID, dto.TransitionPlacementRequest{Event: event})
	s.Require().NoError(err)
	return p
}

// accepted registers a placement and has the default supervisor accept it.
func (s *storeSuite) accepted(studentID, orgID string) *domain.Placement {
	p := s.register(studentID, orgID)
	return s.transition(supervisor, p.PlacementID, domain.EventAccept)
}
