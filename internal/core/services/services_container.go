package services

import (
	portsrepo "github.com/SscSPs/internship_placement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/internship_placement_app/internal/core/ports/services"
	"github.com/SscSPs/internship_placement_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	policy := cfg.Policy()

	container := &portssvc.ServiceContainer{}

	// The ledger is a leaf; the placement engine depends on it.
	container.Capacity = NewCapacityLedgerService(repos.OrganizationRepo)

	container.Placement = NewPlacementService(
		repos.TxManager,
		repos.PlacementRepo,
		repos.OrganizationRepo,
		container.Capacity,
		WithPlacementPolicy(policy),
		WithPlacementJournalWriter(repos.JournalRepo),
	)

	container.Journal = NewJournalService(
		repos.TxManager,
		repos.JournalRepo,
		repos.PlacementRepo,
		WithJournalPolicy(policy),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CapacityLedgerSvc  = (*capacityLedgerService)(nil)
	_ portssvc.PlacementSvcFacade = (*placementService)(nil)
	_ portssvc.JournalSvcFacade   = (*journalService)(nil)
)
