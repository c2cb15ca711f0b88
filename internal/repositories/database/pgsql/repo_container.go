package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/internship_placement_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        newPgxTxManager(dbPool),
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		PlacementRepo:    newPgxPlacementRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
	}
}
