//go:build integration

package pgsql_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/internship_placement_app/internal/core/ports/repositories"
	"github.com/SscSPs/internship_placement_app/internal/core/services"
	"github.com/SscSPs/internship_placement_app/internal/dto"
	"github.com/SscSPs/internship_placement_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/internship_placement_app/pkg/database"
)

type PgsqlIntegrationSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
}

func TestPgsqlIntegration(t *testing.T) {
	suite.Run(t, new(PgsqlIntegrationSuite))
}

func (s *PgsqlIntegrationSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("placement_test"),
		tcpostgres.WithUsername("placement"),
		tcpostgres.WithPassword("placement"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	migrator, err := database.NewMigrator(dsn)
	s.Require().NoError(err)
	s.Require().NoError(migrator.Up())
	s.Require().NoError(migrator.Close())

	s.pool, err = database.NewPgxPool(ctx, dsn, true, 30*time.Second)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
}

func (s *PgsqlIntegrationSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PgsqlIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE journal_entries, placements, host_organizations CASCADE`)
	s.Require().NoError(err)
}

func (s *PgsqlIntegrationSuite) seedOrg(id string, capacity *int) {
	s.Require().NoError(s.repos.OrganizationRepo.UpsertOrganization(context.Background(), domain.HostOrganization{
		OrganizationID: id,
		Name:           "Org " + id,
		Capacity:       capacity,
		Status:         domain.OrganizationActive,
		AuditFields:    domain.NewAuditFields("seed", time.Now().UTC()),
	}))
}

func (s *PgsqlIntegrationSuite) TestIncrementStopsAtCapacity() {
	ctx := context.Background()
	limit := 1
	s.seedOrg("org-1", &limit)

	snap, err := s.repos.OrganizationRepo.IncrementCommitted(ctx, "org-1")
	s.Require().NoError(err)
	s.Equal(1, snap.Committed)

	_, err = s.repos.OrganizationRepo.IncrementCommitted(ctx, "org-1")
	s.ErrorIs(err, apperrors.ErrCapacityExhausted)

	_, err = s.repos.OrganizationRepo.IncrementCommitted(ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)

	snap, err = s.repos.OrganizationRepo.DecrementCommitted(ctx, "org-1")
	s.Require().NoError(err)
	s.Equal(0, snap.Committed)
	snap, err = s.repos.OrganizationRepo.DecrementCommitted(ctx, "org-1")
	s.Require().NoError(err)
	s.Equal(0, snap.Committed)
}

func (s *PgsqlIntegrationSuite) TestRollbackUndoesReservation() {
	ctx := context.Background()
	limit := 2
	s.seedOrg("org-1", &limit)

	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repos.OrganizationRepo.IncrementCommitted(ctx, "org-1"); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	s.Require().Error(err)

	snap, err := s.repos.OrganizationRepo.FindCapacity(ctx, "org-1")
	s.Require().NoError(err)
	s.Equal(0, snap.Committed)
}

func (s *PgsqlIntegrationSuite) TestParallelRegistrationsForLastSlot() {
	const students = 16
	ctx := context.Background()
	limit := 1
	s.seedOrg("org-1", &limit)

	ledger := services.NewCapacityLedgerService(s.repos.OrganizationRepo)
	placements := services.NewPlacementService(s.repos.TxManager, s.repos.PlacementRepo, s.repos.OrganizationRepo, ledger)

	var wg sync.WaitGroup
	errs := make([]error, students)
	for i := 0; i < students; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			studentID := fmt.Sprintf("student-%d", i)
			_, errs[i] = placements.Register(ctx,
				domain.Actor{ID: studentID, Role: domain.RoleStudent},
				dto.RegisterPlacementRequest{StudentID: studentID, OrganizationID: "org-1"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, apperrors.ErrCapacityExhausted)
	}
	s.Equal(1, succeeded)

	snap, err := s.repos.OrganizationRepo.FindCapacity(ctx, "org-1")
	s.Require().NoError(err)
	s.Equal(1, snap.Committed)
}

func (s *PgsqlIntegrationSuite) TestOpenPlacementIndexRejectsDuplicate() {
	ctx := context.Background()
	s.seedOrg("org-1", nil)

	now := time.Now().UTC()
	p := domain.Placement{
		PlacementID:    "p-1",
		StudentID:      "s-1",
		OrganizationID: "org-1",
		Status:         domain.PlacementPending,
		AuditFields:    domain.NewAuditFields("s-1", now),
	}
	s.Require().NoError(s.repos.PlacementRepo.SavePlacement(ctx, p))

	p.PlacementID = "p-2"
	s.ErrorIs(s.repos.PlacementRepo.SavePlacement(ctx, p), apperrors.ErrDuplicateRegistration)

	// A closed placement does not block a new application.
	p.PlacementID = "p-3"
	p.Status = domain.PlacementRejected
	s.NoError(s.repos.PlacementRepo.SavePlacement(ctx, p))
}

func (s *PgsqlIntegrationSuite) TestPlacementPagination() {
	ctx := context.Background()
	s.seedOrg("org-1", nil)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.repos.PlacementRepo.SavePlacement(ctx, domain.Placement{
			PlacementID:    fmt.Sprintf("p-%d", i),
			StudentID:      fmt.Sprintf("s-%d", i),
			OrganizationID: "org-1",
			Status:         domain.PlacementPending,
			AuditFields:    domain.NewAuditFields("admin", base.Add(time.Duration(i)*time.Minute)),
		}))
	}

	page, next, err := s.repos.PlacementRepo.ListPlacementsByOrganization(ctx, "org-1", 2, nil)
	s.Require().NoError(err)
	s.Require().NotNil(next)
	s.Len(page, 2)
	s.Equal("p-2", page[0].PlacementID)

	page, next, err = s.repos.PlacementRepo.ListPlacementsByOrganization(ctx, "org-1", 2, next)
	s.Require().NoError(err)
	s.Nil(next)
	s.Require().Len(page, 1)
	s.Equal("p-0", page[0].PlacementID)
}

func (s *PgsqlIntegrationSuite) TestJournalDateCount() {
	ctx := context.Background()
	s.seedOrg("org-1", nil)
	now := time.Now().UTC()
	s.Require().NoError(s.repos.PlacementRepo.SavePlacement(ctx, domain.Placement{
		PlacementID: "p-1", StudentID: "s-1", OrganizationID: "org-1",
		Status: domain.PlacementInProgress, AuditFields: domain.NewAuditFields("s-1", now),
	}))

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repos.JournalRepo.SaveJournalEntry(ctx, domain.JournalEntry{
		EntryID: "j-1", PlacementID: "p-1", EntryDate: day, Activity: "x",
		Status: domain.ReviewPending, AuditFields: domain.NewAuditFields("s-1", now),
	}))

	n, err := s.repos.JournalRepo.CountJournalEntriesOnDate(ctx, "p-1", day, "")
	s.Require().NoError(err)
	assert.Equal(s.T(), 1, n)

	n, err = s.repos.JournalRepo.CountJournalEntriesOnDate(ctx, "p-1", day, "j-1")
	require.NoError(s.T(), err)
	s.Equal(0, n)
}
