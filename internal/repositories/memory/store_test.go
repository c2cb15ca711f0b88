package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/SscSPs/internship_placement_app/internal/core/services"
	"github.com/SscSPs/internship_placement_app/internal/dto"
	"github.com/SscSPs/internship_placement_app/internal/repositories/memory"
)

func intPtr(i int) *int { return &i }

func seedOrg(t *testing.T, store *memory.Store, id string, capacity *int) {
	t.Helper()
	require.NoError(t, store.UpsertOrganization(context.Background(), domain.HostOrganization{
		OrganizationID: id,
		Name:           "Org " + id,
		Capacity:       capacity,
		Status:         domain.OrganizationActive,
	}))
}

func TestLedgerNeverExceedsCapacity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedOrg(t, store, "org-1", intPtr(2))

	for i := 0; i < 2; i++ {
		_, err := store.IncrementCommitted(ctx, "org-1")
		require.NoError(t, err)
	}
	_, err := store.IncrementCommitted(ctx, "org-1")
	assert.ErrorIs(t, err, apperrors.ErrCapacityExhausted)

	snap, err := store.FindCapacity(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Committed)
	require.NotNil(t, snap.Remaining)
	assert.Equal(t, 0, *snap.Remaining)
}

func TestLedgerDecrementFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedOrg(t, store, "org-1", intPtr(1))

	snap, err := store.DecrementCommitted(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Committed)
}

func TestLedgerUnboundedCapacity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedOrg(t, store, "org-open", nil)

	for i := 0; i < 50; i++ {
		_, err := store.IncrementCommitted(ctx, "org-open")
		require.NoError(t, err)
	}
	snap, err := store.FindCapacity(ctx, "org-open")
	require.NoError(t, err)
	assert.Equal(t, 50, snap.Committed)
	assert.Nil(t, snap.Remaining)
}

func TestLedgerUnknownOrganization(t *testing.T) {
	_, err := memory.NewStore().IncrementCommitted(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpsertKeepsCommitted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedOrg(t, store, "org-1", intPtr(3))
	_, err := store.IncrementCommitted(ctx, "org-1")
	require.NoError(t, err)

	seedOrg(t, store, "org-1", intPtr(5))

	snap, err := store.FindCapacity(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Committed)
	assert.Equal(t, 5, *snap.Capacity)
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedOrg(t, store, "org-1", intPtr(1))

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := store.IncrementCommitted(ctx, "org-1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	snap, err := store.FindCapacity(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Committed)
}

func TestWithinTxRollsBackOnCancel(t *testing.T) {
	store := memory.NewStore()
	seedOrg(t, store, "org-1", intPtr(1))

	ctx, cancel := context.WithCancel(context.Background())
	err := store.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := store.IncrementCommitted(ctx, "org-1"); err != nil {
			return err
		}
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	snap, err := store.FindCapacity(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Committed)
}

func TestSavePlacementRejectsSecondOpenPair(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedOrg(t, store, "org-1", nil)

	p := domain.Placement{PlacementID: "p-1", StudentID: "s-1", OrganizationID: "org-1", Status: domain.PlacementPending}
	require.NoError(t, store.SavePlacement(ctx, p))

	p.PlacementID = "p-2"
	assert.ErrorIs(t, store.SavePlacement(ctx, p), apperrors.ErrDuplicateRegistration)
}

func TestListPlacementsByOrganizationPages(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedOrg(t, store, "org-1", nil)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.SavePlacement(ctx, domain.Placement{
			PlacementID:    fmt.Sprintf("p-%d", i),
			StudentID:      fmt.Sprintf("s-%d", i),
			OrganizationID: "org-1",
			Status:         domain.PlacementPending,
			AuditFields:    domain.NewAuditFields("admin", base.Add(time.Duration(i)*time.Hour)),
		}))
	}

	page1, next, err := store.ListPlacementsByOrganization(ctx, "org-1", 2, nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"p-4", "p-3"}, ids(page1))

	page2, next, err := store.ListPlacementsByOrganization(ctx, "org-1", 2, next)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"p-2", "p-1"}, ids(page2))

	page3, next, err := store.ListPlacementsByOrganization(ctx, "org-1", 2, next)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, []string{"p-0"}, ids(page3))

	bad := "not-a-token"
	_, _, err = store.ListPlacementsByOrganization(ctx, "org-1", 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func ids(ps []domain.Placement) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.PlacementID
	}
	return out
}

func TestCountJournalEntriesOnDate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedOrg(t, store, "org-1", nil)
	require.NoError(t, store.SavePlacement(ctx, domain.Placement{PlacementID: "p-1", StudentID: "s-1", OrganizationID: "org-1", Status: domain.PlacementInProgress}))

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveJournalEntry(ctx, domain.JournalEntry{EntryID: "j-1", PlacementID: "p-1", EntryDate: day, Status: domain.ReviewPending}))
	require.NoError(t, store.SaveJournalEntry(ctx, domain.JournalEntry{EntryID: "j-2", PlacementID: "p-1", EntryDate: day.AddDate(0, 0, 1), Status: domain.ReviewPending}))

	n, err := store.CountJournalEntriesOnDate(ctx, "p-1", day, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.CountJournalEntriesOnDate(ctx, "p-1", day, "j-1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, store.DeleteJournalEntriesByPlacement(ctx, "p-1"))
	entries, err := store.ListJournalEntriesByPlacement(ctx, "p-1", nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Many students race for the last slot of an organization through the real
// placement engine. Exactly one registration may succeed.
func TestParallelRegistrationsForLastSlot(t *testing.T) {
	const students = 32

	ctx := context.Background()
	store := memory.NewStore()
	seedOrg(t, store, "org-1", intPtr(1))

	repos := memory.NewRepositoryProvider(store)
	ledger := services.NewCapacityLedgerService(repos.OrganizationRepo)
	placements := services.NewPlacementService(repos.TxManager, repos.PlacementRepo, repos.OrganizationRepo, ledger)

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
		assert.ErrorIs(t, err, apperrors.ErrCapacityExhausted)
	}
	assert.Equal(t, 1, succeeded)

	snap, err := ledger.Query(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Committed)

	stats, err := placements.GetPlacementStats(ctx, domain.Actor{ID: "admin", Role: domain.RoleAdministrator}, "org-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}
