package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/internship_placement_app/internal/core/ports/repositories"
)

type txKey struct{}

// Store keeps organizations, placements and journal entries in process.
// A unit of work holds the store's lock for its whole duration and restores
// a snapshot when it fails, so it behaves like a serializable transaction.
type Store struct {
	mu         sync.Mutex
	orgs       map[string]domain.HostOrganization
	placements map[string]domain.Placement
	journals   map[string]domain.JournalEntry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		orgs:       make(map[string]domain.HostOrganization),
		placements: make(map[string]domain.Placement),
		journals:   make(map[string]domain.JournalEntry),
	}
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        store,
		OrganizationRepo: store,
		PlacementRepo:    store,
		JournalRepo:      store,
	}
}

var (
	_ portsrepo.OrganizationRepositoryWithTx = (*Store)(nil)
	_ portsrepo.PlacementRepositoryWithTx    = (*Store)(nil)
	_ portsrepo.JournalRepositoryWithTx      = (*Store)(nil)
)

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// WithinTx runs fn while holding the store lock.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orgs := maps.Clone(s.orgs)
	placements := maps.Clone(s.placements)
	journals := maps.Clone(s.journals)

	err := fn(context.WithValue(ctx, txKey{}, s))
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.orgs = orgs
		s.placements = placements
		s.journals = journals
		return err
	}
	return nil
}

// read runs fn under the lock unless ctx already belongs to a unit of work.
func (s *Store) read(ctx context.Context, fn func() error) error {
	if s.inTx(ctx) {
		return fn()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// write runs fn as its own unit of work unless ctx already belongs to one.
func (s *Store) write(ctx context.Context, fn func() error) error {
	return s.WithinTx(ctx, func(context.Context) error { return fn() })
}
