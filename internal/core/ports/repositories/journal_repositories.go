package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindJournalEntryByID retrieves a specific journal entry by its unique identifier.
	FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindJournalEntryByIDForUpdate retrieves an entry and locks it until the
	// surrounding unit of work ends.
	FindJournalEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntriesByPlacement retrieves the entries of a placement ordered by date,
	// optionally restricted to one review status.
	ListJournalEntriesByPlacement(ctx context.Context, placementID string, status *domain.ReviewStatus) ([]domain.JournalEntry, error)

	// CountJournalEntriesOnDate counts entries of a placement on the given day,
	// ignoring excludeEntryID when it is non-empty.
	CountJournalEntriesOnDate(ctx context.Context, placementID string, day time.Time, excludeEntryID string) (int, error)
}

// JournalWriter defines write operations for journal entry data
type JournalWriter interface {
	// SaveJournalEntry inserts a new entry.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateJournalEntry persists content and review changes of an entry.
	UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteJournalEntry removes a single entry.
	DeleteJournalEntry(ctx context.Context, entryID string) error

	// DeleteJournalEntriesByPlacement removes every entry of a placement.
	DeleteJournalEntriesByPlacement(ctx context.Context, placementID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
