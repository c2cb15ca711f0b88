package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/internship_placement_app/internal/core/ports/repositories"
	"github.com/SscSPs/internship_placement_app/internal/models"
	"github.com/SscSPs/internship_placement_app/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a repository for daily journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalSelect = `
SELECT
	j.entry_id, j.placement_id, j.entry_date, j.activity, j.obstacles, j.attachment_ref,
	j.review_status, j.reviewer_note, j.reviewed_by, j.reviewed_at,
	j.created_at, j.created_by, j.last_updated_at, j.last_updated_by
FROM journal_entries j
`

func (r *PgxJournalRepository) getEntries(ctx context.Context, filterQuery string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, journalSelect+filterQuery, args...)
	if err != nil {
		return nil, mapError(err, "failed to query journal entries")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, mapError(err, "failed to collect journal rows")
	}
	return mapping.ToDomainJournalEntries(ms), nil
}

func (r *PgxJournalRepository) findOne(ctx context.Context, filterQuery, entryID string) (*domain.JournalEntry, error) {
	es, err := r.getEntries(ctx, filterQuery, entryID)
	if err != nil {
		return nil, err
	}
	if len(es) == 0 {
		return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
	}
	return &es[0], nil
}

func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx, `WHERE j.entry_id = $1`, entryID)
}

func (r *PgxJournalRepository) FindJournalEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx, `WHERE j.entry_id = $1 FOR UPDATE`, entryID)
}

func (r *PgxJournalRepository) ListJournalEntriesByPlacement(ctx context.Context, placementID string, status *domain.ReviewStatus) ([]domain.JournalEntry, error) {
	const order = ` ORDER BY j.entry_date, j.created_at`
	if status != nil {
		return r.getEntries(ctx, `WHERE j.placement_id = $1 AND j.review_status = $2`+order, placementID, string(*status))
	}
	return r.getEntries(ctx, `WHERE j.placement_id = $1`+order, placementID)
}

func (r *PgxJournalRepository) CountJournalEntriesOnDate(ctx context.Context, placementID string, day time.Time, excludeEntryID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM journal_entries WHERE placement_id = $1 AND entry_date = $2::date AND entry_id <> $3`
	if err := r.conn(ctx).QueryRow(ctx, query, placementID, day, excludeEntryID).Scan(&n); err != nil {
		return 0, mapError(err, "failed to count journal entries of "+placementID)
	}
	return n, nil
}

func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (
			entry_id, placement_id, entry_date, activity, obstacles, attachment_ref,
			review_status, reviewer_note, reviewed_by, reviewed_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.EntryID,
		m.PlacementID,
		m.EntryDate,
		m.Activity,
		m.Obstacles,
		m.AttachmentRef,
		m.Status,
		m.ReviewerNote,
		m.ReviewedBy,
		m.ReviewedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, "failed to save journal entry "+entry.EntryID)
}

func (r *PgxJournalRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2, activity = $3, obstacles = $4, attachment_ref = $5,
			review_status = $6, reviewer_note = $7, reviewed_by = $8, reviewed_at = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE entry_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.Activity,
		m.Obstacles,
		m.AttachmentRef,
		m.Status,
		m.ReviewerNote,
		m.ReviewedBy,
		m.ReviewedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update journal entry "+entry.EntryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entry.EntryID)
	}
	return nil
}

func (r *PgxJournalRepository) DeleteJournalEntry(ctx context.Context, entryID string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1`, entryID)
	if err != nil {
		return mapError(err, "failed to delete journal entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
	}
	return nil
}

func (r *PgxJournalRepository) DeleteJournalEntriesByPlacement(ctx context.Context, placementID string) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM journal_entries WHERE placement_id = $1`, placementID)
	return mapError(err, "failed to delete journal entries of "+placementID)
}
