package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/internship_placement_app/internal/core/ports/repositories"
	"github.com/SscSPs/internship_placement_app/internal/models"
	"github.com/SscSPs/internship_placement_app/internal/utils/mapping"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a repository for host organizations and their ledger.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryWithTx {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OrganizationRepositoryWithTx = (*PgxOrganizationRepository)(nil)

const organizationSelect = `
SELECT
	o.organization_id, o.name, o.address, o.contact, o.capacity, o.committed, o.status,
	o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
FROM host_organizations o
`

func (r *PgxOrganizationRepository) getOrganizations(ctx context.Context, filterQuery string, args ...any) ([]domain.HostOrganization, error) {
	rows, err := r.conn(ctx).Query(ctx, organizationSelect+filterQuery, args...)
	if err != nil {
		return nil, mapError(err, "failed to query organizations")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.HostOrganization])
	if err != nil {
		return nil, mapError(err, "failed to collect organization rows")
	}
	return mapping.ToDomainOrganizations(ms), nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.HostOrganization, error) {
	orgs, err := r.getOrganizations(ctx, `WHERE o.organization_id = $1`, organizationID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &orgs[0], nil
}

func (r *PgxOrganizationRepository) ListOrganizations(ctx context.Context, status *domain.OrganizationStatus) ([]domain.HostOrganization, error) {
	if status != nil {
		return r.getOrganizations(ctx, `WHERE o.status = $1 ORDER BY o.name`, string(*status))
	}
	return r.getOrganizations(ctx, `ORDER BY o.name`)
}

// UpsertOrganization writes the directory fields. The committed counter is
// never overwritten.
func (r *PgxOrganizationRepository) UpsertOrganization(ctx context.Context, org domain.HostOrganization) error {
	m := mapping.ToModelOrganization(org)
	query := `
		INSERT INTO host_organizations (
			organization_id, name, address, contact, capacity, committed, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9, $10)
		ON CONFLICT (organization_id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			contact = EXCLUDED.contact,
			capacity = EXCLUDED.capacity,
			status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.OrganizationID,
		m.Name,
		m.Address,
		m.Contact,
		m.Capacity,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, "failed to upsert organization "+org.OrganizationID)
}

func (r *PgxOrganizationRepository) scanSnapshot(row pgx.Row) (*domain.CapacitySnapshot, error) {
	var (
		id        string
		capacity  *int32
		committed int32
	)
	if err := row.Scan(&id, &capacity, &committed); err != nil {
		return nil, err
	}
	var limit *int
	if capacity != nil {
		c := int(*capacity)
		limit = &c
	}
	snap := domain.NewCapacitySnapshot(id, limit, int(committed))
	return &snap, nil
}

// IncrementCommitted takes one slot with a single conditional UPDATE. Zero
// affected rows means the organization is full or missing.
func (r *PgxOrganizationRepository) IncrementCommitted(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	query := `
		UPDATE host_organizations
		SET committed = committed + 1
		WHERE organization_id = $1 AND (capacity IS NULL OR committed < capacity)
		RETURNING organization_id, capacity, committed;
	`
	snap, err := r.scanSnapshot(r.conn(ctx).QueryRow(ctx, query, organizationID))
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err, "failed to reserve slot at "+organizationID)
	}

	if _, findErr := r.FindOrganizationByID(ctx, organizationID); findErr != nil {
		return nil, findErr
	}
	return nil, apperrors.ErrCapacityExhausted
}

// DecrementCommitted gives one slot back, never going below zero.
func (r *PgxOrganizationRepository) DecrementCommitted(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	query := `
		UPDATE host_organizations
		SET committed = GREATEST(committed - 1, 0)
		WHERE organization_id = $1
		RETURNING organization_id, capacity, committed;
	`
	snap, err := r.scanSnapshot(r.conn(ctx).QueryRow(ctx, query, organizationID))
	if err != nil {
		return nil, mapError(err, "organization "+organizationID)
	}
	return snap, nil
}

func (r *PgxOrganizationRepository) FindCapacity(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	query := `SELECT organization_id, capacity, committed FROM host_organizations WHERE organization_id = $1;`
	snap, err := r.scanSnapshot(r.conn(ctx).QueryRow(ctx, query, organizationID))
	if err != nil {
		return nil, mapError(err, "organization "+organizationID)
	}
	return snap, nil
}
