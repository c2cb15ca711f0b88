package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/internship_placement_app/internal/core/ports/repositories"
	"github.com/SscSPs/internship_placement_app/internal/models"
	"github.com/SscSPs/internship_placement_app/internal/utils/mapping"
	"github.com/SscSPs/internship_placement_app/internal/utils/pagination"
)

type PgxPlacementRepository struct {
	BaseRepository
}

// newPgxPlacementRepository creates a repository for placements.
func newPgxPlacementRepository(pool *pgxpool.Pool) portsrepo.PlacementRepositoryWithTx {
	return &PgxPlacementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PlacementRepositoryWithTx = (*PgxPlacementRepository)(nil)

const placementSelect = `
SELECT
	p.placement_id, p.student_id, p.organization_id, p.supervisor_id,
	p.period_start, p.period_end, p.status, p.final_grade,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM placements p
`

// openStatuses is the SQL list of statuses counted against the application limit.
const openStatuses = `('pending', 'accepted', 'in_progress')`

func (r *PgxPlacementRepository) getPlacements(ctx context.Context, filterQuery string, args ...any) ([]domain.Placement, error) {
	rows, err := r.conn(ctx).Query(ctx, placementSelect+filterQuery, args...)
	if err != nil {
		return nil, mapError(err, "failed to query placements")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Placement])
	if err != nil {
		return nil, mapError(err, "failed to collect placement rows")
	}
	return mapping.ToDomainPlacements(ms), nil
}

func (r *PgxPlacementRepository) findOne(ctx context.Context, filterQuery string, placementID string) (*domain.Placement, error) {
	ps, err := r.getPlacements(ctx, filterQuery, placementID)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("%w: placement %s", apperrors.ErrNotFound, placementID)
	}
	return &ps[0], nil
}

func (r *PgxPlacementRepository) FindPlacementByID(ctx context.Context, placementID string) (*domain.Placement, error) {
	return r.findOne(ctx, `WHERE p.placement_id = $1`, placementID)
}

// FindPlacementByIDForUpdate locks the row until the surrounding transaction ends.
func (r *PgxPlacementRepository) FindPlacementByIDForUpdate(ctx context.Context, placementID string) (*domain.Placement, error) {
	return r.findOne(ctx, `WHERE p.placement_id = $1 FOR UPDATE`, placementID)
}

// ListPlacementsByOrganization pages newest first using a (created_at, id) cursor.
func (r *PgxPlacementRepository) ListPlacementsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.Placement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells whether another page exists.
	fetchLimit := limit + 1

	filter := `WHERE p.organization_id = $1`
	args := []any{organizationID}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		filter += ` AND (p.created_at, p.placement_id) < ($2, $3)`
		args = append(args, createdAt, id)
	}
	query := filter + ` ORDER BY p.created_at DESC, p.placement_id DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, fetchLimit)

	ps, err := r.getPlacements(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	if len(ps) <= limit {
		return ps, nil, nil
	}
	ps = ps[:limit]
	last := ps[limit-1]
	token := pagination.EncodeCursor(last.CreatedAt, last.PlacementID)
	return ps, &token, nil
}

func (r *PgxPlacementRepository) ListPlacementsByStudent(ctx context.Context, studentID string) ([]domain.Placement, error) {
	return r.getPlacements(ctx, `WHERE p.student_id = $1 ORDER BY p.created_at DESC, p.placement_id DESC`, studentID)
}

func (r *PgxPlacementRepository) CountOpenPlacementsByStudent(ctx context.Context, studentID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM placements WHERE student_id = $1 AND status IN ` + openStatuses
	if err := r.conn(ctx).QueryRow(ctx, query, studentID).Scan(&n); err != nil {
		return 0, mapError(err, "failed to count open placements of "+studentID)
	}
	return n, nil
}

func (r *PgxPlacementRepository) HasOpenPlacementAt(ctx context.Context, studentID, organizationID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM placements WHERE student_id = $1 AND organization_id = $2 AND status IN ` + openStatuses + `)`
	if err := r.conn(ctx).QueryRow(ctx, query, studentID, organizationID).Scan(&exists); err != nil {
		return false, mapError(err, "failed to check open placement of "+studentID)
	}
	return exists, nil
}

func (r *PgxPlacementRepository) CountPlacementsByStatus(ctx context.Context, organizationID string) (map[domain.PlacementStatus]int, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT status, COUNT(*) FROM placements WHERE organization_id = $1 GROUP BY status`, organizationID)
	if err != nil {
		return nil, mapError(err, "failed to count placements of "+organizationID)
	}
	defer rows.Close()

	counts := make(map[domain.PlacementStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, mapError(err, "failed to scan placement counts")
		}
		counts[domain.PlacementStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to read placement counts")
	}
	return counts, nil
}

// LockStudentApplications serializes registrations of one student for the
// rest of the transaction.
func (r *PgxPlacementRepository) LockStudentApplications(ctx context.Context, studentID string) error {
	_, err := r.conn(ctx).Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "student:"+studentID)
	return mapError(err, "failed to lock applications of "+studentID)
}

func (r *PgxPlacementRepository) SavePlacement(ctx context.Context, placement domain.Placement) error {
	m := mapping.ToModelPlacement(placement)
	query := `
		INSERT INTO placements (
			placement_id, student_id, organization_id, supervisor_id,
			period_start, period_end, status, final_grade,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.PlacementID,
		m.StudentID,
		m.OrganizationID,
		m.SupervisorID,
		m.PeriodStart,
		m.PeriodEnd,
		m.Status,
		m.FinalGrade,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, "failed to save placement "+placement.PlacementID)
}

func (r *PgxPlacementRepository) UpdatePlacement(ctx context.Context, placement domain.Placement) error {
	m := mapping.ToModelPlacement(placement)
	query := `
		UPDATE placements
		SET supervisor_id = $2, period_start = $3, period_end = $4, status = $5, final_grade = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE placement_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		m.PlacementID,
		m.SupervisorID,
		m.PeriodStart,
		m.PeriodEnd,
		m.Status,
		m.FinalGrade,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update placement "+placement.PlacementID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: placement %s", apperrors.ErrNotFound, placement.PlacementID)
	}
	return nil
}

func (r *PgxPlacementRepository) DeletePlacement(ctx context.Context, placementID string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM placements WHERE placement_id = $1`, placementID)
	if err != nil {
		return mapError(err, "failed to delete placement "+placementID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: placement %s", apperrors.ErrNotFound, placementID)
	}
	return nil
}
