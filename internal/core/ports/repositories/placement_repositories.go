package repositories

import (
	"context"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
)

// PlacementReader defines read operations for placement data
type PlacementReader interface {
	// FindPlacementByID retrieves a specific placement by its unique identifier.
	FindPlacementByID(ctx context.Context, placementID string) (*domain.Placement, error)

	// FindPlacementByIDForUpdate retrieves a placement and locks it until the
	// surrounding unit of work ends.
	FindPlacementByIDForUpdate(ctx context.Context, placementID string) (*domain.Placement, error)

	// ListPlacementsByOrganization retrieves a paginated list of placements hosted by an organization.
	// It returns the placements, a token for the next page, and an error.
	ListPlacementsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.Placement, *string, error)

	// ListPlacementsByStudent retrieves every placement of a student, newest first.
	ListPlacementsByStudent(ctx context.Context, studentID string) ([]domain.Placement, error)

	// CountOpenPlacementsByStudent counts placements in pending, accepted or in_progress.
	CountOpenPlacementsByStudent(ctx context.Context, studentID string) (int, error)

	// HasOpenPlacementAt reports whether the student already holds an open placement at the organization.
	HasOpenPlacementAt(ctx context.Context, studentID, organizationID string) (bool, error)

	// CountPlacementsByStatus groups an organization's placements by status.
	CountPlacementsByStatus(ctx context.Context, organizationID string) (map[domain.PlacementStatus]int, error)
}

// PlacementWriter defines write operations for placement data
type PlacementWriter interface {
	// LockStudentApplications serializes registrations of one student until the
	// surrounding unit of work ends.
	LockStudentApplications(ctx context.Context, studentID string) error

	// SavePlacement inserts a new placement. A second open placement for the
	// same student and organization fails with apperrors.ErrDuplicateRegistration.
	SavePlacement(ctx context.Context, placement domain.Placement) error

	// UpdatePlacement persists status, supervisor, period and grade changes.
	UpdatePlacement(ctx context.Context, placement domain.Placement) error

	// DeletePlacement removes the placement row.
	DeletePlacement(ctx context.Context, placementID string) error
}

// PlacementRepositoryFacade combines all placement-related repository interfaces
type PlacementRepositoryFacade interface {
	PlacementReader
	PlacementWriter
}

// PlacementRepositoryWithTx extends PlacementRepositoryFacade with transaction capabilities
type PlacementRepositoryWithTx interface {
	PlacementRepositoryFacade
	TransactionManager
}
