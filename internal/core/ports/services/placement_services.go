package services

import (
	"context"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/SscSPs/internship_placement_app/internal/dto"
	"github.com/shopspring/decimal"
)

// PlacementReaderSvc defines read operations for placement data
type PlacementReaderSvc interface {
	// GetPlacement retrieves a placement visible to the actor.
	GetPlacement(ctx context.Context, actor domain.Actor, placementID string) (*domain.Placement, error)

	// ListPlacementsByOrganization retrieves a page of placements hosted by an organization.
	ListPlacementsByOrganization(ctx context.Context, actor domain.Actor, organizationID string, params dto.ListPlacementsParams) (*dto.ListPlacementsResponse, error)

	// ListPlacementsByStudent retrieves all placements of a student.
	ListPlacementsByStudent(ctx context.Context, actor domain.Actor, studentID string) ([]domain.Placement, error)

	// GetPlacementStats counts an organization's placements by status.
	GetPlacementStats(ctx context.Context, actor domain.Actor, organizationID string) (*domain.PlacementStats, error)
}

// PlacementWriterSvc defines the placement lifecycle operations
type PlacementWriterSvc interface {
	// Register creates a pending placement and reserves a slot in one unit of work.
	Register(ctx context.Context, actor domain.Actor, req dto.RegisterPlacementRequest) (*domain.Placement, error)

	// Transition applies a lifecycle event.
	Transition(ctx context.Context, actor domain.Actor, placementID string, req dto.TransitionPlacementRequest) (*domain.Placement, error)

	// Cancel withdraws an open placement and releases its slot exactly once.
	// Cancelling an already terminal placement is a no-op.
	Cancel(ctx context.Context, actor domain.Actor, placementID string) (*domain.Placement, error)

	// DeletePlacement removes a placement and its journal entries. Administrators only.
	DeletePlacement(ctx context.Context, actor domain.Actor, placementID string) error
}

// GradingGateSvc writes final grades.
type GradingGateSvc interface {
	// RecordGrade writes the final grade of a completed placement.
	RecordGrade(ctx context.Context, actor domain.Actor, placementID string, grade decimal.Decimal) (*domain.Placement, error)
}

// PlacementSvcFacade combines all placement-related service interfaces
type PlacementSvcFacade interface {
	PlacementReaderSvc
	PlacementWriterSvc
	GradingGateSvc
}
