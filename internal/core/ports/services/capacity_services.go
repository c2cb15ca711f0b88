package services

import (
	"context"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
)

// CapacityLedgerSvc guards the per-organization slot counter.
type CapacityLedgerSvc interface {
	// ReserveSlot commits one slot or fails with apperrors.ErrCapacityExhausted.
	ReserveSlot(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error)

	// ReleaseSlot gives one slot back. Callers release at most once per placement.
	ReleaseSlot(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error)

	// Query returns capacity, committed and remaining without changing anything.
	Query(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error)
}
