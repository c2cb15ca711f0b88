package repositories

import (
	"context"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
)

// OrganizationReader defines read operations for host organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a host organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.HostOrganization, error)

	// ListOrganizations retrieves host organizations, optionally filtered by status.
	ListOrganizations(ctx context.Context, status *domain.OrganizationStatus) ([]domain.HostOrganization, error)
}

// OrganizationWriter defines write operations for host organization data.
// Only used to import directory records; the committed counter is never
// written through it.
type OrganizationWriter interface {
	UpsertOrganization(ctx context.Context, org domain.HostOrganization) error
}

// CapacityLedgerRepository is the single authoritative per-organization slot counter.
type CapacityLedgerRepository interface {
	// IncrementCommitted adds one committed slot in a single conditional step.
	// Returns apperrors.ErrCapacityExhausted when the organization is full and
	// apperrors.ErrNotFound when it does not exist.
	IncrementCommitted(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error)

	// DecrementCommitted removes one committed slot, never going below zero.
	DecrementCommitted(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error)

	// FindCapacity reads the current ledger state.
	FindCapacity(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error)
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
	CapacityLedgerRepository
}

// OrganizationRepositoryWithTx extends OrganizationRepositoryFacade with transaction capabilities
type OrganizationRepositoryWithTx interface {
	OrganizationRepositoryFacade
	TransactionManager
}
