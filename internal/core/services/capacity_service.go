package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/internship_placement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/internship_placement_app/internal/core/ports/services"
)

// capacityLedgerService keeps the committed-slot counter of each organization.
type capacityLedgerService struct {
	BaseService
	ledger portsrepo.CapacityLedgerRepository
}

// NewCapacityLedgerService creates a new CapacityLedgerSvc.
func NewCapacityLedgerService(ledger portsrepo.CapacityLedgerRepository) portssvc.CapacityLedgerSvc {
	return &capacityLedgerService{ledger: ledger}
}

var _ portssvc.CapacityLedgerSvc = (*capacityLedgerService)(nil)

func (s *capacityLedgerService) ReserveSlot(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	snap, err := s.ledger.IncrementCommitted(ctx, organizationID)
	if err != nil {
		s.LogFailure(ctx, err, "Slot reservation refused", slog.String("organization_id", organizationID))
		return nil, err
	}
	s.LogDebug(ctx, "Slot reserved", slog.String("organization_id", organizationID), slog.Int("committed", snap.Committed))
	return snap, nil
}

func (s *capacityLedgerService) ReleaseSlot(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	snap, err := s.ledger.DecrementCommitted(ctx, organizationID)
	if err != nil {
		s.LogFailure(ctx, err, "Slot release failed", slog.String("organization_id", organizationID))
		return nil, err
	}
	s.LogDebug(ctx, "Slot released", slog.String("organization_id", organizationID), slog.Int("committed", snap.Committed))
	return snap, nil
}

func (s *capacityLedgerService) Query(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	snap, err := s.ledger.FindCapacity(ctx, organizationID)
	if err != nil {
		s.LogFailure(ctx, err, "Capacity query failed", slog.String("organization_id", organizationID))
		return nil, err
	}
	return snap, nil
}
