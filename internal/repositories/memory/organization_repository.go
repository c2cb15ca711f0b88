package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
)

func (s *Store) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.HostOrganization, error) {
	var org domain.HostOrganization
	err := s.read(ctx, func() error {
		o, ok := s.orgs[organizationID]
		if !ok {
			return fmt.Errorf("%w: organization %s", apperrors.ErrNotFound, organizationID)
		}
		org = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *Store) ListOrganizations(ctx context.Context, status *domain.OrganizationStatus) ([]domain.HostOrganization, error) {
	var orgs []domain.HostOrganization
	err := s.read(ctx, func() error {
		for _, o := range s.orgs {
			if status == nil || o.Status == *status {
				orgs = append(orgs, o)
			}
		}
		return nil
	})
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })
	return orgs, err
}

// UpsertOrganization stores directory fields. An existing committed count is kept.
func (s *Store) UpsertOrganization(ctx context.Context, org domain.HostOrganization) error {
	return s.write(ctx, func() error {
		if existing, ok := s.orgs[org.OrganizationID]; ok {
			org.Committed = existing.Committed
			org.CreatedAt = existing.CreatedAt
			org.CreatedBy = existing.CreatedBy
		}
		s.orgs[org.OrganizationID] = org
		return nil
	})
}

func (s *Store) IncrementCommitted(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	var snap domain.CapacitySnapshot
	err := s.write(ctx, func() error {
		org, ok := s.orgs[organizationID]
		if !ok {
			return fmt.Errorf("%w: organization %s", apperrors.ErrNotFound, organizationID)
		}
		if !org.Snapshot().HasRoom() {
			return fmt.Errorf("%w: %d of %d taken", apperrors.ErrCapacityExhausted, org.Committed, *org.Capacity)
		}
		org.Committed++
		s.orgs[organizationID] = org
		snap = org.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) DecrementCommitted(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	var snap domain.CapacitySnapshot
	err := s.write(ctx, func() error {
		org, ok := s.orgs[organizationID]
		if !ok {
			return fmt.Errorf("%w: organization %s", apperrors.ErrNotFound, organizationID)
		}
		if org.Committed > 0 {
			org.Committed--
		}
		s.orgs[organizationID] = org
		snap = org.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) FindCapacity(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	org, err := s.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	snap := org.Snapshot()
	return &snap, nil
}
