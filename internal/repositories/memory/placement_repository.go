package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/SscSPs/internship_placement_app/internal/utils/pagination"
)

func (s *Store) FindPlacementByID(ctx context.Context, placementID string) (*domain.Placement, error) {
	var p domain.Placement
	err := s.read(ctx, func() error {
		found, ok := s.placements[placementID]
		if !ok {
			return fmt.Errorf("%w: placement %s", apperrors.ErrNotFound, placementID)
		}
		p = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPlacementByIDForUpdate is FindPlacementByID; the unit of work already
// holds the store lock.
func (s *Store) FindPlacementByIDForUpdate(ctx context.Context, placementID string) (*domain.Placement, error) {
	return s.FindPlacementByID(ctx, placementID)
}

func newestFirst(ps []domain.Placement) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].PlacementID > ps[j].PlacementID
		}
		return ps[i].CreatedAt.After(ps[j].CreatedAt)
	})
}

func (s *Store) ListPlacementsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.Placement, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var cursorTime time.Time
	var cursorID string
	if nextToken != nil && *nextToken != "" {
		var err error
		cursorTime, cursorID, err = pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
	}

	var all []domain.Placement
	err := s.read(ctx, func() error {
		for _, p := range s.placements {
			if p.OrganizationID != organizationID {
				continue
			}
			if cursorID != "" && !pagination.After(p.CreatedAt, p.PlacementID, cursorTime, cursorID) {
				continue
			}
			all = append(all, p)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	newestFirst(all)

	if len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	last := page[limit-1]
	token := pagination.EncodeCursor(last.CreatedAt, last.PlacementID)
	return page, &token, nil
}

func (s *Store) ListPlacementsByStudent(ctx context.Context, studentID string) ([]domain.Placement, error) {
	var ps []domain.Placement
	err := s.read(ctx, func() error {
		for _, p := range s.placements {
			if p.StudentID == studentID {
				ps = append(ps, p)
			}
		}
		return nil
	})
	newestFirst(ps)
	return ps, err
}

func (s *Store) CountOpenPlacementsByStudent(ctx context.Context, studentID string) (int, error) {
	n := 0
	err := s.read(ctx, func() error {
		for _, p := range s.placements {
			if p.StudentID == studentID && p.IsOpen() {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (s *Store) HasOpenPlacementAt(ctx context.Context, studentID, organizationID string) (bool, error) {
	found := false
	err := s.read(ctx, func() error {
		for _, p := range s.placements {
			if p.StudentID == studentID && p.OrganizationID == organizationID && p.IsOpen() {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (s *Store) CountPlacementsByStatus(ctx context.Context, organizationID string) (map[domain.PlacementStatus]int, error) {
	counts := make(map[domain.PlacementStatus]int)
	err := s.read(ctx, func() error {
		for _, p := range s.placements {
			if p.OrganizationID == organizationID {
				counts[p.Status]++
			}
		}
		return nil
	})
	return counts, err
}

// LockStudentApplications is a no-op: a unit of work already serializes
// against every other.
func (s *Store) LockStudentApplications(ctx context.Context, studentID string) error {
	return ctx.Err()
}

func (s *Store) SavePlacement(ctx context.Context, placement domain.Placement) error {
	return s.write(ctx, func() error {
		if _, ok := s.placements[placement.PlacementID]; ok {
			return fmt.Errorf("%w: placement %s already exists", apperrors.ErrValidation, placement.PlacementID)
		}
		if placement.IsOpen() {
			for _, p := range s.placements {
				if p.StudentID == placement.StudentID && p.OrganizationID == placement.OrganizationID && p.IsOpen() {
					return apperrors.ErrDuplicateRegistration
				}
			}
		}
		s.placements[placement.PlacementID] = placement
		return nil
	})
}

func (s *Store) UpdatePlacement(ctx context.Context, placement domain.Placement) error {
	return s.write(ctx, func() error {
		if _, ok := s.placements[placement.PlacementID]; !ok {
			return fmt.Errorf("%w: placement %s", apperrors.ErrNotFound, placement.PlacementID)
		}
		s.placements[placement.PlacementID] = placement
		return nil
	})
}

func (s *Store) DeletePlacement(ctx context.Context, placementID string) error {
	return s.write(ctx, func() error {
		if _, ok := s.placements[placementID]; !ok {
			return fmt.Errorf("%w: placement %s", apperrors.ErrNotFound, placementID)
		}
		delete(s.placements, placementID)
		return nil
	})
}
