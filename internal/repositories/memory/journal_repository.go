package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
)

func (s *Store) FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := s.read(ctx, func() error {
		found, ok := s.journals[entryID]
		if !ok {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		e = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) FindJournalEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.FindJournalEntryByID(ctx, entryID)
}

func (s *Store) ListJournalEntriesByPlacement(ctx context.Context, placementID string, status *domain.ReviewStatus) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	err := s.read(ctx, func() error {
		for _, e := range s.journals {
			if e.PlacementID != placementID {
				continue
			}
			if status != nil && e.Status != *status {
				continue
			}
			entries = append(entries, e)
		}
		return nil
	})
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].EntryDate.Equal(entries[j].EntryDate) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].EntryDate.Before(entries[j].EntryDate)
	})
	return entries, err
}

func (s *Store) CountJournalEntriesOnDate(ctx context.Context, placementID string, day time.Time, excludeEntryID string) (int, error) {
	n := 0
	y, m, d := day.Date()
	err := s.read(ctx, func() error {
		for _, e := range s.journals {
			if e.PlacementID != placementID || e.EntryID == excludeEntryID {
				continue
			}
			ey, em, ed := e.EntryDate.Date()
			if ey == y && em == m && ed == d {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (s *Store) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	return s.write(ctx, func() error {
		if _, ok := s.placements[entry.PlacementID]; !ok {
			return fmt.Errorf("%w: placement %s", apperrors.ErrNotFound, entry.PlacementID)
		}
		s.journals[entry.EntryID] = entry
		return nil
	})
}

func (s *Store) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	return s.write(ctx, func() error {
		if _, ok := s.journals[entry.EntryID]; !ok {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entry.EntryID)
		}
		s.journals[entry.EntryID] = entry
		return nil
	})
}

func (s *Store) DeleteJournalEntry(ctx context.Context, entryID string) error {
	return s.write(ctx, func() error {
		if _, ok := s.journals[entryID]; !ok {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		delete(s.journals, entryID)
		return nil
	})
}

func (s *Store) DeleteJournalEntriesByPlacement(ctx context.Context, placementID string) error {
	return s.write(ctx, func() error {
		for id, e := range s.journals {
			if e.PlacementID == placementID {
				delete(s.journals, id)
			}
		}
		return nil
	})
}
