package mapping

import (
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/SscSPs/internship_placement_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		PlacementID:   d.PlacementID,
		EntryDate:     d.EntryDate,
		Activity:      d.Activity,
		Obstacles:     d.Obstacles,
		AttachmentRef: d.AttachmentRef,
		Status:        string(d.Status),
		ReviewerNote:  d.ReviewerNote,
		ReviewedBy:    d.ReviewedBy,
		ReviewedAt:    d.ReviewedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		PlacementID:   m.PlacementID,
		EntryDate:     m.EntryDate,
		Activity:      m.Activity,
		Obstacles:     m.Obstacles,
		AttachmentRef: m.AttachmentRef,
		Status:        domain.ReviewStatus(m.Status),
		ReviewerNote:  m.ReviewerNote,
		ReviewedBy:    m.ReviewedBy,
		ReviewedAt:    utcPtr(m.ReviewedAt),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntries converts a slice of model JournalEntry
func ToDomainJournalEntries(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
