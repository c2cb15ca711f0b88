package models

import "time"

// JournalEntry is a row of journal_entries.
type JournalEntry struct {
	EntryID       string     `db:"entry_id"`
	PlacementID   string     `db:"placement_id"`
	EntryDate     time.Time  `db:"entry_date"`
	Activity      string     `db:"activity"`
	Obstacles     *string    `db:"obstacles"`
	AttachmentRef *string    `db:"attachment_ref"`
	Status        string     `db:"review_status"`
	ReviewerNote  *string    `db:"reviewer_note"`
	ReviewedBy    *string    `db:"reviewed_by"`
	ReviewedAt    *time.Time `db:"reviewed_at"`
	AuditFields
}
