package domain

import "time"

// ReviewStatus is the supervisory state of a journal entry.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Valid reports whether s is a known review status.
func (s ReviewStatus) Valid() bool {
	return s == ReviewPending || s == ReviewApproved || s == ReviewRejected
}

// ReviewDecision is a supervisor's verdict on a pending entry.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

// JournalEntry is one day's activity record of a placement.
type JournalEntry struct {
	EntryID       string       `json:"entryID"`
	PlacementID   string       `json:"placementID"`
	EntryDate     time.Time    `json:"entryDate"`
	Activity      string       `json:"activity"`
	Obstacles     *string      `json:"obstacles,omitempty"`
	AttachmentRef *string      `json:"attachmentRef,omitempty"`
	Status        ReviewStatus `json:"status"`
	ReviewerNote  *string      `json:"reviewerNote,omitempty"`
	ReviewedBy    *string      `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time   `json:"reviewedAt,omitempty"`
	AuditFields
}

// IsLocked reports whether the entry is final and can no longer change.
func (e JournalEntry) IsLocked() bool {
	return e.Status == ReviewApproved
}

// WarningDuplicateJournalDate flags a second entry for the same placement and date.
const WarningDuplicateJournalDate = "duplicate_journal_date"

// Warning is a data-quality notice returned alongside a successful result.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JournalSubmission is the outcome of a submit or edit.
type JournalSubmission struct {
	Entry    JournalEntry `json:"entry"`
	Warnings []Warning    `json:"warnings,omitempty"`
}
