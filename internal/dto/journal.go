package dto

import (
	"time"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
)

// SubmitJournalRequest defines the data for a new daily journal entry.
type SubmitJournalRequest struct {
	PlacementID   string    `json:"placementID" binding:"required"`
	EntryDate     time.Time `json:"entryDate" binding:"required"`
	Activity      string    `json:"activity"`      // Length is checked by the journal policy
	Obstacles     *string   `json:"obstacles"`     // Optional
	AttachmentRef *string   `json:"attachmentRef"` // Optional, opaque reference into the content store
}

// EditJournalRequest updates a non-approved entry. Omitted fields keep their
// stored value.
type EditJournalRequest struct {
	EntryDate     *time.Time `json:"entryDate"`
	Activity      *string    `json:"activity"`
	Obstacles     *string    `json:"obstacles"`
	AttachmentRef *string    `json:"attachmentRef"`
}

// ReviewJournalRequest carries a supervisor's decision.
type ReviewJournalRequest struct {
	Decision domain.ReviewDecision `json:"decision" binding:"required,oneof=approve reject"`
	Note     *string               `json:"note"`
}

// ListJournalsParams defines query parameters for listing journal entries.
type ListJournalsParams struct {
	Status string `form:"status"` // canonical or legacy review status
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       string              `json:"entryID"`
	PlacementID   string              `json:"placementID"`
	EntryDate     time.Time           `json:"entryDate"`
	Activity      string              `json:"activity"`
	Obstacles     *string             `json:"obstacles,omitempty"`
	AttachmentRef *string             `json:"attachmentRef,omitempty"`
	Status        domain.ReviewStatus `json:"status"`
	StatusLabel   string              `json:"statusLabel"`
	ReviewerNote  *string             `json:"reviewerNote,omitempty"`
	ReviewedBy    *string             `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time          `json:"reviewedAt,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		PlacementID:   e.PlacementID,
		EntryDate:     e.EntryDate,
		Activity:      e.Activity,
		Obstacles:     e.Obstacles,
		AttachmentRef: e.AttachmentRef,
		Status:        e.Status,
		StatusLabel:   e.Status.Label(),
		ReviewerNote:  e.ReviewerNote,
		ReviewedBy:    e.ReviewedBy,
		ReviewedAt:    e.ReviewedAt,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry.
func ToJournalEntryResponses(es []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(es))
	for i := range es {
		responses[i] = ToJournalEntryResponse(&es[i])
	}
	return responses
}

// JournalSubmissionResponse is returned by submit and edit.
type JournalSubmissionResponse struct {
	Entry    JournalEntryResponse `json:"entry"`
	Warnings []domain.Warning     `json:"warnings,omitempty"`
}

// ToJournalSubmissionResponse converts a domain.JournalSubmission.
func ToJournalSubmissionResponse(s *domain.JournalSubmission) JournalSubmissionResponse {
	return JournalSubmissionResponse{
		Entry:    ToJournalEntryResponse(&s.Entry),
		Warnings: s.Warnings,
	}
}

// ListJournalsResponse wraps the entries of a placement.
type ListJournalsResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}
