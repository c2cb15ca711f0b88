package services

import (
	"context"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/SscSPs/internship_placement_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetJournalEntry retrieves an entry visible to the actor.
	GetJournalEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error)

	// ListJournalsByPlacement retrieves the entries of a placement, optionally filtered by review status.
	ListJournalsByPlacement(ctx context.Context, actor domain.Actor, placementID string, params dto.ListJournalsParams) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines the student-side journal operations
type JournalWriterSvc interface {
	// Submit records a new pending entry for an accepted or in-progress placement.
	Submit(ctx context.Context, actor domain.Actor, req dto.SubmitJournalRequest) (*domain.JournalSubmission, error)

	// Edit updates the provided fields of a pending or rejected entry. A rejected entry re-opens as pending.
	Edit(ctx context.Context, actor domain.Actor, entryID string, req dto.EditJournalRequest) (*domain.JournalSubmission, error)

	// Delete removes an entry.
	Delete(ctx context.Context, actor domain.Actor, entryID string) error
}

// JournalReviewSvc defines the supervisor-side journal operation
type JournalReviewSvc interface {
	// Review approves or rejects a pending entry.
	Review(ctx context.Context, actor domain.Actor, entryID string, req dto.ReviewJournalRequest) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalReviewSvc
}
