package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PlacementStatus is the lifecycle state of a placement.
type PlacementStatus string

const (
	PlacementPending    PlacementStatus = "pending"
	PlacementAccepted   PlacementStatus = "accepted"
	PlacementInProgress PlacementStatus = "in_progress"
	PlacementCompleted  PlacementStatus = "completed"
	PlacementRejected   PlacementStatus = "rejected"
	PlacementCancelled  PlacementStatus = "cancelled"
)

// AllPlacementStatuses lists every status in lifecycle order.
var AllPlacementStatuses = []PlacementStatus{
	PlacementPending,
	PlacementAccepted,
	PlacementInProgress,
	PlacementCompleted,
	PlacementRejected,
	PlacementCancelled,
}

// Valid reports whether s is a known status.
func (s PlacementStatus) Valid() bool {
	for _, known := range AllPlacementStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsOpen reports whether a placement in this status counts against the
// student's application limit.
func (s PlacementStatus) IsOpen() bool {
	return s == PlacementPending || s == PlacementAccepted || s == PlacementInProgress
}

// HoldsSlot reports whether a placement in this status is counted in its
// organization's committed slots. Only reject and cancel give a slot back,
// so completed placements keep theirs.
func (s PlacementStatus) HoldsSlot() bool {
	return s.IsOpen() || s == PlacementCompleted
}

// IsTerminal reports whether no further transition is possible.
func (s PlacementStatus) IsTerminal() bool {
	return s == PlacementCompleted || s == PlacementRejected || s == PlacementCancelled
}

// AcceptsJournals reports whether journal entries may be submitted.
func (s PlacementStatus) AcceptsJournals() bool {
	return s == PlacementAccepted || s == PlacementInProgress
}

// PlacementEvent drives a placement from one status to another.
type PlacementEvent string

const (
	EventAccept   PlacementEvent = "accept"
	EventReject   PlacementEvent = "reject"
	EventBegin    PlacementEvent = "begin"
	EventComplete PlacementEvent = "complete"
	EventCancel   PlacementEvent = "cancel"
)

type transitionKey struct {
	from  PlacementStatus
	event PlacementEvent
}

// placementTransitions is the complete table; anything absent is rejected.
var placementTransitions = map[transitionKey]PlacementStatus{
	{PlacementPending, EventAccept}:      PlacementAccepted,
	{PlacementPending, EventReject}:      PlacementRejected,
	{PlacementAccepted, EventBegin}:      PlacementInProgress,
	{PlacementInProgress, EventComplete}: PlacementCompleted,
	{PlacementPending, EventCancel}:      PlacementCancelled,
	{PlacementAccepted, EventCancel}:     PlacementCancelled,
	{PlacementInProgress, EventCancel}:   PlacementCancelled,
}

// NextStatus returns the status reached by applying event in from.
func NextStatus(from PlacementStatus, event PlacementEvent) (PlacementStatus, error) {
	to, ok := placementTransitions[transitionKey{from, event}]
	if !ok {
		return from, fmt.Errorf("%w: cannot %s a placement that is %s", apperrors.ErrInvalidTransition, event, from)
	}
	return to, nil
}

// ReleasesSlot reports whether applying event gives the slot back.
func ReleasesSlot(event PlacementEvent) bool {
	return event == EventReject || event == EventCancel
}

// Placement is the assignment of one student to one host organization.
type Placement struct {
	PlacementID    string           `json:"placementID"`
	StudentID      string           `json:"studentID"`
	OrganizationID string           `json:"organizationID"`
	SupervisorID   *string          `json:"supervisorID,omitempty"`
	PeriodStart    *time.Time       `json:"periodStart,omitempty"`
	PeriodEnd      *time.Time       `json:"periodEnd,omitempty"`
	Status         PlacementStatus  `json:"status"`
	FinalGrade     *decimal.Decimal `json:"finalGrade,omitempty"`
	AuditFields
}

// IsOpen reports whether the placement counts against the student's limit.
func (p Placement) IsOpen() bool {
	return p.Status.IsOpen()
}

// ValidatePeriod checks that end does not precede start when both are set.
func ValidatePeriod(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: %s is before %s", apperrors.ErrInvalidPeriod, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return nil
}

// PlacementStats counts placements of one organization by status.
type PlacementStats struct {
	OrganizationID string                  `json:"organizationID"`
	ByStatus       map[PlacementStatus]int `json:"byStatus"`
	Total          int                     `json:"total"`
}
