package dto

import (
	"time"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Placement DTOs ---

// RegisterPlacementRequest defines the data needed to apply for a placement.
type RegisterPlacementRequest struct {
	StudentID      string     `json:"studentID" binding:"required"`
	OrganizationID string     `json:"organizationID" binding:"required"`
	PeriodStart    *time.Time `json:"periodStart"` // Optional
	PeriodEnd      *time.Time `json:"periodEnd"`   // Optional
}

// TransitionPlacementRequest moves a placement through its lifecycle.
type TransitionPlacementRequest struct {
	Event         domain.PlacementEvent `json:"event" binding:"required,oneof=accept reject begin complete cancel"`
	SupervisorID  *string               `json:"supervisorID"`  // accept; defaults to the acting supervisor
	Grade         *decimal.Decimal      `json:"grade"`         // complete; optional
	EffectiveDate *time.Time            `json:"effectiveDate"` // begin; defaults to today
}

// RecordGradeRequest writes the final grade of a completed placement.
type RecordGradeRequest struct {
	Grade *decimal.Decimal `json:"grade" binding:"required"`
}

// ListPlacementsParams defines query parameters for listing placements.
type ListPlacementsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// PlacementResponse defines the data returned for a placement.
type PlacementResponse struct {
	PlacementID    string                 `json:"placementID"`
	StudentID      string                 `json:"studentID"`
	OrganizationID string                 `json:"organizationID"`
	SupervisorID   *string                `json:"supervisorID,omitempty"`
	PeriodStart    *time.Time             `json:"periodStart,omitempty"`
	PeriodEnd      *time.Time             `json:"periodEnd,omitempty"`
	Status         domain.PlacementStatus `json:"status"`
	StatusLabel    string                 `json:"statusLabel"`
	FinalGrade     *decimal.Decimal       `json:"finalGrade,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	CreatedBy      string                 `json:"createdBy"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy  string                 `json:"lastUpdatedBy"`
}

// ToPlacementResponse converts a domain.Placement to PlacementResponse DTO.
func ToPlacementResponse(p *domain.Placement) PlacementResponse {
	return PlacementResponse{
		PlacementID:    p.PlacementID,
		StudentID:      p.StudentID,
		OrganizationID: p.OrganizationID,
		SupervisorID:   p.SupervisorID,
		PeriodStart:    p.PeriodStart,
		PeriodEnd:      p.PeriodEnd,
		Status:         p.Status,
		StatusLabel:    p.Status.Label(),
		FinalGrade:     p.FinalGrade,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
		LastUpdatedAt:  p.LastUpdatedAt,
		LastUpdatedBy:  p.LastUpdatedBy,
	}
}

// ToPlacementResponses converts a slice of domain.Placement.
func ToPlacementResponses(ps []domain.Placement) []PlacementResponse {
	responses := make([]PlacementResponse, len(ps))
	for i := range ps {
		responses[i] = ToPlacementResponse(&ps[i])
	}
	return responses
}

// ListPlacementsResponse wraps a page of placements.
type ListPlacementsResponse struct {
	Placements []PlacementResponse `json:"placements"`
	NextToken  *string             `json:"nextToken,omitempty"`
}
