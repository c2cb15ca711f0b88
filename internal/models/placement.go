package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placement is a row of placements.
type Placement struct {
	PlacementID    string              `db:"placement_id"`
	StudentID      string              `db:"student_id"`
	OrganizationID string              `db:"organization_id"`
	SupervisorID   *string             `db:"supervisor_id"`
	PeriodStart    *time.Time          `db:"period_start"`
	PeriodEnd      *time.Time          `db:"period_end"`
	Status         string              `db:"status"`
	FinalGrade     decimal.NullDecimal `db:"final_grade"`
	AuditFields
}
