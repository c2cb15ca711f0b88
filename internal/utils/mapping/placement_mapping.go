package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/SscSPs/internship_placement_app/internal/models"
)

// ToModelPlacement converts a domain Placement to a model Placement
func ToModelPlacement(d domain.Placement) models.Placement {
	var grade decimal.NullDecimal
	if d.FinalGrade != nil {
		grade = decimal.NewNullDecimal(*d.FinalGrade)
	}
	return models.Placement{
		PlacementID:    d.PlacementID,
		StudentID:      d.StudentID,
		OrganizationID: d.OrganizationID,
		SupervisorID:   d.SupervisorID,
		PeriodStart:    d.PeriodStart,
		PeriodEnd:      d.PeriodEnd,
		Status:         string(d.Status),
		FinalGrade:     grade,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPlacement converts a model Placement to a domain Placement
func ToDomainPlacement(m models.Placement) domain.Placement {
	var grade *decimal.Decimal
	if m.FinalGrade.Valid {
		g := m.FinalGrade.Decimal
		grade = &g
	}
	return domain.Placement{
		PlacementID:    m.PlacementID,
		StudentID:      m.StudentID,
		OrganizationID: m.OrganizationID,
		SupervisorID:   m.SupervisorID,
		PeriodStart:    m.PeriodStart,
		PeriodEnd:      m.PeriodEnd,
		Status:         domain.PlacementStatus(m.Status),
		FinalGrade:     grade,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPlacements converts a slice of model Placement
func ToDomainPlacements(ms []models.Placement) []domain.Placement {
	ds := make([]domain.Placement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPlacement(m)
	}
	return ds
}
