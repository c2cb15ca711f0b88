package mapping

import (
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/SscSPs/internship_placement_app/internal/models"
)

// ToModelOrganization converts a domain HostOrganization to a model HostOrganization
func ToModelOrganization(d domain.HostOrganization) models.HostOrganization {
	var capacity *int32
	if d.Capacity != nil {
		c := int32(*d.Capacity)
		capacity = &c
	}
	return models.HostOrganization{
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Address:        d.Address,
		Contact:        d.Contact,
		Capacity:       capacity,
		Committed:      int32(d.Committed),
		Status:         string(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model HostOrganization to a domain HostOrganization
func ToDomainOrganization(m models.HostOrganization) domain.HostOrganization {
	var capacity *int
	if m.Capacity != nil {
		c := int(*m.Capacity)
		capacity = &c
	}
	return domain.HostOrganization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Address:        m.Address,
		Contact:        m.Contact,
		Capacity:       capacity,
		Committed:      int(m.Committed),
		Status:         domain.OrganizationStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrganizations converts a slice of model HostOrganization
func ToDomainOrganizations(ms []models.HostOrganization) []domain.HostOrganization {
	ds := make([]domain.HostOrganization, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrganization(m)
	}
	return ds
}
