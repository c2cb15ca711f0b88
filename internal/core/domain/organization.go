package domain

// OrganizationStatus is the lifecycle status of a host organization.
type OrganizationStatus string

const (
	OrganizationPending  OrganizationStatus = "pending"
	OrganizationActive   OrganizationStatus = "active"
	OrganizationInactive OrganizationStatus = "inactive"
)

// HostOrganization is a company or agency that hosts interns.
// Records are owned by the organization directory; this service only
// reads Capacity and Status and writes Committed.
type HostOrganization struct {
	OrganizationID string             `json:"organizationID"`
	Name           string             `json:"name"`
	Address        string             `json:"address"`
	Contact        string             `json:"contact"`
	Capacity       *int               `json:"capacity"` // nil means unbounded
	Committed      int                `json:"committed"`
	Status         OrganizationStatus `json:"status"`
	AuditFields
}

// Snapshot returns the ledger view of the organization.
func (o HostOrganization) Snapshot() CapacitySnapshot {
	return NewCapacitySnapshot(o.OrganizationID, o.Capacity, o.Committed)
}

// CapacitySnapshot is the read-only ledger view for one organization.
type CapacitySnapshot struct {
	OrganizationID string `json:"organizationID"`
	Capacity       *int   `json:"capacity"`
	Committed      int    `json:"committed"`
	Remaining      *int   `json:"remaining"` // nil when capacity is unbounded
}

// NewCapacitySnapshot derives Remaining from capacity and committed.
func NewCapacitySnapshot(organizationID string, capacity *int, committed int) CapacitySnapshot {
	s := CapacitySnapshot{
		OrganizationID: organizationID,
		Capacity:       capacity,
		Committed:      committed,
	}
	if capacity != nil {
		remaining := *capacity - committed
		if remaining < 0 {
			remaining = 0
		}
		s.Remaining = &remaining
	}
	return s
}

// HasRoom reports whether one more slot can be committed.
func (s CapacitySnapshot) HasRoom() bool {
	return s.Capacity == nil || s.Committed < *s.Capacity
}
