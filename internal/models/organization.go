package models

// HostOrganization is a row of host_organizations.
type HostOrganization struct {
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	Address        string `db:"address"`
	Contact        string `db:"contact"`
	Capacity       *int32 `db:"capacity"` // NULL means unbounded
	Committed      int32  `db:"committed"`
	Status         string `db:"status"`
	AuditFields
}
