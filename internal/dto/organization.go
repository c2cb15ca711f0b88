package dto

import "github.com/SscSPs/internship_placement_app/internal/core/domain"

// CapacityResponse is the ledger view of one organization.
type CapacityResponse struct {
	OrganizationID string `json:"organizationID"`
	Capacity       *int   `json:"capacity"`
	Committed      int    `json:"committed"`
	Remaining      *int   `json:"remaining"`
}

// ToCapacityResponse converts a domain.CapacitySnapshot.
func ToCapacityResponse(s *domain.CapacitySnapshot) CapacityResponse {
	return CapacityResponse{
		OrganizationID: s.OrganizationID,
		Capacity:       s.Capacity,
		Committed:      s.Committed,
		Remaining:      s.Remaining,
	}
}

// PlacementStatsResponse counts an organization's placements by status.
type PlacementStatsResponse struct {
	OrganizationID string         `json:"organizationID"`
	ByStatus       map[string]int `json:"byStatus"`
	Total          int            `json:"total"`
}

// ToPlacementStatsResponse converts domain.PlacementStats, keeping a zero for every status.
func ToPlacementStatsResponse(s *domain.PlacementStats) PlacementStatsResponse {
	byStatus := make(map[string]int, len(domain.AllPlacementStatuses))
	for _, st := range domain.AllPlacementStatuses {
		byStatus[string(st)] = s.ByStatus[st]
	}
	return PlacementStatsResponse{
		OrganizationID: s.OrganizationID,
		ByStatus:       byStatus,
		Total:          s.Total,
	}
}

// OrganizationSeed is one record of the organization import file.
type OrganizationSeed struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Address  string `yaml:"address"`
	Contact  string `yaml:"contact"`
	Capacity *int   `yaml:"capacity"`
	Status   string `yaml:"status"` // canonical or legacy (aktif/nonaktif)
}

// OrganizationSeedFile is the top-level document of the import file.
type OrganizationSeedFile struct {
	Organizations []OrganizationSeed `yaml:"organizations"`
}
