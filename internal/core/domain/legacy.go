package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
)

// Records imported from the school's earlier system carry Indonesian status
// words. They are translated once at the boundary; the core only sees the
// closed enums above.

var legacyPlacementStatuses = map[string]PlacementStatus{
	"pending":     PlacementPending,
	"menunggu":    PlacementPending,
	"diterima":    PlacementAccepted,
	"ditolak":     PlacementRejected,
	"berlangsung": PlacementInProgress,
	"aktif":       PlacementInProgress,
	"selesai":     PlacementCompleted,
	"dibatalkan":  PlacementCancelled,
}

var legacyOrganizationStatuses = map[string]OrganizationStatus{
	"pending":  OrganizationPending,
	"aktif":    OrganizationActive,
	"nonaktif": OrganizationInactive,
}

var legacyReviewStatuses = map[string]ReviewStatus{
	"pending":             ReviewPending,
	"menunggu":            ReviewPending,
	"menunggu_verifikasi": ReviewPending,
	"disetujui":           ReviewApproved,
	"ditolak":             ReviewRejected,
}

func normalizeLegacy(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseLegacyPlacementStatus accepts a canonical or legacy placement status.
func ParseLegacyPlacementStatus(s string) (PlacementStatus, error) {
	key := normalizeLegacy(s)
	if st := PlacementStatus(key); st.Valid() {
		return st, nil
	}
	if st, ok := legacyPlacementStatuses[key]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown placement status %q", apperrors.ErrValidation, s)
}

// ParseLegacyOrganizationStatus accepts a canonical or legacy organization status.
func ParseLegacyOrganizationStatus(s string) (OrganizationStatus, error) {
	key := normalizeLegacy(s)
	switch OrganizationStatus(key) {
	case OrganizationPending, OrganizationActive, OrganizationInactive:
		return OrganizationStatus(key), nil
	}
	if st, ok := legacyOrganizationStatuses[key]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown organization status %q", apperrors.ErrValidation, s)
}

// ParseLegacyReviewStatus accepts a canonical or legacy journal review status.
func ParseLegacyReviewStatus(s string) (ReviewStatus, error) {
	key := normalizeLegacy(s)
	if st := ReviewStatus(key); st.Valid() {
		return st, nil
	}
	if st, ok := legacyReviewStatuses[key]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown review status %q", apperrors.ErrValidation, s)
}

var placementLabels = map[PlacementStatus]string{
	PlacementPending:    "Menunggu",
	PlacementAccepted:   "Diterima",
	PlacementInProgress: "Berlangsung",
	PlacementCompleted:  "Selesai",
	PlacementRejected:   "Ditolak",
	PlacementCancelled:  "Dibatalkan",
}

var reviewLabels = map[ReviewStatus]string{
	ReviewPending:  "Menunggu",
	ReviewApproved: "Disetujui",
	ReviewRejected: "Ditolak",
}

// Label is the display text used by the school's front office.
func (s PlacementStatus) Label() string {
	if l, ok := placementLabels[s]; ok {
		return l
	}
	return string(s)
}

// Label is the display text used by the school's front office.
func (s ReviewStatus) Label() string {
	if l, ok := reviewLabels[s]; ok {
		return l
	}
	return string(s)
}
