package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/internship_placement_app/internal/core/ports/services"
	"github.com/SscSPs/internship_placement_app/internal/dto"
)

// organizationHandler serves the ledger and reporting views of a host organization.
type organizationHandler struct {
	capacityService  portssvc.CapacityLedgerSvc
	placementService portssvc.PlacementSvcFacade
}

func newOrganizationHandler(cs portssvc.CapacityLedgerSvc, ps portssvc.PlacementSvcFacade) *organizationHandler {
	return &organizationHandler{
		capacityService:  cs,
		placementService: ps,
	}
}

func registerOrganizationRoutes(rg *gin.RouterGroup, cs portssvc.CapacityLedgerSvc, ps portssvc.PlacementSvcFacade) {
	h := newOrganizationHandler(cs, ps)

	orgs := rg.Group("/organizations/:organizationID")
	{
		orgs.GET("/capacity", h.getCapacity)
		orgs.GET("/placements", h.listPlacements)
		orgs.GET("/stats", h.getStats)
	}
}

// getCapacity godoc
// @Summary Get the slot ledger of an organization
// @Tags organizations
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.CapacityResponse
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/capacity [get]
func (h *organizationHandler) getCapacity(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}

	snap, err := h.capacityService.Query(c.Request.Context(), c.Param("organizationID"))
	if err != nil {
		respondError(c, err, "Failed to query capacity")
		return
	}
	c.JSON(http.StatusOK, dto.ToCapacityResponse(snap))
}

// listPlacements godoc
// @Summary List an organization's placements
// @Description Newest first, paged with an opaque nextToken.
// @Tags organizations
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param limit query int false "Page size (1-100, default 20)"
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListPlacementsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 403 {object} map[string]string "Not authorized"
// @Security BearerAuth
// @Router /organizations/{organizationID}/placements [get]
func (h *organizationHandler) listPlacements(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListPlacementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "ListPlacementsParams")
		return
	}

	resp, err := h.placementService.ListPlacementsByOrganization(c.Request.Context(), actor, c.Param("organizationID"), params)
	if err != nil {
		respondError(c, err, "Failed to list placements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getStats godoc
// @Summary Count an organization's placements by status
// @Tags organizations
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.PlacementStatsResponse
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/stats [get]
func (h *organizationHandler) getStats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	stats, err := h.placementService.GetPlacementStats(c.Request.Context(), actor, c.Param("organizationID"))
	if err != nil {
		respondError(c, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlacementStatsResponse(stats))
}
