package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/internship_placement_app/internal/core/ports/services"
	"github.com/SscSPs/internship_placement_app/internal/dto"
	"github.com/SscSPs/internship_placement_app/internal/middleware"
)

// placementHandler handles HTTP requests related to placements.
type placementHandler struct {
	placementService portssvc.PlacementSvcFacade
	journalService   portssvc.JournalSvcFacade
}

// newPlacementHandler creates a new placementHandler.
func newPlacementHandler(ps portssvc.PlacementSvcFacade, js portssvc.JournalSvcFacade) *placementHandler {
	return &placementHandler{
		placementService: ps,
		journalService:   js,
	}
}

// registerPlacementRoutes registers placement lifecycle routes and the
// journal listing nested under a placement.
func registerPlacementRoutes(rg *gin.RouterGroup, ps portssvc.PlacementSvcFacade, js portssvc.JournalSvcFacade) {
	h := newPlacementHandler(ps, js)

	placements := rg.Group("/placements")
	{
		placements.POST("", h.registerPlacement)
		placements.GET("/:placementID", h.getPlacement)
		placements.DELETE("/:placementID", h.deletePlacement)
		placements.POST("/:placementID/transitions", h.transitionPlacement)
		placements.POST("/:placementID/cancel", h.cancelPlacement)
		placements.PUT("/:placementID/grade", h.recordGrade)
		placements.GET("/:placementID/journals", h.listPlacementJournals)
	}

	rg.GET("/students/:studentID/placements", h.listStudentPlacements)
}

// registerPlacement godoc
// @Summary Apply for a placement
// @Description Registers a pending placement and reserves a slot at the host organization
// @Tags placements
// @Accept json
// @Produce json
// @Param placement body dto.RegisterPlacementRequest true "Placement application"
// @Success 201 {object} dto.PlacementResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 409 {object} map[string]string "Capacity exhausted, limit reached or duplicate"
// @Failure 500 {object} map[string]string "Internal error"
// @Security BearerAuth
// @Router /placements [post]
func (h *placementHandler) registerPlacement(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.RegisterPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "RegisterPlacementRequest")
		return
	}

	placement, err := h.placementService.Register(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to register placement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlacementResponse(placement))
}

// getPlacement godoc
// @Summary Get a placement
// @Tags placements
// @Produce json
// @Param placementID path string true "Placement ID"
// @Success 200 {object} dto.PlacementResponse
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 404 {object} map[string]string "Placement not found"
// @Security BearerAuth
// @Router /placements/{placementID} [get]
func (h *placementHandler) getPlacement(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	placement, err := h.placementService.GetPlacement(c.Request.Context(), actor, c.Param("placementID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve placement")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlacementResponse(placement))
}

// transitionPlacement godoc
// @Summary Apply a lifecycle event to a placement
// @Description accept, reject, begin, complete or cancel. Reject and cancel release the slot.
// @Tags placements
// @Accept json
// @Produce json
// @Param placementID path string true "Placement ID"
// @Param transition body dto.TransitionPlacementRequest true "Lifecycle event"
// @Success 200 {object} dto.PlacementResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 404 {object} map[string]string "Placement not found"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Security BearerAuth
// @Router /placements/{placementID}/transitions [post]
func (h *placementHandler) transitionPlacement(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.TransitionPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "TransitionPlacementRequest")
		return
	}

	placement, err := h.placementService.Transition(c.Request.Context(), actor, c.Param("placementID"), req)
	if err != nil {
		respondError(c, err, "Failed to transition placement")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlacementResponse(placement))
}

// cancelPlacement godoc
// @Summary Cancel a placement
// @Description Withdraws an open placement and releases its slot. Cancelling a closed placement changes nothing.
// @Tags placements
// @Produce json
// @Param placementID path string true "Placement ID"
// @Success 200 {object} dto.PlacementResponse
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 404 {object} map[string]string "Placement not found"
// @Security BearerAuth
// @Router /placements/{placementID}/cancel [post]
func (h *placementHandler) cancelPlacement(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	placement, err := h.placementService.Cancel(c.Request.Context(), actor, c.Param("placementID"))
	if err != nil {
		respondError(c, err, "Failed to cancel placement")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlacementResponse(placement))
}

// recordGrade godoc
// @Summary Record the final grade
// @Tags placements
// @Accept json
// @Produce json
// @Param placementID path string true "Placement ID"
// @Param grade body dto.RecordGradeRequest true "Final grade"
// @Success 200 {object} dto.PlacementResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 409 {object} map[string]string "Placement not completed"
// @Failure 422 {object} map[string]string "Grade out of range"
// @Security BearerAuth
// @Router /placements/{placementID}/grade [put]
func (h *placementHandler) recordGrade(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.RecordGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "RecordGradeRequest")
		return
	}

	placement, err := h.placementService.RecordGrade(c.Request.Context(), actor, c.Param("placementID"), *req.Grade)
	if err != nil {
		respondError(c, err, "Failed to record grade")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlacementResponse(placement))
}

// deletePlacement godoc
// @Summary Delete a placement
// @Description Administrative override. Releases the slot if the placement still holds one and removes its journal entries.
// @Tags placements
// @Param placementID path string true "Placement ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 404 {object} map[string]string "Placement not found"
// @Security BearerAuth
// @Router /placements/{placementID} [delete]
func (h *placementHandler) deletePlacement(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	placementID := c.Param("placementID")
	if err := h.placementService.DeletePlacement(c.Request.Context(), actor, placementID); err != nil {
		respondError(c, err, "Failed to delete placement")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Placement deleted via API", slog.String("placement_id", placementID))
	c.Status(http.StatusNoContent)
}

// listStudentPlacements godoc
// @Summary List a student's placements
// @Tags placements
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {array} dto.PlacementResponse
// @Failure 403 {object} map[string]string "Not authorized"
// @Security BearerAuth
// @Router /students/{studentID}/placements [get]
func (h *placementHandler) listStudentPlacements(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	placements, err := h.placementService.ListPlacementsByStudent(c.Request.Context(), actor, c.Param("studentID"))
	if err != nil {
		respondError(c, err, "Failed to list placements")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlacementResponses(placements))
}

// listPlacementJournals godoc
// @Summary List the journal entries of a placement
// @Tags journals
// @Produce json
// @Param placementID path string true "Placement ID"
// @Param status query string false "Review status filter (pending, approved, rejected or legacy labels)"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 404 {object} map[string]string "Placement not found"
// @Security BearerAuth
// @Router /placements/{placementID}/journals [get]
func (h *placementHandler) listPlacementJournals(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "ListJournalsParams")
		return
	}

	entries, err := h.journalService.ListJournalsByPlacement(c.Request.Context(), actor, c.Param("placementID"), params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListJournalsResponse{Entries: dto.ToJournalEntryResponses(entries)})
}
