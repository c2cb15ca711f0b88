package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/internship_placement_app/internal/core/ports/services"
	"github.com/SscSPs/internship_placement_app/internal/dto"
)

// journalHandler handles HTTP requests related to daily journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.submitJournal)
		journals.GET("/:entryID", h.getJournal)
		journals.PUT("/:entryID", h.editJournal)
		journals.DELETE("/:entryID", h.deleteJournal)
		journals.POST("/:entryID/review", h.reviewJournal)
	}
}

// submitJournal godoc
// @Summary Submit a daily journal entry
// @Description Creates a pending entry. A second entry for the same date is accepted with a duplicate_journal_date warning.
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.SubmitJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalSubmissionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 409 {object} map[string]string "Placement not eligible"
// @Failure 422 {object} map[string]string "Narrative too short"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) submitJournal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.SubmitJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "SubmitJournalRequest")
		return
	}

	submission, err := h.journalService.Submit(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to submit journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalSubmissionResponse(submission))
}

// getJournal godoc
// @Summary Get a journal entry
// @Tags journals
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Security BearerAuth
// @Router /journals/{entryID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), actor, c.Param("entryID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// editJournal godoc
// @Summary Edit a journal entry
// @Description Updates the provided fields of a pending or rejected entry. Omitted fields keep their value. A rejected entry returns to pending.
// @Tags journals
// @Accept json
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Param journal body dto.EditJournalRequest true "Fields to change"
// @Success 200 {object} dto.JournalSubmissionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 409 {object} map[string]string "Entry locked"
// @Failure 422 {object} map[string]string "Narrative too short"
// @Security BearerAuth
// @Router /journals/{entryID} [put]
func (h *journalHandler) editJournal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.EditJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "EditJournalRequest")
		return
	}

	submission, err := h.journalService.Edit(c.Request.Context(), actor, c.Param("entryID"), req)
	if err != nil {
		respondError(c, err, "Failed to edit journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalSubmissionResponse(submission))
}

// reviewJournal godoc
// @Summary Review a journal entry
// @Tags journals
// @Accept json
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Param review body dto.ReviewJournalRequest true "Decision"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Not the assigned supervisor"
// @Failure 409 {object} map[string]string "Already approved"
// @Security BearerAuth
// @Router /journals/{entryID}/review [post]
func (h *journalHandler) reviewJournal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ReviewJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "ReviewJournalRequest")
		return
	}

	entry, err := h.journalService.Review(c.Request.Context(), actor, c.Param("entryID"), req)
	if err != nil {
		respondError(c, err, "Failed to review journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteJournal godoc
// @Summary Delete a journal entry
// @Tags journals
// @Param entryID path string true "Journal entry ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not authorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Security BearerAuth
// @Router /journals/{entryID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.journalService.Delete(c.Request.Context(), actor, c.Param("entryID")); err != nil {
		respondError(c, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}
