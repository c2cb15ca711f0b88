package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/SscSPs/internship_placement_app/internal/middleware"
)

// respondError writes err as a JSON error body. Infrastructure faults are
// reported with a generic message; everything else carries the error text.
func respondError(c *gin.Context, err error, fallback string) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}

	body := gin.H{"error": err.Error()}
	if code := apperrors.RuleCode(err); code != "" {
		body["code"] = code
	}
	c.JSON(status, body)
}

// requireActor returns the authenticated actor or answers 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		respondError(c, fmt.Errorf("%w: no actor on request", apperrors.ErrUnauthenticated), "Unauthorized")
		return domain.Actor{}, false
	}
	return actor, true
}

// bindError answers 400 for a request body or query that failed binding.
func bindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
