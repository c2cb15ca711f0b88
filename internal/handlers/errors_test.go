package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/SscSPs/internship_placement_app/internal/middleware"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestRequireActor_Missing(t *testing.T) {
	c, w := newTestContext()

	_, ok := requireActor(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], apperrors.ErrUnauthenticated.Error())
}

func TestRequireActor_Present(t *testing.T) {
	c, w := newTestContext()
	c.Request = c.Request.WithContext(middleware.WithActor(c.Request.Context(), domain.Actor{ID: "siswa-a", Role: domain.RoleStudent}))

	actor, ok := requireActor(c)
	require.True(t, ok)
	assert.Equal(t, "siswa-a", actor.ID)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRespondError_RuleCode(t *testing.T) {
	c, w := newTestContext()

	respondError(c, apperrors.ErrNarrativeTooShort, "Failed to submit journal entry")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "narrative_too_short", body["code"])
}
