package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portssvc "github.com/SscSPs/internship_placement_app/internal/core/ports/services"
	"github.com/SscSPs/internship_placement_app/internal/core/services"
	"github.com/SscSPs/internship_placement_app/internal/dto"
	"github.com/SscSPs/internship_placement_app/internal/handlers"
	"github.com/SscSPs/internship_placement_app/internal/middleware"
	"github.com/SscSPs/internship_placement_app/internal/platform/config"
	"github.com/SscSPs/internship_placement_app/internal/repositories/memory"
)

const (
	testSecret = "handler-test-secret"
	testIssuer = "placement-test"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                "8080",
		StorageDriver:       config.StorageDriverMemory,
		JWTSecret:           testSecret,
		JWTIssuer:           testIssuer,
		RateLimit:           "1000-M",
		MaxOpenApplications: 3,
		MinNarrativeLength:  50,
		GradeMin:            decimal.Zero,
		GradeMax:            decimal.NewFromInt(100),
	}
}

type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine
	store  *memory.Store
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	suite.store = memory.NewStore()
	suite.Require().NoError(suite.store.UpsertOrganization(context.Background(), domain.HostOrganization{
		OrganizationID: "dudi-1",
		Name:           "PT Contoh",
		Capacity:       intPtr(1),
		Status:         domain.OrganizationActive,
	}))

	container := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(suite.store))
	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	suite.Require().NoError(err)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container, limiter)
}

func intPtr(i int) *int { return &i }

func (suite *HandlersTestSuite) token(id string, role domain.Role) string {
	claims := middleware.ActorClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	suite.Require().NoError(err)
	return signed
}

// do sends a request as the given actor and decodes a JSON object response into out when non-nil.
func (suite *HandlersTestSuite) do(method, path string, actor *domain.Actor, body any, out any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+suite.token(actor.ID, actor.Role))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	if out != nil {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

var (
	siswaA = &domain.Actor{ID: "siswa-a", Role: domain.RoleStudent}
	siswaB = &domain.Actor{ID: "siswa-b", Role: domain.RoleStudent}
	guru   = &domain.Actor{ID: "guru-1", Role: domain.RoleSupervisor}
	admin  = &domain.Actor{ID: "admin-1", Role: domain.RoleAdministrator}
)

func (suite *HandlersTestSuite) TestPublicRoutes() {
	w := suite.do(http.MethodGet, "/health", nil, nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())

	w = suite.do(http.MethodGet, "/metrics", nil, nil, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/swagger/doc.json", nil, nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Internship Placement API")
}

func (suite *HandlersTestSuite) TestAuthRequired() {
	w := suite.do(http.MethodGet, "/api/v1/organizations/dudi-1/capacity", nil, nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestPlacementAndJournalFlow() {
	var placement dto.PlacementResponse
	w := suite.do(http.MethodPost, "/api/v1/placements", siswaA,
		dto.RegisterPlacementRequest{StudentID: "siswa-a", OrganizationID: "dudi-1"}, &placement)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Equal(domain.PlacementPending, placement.Status)

	var capacity dto.CapacityResponse
	w = suite.do(http.MethodGet, "/api/v1/organizations/dudi-1/capacity", siswaB, nil, &capacity)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(1, capacity.Committed)
	suite.Equal(0, *capacity.Remaining)

	var failure map[string]string
	w = suite.do(http.MethodPost, "/api/v1/placements", siswaB,
		dto.RegisterPlacementRequest{StudentID: "siswa-b", OrganizationID: "dudi-1"}, &failure)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("capacity_exhausted", failure["code"])

	w = suite.do(http.MethodPost, "/api/v1/placements/"+placement.PlacementID+"/transitions", guru,
		map[string]string{"event": "accept"}, &placement)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(domain.PlacementAccepted, placement.Status)

	submit := dto.SubmitJournalRequest{PlacementID: placement.PlacementID, EntryDate: time.Now(), Activity: strings.Repeat("a", 40)}
	w = suite.do(http.MethodPost, "/api/v1/journals", siswaA, submit, &failure)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("narrative_too_short", failure["code"])

	submit.Activity = ""
	w = suite.do(http.MethodPost, "/api/v1/journals", siswaA, submit, &failure)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("narrative_too_short", failure["code"])

	submit.Activity = strings.Repeat("a", 55)
	var submission dto.JournalSubmissionResponse
	w = suite.do(http.MethodPost, "/api/v1/journals", siswaA, submit, &submission)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Equal(domain.ReviewPending, submission.Entry.Status)
	entryPath := "/api/v1/journals/" + submission.Entry.EntryID

	var reviewed dto.JournalEntryResponse
	w = suite.do(http.MethodPost, entryPath+"/review", guru, map[string]string{"decision": "approve"}, &reviewed)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(domain.ReviewApproved, reviewed.Status)

	w = suite.do(http.MethodPut, entryPath, siswaA,
		map[string]string{"activity": strings.Repeat("b", 60)}, &failure)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("entry_locked", failure["code"])

	var list dto.ListJournalsResponse
	w = suite.do(http.MethodGet, "/api/v1/placements/"+placement.PlacementID+"/journals?status=disetujui", guru, nil, &list)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(list.Entries, 1)

	w = suite.do(http.MethodGet, "/api/v1/placements/"+placement.PlacementID, siswaB, nil, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/placements/"+placement.PlacementID, admin, nil, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/placements/"+placement.PlacementID, admin, nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/organizations/dudi-1/capacity", admin, nil, &capacity)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(0, capacity.Committed)
}

func (suite *HandlersTestSuite) TestGradingGate() {
	var placement dto.PlacementResponse
	suite.do(http.MethodPost, "/api/v1/placements", admin,
		dto.RegisterPlacementRequest{StudentID: "siswa-a", OrganizationID: "dudi-1"}, &placement)

	var failure map[string]string
	w := suite.do(http.MethodPut, "/api/v1/placements/"+placement.PlacementID+"/grade", admin,
		map[string]string{"grade": "150"}, &failure)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("placement_not_completed", failure["code"])

	path := "/api/v1/placements/" + placement.PlacementID + "/transitions"
	suite.do(http.MethodPost, path, guru, map[string]string{"event": "accept"}, nil)
	suite.do(http.MethodPost, path, guru, map[string]string{"event": "begin"}, nil)
	w = suite.do(http.MethodPost, path, guru, map[string]string{"event": "complete"}, &placement)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("completed", string(placement.Status))

	w = suite.do(http.MethodPut, "/api/v1/placements/"+placement.PlacementID+"/grade", guru,
		map[string]string{"grade": "150"}, &failure)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("invalid_grade_range", failure["code"])

	w = suite.do(http.MethodPut, "/api/v1/placements/"+placement.PlacementID+"/grade", guru,
		map[string]string{"grade": "88.5"}, &placement)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("88.5", placement.FinalGrade.String())

	var stats dto.PlacementStatsResponse
	w = suite.do(http.MethodGet, "/api/v1/organizations/dudi-1/stats", admin, nil, &stats)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(1, stats.Total)
	suite.Equal(1, stats.ByStatus["completed"])
	suite.Equal(0, stats.ByStatus["pending"])
}

func (suite *HandlersTestSuite) TestBadRequests() {
	w := suite.do(http.MethodPost, "/api/v1/placements", siswaA, "{not json", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/placements/p-1/transitions", guru, map[string]string{"event": "teleport"}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/organizations/dudi-1/placements?limit=500", guru, nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/organizations/dudi-1/placements?nextToken=garbage", guru, nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

// --- Infrastructure faults ---

type MockCapacityLedgerSvc struct {
	mock.Mock
}

var _ portssvc.CapacityLedgerSvc = (*MockCapacityLedgerSvc)(nil)

func (m *MockCapacityLedgerSvc) ReserveSlot(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	args := m.Called(ctx, organizationID)
	return nil, args.Error(1)
}

func (m *MockCapacityLedgerSvc) ReleaseSlot(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	args := m.Called(ctx, organizationID)
	return nil, args.Error(1)
}

func (m *MockCapacityLedgerSvc) Query(ctx context.Context, organizationID string) (*domain.CapacitySnapshot, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapacitySnapshot), args.Error(1)
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.IsProduction = true

	ledger := new(MockCapacityLedgerSvc)
	ledger.On("Query", mock.Anything, "dudi-1").Return(nil, errors.New("connection reset by peer")).Once()

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{Capacity: ledger}, nil)

	s := &HandlersTestSuite{router: r}
	s.SetT(t)
	var body map[string]string
	w := s.do(http.MethodGet, "/api/v1/organizations/dudi-1/capacity", admin, nil, &body)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body["error"] != "Failed to query capacity" {
		t.Fatalf("unexpected error body %q", body["error"])
	}
	ledger.AssertExpectations(t)

	w = s.do(http.MethodGet, "/swagger/index.html", nil, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be disabled in production, got %d", w.Code)
	}
}
