package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	auditlogRepo "opsledger/database/repository/auditlog"
	directoryRepo "opsledger/database/repository/directory"
	ledgerRepo "opsledger/database/repository/ledger"
	sessionRepo "opsledger/database/repository/session"
	"opsledger/models"
	"opsledger/services/audit"
	"opsledger/services/ledger"
	"opsledger/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asActor stands in for the JWT middleware during tests.
func asActor(actor models.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("actor", actor)
		c.Next()
	}
}

func routerFor(svc *scheduling.DefaultSessionService, actor models.Actor) *gin.Engine {
	h := NewSessionHandler(svc, zap.NewNop())

	r := gin.New()
	r.Use(asActor(actor))
	r.POST("/api/sessions", h.CreateSession)
	r.GET("/api/sessions", h.ListSessions)
	r.GET("/api/sessions/:id", h.GetSession)
	r.PATCH("/api/sessions/:id", h.UpdateSessionSchedule)
	r.PATCH("/api/sessions/:id/status", h.UpdateSessionStatus)
	r.POST("/api/sessions/:id/notes", h.AddSessionNote)
	r.GET("/api/sessions/:id/trail", h.GetSessionTrail)
	return r
}

func newTestRouter(actor models.Actor) (*gin.Engine, *scheduling.DefaultSessionService) {
	sessions := sessionRepo.NewMemorySessionRepo()
	svc := scheduling.NewSessionService(
		sessions,
		directoryRepo.NewMemoryDirectoryRepo(
			directoryRepo.Entry{ID: "emp-1", Name: "Ahmed Khalid", CompanyID: "acme"},
			directoryRepo.Entry{ID: "cli-1", Name: "Faisal Nasser", CompanyID: "acme"},
		),
		&audit.DefaultAuditService{Repo: auditlogRepo.NewMemoryAuditLogRepo()},
		&ledger.DefaultLedgerService{Repo: ledgerRepo.NewMemoryLedgerRepo(), Sessions: sessions},
	)
	return routerFor(svc, actor), svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var testAdmin = models.Actor{ID: "adm-1", Name: "Dana", Role: models.RoleAdmin, CompanyID: "acme"}

func createBody(start, end string) map[string]any {
	return map[string]any{
		"title":       "Checkup",
		"client_id":   "cli-1",
		"employee_id": "emp-1",
		"date":        "2024-05-01",
		"start_time":  start,
		"end_time":    end,
		"price":       500,
	}
}

func TestCreateSessionEndpoint(t *testing.T) {
	r, _ := newTestRouter(testAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/sessions", createBody("09:00", "10:00"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusScheduled, created.Status)
	assert.Equal(t, "Ahmed Khalid", created.EmployeeName)

	// Overlapping booking for the same employee maps to 409.
	w = doJSON(t, r, http.MethodPost, "/api/sessions", createBody("09:30", "10:30"))
	assert.Equal(t, http.StatusConflict, w.Code)

	// Missing required fields map to 400 before the service runs.
	w = doJSON(t, r, http.MethodPost, "/api/sessions", map[string]any{"title": "broken"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSessionsEndpointEmpty(t *testing.T) {
	r, _ := newTestRouter(testAdmin)

	w := doJSON(t, r, http.MethodGet, "/api/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestStatusEndpointLifecycle(t *testing.T) {
	r, svc := newTestRouter(testAdmin)

	created, err := svc.Create(scheduling.CreateSessionInput{
		ClientID: "cli-1", EmployeeID: "emp-1",
		Date: "2024-05-01", StartTime: "09:00", EndTime: "10:00", Price: 500,
	}, testAdmin)
	require.NoError(t, err)
	path := fmt.Sprintf("/api/sessions/%s/status", created.ID)

	// Illegal jump maps to 422.
	w := doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "Completed"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "InProgress"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code)
	var done models.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &done))
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)

	w = doJSON(t, r, http.MethodPatch, "/api/sessions/missing/status", map[string]any{"status": "InProgress"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusEndpointWarnsOnReconciliationFailure(t *testing.T) {
	r, svc := newTestRouter(testAdmin)
	svc.Ledger = brokenLedger{}

	created, err := svc.Create(scheduling.CreateSessionInput{
		ClientID: "cli-1", EmployeeID: "emp-1",
		Date: "2024-05-01", StartTime: "09:00", EndTime: "10:00", Price: 500,
	}, testAdmin)
	require.NoError(t, err)
	path := fmt.Sprintf("/api/sessions/%s/status", created.ID)

	w := doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "InProgress"})
	require.Equal(t, http.StatusOK, w.Code)

	// The status commit is reported as success, with the gap flagged.
	w = doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Session models.Session `json:"session"`
		Warning string         `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusCompleted, resp.Session.Status)
	assert.Contains(t, resp.Warning, "backfilled")
}

func TestScheduleAndNotesEndpoints(t *testing.T) {
	r, svc := newTestRouter(testAdmin)

	created, err := svc.Create(scheduling.CreateSessionInput{
		Title: "Checkup", ClientID: "cli-1", EmployeeID: "emp-1",
		Date: "2024-05-01", StartTime: "09:00", EndTime: "10:00", Price: 500,
	}, testAdmin)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPatch, "/api/sessions/"+created.ID, map[string]any{"title": "Extended checkup"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Extended checkup", updated.Title)

	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+created.ID+"/notes", map[string]any{"content": "bring records"})
	require.Equal(t, http.StatusCreated, w.Code)
	var note models.SessionNote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &note))
	assert.Equal(t, "bring records", note.Content)

	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+created.ID+"/notes", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrailEndpointEnforcesTenantScope(t *testing.T) {
	_, svc := newTestRouter(testAdmin)

	created, err := svc.Create(scheduling.CreateSessionInput{
		Title: "Checkup", ClientID: "cli-1", EmployeeID: "emp-1",
		Date: "2024-05-01", StartTime: "09:00", EndTime: "10:00", Price: 500,
	}, testAdmin)
	require.NoError(t, err)
	path := "/api/sessions/" + created.ID + "/trail"

	// The owning tenant's admin sees the timeline.
	w := doJSON(t, routerFor(svc, testAdmin), http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []models.AuditLogEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionCreated, entries[0].Action)

	// Another tenant's admin gets nothing, not even the entry shapes.
	rival := models.Actor{ID: "adm-9", Name: "Rival", Role: models.RoleAdmin, CompanyID: "globex"}
	w = doJSON(t, routerFor(svc, rival), http.MethodGet, path, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "CREATED")

	w = doJSON(t, routerFor(svc, testAdmin), http.MethodGet, "/api/sessions/missing/trail", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type brokenLedger struct{}

func (brokenLedger) Reconcile(*models.Session) (*models.FinancialRecord, error) {
	return nil, fmt.Errorf("ledger store unavailable")
}
func (brokenLedger) Summary(string) (*models.FinancialSummary, error) { return nil, nil }
func (brokenLedger) Records(string) ([]models.FinancialRecord, error) { return nil, nil }
func (brokenLedger) SweepOnce() (int, error)                          { return 0, nil }
