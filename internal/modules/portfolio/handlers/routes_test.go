package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/workbench/internal/domain"
	"github.com/aristath/workbench/internal/store"
	testingpkg "github.com/aristath/workbench/internal/testing"
)

func newRouter(t *testing.T) (*chi.Mux, *store.Store) {
	t.Helper()
	s := testingpkg.NewTestStore()
	handler := NewHandler(s, zerolog.Nop())

	router := chi.NewRouter()
	require.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	}, "RegisterRoutes should not panic")
	return router, s
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestRegisterRoutes(t *testing.T) {
	router, _ := newRouter(t)

	testCases := []struct {
		method string
		path   string
		name   string
	}{
		{"GET", "/portfolio/snapshot", "GetSnapshot"},
		{"PUT", "/portfolio/snapshot", "SetSnapshot"},
		{"PATCH", "/portfolio/snapshot", "PatchSnapshot"},
		{"GET", "/portfolio/cues", "GetCues"},
		{"PUT", "/portfolio/cues", "SetCues"},
		{"DELETE", "/portfolio/cues/cue-corr", "DismissCue"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(router, tc.method, tc.path, "")
			assert.NotEqual(t, http.StatusNotFound, rec.Code, "Route %s %s should be registered", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestHandleGetSnapshot(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(router, "GET", "/portfolio/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snapshot domain.PortfolioSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, testingpkg.NewSnapshotFixture(), snapshot)
}

func TestHandleSetSnapshot(t *testing.T) {
	router, s := newRouter(t)

	rec := do(router, "PUT", "/portfolio/snapshot", `{"equity": 1000, "cash": 250, "active_deployments": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["changed"])

	snapshot := s.State().Portfolio.Snapshot
	assert.Equal(t, 1000.0, snapshot.Equity)
	assert.Equal(t, 0.0, snapshot.DayPnL, "wholesale replace zeroes omitted fields")
	assert.Equal(t, 2, snapshot.ActiveDeployments)
}

func TestHandlePatchSnapshot(t *testing.T) {
	router, s := newRouter(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		changed        bool
	}{
		{"patch cash", `{"cash": 1.5}`, http.StatusOK, true},
		{"same value again", `{"cash": 1.5}`, http.StatusOK, false},
		{"empty patch", `{}`, http.StatusBadRequest, false},
		{"unknown field", `{"leverage": 2}`, http.StatusBadRequest, false},
		{"malformed", `{"cash":`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, "PATCH", "/portfolio/snapshot", tt.body)
			require.Equal(t, tt.expectedStatus, rec.Code)

			response := decode(t, rec)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.changed, response["changed"])
			} else {
				assert.NotEmpty(t, response["error"])
			}
		})
	}

	snapshot := s.State().Portfolio.Snapshot
	assert.Equal(t, 1.5, snapshot.Cash)
	assert.Equal(t, testingpkg.NewSnapshotFixture().Equity, snapshot.Equity)
}

func TestHandleDismissCue(t *testing.T) {
	router, s := newRouter(t)

	rec := do(router, "DELETE", "/portfolio/cues/cue-corr", "")
	require.Equal(t, http.StatusOK, rec.Code)
	response := decode(t, rec)
	assert.Equal(t, true, response["changed"])
	assert.Len(t, response["cues"], 2)

	rec = do(router, "DELETE", "/portfolio/cues/cue-corr", "")
	require.Equal(t, http.StatusOK, rec.Code, "dismissing twice is not an error")
	assert.Equal(t, false, decode(t, rec)["changed"])

	rec = do(router, "DELETE", "/portfolio/cues/no-such-cue", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["changed"])

	cues := s.State().Portfolio.Cues
	require.Len(t, cues, 2)
	assert.Equal(t, "cue-drawdown", cues[0].ID)
	assert.Equal(t, "cue-window", cues[1].ID)
}

func TestHandleSetCues(t *testing.T) {
	router, s := newRouter(t)

	rec := do(router, "PUT", "/portfolio/cues",
		`[{"id": "a", "severity": "critical", "message": "m1"}, {"severity": "info", "message": "m2"}]`)
	require.Equal(t, http.StatusOK, rec.Code)

	cues := s.State().Portfolio.Cues
	require.Len(t, cues, 2)
	assert.Equal(t, "a", cues[0].ID)
	assert.NotEmpty(t, cues[1].ID, "missing ids are assigned")

	rec = do(router, "GET", "/portfolio/cues", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["count"])
}

func TestHandleSetCues_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown severity", `[{"id": "a", "severity": "urgent"}]`},
		{"missing severity", `[{"id": "a", "message": "m"}]`},
		{"duplicate ids", `[{"id": "a", "severity": "info"}, {"id": "a", "severity": "info"}]`},
		{"not a list", `{"id": "a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, s := newRouter(t)
			before := s.State()

			rec := do(router, "PUT", "/portfolio/cues", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, before, s.State())
		})
	}
}
