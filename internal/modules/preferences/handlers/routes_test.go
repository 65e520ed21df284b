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
)

func newRouter(t *testing.T) (*chi.Mux, *store.Store) {
	t.Helper()
	s := store.New(store.NewState(), zerolog.Nop())
	handler := NewHandler(s, zerolog.Nop())

	router := chi.NewRouter()
	require.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	})
	return router, s
}

type uiResponse struct {
	Changed bool          `json:"changed"`
	UI      store.UIState `json:"ui"`
}

func call(t *testing.T, router http.Handler, method, path, body string, expectedStatus int) uiResponse {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, expectedStatus, rec.Code, rec.Body.String())

	var response uiResponse
	if expectedStatus == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	}
	return response
}

func TestHandleGetUI_Defaults(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest("GET", "/ui", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"sidebar_collapsed": false, "color_mode": "dark", "operations_tab": 0, "insights_tab": 0}`,
		rec.Body.String())
}

func TestHandleToggleColorMode_Involution(t *testing.T) {
	router, s := newRouter(t)
	original := s.State().UI.ColorMode

	first := call(t, router, "POST", "/ui/color-mode/toggle", "", http.StatusOK)
	assert.True(t, first.Changed)
	assert.Equal(t, original.Opposite(), first.UI.ColorMode)

	second := call(t, router, "POST", "/ui/color-mode/toggle", "", http.StatusOK)
	assert.Equal(t, original, second.UI.ColorMode)
}

func TestHandleSetColorMode(t *testing.T) {
	router, s := newRouter(t)

	res := call(t, router, "PUT", "/ui/color-mode", `{"mode": "light"}`, http.StatusOK)
	assert.True(t, res.Changed)
	assert.Equal(t, domain.ColorModeLight, res.UI.ColorMode)

	res = call(t, router, "PUT", "/ui/color-mode", `{"mode": "light"}`, http.StatusOK)
	assert.False(t, res.Changed)

	call(t, router, "PUT", "/ui/color-mode", `{"mode": "sepia"}`, http.StatusBadRequest)
	call(t, router, "PUT", "/ui/color-mode", `{}`, http.StatusBadRequest)
	assert.Equal(t, domain.ColorModeLight, s.State().UI.ColorMode)
}

func TestHandleSidebar(t *testing.T) {
	router, _ := newRouter(t)

	res := call(t, router, "POST", "/ui/sidebar/toggle", "", http.StatusOK)
	assert.True(t, res.UI.SidebarCollapsed)

	res = call(t, router, "PUT", "/ui/sidebar", `{"collapsed": true}`, http.StatusOK)
	assert.False(t, res.Changed)

	res = call(t, router, "PUT", "/ui/sidebar", `{"collapsed": false}`, http.StatusOK)
	assert.True(t, res.Changed)
	assert.False(t, res.UI.SidebarCollapsed)

	call(t, router, "PUT", "/ui/sidebar", `{}`, http.StatusBadRequest)
}

func TestHandleSetTabs(t *testing.T) {
	router, _ := newRouter(t)

	res := call(t, router, "PUT", "/ui/tabs", `{"operations": 2}`, http.StatusOK)
	assert.True(t, res.Changed)
	assert.Equal(t, 2, res.UI.OperationsTab)
	assert.Equal(t, 0, res.UI.InsightsTab)

	res = call(t, router, "PUT", "/ui/tabs", `{"operations": 2, "insights": -4}`, http.StatusOK)
	assert.False(t, res.Changed, "negative index clamps to the current 0")
	assert.Equal(t, 0, res.UI.InsightsTab)

	res = call(t, router, "PUT", "/ui/tabs", `{"insights": 3}`, http.StatusOK)
	assert.Equal(t, 2, res.UI.OperationsTab)
	assert.Equal(t, 3, res.UI.InsightsTab)

	call(t, router, "PUT", "/ui/tabs", `{}`, http.StatusBadRequest)
}
