package schedule

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventree-tools/crewplan/core/scheduler"
	"github.com/inventree-tools/crewplan/core/solver"
)

func testHandler() http.Handler {
	now := func() time.Time { return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC) }
	return NewHandler(scheduler.Config{Mode: scheduler.ModeSingleDay}, solver.NewBranchAndBound(), nil, nil, now)
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestScheduleEndpoint(t *testing.T) {
	body := `{
		"staff": [{"id": "s1", "name": "Arun", "location": "chennai", "capacity": 2}],
		"mapping": {"press-1": {"order_pk": 87, "missing_parts": ["filter", "motor"], "location": "chennai"}}
	}`
	rec := post(t, testHandler(), body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, scheduler.ModeSingleDay, resp.Mode)
	require.Len(t, resp.Schedule, 2)
	assert.Equal(t, "s1", resp.Schedule[0].Staff.ID)
}

func TestScheduleEndpointInfeasible(t *testing.T) {
	body := `{
		"staff": [{"id": "s1", "location": "chennai", "capacity": 1}],
		"tasks": [
			{"machine": "m", "part": "a", "location": "chennai"},
			{"machine": "m", "part": "b", "location": "chennai"}
		]
	}`
	rec := post(t, testHandler(), body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no feasible schedule")
}

func TestScheduleEndpointValidation(t *testing.T) {
	rec := post(t, testHandler(), `{"tasks": [{"machine": "m", "part": "a"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, testHandler(), `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	rec = httptest.NewRecorder()
	testHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestScheduleEndpointModeOverride(t *testing.T) {
	body := `{
		"staff": [{"id": "s1", "capacity": 1}],
		"tasks": [{"machine": "m", "part": "a", "target_date": "2026-09-02"}],
		"mode": "multi-day"
	}`
	rec := post(t, testHandler(), body)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Schedule, 1)
	assert.Equal(t, "2026-09-02", resp.Schedule[0].Date)
}
