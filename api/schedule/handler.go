// Package schedule exposes the scheduling engine over HTTP.
package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	corelogger "github.com/inventree-tools/crewplan/core/logger"
	"github.com/inventree-tools/crewplan/core/metrics"
	"github.com/inventree-tools/crewplan/core/model"
	"github.com/inventree-tools/crewplan/core/scheduler"
	"github.com/inventree-tools/crewplan/core/solver"
	"github.com/inventree-tools/crewplan/roster"
)

// Request is the body of POST /api/schedule. Tasks may be given
// directly or as a machine mapping; mode and policy override the
// configured defaults when set.
type Request struct {
	Staff   []model.Staff                 `json:"staff"`
	Tasks   []model.Task                  `json:"tasks"`
	Mapping map[string]roster.MachineInfo `json:"mapping"`
	Mode    scheduler.Mode                `json:"mode"`
	Policy  scheduler.Policy              `json:"policy"`
}

// Response wraps the schedule in a self-describing payload.
type Response struct {
	Mode     scheduler.Mode `json:"mode"`
	Schedule model.Schedule `json:"schedule"`
}

type errorBody struct {
	Error string `json:"error"`
}

// NewHandler returns the handler for POST /api/schedule. The base
// configuration supplies defaults; now() anchors day indices and is
// injectable for tests.
func NewHandler(base scheduler.Config, backend solver.Backend, sink metrics.Sink, log corelogger.Logger, now func() time.Time) http.Handler {
	if now == nil {
		now = time.Now
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
			return
		}
		tasks := req.Tasks
		if len(tasks) == 0 && len(req.Mapping) > 0 {
			tasks = roster.BuildTasks(req.Mapping)
		}
		if len(req.Staff) == 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "staff list is required"})
			return
		}

		cfg := base
		if req.Mode != "" {
			cfg.Mode = req.Mode
		}
		if req.Policy != "" {
			cfg.Policy = req.Policy
		}
		s, err := scheduler.New(cfg, backend, log, sink)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		sched, err := s.Schedule(r.Context(), req.Staff, tasks, now())
		switch {
		case errors.Is(err, scheduler.ErrInfeasible):
			writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
			return
		case err != nil:
			var noStaff *scheduler.NoEligibleStaffError
			if errors.As(err, &noStaff) {
				writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, Response{Mode: cfg.Mode, Schedule: sched})
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
