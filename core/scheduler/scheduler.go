package scheduler

import (
	"context"
	"time"

	"github.com/inventree-tools/crewplan/core/logger"
	"github.com/inventree-tools/crewplan/core/metrics"
	"github.com/inventree-tools/crewplan/core/model"
	"github.com/inventree-tools/crewplan/core/solver"
)

// Scheduler assigns maintenance tasks to staff by building a constraint
// model and solving it with the configured backend. One call is one
// static snapshot: it holds no state across invocations.
type Scheduler struct {
	cfg     Config
	backend solver.Backend
	log     logger.Logger
	sink    metrics.Sink
}

// New validates the configuration and returns a Scheduler. A nil
// backend is fatal (ErrNoBackend); a nil sink defaults to NopSink.
func New(cfg Config, backend solver.Backend, log logger.Logger, sink metrics.Sink) (*Scheduler, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, ErrNoBackend
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Scheduler{cfg: cfg, backend: backend, log: log, sink: sink}, nil
}

// Schedule solves one batch of tasks against the roster. The reference
// date today anchors all day indices; callers pass the current date so
// the computation stays deterministic under test. Either a complete
// schedule covering every task is returned, or an error; never a
// partial one.
func (s *Scheduler) Schedule(ctx context.Context, staff []model.Staff, tasks []model.Task, today time.Time) (model.Schedule, error) {
	today = Today(today)
	if len(tasks) == 0 {
		return model.Schedule{}, nil
	}
	if len(staff) == 0 {
		return nil, &InfeasibleError{Tasks: len(tasks), Staff: 0, Horizon: horizonDays(tasks, today, s.cfg.PaddingDays, s.cfg.Mode)}
	}
	p, err := buildProblem(s.cfg, staff, tasks, today)
	if err != nil {
		return nil, err
	}
	p.attachObjective()

	if s.log != nil {
		s.log.Debugw("solving schedule", map[string]any{
			"mode":    string(s.cfg.Mode),
			"tasks":   len(tasks),
			"staff":   len(staff),
			"horizon": p.horizon,
		})
	}

	start := time.Now()
	sol, err := s.backend.Solve(ctx, p.m, solver.Params{
		TimeLimit: s.cfg.TimeLimit(),
		Workers:   s.cfg.Workers,
	})
	run := metrics.ScheduleRun{
		Mode:     string(s.cfg.Mode),
		Status:   sol.Status.String(),
		Tasks:    len(tasks),
		Staff:    len(staff),
		Horizon:  p.horizon,
		Duration: time.Since(start),
		Time:     start,
	}
	if err != nil {
		run.Status = "error"
		s.recordRun(run)
		return nil, err
	}
	if sol.Status != solver.Optimal && sol.Status != solver.Feasible {
		s.recordRun(run)
		return nil, &InfeasibleError{Tasks: len(tasks), Staff: len(staff), Horizon: p.horizon}
	}
	run.Objective = sol.Objective
	s.recordRun(run)

	if s.log != nil {
		s.log.Infof("scheduled %d task(s) across %d staff, %s objective=%d",
			len(tasks), len(staff), sol.Status, sol.Objective)
	}
	return p.extract(sol), nil
}

func (s *Scheduler) recordRun(run metrics.ScheduleRun) {
	if err := s.sink.RecordScheduleRun(run); err != nil && s.log != nil {
		s.log.Warnf("metrics sink: %v", err)
	}
}
