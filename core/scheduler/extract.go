package scheduler

import (
	"time"

	"github.com/inventree-tools/crewplan/core/model"
	"github.com/inventree-tools/crewplan/core/solver"
)

// extract decodes the solved assignment into a Schedule, one entry per
// input task in input order. Construction guarantees exactly one true
// decision variable per task under a feasible solution.
func (p *problem) extract(sol solver.Solution) model.Schedule {
	schedule := make(model.Schedule, 0, len(p.tasks))
	for t, task := range p.tasks {
		for s := range p.staff {
			for d := 0; d < p.horizon; d++ {
				v := p.vars[t][s][d]
				if v == noVar || sol.Value(v) != 1 {
					continue
				}
				a := model.Assignment{Task: task, Staff: p.staff[s], Day: d}
				if p.cfg.Mode == ModeMultiDay {
					a.Date = p.today.AddDate(0, 0, d).Format(model.DateLayout)
				}
				schedule = append(schedule, a)
			}
		}
	}
	return schedule
}

// Today truncates t to midnight UTC, the reference point for day
// indices.
func Today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
