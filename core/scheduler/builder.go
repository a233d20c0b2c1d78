package scheduler

import (
	"fmt"
	"time"

	"github.com/inventree-tools/crewplan/core/model"
	"github.com/inventree-tools/crewplan/core/solver"
)

// noVar marks a (task, staff, day) combination excluded from the model.
const noVar solver.Var = -1

// problem is one fully built constraint model ready to solve. The
// single-day and multi-day variants share this shape: single-day is the
// degenerate case with a one-day horizon and no day linking.
type problem struct {
	cfg     Config
	staff   []model.Staff
	tasks   []model.Task
	today   time.Time
	horizon int

	m    *solver.Model
	vars [][][]solver.Var // [task][staff][day]
}

// buildProblem constructs decision variables and the assignment and
// capacity constraints for the given inputs.
func buildProblem(cfg Config, staff []model.Staff, tasks []model.Task, today time.Time) (*problem, error) {
	h := horizonDays(tasks, today, cfg.PaddingDays, cfg.Mode)
	p := &problem{
		cfg:     cfg,
		staff:   staff,
		tasks:   tasks,
		today:   today,
		horizon: h,
		m:       solver.NewModel(),
		vars:    make([][][]solver.Var, len(tasks)),
	}

	for t, task := range tasks {
		eligible, err := eligibleStaff(task, staff, cfg.Policy)
		if err != nil {
			return nil, err
		}
		isEligible := make([]bool, len(staff))
		for _, i := range eligible {
			isEligible[i] = true
		}
		start := 0
		if cfg.Mode == ModeMultiDay {
			start = startDay(task, today, h)
		}

		p.vars[t] = make([][]solver.Var, len(staff))
		var taskVars []solver.Var
		for s := range staff {
			p.vars[t][s] = make([]solver.Var, h)
			for d := 0; d < h; d++ {
				p.vars[t][s][d] = noVar
				if !isEligible[s] || d < start {
					continue
				}
				v := p.m.NewBoolVar(fmt.Sprintf("x_t%d_s%d_d%d", t, s, d))
				p.vars[t][s][d] = v
				taskVars = append(taskVars, v)
			}
		}
		// exactly one (staff, day) pair per task
		p.m.AddExactlyOne(taskVars)
	}

	// per-staff, per-day capacity
	for s, st := range staff {
		cap := st.DailyCapacity()
		for d := 0; d < h; d++ {
			var dayVars []solver.Var
			for t := range tasks {
				if v := p.vars[t][s][d]; v != noVar {
					dayVars = append(dayVars, v)
				}
			}
			if len(dayVars) > 0 {
				p.m.AddAtMostK(dayVars, cap)
			}
		}
	}
	return p, nil
}
