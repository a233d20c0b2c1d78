package scheduler

import "github.com/inventree-tools/crewplan/core/solver"

// attachObjective adds the per-mode minimization target to the model.
// Both variants introduce an auxiliary bound variable constrained to be
// at least every per-entity quantity, then minimize the bound.
func (p *problem) attachObjective() {
	switch p.cfg.Mode {
	case ModeMultiDay:
		p.attachEarliestCompletion()
	default:
		p.attachLoadBalance()
	}
}

// attachLoadBalance minimizes the maximum per-staff task count.
func (p *problem) attachLoadBalance() {
	n := len(p.tasks)
	bound := p.m.NewIntVar(0, n, "max_load")
	for s := range p.staff {
		var sv []solver.Var
		for t := range p.tasks {
			for d := 0; d < p.horizon; d++ {
				if v := p.vars[t][s][d]; v != noVar {
					sv = append(sv, v)
				}
			}
		}
		if len(sv) == 0 {
			continue
		}
		load := p.m.NewIntVar(0, n, "load")
		p.m.AddWeightedSumEq(sv, ones(len(sv)), load)
		p.m.AddUpperBound(bound, load)
	}
	p.m.Minimize(bound)
}

// attachEarliestCompletion minimizes the maximum assigned day across all
// tasks. Each task gets a derived day variable linked to the weighted
// sum of its day-indexed decision variables; the same variable drives
// output decoding.
func (p *problem) attachEarliestCompletion() {
	bound := p.m.NewIntVar(0, p.horizon-1, "last_assigned")
	for t := range p.tasks {
		var tv []solver.Var
		var weights []int
		for s := range p.staff {
			for d := 0; d < p.horizon; d++ {
				if v := p.vars[t][s][d]; v != noVar {
					tv = append(tv, v)
					weights = append(weights, d)
				}
			}
		}
		day := p.m.NewIntVar(0, p.horizon-1, "day")
		p.m.AddWeightedSumEq(tv, weights, day)
		p.m.AddUpperBound(bound, day)
	}
	p.m.Minimize(bound)
}

func ones(n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}
