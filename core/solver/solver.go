package solver

import (
	"context"
	"time"
)

// Var identifies a decision variable within a Model.
type Var int

// Status reports the outcome of a solve.
type Status int

const (
	// Optimal means the search space was exhausted and the incumbent is best.
	Optimal Status = iota
	// Feasible means an integer solution was found but the time budget
	// expired before optimality was proven.
	Feasible
	// Infeasible means the search space was exhausted without any solution.
	Infeasible
	// Unknown means the budget expired before any solution was found.
	Unknown
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Feasible:
		return "feasible"
	case Infeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Params bounds a solve invocation.
type Params struct {
	TimeLimit time.Duration // wall-clock budget, zero means no limit
	Workers   int           // parallel search workers, defaults to 8
}

// Solution holds the decoded variable assignment of a successful solve.
type Solution struct {
	Status    Status
	Objective int
	values    []int
}

// Value returns the solved integer value of v.
func (s Solution) Value(v Var) int { return s.values[v] }

// Backend solves a built Model within the given budget.
type Backend interface {
	Solve(ctx context.Context, m *Model, p Params) (Solution, error)
}

type rowKind int

const (
	rowEq rowKind = iota // sum(coef*var) == rhs
	rowLe                // sum(coef*var) <= rhs
)

type linRow struct {
	kind  rowKind
	vars  []Var
	coefs []float64
	rhs   float64
}

// Model is an integer program under construction: bounded integer
// variables, linear equality and inequality constraints, and an
// optional single-variable minimization objective.
type Model struct {
	lo, hi []float64
	names  []string
	rows   []linRow
	obj    Var
	hasObj bool
}

// NewModel returns an empty model.
func NewModel() *Model { return &Model{} }

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int { return len(m.lo) }

// NewBoolVar declares a 0/1 decision variable.
func (m *Model) NewBoolVar(name string) Var {
	return m.NewIntVar(0, 1, name)
}

// NewIntVar declares an integer variable with inclusive bounds.
func (m *Model) NewIntVar(lo, hi int, name string) Var {
	m.lo = append(m.lo, float64(lo))
	m.hi = append(m.hi, float64(hi))
	m.names = append(m.names, name)
	return Var(len(m.lo) - 1)
}

// AddExactlyOne constrains exactly one of vars to be 1.
func (m *Model) AddExactlyOne(vars []Var) {
	m.rows = append(m.rows, linRow{kind: rowEq, vars: vars, coefs: ones(len(vars)), rhs: 1})
}

// AddAtMostK constrains the sum of vars to be at most k.
func (m *Model) AddAtMostK(vars []Var, k int) {
	m.rows = append(m.rows, linRow{kind: rowLe, vars: vars, coefs: ones(len(vars)), rhs: float64(k)})
}

// AddWeightedSumEq links target to the weighted sum of vars:
// sum(weights[i]*vars[i]) == target.
func (m *Model) AddWeightedSumEq(vars []Var, weights []int, target Var) {
	vs := make([]Var, 0, len(vars)+1)
	cs := make([]float64, 0, len(vars)+1)
	for i, v := range vars {
		vs = append(vs, v)
		cs = append(cs, float64(weights[i]))
	}
	vs = append(vs, target)
	cs = append(cs, -1)
	m.rows = append(m.rows, linRow{kind: rowEq, vars: vs, coefs: cs, rhs: 0})
}

// AddUpperBound constrains bound >= of.
func (m *Model) AddUpperBound(bound, of Var) {
	m.rows = append(m.rows, linRow{kind: rowLe, vars: []Var{of, bound}, coefs: []float64{1, -1}, rhs: 0})
}

// Minimize sets v as the objective to minimize.
func (m *Model) Minimize(v Var) {
	m.obj = v
	m.hasObj = true
}

func ones(n int) []float64 {
	c := make([]float64, n)
	for i := range c {
		c[i] = 1
	}
	return c
}
