package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	simplexTol  = 1e-7
	integralTol = 1e-6

	defaultWorkers = 8
)

// BranchAndBound solves integer programs by branching on fractional
// variables of the LP relaxation. The relaxation at every node is solved
// with gonum's simplex implementation.
type BranchAndBound struct{}

// NewBranchAndBound returns the default solver backend.
func NewBranchAndBound() *BranchAndBound { return &BranchAndBound{} }

type node struct {
	lo, hi []float64
}

type search struct {
	m *Model

	mu       sync.Mutex
	cond     *sync.Cond
	stack    []node
	inflight int
	stopped  bool
	timedOut bool

	hasIncumbent bool
	incumbent    []float64
	incumbentObj float64

	lastErr error
}

// lpSolve points to the LP relaxation solver. Tests override it to
// simulate backend failures.
var lpSolve = solveRelaxation

// Solve runs the branch-and-bound search within the time budget.
func (b *BranchAndBound) Solve(ctx context.Context, m *Model, p Params) (Solution, error) {
	if m.NumVars() == 0 {
		return Solution{Status: Optimal}, nil
	}
	workers := p.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	s := &search{m: m}
	s.cond = sync.NewCond(&s.mu)
	s.stack = append(s.stack, node{lo: append([]float64(nil), m.lo...), hi: append([]float64(nil), m.hi...)})

	if p.TimeLimit > 0 {
		timer := time.AfterFunc(p.TimeLimit, func() { s.halt(true) })
		defer timer.Stop()
	}
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			s.halt(true)
		case <-watchDone:
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.run()
		}()
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.hasIncumbent && !s.timedOut:
		return s.solution(Optimal), nil
	case s.hasIncumbent:
		return s.solution(Feasible), nil
	case s.timedOut:
		return Solution{Status: Unknown}, nil
	default:
		if s.lastErr != nil && !errors.Is(s.lastErr, lp.ErrInfeasible) {
			return Solution{Status: Unknown}, fmt.Errorf("lp relaxation: %w", s.lastErr)
		}
		return Solution{Status: Infeasible}, nil
	}
}

func (s *search) solution(st Status) Solution {
	vals := make([]int, len(s.incumbent))
	for i, v := range s.incumbent {
		vals[i] = int(math.Round(v))
	}
	return Solution{Status: st, Objective: int(math.Round(s.incumbentObj)), values: vals}
}

func (s *search) halt(timedOut bool) {
	s.mu.Lock()
	s.stopped = true
	if timedOut {
		s.timedOut = true
	}
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *search) run() {
	for {
		s.mu.Lock()
		for len(s.stack) == 0 && s.inflight > 0 && !s.stopped {
			s.cond.Wait()
		}
		if s.stopped || len(s.stack) == 0 {
			s.mu.Unlock()
			return
		}
		nd := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		s.inflight++
		s.mu.Unlock()

		children := s.process(nd)

		s.mu.Lock()
		s.inflight--
		s.stack = append(s.stack, children...)
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

// process solves one node's relaxation and returns child nodes, if any.
func (s *search) process(nd node) []node {
	x, err := lpSolve(s.m, nd.lo, nd.hi)
	if err != nil {
		if !errors.Is(err, lp.ErrInfeasible) {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		}
		return nil
	}

	relax := 0.0
	if s.m.hasObj {
		relax = x[s.m.obj]
	}
	s.mu.Lock()
	if s.hasIncumbent && math.Ceil(relax-integralTol) >= s.incumbentObj {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	branch := -1
	worst := integralTol
	for i, v := range x {
		if frac := math.Abs(v - math.Round(v)); frac > worst {
			worst = frac
			branch = i
		}
	}
	if branch < 0 {
		s.record(x, relax)
		return nil
	}

	down := node{lo: append([]float64(nil), nd.lo...), hi: append([]float64(nil), nd.hi...)}
	up := node{lo: append([]float64(nil), nd.lo...), hi: append([]float64(nil), nd.hi...)}
	down.hi[branch] = math.Floor(x[branch])
	up.lo[branch] = math.Ceil(x[branch])
	// down last so the LIFO stack explores the rounded-down child first
	return []node{up, down}
}

// record installs an integral solution as the incumbent if it improves
// the objective. Without an objective any solution ends the search.
func (s *search) record(x []float64, obj float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasIncumbent && obj >= s.incumbentObj {
		return
	}
	s.hasIncumbent = true
	s.incumbent = append([]float64(nil), x...)
	s.incumbentObj = obj
	if !s.m.hasObj {
		s.stopped = true
		s.cond.Broadcast()
	}
}

// solveRelaxation solves the LP relaxation of m under the node bounds
// using gonum's Convert and Simplex, and returns the original-variable
// values.
func solveRelaxation(m *Model, lo, hi []float64) ([]float64, error) {
	n := m.NumVars()
	var nLe, nEq int
	for _, r := range m.rows {
		if r.kind == rowLe {
			nLe++
		} else {
			nEq++
		}
	}

	g := mat.NewDense(nLe+2*n, n, nil)
	h := make([]float64, nLe+2*n)
	var aM mat.Matrix
	var bV []float64
	if nEq > 0 {
		a := mat.NewDense(nEq, n, nil)
		bV = make([]float64, nEq)
		ei := 0
		for _, r := range m.rows {
			if r.kind != rowEq {
				continue
			}
			for j, v := range r.vars {
				a.Set(ei, int(v), a.At(ei, int(v))+r.coefs[j])
			}
			bV[ei] = r.rhs
			ei++
		}
		aM = a
	}
	li := 0
	for _, r := range m.rows {
		if r.kind != rowLe {
			continue
		}
		for j, v := range r.vars {
			g.Set(li, int(v), g.At(li, int(v))+r.coefs[j])
		}
		h[li] = r.rhs
		li++
	}
	for i := 0; i < n; i++ {
		g.Set(li, i, 1)
		h[li] = hi[i]
		li++
		g.Set(li, i, -1)
		h[li] = -lo[i]
		li++
	}

	c := make([]float64, n)
	if m.hasObj {
		c[m.obj] = 1
	}

	cStd, aStd, bStd := lp.Convert(c, g, h, aM, bV)
	_, sol, err := lp.Simplex(cStd, aStd, bStd, simplexTol, nil)
	if err != nil {
		return nil, err
	}
	// Convert splits each free variable into a positive and a negative
	// part; recover x = x+ - x-.
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = sol[i] - sol[n+i]
	}
	return x, nil
}
