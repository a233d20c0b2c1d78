package scheduler

import (
	"errors"
	"fmt"
)

// ErrNoBackend indicates the scheduler was constructed without a solver
// backend. Fatal at startup, never retried.
var ErrNoBackend = errors.New("scheduler: no solver backend configured")

// ErrInfeasible is the sentinel matched by errors.Is against
// InfeasibleError values.
var ErrInfeasible = errors.New("scheduler: no feasible schedule")

// InfeasibleError reports that the solver found no feasible assignment
// within the time budget. It is not retryable without changing inputs:
// more capacity, relaxed deadlines, or wider eligibility.
type InfeasibleError struct {
	Tasks   int
	Staff   int
	Horizon int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("no feasible schedule for %d tasks over %d staff and %d day(s)",
		e.Tasks, e.Staff, e.Horizon)
}

func (e *InfeasibleError) Is(target error) bool { return target == ErrInfeasible }

// NoEligibleStaffError reports a located task with zero matching staff
// under the strict eligibility policy.
type NoEligibleStaffError struct {
	Machine  string
	Part     string
	Location string
}

func (e *NoEligibleStaffError) Error() string {
	return fmt.Sprintf("no staff matches location %q for part %q on machine %q",
		e.Location, e.Part, e.Machine)
}
