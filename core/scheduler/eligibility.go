package scheduler

import (
	"strings"

	"github.com/inventree-tools/crewplan/core/model"
)

// eligibleStaff returns the indices of staff permitted to perform the
// task. A task without a location is open to the whole roster; otherwise
// staff match when their location contains the task location as a
// case-insensitive substring. Under the open-fallback policy an empty
// match widens to the full roster so the model stays constructible; the
// strict policy turns it into a NoEligibleStaffError.
func eligibleStaff(t model.Task, staff []model.Staff, policy Policy) ([]int, error) {
	all := make([]int, len(staff))
	for i := range staff {
		all[i] = i
	}
	if t.Location == "" {
		return all, nil
	}
	want := strings.ToLower(t.Location)
	var matched []int
	for i, s := range staff {
		if s.Location != "" && strings.Contains(strings.ToLower(s.Location), want) {
			matched = append(matched, i)
		}
	}
	if len(matched) > 0 {
		return matched, nil
	}
	if policy == PolicyStrict {
		return nil, &NoEligibleStaffError{Machine: t.Machine, Part: t.Part, Location: t.Location}
	}
	return all, nil
}
