package model

import "time"

// DateLayout is the wire format for task target dates and assigned dates.
const DateLayout = "2006-01-02"

// Task represents one missing part needed on one machine.
// Flattening a machine to parts mapping yields one Task per part.
type Task struct {
	Machine    string `json:"machine"`
	Order      string `json:"order"`
	Part       string `json:"part"`
	TargetDate string `json:"target_date,omitempty"` // ISO YYYY-MM-DD, optional
	Location   string `json:"location,omitempty"`
}

// Deadline parses the target date. The second return value reports
// whether the task carries a valid deadline at all; an unparsable or
// empty date is treated as no deadline, matching the scheduler's
// permissive handling of legacy mappings.
func (t Task) Deadline() (time.Time, bool) {
	if t.TargetDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.TargetDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
