package model

import "math"

// Staff represents one roster member able to perform repair tasks.
type Staff struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"` // free text, may be empty
	Capacity float64 `json:"capacity"` // tasks per day
}

// DailyCapacity returns the capacity rounded to the nearest whole task,
// the value used by the constraint model.
func (s Staff) DailyCapacity() int {
	c := int(math.Round(s.Capacity))
	if c < 0 {
		return 0
	}
	return c
}
