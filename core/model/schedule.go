package model

// Assignment binds one task to exactly one staff member and, in
// multi-day mode, to one day of the horizon.
type Assignment struct {
	Task  Task   `json:"task"`
	Staff Staff  `json:"staff"`
	Day   int    `json:"day"`
	Date  string `json:"date,omitempty"` // ISO date, empty in single-day mode
}

// Schedule is the complete result of one solver invocation: exactly one
// assignment per input task, in input task order.
type Schedule []Assignment
