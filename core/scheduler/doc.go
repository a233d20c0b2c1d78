// Package scheduler assigns maintenance tasks (one missing part on one
// machine) to roster staff. It computes the day horizon from task target
// dates, resolves location eligibility, builds a constraint model in
// single-day or multi-day shape, attaches a load-balancing or
// earliest-completion objective, and decodes the solved assignment into
// a schedule.
package scheduler
