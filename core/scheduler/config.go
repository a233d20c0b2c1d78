package scheduler

import (
	"fmt"
	"time"
)

// Mode selects the temporal shape of the model.
type Mode string

const (
	// ModeSingleDay assigns every task to staff for a single working day.
	ModeSingleDay Mode = "single-day"
	// ModeMultiDay spreads tasks across a horizon of days, honoring
	// per-task target dates.
	ModeMultiDay Mode = "multi-day"
)

// Policy controls eligibility when a task location matches no staff.
type Policy string

const (
	// PolicyOpenFallback widens the candidate set to the full roster
	// when no staff location matches, guaranteeing schedulability.
	PolicyOpenFallback Policy = "open-fallback"
	// PolicyStrict rejects the run when a located task has no matching
	// staff.
	PolicyStrict Policy = "strict"
)

// Config defines planning parameters loaded from configuration.
type Config struct {
	Mode        Mode   `json:"mode"`
	Policy      Policy `json:"policy"`
	PaddingDays int    `json:"padding_days"`
	// TimeLimitSeconds bounds the solve; zero selects the per-mode default.
	TimeLimitSeconds int `json:"time_limit_seconds"`
	Workers          int `json:"workers"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Mode == "" {
		c.Mode = ModeSingleDay
	}
	if c.Policy == "" {
		c.Policy = PolicyOpenFallback
	}
	if c.PaddingDays == 0 {
		c.PaddingDays = 7
	}
	if c.Workers == 0 {
		c.Workers = 8
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Mode != ModeSingleDay && c.Mode != ModeMultiDay {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Policy != PolicyOpenFallback && c.Policy != PolicyStrict {
		return fmt.Errorf("unknown eligibility policy %q", c.Policy)
	}
	if c.PaddingDays < 0 {
		return fmt.Errorf("padding_days must not be negative")
	}
	if c.TimeLimitSeconds < 0 {
		return fmt.Errorf("time_limit_seconds must not be negative")
	}
	return nil
}

// TimeLimit returns the configured solve budget, falling back to the
// per-mode default (10s single-day, 20s multi-day).
func (c Config) TimeLimit() time.Duration {
	if c.TimeLimitSeconds > 0 {
		return time.Duration(c.TimeLimitSeconds) * time.Second
	}
	if c.Mode == ModeMultiDay {
		return 20 * time.Second
	}
	return 10 * time.Second
}
