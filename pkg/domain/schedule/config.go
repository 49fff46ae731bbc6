// Package schedule turns a backlog into a deterministic working-time
// schedule: ordering stories and walking them through the calendar.
package schedule

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/storycast/pkg/domain/calendar"
)

// Bounds for the hours-per-point conversion factor.
const (
	MinHoursPerPoint = 0.5
	MaxHoursPerPoint = 40
)

// holidayFormat is the civil-date form used in config files.
const holidayFormat = "2006-01-02"

// Config holds everything a forecast computation needs besides the backlog
// itself. It is constructed once from persisted settings and read-only for
// the duration of a single forecast.
type Config struct {
	// HoursPerPoint converts story points into working hours.
	HoursPerPoint float64 `yaml:"hours_per_point" json:"hours_per_point"`

	// ParallelWorkFactor scales effective throughput to model concurrent
	// developers. It divides each story's hours; it does not add lanes.
	ParallelWorkFactor float64 `yaml:"parallel_work_factor" json:"parallel_work_factor"`

	// Week is the per-weekday working window configuration, Monday first.
	Week calendar.WorkingHours `yaml:"working_hours" json:"working_hours"`

	// Holidays are civil dates (YYYY-MM-DD) excluded entirely from scheduling.
	Holidays []string `yaml:"holidays,omitempty" json:"holidays,omitempty"`

	// VelocityOverride short-circuits velocity estimation when set.
	VelocityOverride *float64 `yaml:"velocity_override,omitempty" json:"velocity_override,omitempty"`

	// ConfidenceLevel is carried for the analyzer's reporting.
	ConfidenceLevel float64 `yaml:"confidence_level" json:"confidence_level"`

	// AccountForBlockers includes blocked-story pressure in risk scoring.
	AccountForBlockers bool `yaml:"account_for_blockers" json:"account_for_blockers"`

	// UseActualDates prefers recorded story dates over projections in reports.
	UseActualDates bool `yaml:"use_actual_dates" json:"use_actual_dates"`
}

// DefaultConfig returns the out-of-the-box forecast configuration:
// Monday-Friday 09:00-17:00, four hours per point, one lane.
func DefaultConfig() Config {
	return Config{
		HoursPerPoint:      4,
		ParallelWorkFactor: 1,
		Week:               calendar.DefaultWorkingHours(),
		ConfidenceLevel:    0.85,
		AccountForBlockers: true,
	}
}

// Validate checks the configuration before any scheduling walk begins.
func (c Config) Validate() error {
	if c.HoursPerPoint < MinHoursPerPoint || c.HoursPerPoint > MaxHoursPerPoint {
		return &calendar.InvalidConfigError{
			Reason: fmt.Sprintf("hours per point must be between %g and %g, got %g", float64(MinHoursPerPoint), float64(MaxHoursPerPoint), c.HoursPerPoint),
		}
	}
	if c.ParallelWorkFactor < 0 {
		return &calendar.InvalidConfigError{
			Reason: fmt.Sprintf("parallel work factor must not be negative, got %g", c.ParallelWorkFactor),
		}
	}
	if err := c.Week.Validate(); err != nil {
		return err
	}
	if _, err := c.holidayDates(); err != nil {
		return err
	}
	return nil
}

// Calendar builds the validated working calendar for this configuration.
func (c Config) Calendar() (*calendar.Calendar, error) {
	holidays, err := c.holidayDates()
	if err != nil {
		return nil, err
	}
	return calendar.New(c.Week, holidays)
}

// Velocity returns the override value, or ok=false when estimation applies.
func (c Config) Velocity() (float64, bool) {
	if c.VelocityOverride == nil {
		return 0, false
	}
	return *c.VelocityOverride, true
}

// parallelFactor returns the throughput divisor; non-positive values fall
// back to a single lane.
func (c Config) parallelFactor() float64 {
	if c.ParallelWorkFactor <= 0 {
		return 1
	}
	return c.ParallelWorkFactor
}

func (c Config) holidayDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		t, err := time.Parse(holidayFormat, h)
		if err != nil {
			return nil, &calendar.InvalidConfigError{Reason: fmt.Sprintf("invalid holiday date %q (expected YYYY-MM-DD)", h)}
		}
		dates = append(dates, t)
	}
	return dates, nil
}
