// Package calendar models working hours: per-weekday windows, holidays,
// and the arithmetic for walking a schedule through working time.
package calendar

import (
	"fmt"
	"time"
)

// maxWalkDays caps every calendar walk at roughly ten years of days.
// Construction-time validation should make the cap unreachable.
const maxWalkDays = 3700

// dateFormat keys the holiday set by civil date.
const dateFormat = "2006-01-02"

// floatTolerance absorbs floating-point drift in fractional-hour arithmetic.
const floatTolerance = 1e-9

// DayWindow is the working window for one weekday.
type DayWindow struct {
	Enabled bool      `json:"enabled" yaml:"enabled"`
	Start   ClockTime `json:"start" yaml:"start"`
	End     ClockTime `json:"end" yaml:"end"`
}

// Hours returns the length of the window in hours.
func (d DayWindow) Hours() float64 {
	if !d.Enabled {
		return 0
	}
	return (d.End - d.Start).Duration().Hours()
}

// WorkingHours holds one window per weekday, Monday first.
type WorkingHours [7]DayWindow

// weekdayNames matches the WorkingHours index order.
var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DefaultWorkingHours returns a Monday-Friday 09:00-17:00 week.
func DefaultWorkingHours() WorkingHours {
	var week WorkingHours
	for i := 0; i < 5; i++ {
		week[i] = DayWindow{
			Enabled: true,
			Start:   NewClockTime(9, 0),
			End:     NewClockTime(17, 0),
		}
	}
	return week
}

// EnabledDays returns the number of enabled weekdays.
func (w WorkingHours) EnabledDays() int {
	count := 0
	for _, d := range w {
		if d.Enabled {
			count++
		}
	}
	return count
}

// Validate checks that the week can carry a schedule: at least one enabled
// day, and every enabled day has a positive window within the day.
func (w WorkingHours) Validate() error {
	if w.EnabledDays() == 0 {
		return &InvalidConfigError{Reason: "no working day is enabled"}
	}
	for i, d := range w {
		if !d.Enabled {
			continue
		}
		if !d.Start.IsValid() || !d.End.IsValid() {
			return &InvalidConfigError{Reason: fmt.Sprintf("%s has an out-of-range working window", weekdayNames[i])}
		}
		if d.End <= d.Start {
			return &InvalidConfigError{Reason: fmt.Sprintf("%s working window must end after it starts", weekdayNames[i])}
		}
	}
	return nil
}

// AverageDailyHours returns the mean window length across enabled days.
func (w WorkingHours) AverageDailyHours() float64 {
	total := 0.0
	count := 0
	for _, d := range w {
		if d.Enabled {
			total += d.Hours()
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// Calendar resolves working instants against a validated week and holiday set.
type Calendar struct {
	week     WorkingHours
	holidays map[string]struct{}
}

// New builds a Calendar, validating the week up front so the walk functions
// cannot loop on an unschedulable configuration.
func New(week WorkingHours, holidays []time.Time) (*Calendar, error) {
	if err := week.Validate(); err != nil {
		return nil, err
	}

	hset := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		hset[h.Format(dateFormat)] = struct{}{}
	}

	return &Calendar{week: week, holidays: hset}, nil
}

// Week returns the calendar's working-hours configuration.
func (c *Calendar) Week() WorkingHours {
	return c.week
}

// AverageDailyHours returns the mean enabled window length.
func (c *Calendar) AverageDailyHours() float64 {
	return c.week.AverageDailyHours()
}

// IsHoliday returns true if the instant falls on a holiday date.
// A holiday fully blocks its day regardless of working windows.
func (c *Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.holidays[t.Format(dateFormat)]
	return ok
}

// dayIndex maps time.Weekday (Sunday=0) onto the Monday-first week array.
func dayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// dayStart returns midnight of the instant's day in its location.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// window returns the working window bounds for the instant's day.
// ok is false on holidays and disabled weekdays.
func (c *Calendar) window(t time.Time) (start, end time.Time, ok bool) {
	if c.IsHoliday(t) {
		return time.Time{}, time.Time{}, false
	}
	d := c.week[dayIndex(t.Weekday())]
	if !d.Enabled {
		return time.Time{}, time.Time{}, false
	}
	midnight := dayStart(t)
	return midnight.Add(d.Start.Duration()), midnight.Add(d.End.Duration()), true
}

// IsWorkingInstant returns true if t falls inside an enabled weekday's
// [start, end) window and is not a holiday.
func (c *Calendar) IsWorkingInstant(t time.Time) bool {
	start, end, ok := c.window(t)
	if !ok {
		return false
	}
	return !t.Before(start) && t.Before(end)
}

// NextWorkingInstant returns the smallest working instant >= t. If t is
// already a working instant it is returned unchanged, so the operation is
// idempotent at the instant level.
func (c *Calendar) NextWorkingInstant(t time.Time) (time.Time, error) {
	cur := t
	for i := 0; i < maxWalkDays; i++ {
		if start, end, ok := c.window(cur); ok {
			if cur.Before(start) {
				return start, nil
			}
			if cur.Before(end) {
				return cur, nil
			}
		}
		cur = dayStart(cur).AddDate(0, 0, 1)
	}
	return time.Time{}, ErrIterationLimit
}

// AdvanceByWorkingHours consumes hours of working time starting at start,
// skipping non-working spans entirely. A span that exactly exhausts a day's
// window ends at the next day's window start, keeping schedule boundaries on
// working instants.
func (c *Calendar) AdvanceByWorkingHours(start time.Time, hours float64) (time.Time, error) {
	cur, err := c.NextWorkingInstant(start)
	if err != nil {
		return time.Time{}, err
	}
	if hours <= 0 {
		return cur, nil
	}

	remaining := hours
	for i := 0; i < maxWalkDays; i++ {
		_, end, ok := c.window(cur)
		if !ok {
			// cur always sits inside a window here
			return time.Time{}, ErrWindowMismatch
		}

		available := end.Sub(cur).Hours()
		if remaining < available-floatTolerance {
			return cur.Add(time.Duration(remaining * float64(time.Hour))), nil
		}

		remaining -= available
		if remaining < 0 {
			remaining = 0
		}

		cur, err = c.NextWorkingInstant(dayStart(cur).AddDate(0, 0, 1))
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Time{}, ErrIterationLimit
}

// WorkingHoursBetween sums the working time between two instants. The final
// (possibly partial) day contributes its actually-worked fraction rather than
// rounding to a whole day.
func (c *Calendar) WorkingHoursBetween(a, b time.Time) (float64, error) {
	if !b.After(a) {
		return 0, nil
	}

	total := 0.0
	cur, err := c.NextWorkingInstant(a)
	if err != nil {
		return 0, err
	}

	for i := 0; i < maxWalkDays; i++ {
		if !cur.Before(b) {
			return total, nil
		}

		_, end, ok := c.window(cur)
		if !ok {
			return 0, ErrWindowMismatch
		}

		segEnd := end
		if b.Before(end) {
			segEnd = b
		}
		total += segEnd.Sub(cur).Hours()

		if !segEnd.Before(b) {
			return total, nil
		}

		cur, err = c.NextWorkingInstant(dayStart(cur).AddDate(0, 0, 1))
		if err != nil {
			return 0, err
		}
	}
	return 0, ErrIterationLimit
}

// WorkingDaysBetween converts the working hours between two instants into
// fractional working days using the average enabled window length.
func (c *Calendar) WorkingDaysBetween(a, b time.Time) (float64, error) {
	hours, err := c.WorkingHoursBetween(a, b)
	if err != nil {
		return 0, err
	}
	daily := c.AverageDailyHours()
	if daily == 0 {
		return 0, nil
	}
	return hours / daily, nil
}
