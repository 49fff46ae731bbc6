package calendar

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ClockTime is a time of day in minutes since midnight. It serializes as
// "HH:MM" in both JSON and YAML.
type ClockTime int

// minutesPerDay bounds a ClockTime; 24:00 is a valid window end.
const minutesPerDay = 24 * 60

// NewClockTime builds a ClockTime from an hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// IsValid returns true if the time falls within a single day.
func (c ClockTime) IsValid() bool {
	return c >= 0 && c <= minutesPerDay
}

// Hour returns the hour component.
func (c ClockTime) Hour() int {
	return int(c) / 60
}

// Minute returns the minute component.
func (c ClockTime) Minute() int {
	return int(c) % 60
}

// Duration returns the offset from midnight.
func (c ClockTime) Duration() time.Duration {
	return time.Duration(c) * time.Minute
}

// String returns the "HH:MM" form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// ParseClock parses a "HH:MM" string into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	c := NewClockTime(hour, minute)
	if minute < 0 || minute > 59 || !c.IsValid() {
		return 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	return c, nil
}

// MustParseClock parses a clock string, panicking on error. Use only in tests.
func MustParseClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalJSON implements json.Marshaler interface.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler interface.
func (c ClockTime) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler interface.
func (c *ClockTime) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
