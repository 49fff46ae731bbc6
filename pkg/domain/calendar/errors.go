package calendar

import "errors"

// Domain errors for the working-hours calendar.
var (
	// ErrInvalidConfig indicates the working-hours configuration cannot
	// produce a schedule (e.g. no enabled weekday).
	ErrInvalidConfig = errors.New("invalid schedule configuration")

	// ErrIterationLimit indicates a calendar walk exceeded the safety cap.
	// This is the defense-in-depth backstop; configuration validation should
	// catch unschedulable configs before any walk begins.
	ErrIterationLimit = errors.New("calendar iteration limit exceeded")

	// ErrWindowMismatch indicates an instant that should sit inside a
	// working window did not resolve to one. It signals an internal
	// inconsistency in window resolution, never a caller mistake.
	ErrWindowMismatch = errors.New("working instant has no working window")
)

// InvalidConfigError provides details about why a configuration is unusable.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "invalid schedule configuration: " + e.Reason
}

// Is allows errors.Is to work with InvalidConfigError.
func (e *InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
