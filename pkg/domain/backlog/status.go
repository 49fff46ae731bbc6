package backlog

import (
	"encoding/json"
	"fmt"
)

// DevStatus represents the development lifecycle status of a story.
type DevStatus string

const (
	StatusOnHold     DevStatus = "on_hold"
	StatusReady      DevStatus = "ready_for_dev"
	StatusInProgress DevStatus = "in_progress"
	StatusBlocked    DevStatus = "blocked"
	StatusCompleted  DevStatus = "completed"
)

// validTransitions defines the allowed status transitions and their events.
// Map: currentStatus -> event -> targetStatus
var validTransitions = map[DevStatus]map[string]DevStatus{
	StatusOnHold: {
		"ready": StatusReady,
	},
	StatusReady: {
		"hold":  StatusOnHold,
		"start": StatusInProgress,
		"block": StatusBlocked,
	},
	StatusInProgress: {
		"complete": StatusCompleted,
		"block":    StatusBlocked,
		"stop":     StatusReady,
	},
	StatusBlocked: {
		"unblock": StatusReady,
	},
	StatusCompleted: {
		"reopen": StatusReady,
	},
}

// AllDevStatuses returns all valid dev statuses.
func AllDevStatuses() []DevStatus {
	return []DevStatus{
		StatusOnHold,
		StatusReady,
		StatusInProgress,
		StatusBlocked,
		StatusCompleted,
	}
}

// IsValid returns true if the status is a valid dev status.
func (s DevStatus) IsValid() bool {
	switch s {
	case StatusOnHold, StatusReady, StatusInProgress, StatusBlocked, StatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s DevStatus) String() string {
	return string(s)
}

// IsForecastable returns true if the story still counts as remaining work.
// Every status except completed is forecastable.
func (s DevStatus) IsForecastable() bool {
	return s != StatusCompleted
}

// IsBlocked returns true if the story is blocked.
func (s DevStatus) IsBlocked() bool {
	return s == StatusBlocked
}

// IsComplete returns true if the story is done.
func (s DevStatus) IsComplete() bool {
	return s == StatusCompleted
}

// CanTransitionWith returns true if the given event can trigger a transition
// from this status.
func (s DevStatus) CanTransitionWith(event string) bool {
	transitions, ok := validTransitions[s]
	if !ok {
		return false
	}
	_, ok = transitions[event]
	return ok
}

// TransitionWith returns the target status for a given event, or an error if
// not allowed.
func (s DevStatus) TransitionWith(event string) (DevStatus, error) {
	transitions, ok := validTransitions[s]
	if !ok {
		return s, fmt.Errorf("no transitions defined for status: %s", s)
	}

	target, ok := transitions[event]
	if !ok {
		return s, fmt.Errorf("event '%s' not allowed from status '%s'", event, s)
	}

	return target, nil
}

// ValidEvents returns all valid events that can be triggered from this status.
func (s DevStatus) ValidEvents() []string {
	transitions, ok := validTransitions[s]
	if !ok {
		return nil
	}

	var events []string
	for event := range transitions {
		events = append(events, event)
	}
	return events
}

// DisplayName returns a human-readable display name for the status.
func (s DevStatus) DisplayName() string {
	switch s {
	case StatusOnHold:
		return "On Hold"
	case StatusReady:
		return "Ready for Dev"
	case StatusInProgress:
		return "In Progress"
	case StatusBlocked:
		return "Blocked"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// ParseDevStatus parses a string into a DevStatus.
func ParseDevStatus(s string) (DevStatus, error) {
	status := DevStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid dev status: %s", s)
	}
	return status, nil
}

// MustParseDevStatus parses a string into a DevStatus, panicking on error.
func MustParseDevStatus(s string) DevStatus {
	status, err := ParseDevStatus(s)
	if err != nil {
		panic(err)
	}
	return status
}

// MarshalJSON implements json.Marshaler interface.
func (s DevStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler interface.
// Accepts empty string as on_hold for backward compatibility.
func (s *DevStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	if str == "" {
		*s = StatusOnHold
		return nil
	}

	status := DevStatus(str)
	if !status.IsValid() {
		return fmt.Errorf("invalid dev status: %s", str)
	}

	*s = status
	return nil
}
