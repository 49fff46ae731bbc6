package backlog

import (
	"encoding/json"
	"fmt"
	"time"
)

// SprintStatus represents the lifecycle status of a sprint.
type SprintStatus string

const (
	SprintPlanned   SprintStatus = "planned"
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
)

// IsValid returns true if the status is a recognized sprint status.
func (s SprintStatus) IsValid() bool {
	switch s {
	case SprintPlanned, SprintActive, SprintCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sprint status.
func (s SprintStatus) String() string {
	return string(s)
}

// ParseSprintStatus parses a string into a SprintStatus.
func ParseSprintStatus(s string) (SprintStatus, error) {
	status := SprintStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid sprint status: %s", s)
	}
	return status, nil
}

// MarshalJSON implements json.Marshaler interface.
func (s SprintStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (s *SprintStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*s = SprintPlanned
		return nil
	}
	status := SprintStatus(str)
	if !status.IsValid() {
		return fmt.Errorf("invalid sprint status: %s", str)
	}
	*s = status
	return nil
}

// Sprint is a time-boxed iteration used for velocity history.
type Sprint struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	StartDate time.Time    `json:"start_date" yaml:"start_date"`
	EndDate   time.Time    `json:"end_date" yaml:"end_date"`
	Status    SprintStatus `json:"status" yaml:"status"`
	Capacity  float64      `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// IsCompleted returns true if the sprint has finished.
func (s *Sprint) IsCompleted() bool {
	return s.Status == SprintCompleted
}

// CompletedSprints filters sprints down to completed ones, ordered as given.
func CompletedSprints(sprints []Sprint) []Sprint {
	result := make([]Sprint, 0, len(sprints))
	for _, s := range sprints {
		if s.IsCompleted() {
			result = append(result, s)
		}
	}
	return result
}
