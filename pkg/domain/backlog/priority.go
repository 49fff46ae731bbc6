package backlog

import (
	"encoding/json"
	"fmt"
)

// Priority represents the business priority of a story.
type Priority string

const (
	PriorityNone     Priority = "none"
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// priorityRank defines the ordering of priorities (higher rank = more urgent).
var priorityRank = map[Priority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

// AllPriorities returns all valid priorities, lowest first.
func AllPriorities() []Priority {
	return []Priority{
		PriorityNone,
		PriorityLow,
		PriorityMedium,
		PriorityHigh,
		PriorityCritical,
	}
}

// IsValid returns true if the priority is a recognized value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Rank returns the numeric rank of the priority. Absent or unrecognized
// priorities rank lowest.
func (p Priority) Rank() int {
	if rank, ok := priorityRank[p]; ok {
		return rank
	}
	return 0
}

// Compare compares this priority to another by rank.
// Returns -1 if p < other, 0 if equal, 1 if p > other.
func (p Priority) Compare(other Priority) int {
	switch {
	case p.Rank() < other.Rank():
		return -1
	case p.Rank() > other.Rank():
		return 1
	default:
		return 0
	}
}

// IsHigherThan returns true if this priority outranks the other.
func (p Priority) IsHigherThan(other Priority) bool {
	return p.Compare(other) > 0
}

// IsUrgent returns true for high and critical priorities.
func (p Priority) IsUrgent() bool {
	return p == PriorityHigh || p == PriorityCritical
}

// DisplayName returns a human-readable display name for the priority.
func (p Priority) DisplayName() string {
	switch p {
	case PriorityNone:
		return "None"
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	default:
		return string(p)
	}
}

// ParsePriority parses a string into a Priority.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityNone, nil
	}
	priority := Priority(s)
	if !priority.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return priority, nil
}

// MustParsePriority parses a string into a Priority, panicking on error.
func MustParsePriority(s string) Priority {
	priority, err := ParsePriority(s)
	if err != nil {
		panic(err)
	}
	return priority
}

// MarshalJSON implements json.Marshaler interface.
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// UnmarshalJSON implements json.Unmarshaler interface.
// Empty and unrecognized values degrade to the lowest priority rather
// than failing the whole backlog load.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	priority := Priority(str)
	if !priority.IsValid() {
		*p = PriorityNone
		return nil
	}

	*p = priority
	return nil
}
