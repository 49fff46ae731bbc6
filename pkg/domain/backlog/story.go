// Package backlog holds the user story domain model: stories, sprints,
// point estimates, priorities and the development status lifecycle.
package backlog

import "time"

// UnassignedDeveloper is the display name for stories without an assignee.
const UnassignedDeveloper = "Unassigned"

// Story is one backlog entry.
type Story struct {
	ID        string    `json:"id" yaml:"id"`
	Number    int       `json:"number" yaml:"number"` // Display ordinal, not guaranteed unique
	Text      string    `json:"text" yaml:"text"`
	Points    Points    `json:"points" yaml:"points"`
	Priority  Priority  `json:"priority" yaml:"priority"`
	Status    DevStatus `json:"status" yaml:"status"`
	Assignee  string    `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	SprintID  string    `json:"sprint_id,omitempty" yaml:"sprint_id,omitempty"`
	DependsOn []string  `json:"depends_on,omitempty" yaml:"depends_on,omitempty"` // IDs of stories this story depends on

	StartDate        *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EstimatedEndDate *time.Time `json:"estimated_end_date,omitempty" yaml:"estimated_end_date,omitempty"`
	ActualEndDate    *time.Time `json:"actual_end_date,omitempty" yaml:"actual_end_date,omitempty"`
}

// IsForecastable returns true if the story still counts as remaining work.
func (s *Story) IsForecastable() bool {
	return s.Status.IsForecastable()
}

// Developer returns the assignee name, or UnassignedDeveloper if empty.
func (s *Story) Developer() string {
	if s.Assignee == "" {
		return UnassignedDeveloper
	}
	return s.Assignee
}

// IsAssigned returns true if the story has an assignee.
func (s *Story) IsAssigned() bool {
	return s.Assignee != ""
}

// MarkStarted stamps the start date when the story first enters
// in-progress. Subsequent starts keep the original date.
func (s *Story) MarkStarted(now time.Time) {
	if s.StartDate == nil {
		t := now
		s.StartDate = &t
	}
}

// MarkCompleted stamps the actual end date when the story first completes.
func (s *Story) MarkCompleted(now time.Time) {
	if s.ActualEndDate == nil {
		t := now
		s.ActualEndDate = &t
	}
}

// ApplyEvent transitions the story's status via the lifecycle event and
// stamps the status-driven dates.
func (s *Story) ApplyEvent(event string, now time.Time) error {
	target, err := s.Status.TransitionWith(event)
	if err != nil {
		return err
	}

	s.Status = target
	switch target {
	case StatusInProgress:
		s.MarkStarted(now)
	case StatusCompleted:
		s.MarkCompleted(now)
	}
	return nil
}

// Forecastable filters stories down to those with remaining work.
func Forecastable(stories []Story) []Story {
	result := make([]Story, 0, len(stories))
	for _, s := range stories {
		if s.IsForecastable() {
			result = append(result, s)
		}
	}
	return result
}

// CountByStatus returns the count of stories with the given status.
func CountByStatus(stories []Story, status DevStatus) int {
	count := 0
	for i := range stories {
		if stories[i].Status == status {
			count++
		}
	}
	return count
}

// TotalPoints sums the known point values of the given stories.
// Unestimated stories contribute nothing.
func TotalPoints(stories []Story) int {
	total := 0
	for i := range stories {
		total += stories[i].Points.Value()
	}
	return total
}
