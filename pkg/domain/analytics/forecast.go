package analytics

import (
	"time"

	"github.com/felixgeelhaar/storycast/pkg/domain/schedule"
)

// ForecastResult is the composed projection for the current backlog state.
// It is recomputed from scratch on every call and never persisted; for fixed
// inputs and the same anchor time it is identical across calls.
type ForecastResult struct {
	ProjectedCompletionDate time.Time `json:"projected_completion_date"`

	TotalRemainingHours  float64 `json:"total_remaining_hours"`
	TotalRemainingDays   float64 `json:"total_remaining_days"`
	TotalRemainingPoints int     `json:"total_remaining_points"`

	AverageVelocity float64   `json:"average_velocity"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskScore       float64   `json:"risk_score"`

	Bottlenecks     []string `json:"bottlenecks"`
	Recommendations []string `json:"recommendations"`

	StorySchedules []schedule.StorySchedule `json:"story_schedules"`

	// GeneratedAt is the anchor instant the forecast was computed from.
	GeneratedAt time.Time `json:"generated_at"`
}

// RemainingStories returns the number of scheduled stories.
func (f *ForecastResult) RemainingStories() int {
	return len(f.StorySchedules)
}

// IsAtRisk returns true for medium or high overall risk.
func (f *ForecastResult) IsAtRisk() bool {
	return f.RiskLevel != RiskLow
}

// SprintsToCompletion estimates how many sprints the remaining points
// represent at the average velocity.
func (f *ForecastResult) SprintsToCompletion() float64 {
	if f.AverageVelocity <= 0 {
		return 0
	}
	return float64(f.TotalRemainingPoints) / f.AverageVelocity
}
