// Package analytics provides velocity estimation and risk analysis for
// backlog forecasting.
package analytics

import (
	"math"
	"sort"

	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
	"github.com/felixgeelhaar/storycast/pkg/domain/schedule"
)

// DefaultVelocity is the points-per-sprint value used when no historical
// data exists, so downstream math never divides by zero.
const DefaultVelocity = 10.0

// DefaultStoriesPerSprint is the assumed sprint size for the fallback
// heuristic that estimates velocity from completed stories when no sprint
// has been completed yet.
const DefaultStoriesPerSprint = 5

// EstimateVelocity derives points completed per sprint. A configured
// override wins outright; otherwise completed sprints are averaged; failing
// that, completed stories feed a rough heuristic; failing that, the default.
func EstimateVelocity(stories []backlog.Story, sprints []backlog.Sprint, cfg schedule.Config) float64 {
	if v, ok := cfg.Velocity(); ok {
		return v
	}

	velocities := SprintVelocities(stories, sprints)
	if len(velocities) > 0 {
		sum := 0.0
		for _, v := range velocities {
			sum += v
		}
		return sum / float64(len(velocities))
	}

	// No completed sprint yet: estimate from completed stories directly,
	// assuming DefaultStoriesPerSprint stories per sprint.
	completedPoints := 0
	completedCount := 0
	for i := range stories {
		if stories[i].Status.IsComplete() {
			completedPoints += stories[i].Points.Value()
			completedCount++
		}
	}
	if completedCount > 0 {
		avgPerStory := float64(completedPoints) / float64(completedCount)
		return avgPerStory * DefaultStoriesPerSprint
	}

	return DefaultVelocity
}

// SprintVelocities returns the points completed in each completed sprint,
// ordered by sprint start date for stable variance math.
func SprintVelocities(stories []backlog.Story, sprints []backlog.Sprint) []float64 {
	completed := backlog.CompletedSprints(sprints)
	if len(completed) == 0 {
		return nil
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].StartDate.Before(completed[j].StartDate)
	})

	velocities := make([]float64, len(completed))
	for i, sprint := range completed {
		points := 0
		for j := range stories {
			story := &stories[j]
			if story.SprintID == sprint.ID && story.Status.IsComplete() {
				points += story.Points.Value()
			}
		}
		velocities[i] = float64(points)
	}
	return velocities
}

// VelocityStats holds a statistical summary of sprint velocities.
type VelocityStats struct {
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Samples int     `json:"samples"`
}

// Variability returns the coefficient of variation (StdDev/Mean).
func (vs VelocityStats) Variability() float64 {
	if vs.Mean == 0 {
		return 0
	}
	return vs.StdDev / vs.Mean
}

// IsConsistent returns true if velocity is relatively stable.
func (vs VelocityStats) IsConsistent() bool {
	return vs.Variability() < 0.3
}

// Stats computes summary statistics over a velocity series.
func Stats(values []float64) VelocityStats {
	if len(values) == 0 {
		return VelocityStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	var variance float64
	for _, v := range sorted {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(sorted))

	return VelocityStats{
		Mean:    mean,
		Median:  median,
		StdDev:  math.Sqrt(variance),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Samples: len(sorted),
	}
}
