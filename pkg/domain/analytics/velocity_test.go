package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
	"github.com/felixgeelhaar/storycast/pkg/domain/schedule"
)

func completedSprint(id string, start time.Time) backlog.Sprint {
	return backlog.Sprint{
		ID:        id,
		Name:      id,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 14),
		Status:    backlog.SprintCompleted,
	}
}

func TestEstimateVelocity_OverrideWins(t *testing.T) {
	cfg := schedule.DefaultConfig()
	override := 15.0
	cfg.VelocityOverride = &override

	sprints := []backlog.Sprint{completedSprint("s1", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))}
	stories := []backlog.Story{{SprintID: "s1", Status: backlog.StatusCompleted, Points: backlog.Points21}}

	if got := EstimateVelocity(stories, sprints, cfg); got != 15.0 {
		t.Errorf("EstimateVelocity() = %v, want the 15.0 override", got)
	}
}

func TestEstimateVelocity_AveragesCompletedSprints(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	sprints := []backlog.Sprint{
		completedSprint("s1", start),
		completedSprint("s2", start.AddDate(0, 0, 14)),
		{ID: "s3", StartDate: start.AddDate(0, 0, 28), Status: backlog.SprintActive},
	}
	stories := []backlog.Story{
		{SprintID: "s1", Status: backlog.StatusCompleted, Points: backlog.Points8},
		{SprintID: "s1", Status: backlog.StatusCompleted, Points: backlog.Points5},
		{SprintID: "s2", Status: backlog.StatusCompleted, Points: backlog.Points21},
		{SprintID: "s2", Status: backlog.StatusInProgress, Points: backlog.Points13}, // not completed, excluded
		{SprintID: "s3", Status: backlog.StatusCompleted, Points: backlog.Points8},   // active sprint, excluded
	}

	// (13 + 21) / 2 sprints
	want := 17.0
	if got := EstimateVelocity(stories, sprints, schedule.DefaultConfig()); got != want {
		t.Errorf("EstimateVelocity() = %v, want %v", got, want)
	}
}

func TestEstimateVelocity_FallsBackToCompletedStories(t *testing.T) {
	stories := []backlog.Story{
		{Status: backlog.StatusCompleted, Points: backlog.Points2},
		{Status: backlog.StatusCompleted, Points: backlog.Points8},
		{Status: backlog.StatusReady, Points: backlog.Points13},
	}

	// Average of 5 points per completed story, times the assumed sprint size.
	want := 5.0 * DefaultStoriesPerSprint
	if got := EstimateVelocity(stories, nil, schedule.DefaultConfig()); got != want {
		t.Errorf("EstimateVelocity() = %v, want %v", got, want)
	}
}

func TestEstimateVelocity_DefaultWithNoHistory(t *testing.T) {
	stories := []backlog.Story{{Status: backlog.StatusReady, Points: backlog.Points8}}
	if got := EstimateVelocity(stories, nil, schedule.DefaultConfig()); got != DefaultVelocity {
		t.Errorf("EstimateVelocity() = %v, want %v", got, DefaultVelocity)
	}
}

func TestSprintVelocities_OrderedByStartDate(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	sprints := []backlog.Sprint{
		completedSprint("later", start.AddDate(0, 0, 14)),
		completedSprint("earlier", start),
	}
	stories := []backlog.Story{
		{SprintID: "earlier", Status: backlog.StatusCompleted, Points: backlog.Points5},
		{SprintID: "later", Status: backlog.StatusCompleted, Points: backlog.Points13},
	}

	got := SprintVelocities(stories, sprints)
	want := []float64{5, 13}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("SprintVelocities() = %v, want %v", got, want)
	}
}

func TestSprintVelocities_NoCompletedSprints(t *testing.T) {
	sprints := []backlog.Sprint{{ID: "s1", Status: backlog.SprintActive}}
	if got := SprintVelocities(nil, sprints); got != nil {
		t.Errorf("SprintVelocities() = %v, want nil", got)
	}
}

func TestStats(t *testing.T) {
	got := Stats([]float64{10, 20, 30, 40})

	if got.Mean != 25 {
		t.Errorf("Mean = %v, want 25", got.Mean)
	}
	if got.Median != 25 {
		t.Errorf("Median = %v, want 25", got.Median)
	}
	if got.Min != 10 || got.Max != 40 {
		t.Errorf("Min/Max = %v/%v, want 10/40", got.Min, got.Max)
	}
	if got.Samples != 4 {
		t.Errorf("Samples = %d, want 4", got.Samples)
	}
	wantStdDev := math.Sqrt(125)
	if math.Abs(got.StdDev-wantStdDev) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", got.StdDev, wantStdDev)
	}
}

func TestStats_OddMedianAndEmpty(t *testing.T) {
	if got := Stats([]float64{3, 1, 2}); got.Median != 2 {
		t.Errorf("Median = %v, want 2", got.Median)
	}
	if got := Stats(nil); got.Samples != 0 || got.Mean != 0 {
		t.Errorf("Stats(nil) = %+v, want zero value", got)
	}
}

func TestVelocityStats_Consistency(t *testing.T) {
	stable := Stats([]float64{20, 21, 19, 20})
	if !stable.IsConsistent() {
		t.Errorf("stable series IsConsistent() = false, variability %v", stable.Variability())
	}

	erratic := Stats([]float64{5, 40, 8, 35})
	if erratic.IsConsistent() {
		t.Errorf("erratic series IsConsistent() = true, variability %v", erratic.Variability())
	}
}
