package analytics

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
)

// Workload tunables for bottleneck and recommendation analysis.
const (
	// DeveloperOverloadPoints flags a developer whose remaining point
	// total exceeds this value.
	DeveloperOverloadPoints = 40

	// WorkloadImbalanceCount flags the backlog when the spread between the
	// busiest and least-busy developer exceeds this many stories.
	WorkloadImbalanceCount = 5
)

// IdentifyBottlenecks lists concrete delivery obstacles: blocked stories,
// overloaded developers, and unassigned critical work.
func IdentifyBottlenecks(stories []backlog.Story) []string {
	var bottlenecks []string

	blocked := backlog.CountByStatus(stories, backlog.StatusBlocked)
	if blocked > 0 {
		bottlenecks = append(bottlenecks, fmt.Sprintf("%d blocked stories are holding up delivery", blocked))
	}

	forecastable := backlog.Forecastable(stories)
	for _, dev := range developersByName(forecastable) {
		points := 0
		for i := range forecastable {
			if forecastable[i].IsAssigned() && forecastable[i].Developer() == dev {
				points += forecastable[i].Points.Value()
			}
		}
		if points > DeveloperOverloadPoints {
			bottlenecks = append(bottlenecks, fmt.Sprintf("%s carries %d remaining points, above the %d point limit", dev, points, DeveloperOverloadPoints))
		}
	}

	unassignedCritical := 0
	for i := range forecastable {
		if forecastable[i].Priority == backlog.PriorityCritical && !forecastable[i].IsAssigned() {
			unassignedCritical++
		}
	}
	if unassignedCritical > 0 {
		bottlenecks = append(bottlenecks, fmt.Sprintf("%d critical stories have no assignee", unassignedCritical))
	}

	return bottlenecks
}

// GenerateRecommendations suggests actions keyed off the backlog's current
// state and the risk assessment. Each condition is independent and the
// output order is fixed.
func GenerateRecommendations(stories []backlog.Story, risk RiskAssessment, velocity float64) []string {
	var recommendations []string

	blocked := backlog.CountByStatus(stories, backlog.StatusBlocked)
	if blocked > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Unblock the %d blocked stories to restore flow", blocked))
	}

	forecastable := backlog.Forecastable(stories)
	unestimated := 0
	for i := range forecastable {
		if forecastable[i].Points.IsUnknown() {
			unestimated++
		}
	}
	if unestimated > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Estimate the %d stories without points to firm up the forecast", unestimated))
	}

	if min, max, ok := workloadSpread(forecastable); ok && max-min > WorkloadImbalanceCount {
		recommendations = append(recommendations, fmt.Sprintf("Rebalance workload: story counts per developer range from %d to %d", min, max))
	}

	if risk.Level == RiskHigh {
		recommendations = append(recommendations, "Overall risk is high; review the flagged factors before committing dates")
	}

	if velocity < LowVelocityThreshold {
		recommendations = append(recommendations, fmt.Sprintf("Velocity is low (%.1f points per sprint); consider reducing sprint scope", velocity))
	}

	return recommendations
}

// workloadSpread returns the min and max forecastable story count across
// assigned developers. ok is false with fewer than two developers.
func workloadSpread(forecastable []backlog.Story) (min, max int, ok bool) {
	counts := make(map[string]int)
	for i := range forecastable {
		if forecastable[i].IsAssigned() {
			counts[forecastable[i].Developer()]++
		}
	}
	if len(counts) < 2 {
		return 0, 0, false
	}

	first := true
	for _, c := range counts {
		if first {
			min, max = c, c
			first = false
			continue
		}
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	return min, max, true
}

// developersByName returns the sorted set of assigned developer names, so
// bottleneck output is deterministic.
func developersByName(stories []backlog.Story) []string {
	seen := make(map[string]struct{})
	for i := range stories {
		if stories[i].IsAssigned() {
			seen[stories[i].Developer()] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
