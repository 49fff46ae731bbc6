package analytics

import (
	"fmt"
	"math"

	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
	"github.com/felixgeelhaar/storycast/pkg/domain/schedule"
)

// RiskLevel classifies the overall project risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// Risk scoring tunables. Contributions are additive and individually capped;
// the total is clamped to 100.
const (
	LowVelocityThreshold = 10.0
	lowVelocityScore     = 30
	blockedScoreCap      = 25
	unestimatedScore     = 20
	urgentConcentration  = 0.5
	concentrationScore   = 15
	varianceMinSprints   = 3
	varianceThreshold    = 20.0
	varianceScore        = 10
	highRiskThreshold    = 60
	mediumRiskThreshold  = 30
)

// RiskAssessment is the scored risk of the backlog's current state.
type RiskAssessment struct {
	Level   RiskLevel `json:"level"`
	Score   float64   `json:"score"`
	Factors []string  `json:"factors"`
}

// AssessRisk scores project risk from velocity, blocked and unestimated
// work, priority concentration, and historical velocity variance. Factors
// list the triggered reasons in scoring order.
func AssessRisk(stories []backlog.Story, sprints []backlog.Sprint, cfg schedule.Config, velocity float64) RiskAssessment {
	score := 0.0
	var factors []string

	if velocity < LowVelocityThreshold {
		score += lowVelocityScore
		factors = append(factors, fmt.Sprintf("Low velocity: %.1f points per sprint", velocity))
	}

	total := len(stories)
	blocked := backlog.CountByStatus(stories, backlog.StatusBlocked)
	if cfg.AccountForBlockers && blocked > 0 && total > 0 {
		blockedPct := float64(blocked) / float64(total) * 100
		score += math.Min(blockedScoreCap, blockedPct)
		factors = append(factors, fmt.Sprintf("%d of %d stories are blocked", blocked, total))
	}

	forecastable := backlog.Forecastable(stories)
	unestimated := 0
	urgent := 0
	for i := range forecastable {
		if forecastable[i].Points.IsUnknown() {
			unestimated++
		}
		if forecastable[i].Priority.IsUrgent() {
			urgent++
		}
	}

	if unestimated > 0 {
		score += unestimatedScore
		factors = append(factors, fmt.Sprintf("%d stories have no point estimate", unestimated))
	}

	if len(forecastable) > 0 && float64(urgent)/float64(len(forecastable)) > urgentConcentration {
		score += concentrationScore
		factors = append(factors, fmt.Sprintf("%d of %d remaining stories are high or critical priority", urgent, len(forecastable)))
	}

	velocities := SprintVelocities(stories, sprints)
	if len(velocities) >= varianceMinSprints {
		if stats := Stats(velocities); stats.StdDev > varianceThreshold {
			score += varianceScore
			factors = append(factors, fmt.Sprintf("Velocity varies widely across sprints (stddev %.1f)", stats.StdDev))
		}
	}

	if score > 100 {
		score = 100
	}

	return RiskAssessment{
		Level:   levelForScore(score),
		Score:   score,
		Factors: factors,
	}
}

func levelForScore(score float64) RiskLevel {
	switch {
	case score >= highRiskThreshold:
		return RiskHigh
	case score >= mediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}
