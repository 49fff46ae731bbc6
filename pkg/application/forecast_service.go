// Package application wires the domain into use cases the CLI and
// dashboard call.
package application

import (
	"time"

	"github.com/felixgeelhaar/storycast/pkg/domain"
	"github.com/felixgeelhaar/storycast/pkg/domain/analytics"
	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
	"github.com/felixgeelhaar/storycast/pkg/domain/schedule"
)

// ForecastService computes project forecasts from the persisted workspace.
type ForecastService struct {
	repo domain.WorkspaceRepository
}

// NewForecastService creates a new forecast service.
func NewForecastService(repo domain.WorkspaceRepository) *ForecastService {
	return &ForecastService{repo: repo}
}

// Forecast loads the workspace and computes the forecast anchored at now.
// Returns nil when there is no forecastable work.
func (s *ForecastService) Forecast(now time.Time) (*analytics.ForecastResult, error) {
	stories, err := s.repo.LoadBacklog()
	if err != nil {
		return nil, err
	}
	sprints, err := s.repo.LoadSprints()
	if err != nil {
		return nil, err
	}
	cfg, err := s.repo.LoadConfig()
	if err != nil {
		return nil, err
	}

	return ComputeForecast(stories, sprints, cfg, now)
}

// Velocity loads the workspace and returns the estimated velocity plus the
// per-sprint history statistics.
func (s *ForecastService) Velocity() (float64, analytics.VelocityStats, error) {
	stories, err := s.repo.LoadBacklog()
	if err != nil {
		return 0, analytics.VelocityStats{}, err
	}
	sprints, err := s.repo.LoadSprints()
	if err != nil {
		return 0, analytics.VelocityStats{}, err
	}
	cfg, err := s.repo.LoadConfig()
	if err != nil {
		return 0, analytics.VelocityStats{}, err
	}

	velocity := analytics.EstimateVelocity(stories, sprints, cfg)
	stats := analytics.Stats(analytics.SprintVelocities(stories, sprints))
	return velocity, stats, nil
}

// Risk loads the workspace and returns the standalone risk assessment.
func (s *ForecastService) Risk() (analytics.RiskAssessment, error) {
	stories, err := s.repo.LoadBacklog()
	if err != nil {
		return analytics.RiskAssessment{}, err
	}
	sprints, err := s.repo.LoadSprints()
	if err != nil {
		return analytics.RiskAssessment{}, err
	}
	cfg, err := s.repo.LoadConfig()
	if err != nil {
		return analytics.RiskAssessment{}, err
	}

	velocity := analytics.EstimateVelocity(stories, sprints, cfg)
	return analytics.AssessRisk(stories, sprints, cfg, velocity), nil
}

// ComputeForecast composes velocity estimation, scheduling and risk analysis
// into a single forecast. It is a pure function of its inputs and now:
// identical inputs produce an identical result. A nil result with a nil
// error means there is nothing to forecast.
func ComputeForecast(stories []backlog.Story, sprints []backlog.Sprint, cfg schedule.Config, now time.Time) (*analytics.ForecastResult, error) {
	forecastable := backlog.Forecastable(stories)
	if len(forecastable) == 0 {
		return nil, nil
	}

	velocity := analytics.EstimateVelocity(stories, sprints, cfg)

	schedules, err := schedule.ScheduleStories(stories, cfg, now)
	if err != nil {
		return nil, err
	}

	cal, err := cfg.Calendar()
	if err != nil {
		return nil, err
	}

	// Hours are summed from the schedules rather than re-derived from
	// points, keeping the total consistent with what was scheduled.
	totalHours := schedule.TotalHours(schedules)
	completion := schedule.LastEnd(schedules)

	totalDays, err := cal.WorkingDaysBetween(now, completion)
	if err != nil {
		return nil, err
	}

	risk := analytics.AssessRisk(stories, sprints, cfg, velocity)

	return &analytics.ForecastResult{
		ProjectedCompletionDate: completion,
		TotalRemainingHours:     totalHours,
		TotalRemainingDays:      totalDays,
		TotalRemainingPoints:    backlog.TotalPoints(forecastable),
		AverageVelocity:         velocity,
		RiskLevel:               risk.Level,
		RiskScore:               risk.Score,
		Bottlenecks:             analytics.IdentifyBottlenecks(stories),
		Recommendations:         analytics.GenerateRecommendations(stories, risk, velocity),
		StorySchedules:          schedules,
		GeneratedAt:             now,
	}, nil
}
