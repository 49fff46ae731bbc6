package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
)

// StorySchedule is one story's assigned span of working time.
type StorySchedule struct {
	StoryID     string            `json:"story_id"`
	StoryNumber int               `json:"story_number"`
	Title       string            `json:"title"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	HoursNeeded float64           `json:"hours_needed"`
	DaysNeeded  float64           `json:"days_needed"`
	Developer   string            `json:"developer"`
	Priority    backlog.Priority  `json:"priority"`
	Status      backlog.DevStatus `json:"status"`
	DependsOn   []string          `json:"depends_on,omitempty"`
}

// Compare defines the scheduling order as a total order over story content:
// blocked stories last, then priority rank descending (critical first), then
// points ascending with unknown last, then story number ascending.
// Returns -1 if a schedules before b, 1 if after, 0 only for identical keys.
func Compare(a, b *backlog.Story) int {
	aBlocked := a.Status.IsBlocked()
	bBlocked := b.Status.IsBlocked()
	if aBlocked != bBlocked {
		if aBlocked {
			return 1
		}
		return -1
	}

	if cmp := a.Priority.Compare(b.Priority); cmp != 0 {
		// Higher priority schedules first
		return -cmp
	}

	if cmp := a.Points.Compare(b.Points); cmp != 0 {
		return cmp
	}

	switch {
	case a.Number < b.Number:
		return -1
	case a.Number > b.Number:
		return 1
	default:
		return 0
	}
}

// SortStories returns a copy of the stories in scheduling order. The order
// is a function of story content only, so any permutation of the same set
// sorts identically.
func SortStories(stories []backlog.Story) []backlog.Story {
	sorted := make([]backlog.Story, len(stories))
	copy(sorted, stories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(&sorted[i], &sorted[j]) < 0
	})
	return sorted
}

// ScheduleStories assigns a contiguous working-time span to every
// forecastable story, walking the calendar from startFrom. Schedules are
// back-to-back on a single lane: each story starts at the next working
// instant after its predecessor ends.
func ScheduleStories(stories []backlog.Story, cfg Config, startFrom time.Time) ([]StorySchedule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cal, err := cfg.Calendar()
	if err != nil {
		return nil, err
	}

	pending := SortStories(backlog.Forecastable(stories))
	if len(pending) == 0 {
		return nil, nil
	}

	factor := cfg.parallelFactor()
	avgDaily := cal.AverageDailyHours()

	cursor, err := cal.NextWorkingInstant(startFrom)
	if err != nil {
		return nil, fmt.Errorf("find first working instant: %w", err)
	}

	schedules := make([]StorySchedule, 0, len(pending))
	for i := range pending {
		story := &pending[i]

		hoursNeeded := float64(story.Points.EffectiveValue()) * cfg.HoursPerPoint
		// The parallel factor speeds up calendar consumption, not the
		// amount of work: a story still needs its full hours of effort.
		calendarHours := hoursNeeded / factor
		end, err := cal.AdvanceByWorkingHours(cursor, calendarHours)
		if err != nil {
			return nil, fmt.Errorf("schedule story %s: %w", story.ID, err)
		}

		schedules = append(schedules, StorySchedule{
			StoryID:     story.ID,
			StoryNumber: story.Number,
			Title:       story.Text,
			StartDate:   cursor,
			EndDate:     end,
			HoursNeeded: hoursNeeded,
			DaysNeeded:  calendarHours / avgDaily,
			Developer:   story.Developer(),
			Priority:    story.Priority,
			Status:      story.Status,
			DependsOn:   story.DependsOn,
		})

		cursor, err = cal.NextWorkingInstant(end)
		if err != nil {
			return nil, fmt.Errorf("advance past story %s: %w", story.ID, err)
		}
	}

	return schedules, nil
}

// TotalHours sums the hours across all schedules.
func TotalHours(schedules []StorySchedule) float64 {
	total := 0.0
	for _, s := range schedules {
		total += s.HoursNeeded
	}
	return total
}

// LastEnd returns the latest schedule end, or the zero time when empty.
// Schedules are contiguous by construction so the last entry carries it.
func LastEnd(schedules []StorySchedule) time.Time {
	if len(schedules) == 0 {
		return time.Time{}
	}
	return schedules[len(schedules)-1].EndDate
}
