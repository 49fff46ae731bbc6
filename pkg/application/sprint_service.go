package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/storycast/pkg/domain"
	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
)

// SprintService manages the sprint history that feeds velocity estimation.
type SprintService struct {
	repo domain.WorkspaceRepository
}

// NewSprintService creates a new sprint service.
func NewSprintService(repo domain.WorkspaceRepository) *SprintService {
	return &SprintService{repo: repo}
}

// AddSprint records a new planned sprint.
func (s *SprintService) AddSprint(name string, start, end time.Time, capacity float64) (*backlog.Sprint, error) {
	if name == "" {
		return nil, fmt.Errorf("sprint name cannot be empty")
	}
	if !end.After(start) {
		return nil, fmt.Errorf("sprint must end after it starts")
	}

	sprints, err := s.repo.LoadSprints()
	if err != nil {
		return nil, err
	}

	sprint := backlog.Sprint{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Status:    backlog.SprintPlanned,
		Capacity:  capacity,
	}

	sprints = append(sprints, sprint)
	if err := s.repo.SaveSprints(sprints); err != nil {
		return nil, err
	}
	return &sprint, nil
}

// StartSprint marks a planned sprint active.
func (s *SprintService) StartSprint(sprintID string) (*backlog.Sprint, error) {
	return s.setStatus(sprintID, backlog.SprintPlanned, backlog.SprintActive)
}

// CloseSprint marks an active sprint completed, adding it to the velocity
// history.
func (s *SprintService) CloseSprint(sprintID string) (*backlog.Sprint, error) {
	return s.setStatus(sprintID, backlog.SprintActive, backlog.SprintCompleted)
}

func (s *SprintService) setStatus(sprintID string, from, to backlog.SprintStatus) (*backlog.Sprint, error) {
	sprints, err := s.repo.LoadSprints()
	if err != nil {
		return nil, err
	}

	for i := range sprints {
		if sprints[i].ID == sprintID {
			if sprints[i].Status != from {
				return nil, fmt.Errorf("sprint %s is %s, expected %s", sprintID, sprints[i].Status, from)
			}
			sprints[i].Status = to
			if err := s.repo.SaveSprints(sprints); err != nil {
				return nil, err
			}
			return &sprints[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", backlog.ErrSprintNotFound, sprintID)
}

// ListSprints returns all recorded sprints.
func (s *SprintService) ListSprints() ([]backlog.Sprint, error) {
	return s.repo.LoadSprints()
}
