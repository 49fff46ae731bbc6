package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/storycast/pkg/domain"
	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
)

// StoryService manages the backlog: adding stories and moving them through
// the development lifecycle.
type StoryService struct {
	repo domain.WorkspaceRepository
	now  func() time.Time
}

// NewStoryService creates a new story service.
func NewStoryService(repo domain.WorkspaceRepository) *StoryService {
	return &StoryService{repo: repo, now: time.Now}
}

// AddStory appends a new story to the backlog with the next display number.
func (s *StoryService) AddStory(text string, points backlog.Points, priority backlog.Priority, assignee string) (*backlog.Story, error) {
	if text == "" {
		return nil, fmt.Errorf("story text cannot be empty")
	}
	if !points.IsValid() {
		return nil, fmt.Errorf("invalid story points: %d", points)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}

	stories, err := s.repo.LoadBacklog()
	if err != nil {
		return nil, err
	}

	number := 1
	for i := range stories {
		if stories[i].Number >= number {
			number = stories[i].Number + 1
		}
	}

	story := backlog.Story{
		ID:       uuid.New().String(),
		Number:   number,
		Text:     text,
		Points:   points,
		Priority: priority,
		Status:   backlog.StatusReady,
		Assignee: assignee,
	}

	stories = append(stories, story)
	if err := s.repo.SaveBacklog(stories); err != nil {
		return nil, err
	}
	return &story, nil
}

// TransitionStory applies a lifecycle event to a story. Entering in-progress
// stamps the start date; completing stamps the actual end date. The
// transition is checked through the state machine before the story mutates.
func (s *StoryService) TransitionStory(storyID string, event string) (*backlog.Story, error) {
	stories, err := s.repo.LoadBacklog()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range stories {
		if stories[i].ID == storyID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", backlog.ErrStoryNotFound, storyID)
	}

	story := &stories[idx]

	sm, err := backlog.NewStoryStateMachine(string(story.Status), story.ID, nil)
	if err != nil {
		return nil, err
	}
	if err := sm.Transition(event); err != nil {
		return nil, &backlog.TransitionError{
			StoryID:    story.ID,
			FromStatus: string(story.Status),
			Event:      event,
		}
	}

	if err := story.ApplyEvent(event, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.SaveBacklog(stories); err != nil {
		return nil, err
	}
	return story, nil
}

// AssignStory sets the assignee of a story.
func (s *StoryService) AssignStory(storyID string, assignee string) (*backlog.Story, error) {
	stories, err := s.repo.LoadBacklog()
	if err != nil {
		return nil, err
	}

	for i := range stories {
		if stories[i].ID == storyID {
			stories[i].Assignee = assignee
			if err := s.repo.SaveBacklog(stories); err != nil {
				return nil, err
			}
			return &stories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", backlog.ErrStoryNotFound, storyID)
}

// ListStories returns the full backlog.
func (s *StoryService) ListStories() ([]backlog.Story, error) {
	return s.repo.LoadBacklog()
}

// GetStory returns one story by ID.
func (s *StoryService) GetStory(storyID string) (*backlog.Story, error) {
	stories, err := s.repo.LoadBacklog()
	if err != nil {
		return nil, err
	}
	for i := range stories {
		if stories[i].ID == storyID {
			return &stories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", backlog.ErrStoryNotFound, storyID)
}
