package application

import (
	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
	"github.com/felixgeelhaar/storycast/pkg/domain/schedule"
)

// memoryRepo is an in-memory WorkspaceRepository for service tests.
type memoryRepo struct {
	stories []backlog.Story
	sprints []backlog.Sprint
	cfg     *schedule.Config

	loadBacklogErr error
	saveBacklogErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{}
}

func (m *memoryRepo) Initialize() error   { return nil }
func (m *memoryRepo) IsInitialized() bool { return true }

func (m *memoryRepo) SaveBacklog(stories []backlog.Story) error {
	if m.saveBacklogErr != nil {
		return m.saveBacklogErr
	}
	m.stories = stories
	return nil
}

func (m *memoryRepo) LoadBacklog() ([]backlog.Story, error) {
	if m.loadBacklogErr != nil {
		return nil, m.loadBacklogErr
	}
	return m.stories, nil
}

func (m *memoryRepo) SaveSprints(sprints []backlog.Sprint) error {
	m.sprints = sprints
	return nil
}

func (m *memoryRepo) LoadSprints() ([]backlog.Sprint, error) {
	return m.sprints, nil
}

func (m *memoryRepo) SaveConfig(cfg schedule.Config) error {
	m.cfg = &cfg
	return nil
}

func (m *memoryRepo) LoadConfig() (schedule.Config, error) {
	if m.cfg == nil {
		return schedule.DefaultConfig(), nil
	}
	return *m.cfg, nil
}
