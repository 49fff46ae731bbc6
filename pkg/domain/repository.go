// Package domain defines the repository contract shared by the application
// services and the storage layer.
package domain

import (
	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
	"github.com/felixgeelhaar/storycast/pkg/domain/schedule"
)

// WorkspaceRepository handles the persistence of storycast artifacts in the
// .storycast/ directory.
type WorkspaceRepository interface {
	Initialize() error
	IsInitialized() bool
	SaveBacklog(stories []backlog.Story) error
	LoadBacklog() ([]backlog.Story, error)
	SaveSprints(sprints []backlog.Sprint) error
	LoadSprints() ([]backlog.Sprint, error)
	SaveConfig(cfg schedule.Config) error
	LoadConfig() (schedule.Config, error)
}
