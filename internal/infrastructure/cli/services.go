package cli

import (
	"os"

	"github.com/felixgeelhaar/storycast/pkg/application"
	"github.com/felixgeelhaar/storycast/pkg/storage"
)

// Services bundles the application services for the current workspace.
type Services struct {
	Repo     *storage.FilesystemRepository
	Forecast *application.ForecastService
	Stories  *application.StoryService
	Sprints  *application.SprintService
	Import   *application.ImportService
}

// buildServices wires the services against the working directory.
func buildServices() *Services {
	cwd, _ := os.Getwd()
	repo := storage.NewFilesystemRepository(cwd)
	return &Services{
		Repo:     repo,
		Forecast: application.NewForecastService(repo),
		Stories:  application.NewStoryService(repo),
		Sprints:  application.NewSprintService(repo),
		Import:   application.NewImportService(repo),
	}
}
