package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storycast/internal/infrastructure/watch"
	"github.com/felixgeelhaar/storycast/pkg/application"
	"github.com/felixgeelhaar/storycast/pkg/domain/analytics"
	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
	"github.com/felixgeelhaar/storycast/pkg/infrastructure/dashboard"
	"github.com/felixgeelhaar/storycast/pkg/storage"
)

var serveAddr string

// workspaceProvider adapts the application services to the dashboard.
type workspaceProvider struct {
	forecast *application.ForecastService
	stories  *application.StoryService
}

func (p *workspaceProvider) Forecast(now time.Time) (*analytics.ForecastResult, error) {
	return p.forecast.Forecast(now)
}

func (p *workspaceProvider) Backlog() ([]backlog.Story, error) {
	return p.stories.ListStories()
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the forecast dashboard with live updates",
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		if !services.Repo.IsInitialized() {
			return fmt.Errorf("workspace not initialized, run 'storycast init' first")
		}

		provider := &workspaceProvider{
			forecast: services.Forecast,
			stories:  services.Stories,
		}
		server, err := dashboard.NewServer(serveAddr, provider)
		if err != nil {
			return err
		}

		// Workspace changes are pushed to websocket subscribers so open
		// dashboards refresh without polling.
		watcher, err := watch.NewWorkspaceWatcher(0, func(watch.ChangeEvent) {
			result, err := services.Forecast.Forecast(time.Now())
			if err != nil {
				fmt.Fprintf(os.Stderr, "recompute forecast: %v\n", err)
				return
			}
			server.Broadcast(result)
		})
		if err != nil {
			return err
		}

		cwd, _ := os.Getwd()
		if err := watcher.Watch(filepath.Join(cwd, storage.StorycastDir)); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(os.Stderr, "watcher stopped: %v\n", err)
			}
		}()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		fmt.Printf("Dashboard available at http://%s\n", serveAddr)

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8808", "Listen address")
	RootCmd.AddCommand(serveCmd)
}
