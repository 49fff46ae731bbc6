package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storycast/internal/infrastructure/watch"
	"github.com/felixgeelhaar/storycast/pkg/storage"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and reprint the forecast on changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		if !services.Repo.IsInitialized() {
			return fmt.Errorf("workspace not initialized, run 'storycast init' first")
		}

		printForecast := func(ev watch.ChangeEvent) {
			if ev.Path != "" {
				fmt.Printf("\n%s %s, recomputing...\n", filepath.Base(ev.Path), ev.ChangeType)
			}
			result, err := services.Forecast.Forecast(time.Now())
			if err != nil {
				fmt.Fprintf(os.Stderr, "forecast failed: %v\n", err)
				return
			}
			if result == nil {
				fmt.Println("Nothing to forecast: every story is completed.")
				return
			}
			_ = outputForecastText(result)
		}

		watcher, err := watch.NewWorkspaceWatcher(watchDebounce, printForecast)
		if err != nil {
			return err
		}

		cwd, _ := os.Getwd()
		if err := watcher.Watch(filepath.Join(cwd, storage.StorycastDir)); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		printForecast(watch.ChangeEvent{})
		fmt.Println("\nWatching workspace, press Ctrl+C to stop.")

		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet period before recomputing")
	RootCmd.AddCommand(watchCmd)
}
