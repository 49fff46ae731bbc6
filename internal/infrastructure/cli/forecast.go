package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storycast/pkg/domain/analytics"
)

var (
	forecastJSON     bool
	forecastSchedule bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project the completion date of the remaining backlog",
	Long: `Forecast schedules every incomplete story through the configured
working-hours calendar and reports the projected completion date, total
remaining effort, and a risk assessment.

Flags:
  --schedule   Show the per-story schedule
  --json       Output in JSON format`,
	RunE: runForecast,
}

func runForecast(cmd *cobra.Command, args []string) error {
	services := buildServices()

	forecast, err := services.Forecast.Forecast(time.Now())
	if err != nil {
		return fmt.Errorf("compute forecast: %w", err)
	}
	if forecast == nil {
		fmt.Println("Nothing to forecast: every story is completed.")
		return nil
	}

	if forecastJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(forecast)
	}

	return outputForecastText(forecast)
}

func outputForecastText(f *analytics.ForecastResult) error {
	fmt.Println("Project Forecast")
	fmt.Println("----------------")
	fmt.Printf("Projected Completion: %s\n", f.ProjectedCompletionDate.Format("Mon 2006-01-02 15:04"))
	fmt.Printf("Remaining Work:       %.1f hours (%.1f working days)\n", f.TotalRemainingHours, f.TotalRemainingDays)
	fmt.Printf("Remaining Points:     %d\n", f.TotalRemainingPoints)
	fmt.Printf("Remaining Stories:    %d\n", f.RemainingStories())
	fmt.Printf("Average Velocity:     %.1f points/sprint\n", f.AverageVelocity)
	fmt.Printf("Risk:                 %s (score %.0f)\n", f.RiskLevel, f.RiskScore)

	if len(f.Bottlenecks) > 0 {
		fmt.Println("\nBottlenecks")
		for _, b := range f.Bottlenecks {
			fmt.Printf("- %s\n", b)
		}
	}

	if len(f.Recommendations) > 0 {
		fmt.Println("\nRecommendations")
		for _, r := range f.Recommendations {
			fmt.Printf("- %s\n", r)
		}
	}

	if forecastSchedule {
		fmt.Println("\nSchedule")
		for _, s := range f.StorySchedules {
			fmt.Printf("#%-4d %-40.40s %s -> %s (%.1fh, %s)\n",
				s.StoryNumber, s.Title,
				s.StartDate.Format("01-02 15:04"), s.EndDate.Format("01-02 15:04"),
				s.HoursNeeded, s.Developer)
		}
	}

	return nil
}

func init() {
	forecastCmd.Flags().BoolVar(&forecastSchedule, "schedule", false, "Show the per-story schedule")
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(forecastCmd)
}
