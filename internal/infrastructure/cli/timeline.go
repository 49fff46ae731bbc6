package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var timelineJSON bool

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the projected story-by-story schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		result, err := services.Forecast.Forecast(time.Now())
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Println("Nothing to schedule: no forecastable stories.")
			return nil
		}

		if timelineJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result.StorySchedules)
		}

		fmt.Printf("Projected schedule (%d stories, %.1fh total)\n\n",
			len(result.StorySchedules), result.TotalRemainingHours)
		for _, sched := range result.StorySchedules {
			fmt.Printf("#%-4d %s .. %s  %6.1fh  %-10s %-40.40s\n",
				sched.StoryNumber,
				sched.StartDate.Format("Mon 2006-01-02 15:04"),
				sched.EndDate.Format("Mon 2006-01-02 15:04"),
				sched.HoursNeeded,
				sched.Developer,
				sched.Title)
		}
		fmt.Printf("\nCompletion: %s\n", result.ProjectedCompletionDate.Format("Mon 2006-01-02 15:04"))
		return nil
	},
}

func init() {
	timelineCmd.Flags().BoolVar(&timelineJSON, "json", false, "Output as JSON")
	RootCmd.AddCommand(timelineCmd)
}
