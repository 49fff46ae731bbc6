package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var velocityJSON bool

var velocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Show the estimated team velocity and sprint history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		velocity, stats, err := services.Forecast.Velocity()
		if err != nil {
			return fmt.Errorf("estimate velocity: %w", err)
		}

		if velocityJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"velocity": velocity,
				"stats":    stats,
			})
		}

		fmt.Printf("Estimated Velocity: %.1f points/sprint\n", velocity)
		if stats.Samples == 0 {
			fmt.Println("No completed sprints yet; the estimate uses fallback heuristics.")
			return nil
		}

		fmt.Printf("\nCompleted Sprints:  %d\n", stats.Samples)
		fmt.Printf("Mean:               %.1f\n", stats.Mean)
		fmt.Printf("Median:             %.1f\n", stats.Median)
		fmt.Printf("Std Deviation:      %.1f\n", stats.StdDev)
		fmt.Printf("Range:              %.1f - %.1f\n", stats.Min, stats.Max)
		if stats.IsConsistent() {
			fmt.Println("Velocity is consistent across sprints.")
		} else {
			fmt.Println("Velocity varies noticeably across sprints.")
		}
		return nil
	},
}

func init() {
	velocityCmd.Flags().BoolVar(&velocityJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(velocityCmd)
}
