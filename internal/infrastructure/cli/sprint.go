package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sprintCapacity float64

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Manage sprints",
}

var sprintAddCmd = &cobra.Command{
	Use:   "add <name> <start> <end>",
	Short: "Add a sprint (dates as YYYY-MM-DD)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		start, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", args[1], err)
		}
		end, err := time.Parse("2006-01-02", args[2])
		if err != nil {
			return fmt.Errorf("invalid end date %q: %w", args[2], err)
		}

		sprint, err := services.Sprints.AddSprint(args[0], start, end, sprintCapacity)
		if err != nil {
			return err
		}

		fmt.Printf("Added sprint %q (%s)\n", sprint.Name, sprint.ID)
		return nil
	},
}

var sprintStartCmd = &cobra.Command{
	Use:   "start <sprint-id>",
	Short: "Mark a planned sprint as active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		sprint, err := services.Sprints.StartSprint(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Sprint %q is now active\n", sprint.Name)
		return nil
	},
}

var sprintCloseCmd = &cobra.Command{
	Use:   "close <sprint-id>",
	Short: "Mark an active sprint as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		sprint, err := services.Sprints.CloseSprint(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Sprint %q is now completed\n", sprint.Name)
		return nil
	},
}

var sprintListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		sprints, err := services.Sprints.ListSprints()
		if err != nil {
			return err
		}
		if len(sprints) == 0 {
			fmt.Println("No sprints defined.")
			return nil
		}

		for _, sp := range sprints {
			fmt.Printf("%-12s %-20.20s %s .. %s  capacity %.0f\n",
				sp.Status, sp.Name,
				sp.StartDate.Format("2006-01-02"), sp.EndDate.Format("2006-01-02"),
				sp.Capacity)
		}
		return nil
	},
}

func init() {
	sprintAddCmd.Flags().Float64Var(&sprintCapacity, "capacity", 0, "Planned capacity in points")

	sprintCmd.AddCommand(sprintAddCmd)
	sprintCmd.AddCommand(sprintStartCmd)
	sprintCmd.AddCommand(sprintCloseCmd)
	sprintCmd.AddCommand(sprintListCmd)
	RootCmd.AddCommand(sprintCmd)
}
