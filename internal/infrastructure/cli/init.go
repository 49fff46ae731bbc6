package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storycast/pkg/domain/schedule"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a storycast workspace in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		if services.Repo.IsInitialized() {
			fmt.Println("Workspace already initialized.")
			return nil
		}

		if err := services.Repo.Initialize(); err != nil {
			return err
		}
		if err := services.Repo.SaveConfig(schedule.DefaultConfig()); err != nil {
			return err
		}

		fmt.Println("Initialized .storycast workspace with default forecast configuration.")
		fmt.Println("Edit .storycast/forecast.yaml to adjust working hours and holidays.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
