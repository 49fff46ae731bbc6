package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "storycast",
	Version: Version,
	Short:   "Deterministic delivery forecasting for story backlogs",
	Long: `Storycast schedules a story backlog through a working-hours calendar
and answers three questions:
1. When will the remaining work land?
2. How risky is that projection?
3. What is slowing delivery down?`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
