package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a backlog from a JSON file",
	Long: `Import validates the file against the backlog schema and replaces the
workspace backlog. Stories without an id or number are assigned one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		data, err := os.ReadFile(args[0]) // #nosec G304 -- user-supplied path is the point
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		stories, err := services.Import.ImportBacklog(data)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d stories\n", len(stories))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
}
