package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var riskJSON bool

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Assess delivery risk for the current backlog",
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		risk, err := services.Forecast.Risk()
		if err != nil {
			return fmt.Errorf("assess risk: %w", err)
		}

		if riskJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(risk)
		}

		fmt.Printf("Risk Level: %s\n", risk.Level)
		fmt.Printf("Risk Score: %.0f / 100\n", risk.Score)
		if len(risk.Factors) == 0 {
			fmt.Println("No risk factors triggered.")
			return nil
		}
		fmt.Println("\nFactors")
		for _, f := range risk.Factors {
			fmt.Printf("- %s\n", f)
		}
		return nil
	},
}

func init() {
	riskCmd.Flags().BoolVar(&riskJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(riskCmd)
}
