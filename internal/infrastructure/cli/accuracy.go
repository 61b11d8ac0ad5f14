package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lodestar/pkg/domain/insights"
)

var accuracyJSON bool

var accuracyCmd = &cobra.Command{
	Use:   "accuracy",
	Short: "Show time estimate accuracy grouped by project type",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := requireWorkspace(services); err != nil {
			return MapError(err)
		}

		groups, ok, err := services.Insights.TimeEstimateAccuracy(cmd.Context())
		if err != nil {
			return MapError(err)
		}
		if !ok {
			fmt.Printf("Not enough data yet: accuracy needs at least %d completed tasks with both estimated and actual time.\n",
				insights.MinAccuracyTasks)
			return nil
		}

		if accuracyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(groups)
		}

		fmt.Println("Estimate accuracy by project type")
		fmt.Println("---------------------------------")
		for _, g := range groups {
			fmt.Printf("%-12s %2d tasks  est %5.1fh  actual %5.1fh  accuracy %5.1f%%\n",
				g.ProjectType, g.TaskCount, g.AvgEstimated, g.AvgActual, g.Accuracy)
		}
		return nil
	},
}

func init() {
	accuracyCmd.Flags().BoolVar(&accuracyJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(accuracyCmd)
}
