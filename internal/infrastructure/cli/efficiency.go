package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lodestar/pkg/domain/insights"
)

var efficiencyJSON bool

var efficiencyCmd = &cobra.Command{
	Use:   "efficiency",
	Short: "Show completion efficiency grouped by project type",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := requireWorkspace(services); err != nil {
			return MapError(err)
		}

		groups, ok, err := services.Insights.TypeEfficiency(cmd.Context())
		if err != nil {
			return MapError(err)
		}
		if !ok {
			fmt.Printf("Not enough data yet: efficiency needs at least %d time-tracked tasks.\n",
				insights.MinEfficiencyTasks)
			return nil
		}

		if efficiencyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(groups)
		}

		fmt.Println("Efficiency by project type")
		fmt.Println("--------------------------")
		for _, g := range groups {
			fmt.Printf("%-12s %2d tasks  %2d completed (%5.1f%%)  time ratio %.2f\n",
				g.ProjectType, g.TaskCount, g.CompletedCount, g.CompletionRate, g.AvgTimeRatio)
		}
		return nil
	},
}

func init() {
	efficiencyCmd.Flags().BoolVar(&efficiencyJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(efficiencyCmd)
}
