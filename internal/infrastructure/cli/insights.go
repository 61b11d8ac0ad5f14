package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lodestar/pkg/domain/insights"
)

var insightsJSON bool

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show aggregate productivity insights",
	Long: `Show aggregate productivity insights computed from completed tasks.

Insights need history to mean anything: with fewer than five tasks the
command explains what is missing instead of printing noise.`,
	RunE: runInsightsCmd,
}

func runInsightsCmd(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}
	if err := requireWorkspace(services); err != nil {
		return MapError(err)
	}

	result, ok, err := services.Insights.UserInsights(cmd.Context())
	if err != nil {
		return MapError(err)
	}
	if !ok {
		fmt.Printf("Not enough data yet: insights need at least %d tasks.\n", insights.MinInsightTasks)
		fmt.Println("Keep tracking estimated and actual time on tasks and check back.")
		return nil
	}

	if insightsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println("Productivity insights")
	fmt.Println("---------------------")
	fmt.Printf("Tasks:             %d total, %d completed (%.1f%%)\n",
		result.TaskCount, result.CompletedCount, result.CompletionRate)
	fmt.Printf("Time tracked:      %d tasks\n", result.TrackedCount)
	if result.TrackedCount > 0 {
		fmt.Printf("Estimation:        actual/estimated ratio %.2f, accuracy %.1f%%\n",
			result.EstimationRatio, result.EstimationAccuracy)
	}
	if result.MostProductiveDay != "" {
		fmt.Printf("Most productive:   %s\n", result.MostProductiveDay.DisplayName())
	}
	if result.MostEfficientType != "" {
		fmt.Printf("Most efficient:    %s projects\n", result.MostEfficientType)
	}
	fmt.Printf("Active projects:   %d (balance %.2f)\n", result.ActiveProjects, result.ProjectBalance)
	return nil
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(insightsCmd)
}
