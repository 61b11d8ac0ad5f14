package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lodestar/pkg/domain/insights"
)

var productivityJSON bool

var productivityCmd = &cobra.Command{
	Use:   "productivity",
	Short: "Show completed-task productivity by weekday",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := requireWorkspace(services); err != nil {
			return MapError(err)
		}

		days, ok, err := services.Insights.ProductivityByDay(cmd.Context())
		if err != nil {
			return MapError(err)
		}
		if !ok {
			fmt.Printf("Not enough data yet: productivity needs at least %d completed tasks.\n",
				insights.MinProductivityTasks)
			return nil
		}

		if productivityJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(days)
		}

		fmt.Println("Productivity by day")
		fmt.Println("-------------------")
		for _, d := range days {
			bar := ""
			for i := 0; i < d.TaskCount; i++ {
				bar += "#"
			}
			fmt.Printf("%-10s %2d tasks  avg %4.1fh  %s\n", d.Day.DisplayName(), d.TaskCount, d.AvgHours, bar)
		}
		return nil
	},
}

func init() {
	productivityCmd.Flags().BoolVar(&productivityJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(productivityCmd)
}
