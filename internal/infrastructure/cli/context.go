package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Flag variables for context command
var (
	contextAsOf string
	contextJSON bool
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Build the working-style context block for AI collaborators",
	Long: `Build the working-style context block for AI collaborators.

The block summarizes how you work (skills, work days, daily hour limit,
project type mix, priority habits, estimation style, nearest deadline,
note-taking detail) as plain labeled lines. Paste it into any assistant
conversation; lodestar itself never calls a model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := requireWorkspace(services); err != nil {
			return MapError(err)
		}

		asOf, err := parseAsOfFlag(contextAsOf)
		if err != nil {
			return NewCLIError(err.Error(), "Dates look like 2025-03-10", err)
		}

		result, err := services.Insights.AIContext(cmd.Context(), asOf)
		if err != nil {
			return MapError(err)
		}

		if contextJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		rendered := result.Render()
		if rendered == "" {
			fmt.Println("No context to render yet. Add settings, projects, or tasks first.")
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	contextCmd.Flags().StringVar(&contextAsOf, "as-of", "", "Reference date for deadline distance (YYYY-MM-DD or RFC3339)")
	contextCmd.Flags().BoolVar(&contextJSON, "json", false, "Output the structured form as JSON")
	RootCmd.AddCommand(contextCmd)
}
