package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lodestar/internal/infrastructure/wiring"
	"lodestar/pkg/domain/scoring"
)

// Flag variables for score command
var (
	scoreAsOf    string
	scoreJSON    bool
	scoreExplain bool
)

var scoreCmd = &cobra.Command{
	Use:   "score [project-id]",
	Short: "Score projects and show the priority ranking",
	Long: `Score projects and show the priority ranking.

Without arguments every project is scored, the ranking is printed, and the
scores are written back to the snapshot so other surfaces show the same
numbers. With a project id only that project is scored and nothing is
persisted.

Flags:
  --as-of     Reference date for timeline urgency (defaults to now)
  --explain   Show the factor-by-factor breakdown behind each score
  --json      Output in JSON format

Examples:
  lodestar score
  lodestar score proj-42 --explain
  lodestar score --as-of 2025-03-10 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScoreCmd,
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}
	if err := requireWorkspace(services); err != nil {
		return MapError(err)
	}

	asOf, err := parseAsOfFlag(scoreAsOf)
	if err != nil {
		return NewCLIError(err.Error(), "Dates look like 2025-03-10", err)
	}

	if len(args) == 1 {
		return scoreSingle(cmd, services, args[0], asOf)
	}
	return scoreRanking(cmd, services, asOf)
}

func scoreSingle(cmd *cobra.Command, services *wiring.AppServices, projectID string, asOf time.Time) error {
	result, err := services.Score.ScoreOne(cmd.Context(), projectID, asOf)
	if err != nil {
		return MapError(err)
	}

	if scoreJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("%s: priority %d\n", result.Project.Name, result.Breakdown.Total)
	if scoreExplain {
		printBreakdown(services, result.Breakdown)
	}
	return nil
}

func scoreRanking(cmd *cobra.Command, services *wiring.AppServices, asOf time.Time) error {
	ranked, err := services.Score.ScoreAll(cmd.Context(), asOf)
	if err != nil {
		return MapError(err)
	}

	if scoreJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	if len(ranked) == 0 {
		fmt.Println("No projects in the workspace yet. Add them to .lodestar/projects.json.")
		return nil
	}

	fmt.Printf("Priority ranking (as of %s)\n", asOf.Format("2006-01-02"))
	fmt.Println("--------------------------------")
	for _, r := range ranked {
		typeLabel := string(r.Project.Type)
		if typeLabel == "" {
			typeLabel = "-"
		}
		fmt.Printf("%3d. [%3d] %-32s %s\n", r.Rank, r.Breakdown.Total, r.Project.Name, typeLabel)
		if scoreExplain {
			fmt.Printf("           %s\n", r.Breakdown.Explanation())
		}
	}
	fmt.Println("\nScores written back to .lodestar/projects.json")
	return nil
}

func printBreakdown(services *wiring.AppServices, b scoring.Breakdown) {
	w := services.Scorer.Weights()
	fmt.Printf("  cost:          %3d × %.2f\n", b.Cost, w.Cost)
	fmt.Printf("  timeline:      %3d × %.2f\n", b.Timeline, w.Timeline)
	fmt.Printf("  user_priority: %3d × %.2f\n", b.UserPriority, w.UserPriority)
	fmt.Printf("  project_type:  %3d × %.2f\n", b.ProjectType, w.ProjectType)
	fmt.Printf("  complexity:    %3d × %.2f\n", b.Complexity, w.Complexity)
}

func init() {
	scoreCmd.Flags().StringVar(&scoreAsOf, "as-of", "", "Reference date for timeline urgency (YYYY-MM-DD or RFC3339)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Output in JSON format")
	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false, "Show the factor breakdown behind each score")
	RootCmd.AddCommand(scoreCmd)
}
