package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lodestar/internal/infrastructure/watch"
	"lodestar/internal/infrastructure/wiring"
)

// Flag variables for watch command
var (
	watchDebounce time.Duration
	watchInclude  []string
	watchExclude  []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and reprint the ranking when records change",
	Long: `Watch the workspace and reprint the ranking when records change.

Edits to the snapshot files under .lodestar are debounced and coalesced,
then the ranking is recomputed and printed. Watching never writes scores
back, so a refresh cannot retrigger itself. Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := requireWorkspace(services); err != nil {
			return MapError(err)
		}
		root := services.Workspace.Repo.Root()

		filter := watch.DefaultSnapshotFilter()
		if len(watchInclude) > 0 || len(watchExclude) > 0 {
			filter = watch.NewPatternFilter(watchInclude, watchExclude)
		}

		watcher, err := watch.NewSnapshotWatcher(watchDebounce, filter, func(ev watch.ChangeEvent) {
			fmt.Printf("\nChange detected in %s at %s\n", ev.File, time.Now().Format("15:04:05"))
			printRankingRefresh(services)
		})
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		if err := watcher.WatchWorkspace(root); err != nil {
			return MapError(err)
		}

		fmt.Printf("Watching %s for snapshot changes... (debounce %s)\n", root, watchDebounce)
		printRankingRefresh(services)

		if os.Getenv("LODESTAR_SKIP_WATCH_RUN") == "true" {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watcher.Run(ctx)
	},
}

// printRankingRefresh recomputes scores without persisting them. The watcher
// observes the snapshot files, so a write-back here would loop forever.
func printRankingRefresh(services *wiring.AppServices) {
	ranked, err := services.Score.Rank(context.Background(), time.Now())
	if err != nil {
		fmt.Printf("Ranking unavailable: %v\n", err)
		return
	}
	if len(ranked) == 0 {
		fmt.Println("No projects in the workspace yet.")
		return
	}
	for _, r := range ranked {
		fmt.Printf("%3d. [%3d] %s\n", r.Rank, r.Breakdown.Total, r.Project.Name)
	}
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "How long to wait for edits to settle before refreshing")
	watchCmd.Flags().StringSliceVar(&watchInclude, "include", nil, "Glob patterns of snapshot files to watch (default *.json, *.yaml)")
	watchCmd.Flags().StringSliceVar(&watchExclude, "exclude", nil, "Glob patterns of snapshot files to ignore")
	RootCmd.AddCommand(watchCmd)
}
