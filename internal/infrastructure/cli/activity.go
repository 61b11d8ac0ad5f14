package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lodestar/pkg/domain"
)

var activitySince string

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show a chronological view of engine activity",
	Long: `Show a chronological view of engine activity.

Every scoring run, insight computation, and stage move is appended to
.lodestar/activity.jsonl as a hash-chained event. The newest events print
first. Use 'activity verify' to check the chain for tampering.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := requireWorkspace(services); err != nil {
			return MapError(err)
		}

		var events []domain.Event
		if activitySince != "" {
			since, perr := parseAsOfFlag(activitySince)
			if perr != nil {
				return NewCLIError(perr.Error(), "Dates look like 2025-03-10", perr)
			}
			events, err = services.Activity.TimelineSince(since)
		} else {
			events, err = services.Activity.Timeline()
		}
		if err != nil {
			return fmt.Errorf("failed to load activity: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No activity recorded yet.")
			return nil
		}

		fmt.Println("Workspace activity")
		fmt.Println("------------------")
		for i := len(events) - 1; i >= 0; i-- {
			e := events[i]
			ts := e.Timestamp.Format(time.RFC822)
			fmt.Printf("[%s] %-8s | %-16s", ts, e.Actor, e.Action)
			if len(e.Metadata) > 0 {
				fmt.Printf(" (%v)", e.Metadata)
			}
			fmt.Println()
		}
		return nil
	},
}

var activityVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the integrity of the activity log hash chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := requireWorkspace(services); err != nil {
			return MapError(err)
		}

		fmt.Println("Verifying activity log integrity...")
		violations, err := services.Activity.VerifyChain()
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		if len(violations) == 0 {
			fmt.Println("Activity log is intact and verified.")
			return nil
		}

		fmt.Printf("Found %d integrity violations:\n", len(violations))
		for _, v := range violations {
			fmt.Printf("  - %s\n", v)
		}
		os.Exit(1)
		return nil
	},
}

func init() {
	activityCmd.Flags().StringVar(&activitySince, "since", "", "Only show events on or after this date (YYYY-MM-DD or RFC3339)")
	activityCmd.AddCommand(activityVerifyCmd)
	RootCmd.AddCommand(activityCmd)
}
