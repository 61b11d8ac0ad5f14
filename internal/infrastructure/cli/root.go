package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// projectPath holds the --project override. Empty means the current directory.
var projectPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "lodestar",
	Version: Version,
	Short:   "Deterministic priority scores and productivity insights for personal projects",
	Long: `Lodestar reads the project, task, and note records in your workspace
and computes three things from them:
1. Which project deserves attention right now, and why.
2. How your time estimates compare to the time work actually takes.
3. A compact working-style context block for AI collaborators.

Every number comes from a fixed formula over your own records. Running
the same command over the same snapshot always gives the same answer.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&projectPath, "project", "",
		"Path to the workspace root (defaults to the current directory)")
}
