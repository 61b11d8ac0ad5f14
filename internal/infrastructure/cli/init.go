package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lodestar/pkg/application"
	"lodestar/pkg/storage"
)

var initCmd = &cobra.Command{
	Use:   "init [display-name]",
	Short: "Initialize a lodestar workspace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve workspace path: %w", err)
		}
		repo := storage.NewFilesystemRepository(root)
		activity := application.NewActivityService(repo)
		service := application.NewInitService(repo, activity)

		displayName := "you"
		if len(args) > 0 {
			displayName = args[0]
		}

		if err := service.InitializeWorkspace(displayName); err != nil {
			return MapError(err)
		}

		fmt.Printf("Initialized lodestar workspace in %s\n", filepath.Join(root, storage.LodestarDir))
		fmt.Println("Default workflow stages: Backlog, In Progress, Review, Done")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
