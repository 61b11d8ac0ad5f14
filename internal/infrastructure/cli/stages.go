package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lodestar/internal/infrastructure/wiring"
)

// Flag variables for stages command
var (
	stageTask   string
	stageTo     string
	stageRevert bool
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List workflow stages or move a task between them",
	Long: `List workflow stages or move a task between them.

Without flags the configured stages are listed with their task counts.
With --task the named task moves one stage forward, or to the stage named
by --to. Stages advance one step at a time; --to must name an adjacent
stage. An unstaged task enters the workflow at the first stage.

Examples:
  lodestar stages
  lodestar stages --task t-42
  lodestar stages --task t-42 --to Review
  lodestar stages --task t-42 --revert`,
	RunE: runStagesCmd,
}

func runStagesCmd(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}
	if err := requireWorkspace(services); err != nil {
		return MapError(err)
	}

	if stageTask == "" {
		if stageTo != "" || stageRevert {
			return NewCLIError("no task named", "Pass --task <id> to move a task", nil)
		}
		return listStages(services)
	}

	var stage string
	switch {
	case stageRevert:
		stage, err = services.Workflow.RevertTask(cmd.Context(), stageTask)
	case stageTo != "":
		stage, err = services.Workflow.TransitionTask(cmd.Context(), stageTask, stageTo)
	default:
		stage, err = services.Workflow.AdvanceTask(cmd.Context(), stageTask)
	}
	if err != nil {
		return MapError(err)
	}

	fmt.Printf("Task %s moved to stage %s\n", stageTask, stage)
	return nil
}

func listStages(services *wiring.AppServices) error {
	list, err := services.Workflow.Stages()
	if err != nil {
		return MapError(err)
	}

	tasks, err := services.Workspace.Repo.LoadTasks()
	if err != nil {
		return MapError(err)
	}

	counts := make(map[int]int)
	unstaged := 0
	for _, t := range tasks {
		if t.Stage == "" {
			unstaged++
			continue
		}
		if i, ok := list.Index(t.Stage); ok {
			counts[i]++
		}
	}

	fmt.Println("Workflow stages")
	fmt.Println("---------------")
	for i := 0; i < list.Len(); i++ {
		s := list.At(i)
		fmt.Printf("%d. %-14s %d tasks", i+1, s.Name, counts[i])
		if s.Description != "" {
			fmt.Printf("  (%s)", s.Description)
		}
		fmt.Println()
	}
	if unstaged > 0 {
		fmt.Printf("Unstaged: %d tasks\n", unstaged)
	}
	return nil
}

func init() {
	stagesCmd.Flags().StringVar(&stageTask, "task", "", "ID of the task to move")
	stagesCmd.Flags().StringVar(&stageTo, "to", "", "Target stage name (must be adjacent)")
	stagesCmd.Flags().BoolVar(&stageRevert, "revert", false, "Move the task one stage back")
	RootCmd.AddCommand(stagesCmd)
}
