package application

import (
	"context"
	"fmt"

	"lodestar/pkg/domain"
	"lodestar/pkg/domain/tracker"
	"lodestar/pkg/domain/workflow"
)

// WorkflowService moves tasks through the user's configured stages. Stage
// order comes from settings; transitions go one step at a time. A task with
// an empty stage sits implicitly at the first stage and enters the workflow
// on its first move.
type WorkflowService struct {
	repo     domain.SnapshotRepository
	activity domain.ActivityLogger
}

func NewWorkflowService(repo domain.SnapshotRepository, activity domain.ActivityLogger) *WorkflowService {
	return &WorkflowService{repo: repo, activity: activity}
}

// Stages returns the configured stage list.
func (s *WorkflowService) Stages() (workflow.StageList, error) {
	settings, err := s.repo.LoadSettings()
	if err != nil {
		return workflow.StageList{}, fmt.Errorf("load settings: %w", err)
	}
	if len(settings.Workflow.Stages) == 0 {
		return workflow.StageList{}, tracker.ErrNoStages
	}
	return workflow.NewStageList(settings.Workflow.Stages)
}

// TransitionTask moves a task to the named stage and persists the snapshot.
// The target must be adjacent to the task's current stage. Moving an
// unstaged task to the first stage enters it into the workflow.
func (s *WorkflowService) TransitionTask(ctx context.Context, taskID, target string) (string, error) {
	return s.moveTask(ctx, taskID, func(list workflow.StageList, current string) (string, error) {
		if current == "" {
			if idx, ok := list.Index(target); ok && idx == 0 {
				return list.First().Name, nil
			}
		}
		machine, err := workflow.NewStageMachine(list, taskID, current)
		if err != nil {
			return "", err
		}
		return machine.TransitionTo(target)
	})
}

// AdvanceTask moves a task one stage forward. An unstaged task enters the
// workflow at the first stage.
func (s *WorkflowService) AdvanceTask(ctx context.Context, taskID string) (string, error) {
	return s.moveTask(ctx, taskID, func(list workflow.StageList, current string) (string, error) {
		if current == "" {
			return list.First().Name, nil
		}
		machine, err := workflow.NewStageMachine(list, taskID, current)
		if err != nil {
			return "", err
		}
		return machine.Advance()
	})
}

// RevertTask moves a task one stage back.
func (s *WorkflowService) RevertTask(ctx context.Context, taskID string) (string, error) {
	return s.moveTask(ctx, taskID, func(list workflow.StageList, current string) (string, error) {
		machine, err := workflow.NewStageMachine(list, taskID, current)
		if err != nil {
			return "", err
		}
		return machine.Revert()
	})
}

func (s *WorkflowService) moveTask(ctx context.Context, taskID string, decide func(workflow.StageList, string) (string, error)) (string, error) {
	list, err := s.Stages()
	if err != nil {
		return "", err
	}

	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return "", fmt.Errorf("load tasks: %w", err)
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", fmt.Errorf("%w: %s", tracker.ErrTaskNotFound, taskID)
	}

	from := tasks[idx].Stage
	to, err := decide(list, from)
	if err != nil {
		return "", err
	}

	tasks[idx].Stage = to
	if err := s.repo.SaveTasks(tasks); err != nil {
		return "", fmt.Errorf("save tasks: %w", err)
	}

	if err := s.activity.Log("task.stage", actorFrom(ctx), map[string]interface{}{
		"task_id": taskID,
		"from":    from,
		"to":      to,
	}); err != nil {
		return "", fmt.Errorf("write activity log: %w", err)
	}

	return to, nil
}
