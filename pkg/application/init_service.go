package application

import (
	"fmt"

	"lodestar/pkg/domain"
	"lodestar/pkg/domain/tracker"
)

// InitService creates a fresh workspace: the .lodestar directory plus
// starter settings, so scoring and stage commands work before the user
// configures anything.
type InitService struct {
	repo     domain.SnapshotRepository
	activity domain.ActivityLogger
}

func NewInitService(repo domain.SnapshotRepository, activity domain.ActivityLogger) *InitService {
	return &InitService{repo: repo, activity: activity}
}

// DefaultStages is the starter workflow written at init.
func DefaultStages() []tracker.Stage {
	return []tracker.Stage{
		{Name: "Backlog", Description: "Not started"},
		{Name: "In Progress", Description: "Being worked on"},
		{Name: "Review", Description: "Awaiting review"},
		{Name: "Done", Description: "Finished"},
	}
}

// InitializeWorkspace sets up .lodestar in the repository root.
func (s *InitService) InitializeWorkspace(displayName string) error {
	if s.repo.IsInitialized() {
		return tracker.ErrAlreadyInitialized
	}

	if err := s.repo.Initialize(); err != nil {
		return fmt.Errorf("initialize workspace: %w", err)
	}

	settings := tracker.DefaultUserSettings()
	settings.Workflow.DisplayName = displayName
	settings.Workflow.Stages = DefaultStages()

	if err := s.repo.SaveSettings(settings); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	if err := s.activity.Log("workspace.init", "cli", map[string]interface{}{
		"display_name": displayName,
	}); err != nil {
		return fmt.Errorf("write activity log: %w", err)
	}

	return nil
}
