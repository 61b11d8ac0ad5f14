package wiring

import (
	"fmt"

	"lodestar/internal/infrastructure/config"
	"lodestar/pkg/application"
	"lodestar/pkg/domain/scoring"
)

// AppServices exposes the application layer services wired together with a workspace.
type AppServices struct {
	Workspace *Workspace
	Init      *application.InitService
	Score     *application.ScoreService
	Insights  *application.InsightsService
	Workflow  *application.WorkflowService
	Activity  *application.ActivityService // Concrete service for timeline reads and chain verification
	Scorer    *scoring.Scorer
}

// BuildAppServices constructs the workbench of services and scoring wiring for a workspace root.
func BuildAppServices(root string) (*AppServices, error) {
	workspace := NewWorkspace(root)
	scorer, err := config.LoadScorer(root)
	var loadErr error
	if err != nil {
		loadErr = fmt.Errorf("scoring config fallback: %w", err)
		scorer = scoring.NewDefaultScorer()
	}

	// Create services in dependency order
	services := &AppServices{
		Workspace: workspace,
		Init:      application.NewInitService(workspace.Repo, workspace.Activity),
		Score:     application.NewScoreService(workspace.Repo, workspace.Activity, scorer),
		Insights:  application.NewInsightsService(workspace.Repo, workspace.Activity),
		Workflow:  application.NewWorkflowService(workspace.Repo, workspace.Activity),
		Activity:  workspace.Activity,
		Scorer:    scorer,
	}

	return services, loadErr
}

// BuildAppServicesWithScorer allows callers to supply a custom scorer resolver.
func BuildAppServicesWithScorer(root string, resolver func(string) (*scoring.Scorer, error)) (*AppServices, error) {
	workspace := NewWorkspace(root)
	scorer, err := resolver(root)
	var loadErr error
	if err != nil {
		loadErr = fmt.Errorf("scoring config fallback: %w", err)
		scorer = scoring.NewDefaultScorer()
	}

	services := &AppServices{
		Workspace: workspace,
		Init:      application.NewInitService(workspace.Repo, workspace.Activity),
		Score:     application.NewScoreService(workspace.Repo, workspace.Activity, scorer),
		Insights:  application.NewInsightsService(workspace.Repo, workspace.Activity),
		Workflow:  application.NewWorkflowService(workspace.Repo, workspace.Activity),
		Activity:  workspace.Activity,
		Scorer:    scorer,
	}

	return services, loadErr
}
