package application

import (
	"context"
	"fmt"
	"time"

	"lodestar/pkg/domain"
	"lodestar/pkg/domain/aicontext"
	"lodestar/pkg/domain/insights"
	"lodestar/pkg/domain/tracker"
)

// InsightsService loads the snapshot and runs the productivity aggregations
// over it. The boolean mirrors the domain contract: false means the sample
// was too small for that insight, which is not an error.
type InsightsService struct {
	repo     domain.SnapshotRepository
	activity domain.ActivityLogger
}

func NewInsightsService(repo domain.SnapshotRepository, activity domain.ActivityLogger) *InsightsService {
	return &InsightsService{repo: repo, activity: activity}
}

func (s *InsightsService) loadJoined() ([]tracker.Task, map[string]tracker.Project, error) {
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, nil, fmt.Errorf("load tasks: %w", err)
	}
	projects, err := s.repo.LoadProjects()
	if err != nil {
		return nil, nil, fmt.Errorf("load projects: %w", err)
	}
	return tasks, tracker.ProjectIndex(projects), nil
}

func (s *InsightsService) log(ctx context.Context, kind string, sufficient bool, taskCount int) error {
	return s.activity.Log("insights.compute", actorFrom(ctx), map[string]interface{}{
		"kind":       kind,
		"sufficient": sufficient,
		"task_count": taskCount,
	})
}

// UserInsights computes the top-level productivity summary.
func (s *InsightsService) UserInsights(ctx context.Context) (insights.UserInsights, bool, error) {
	tasks, projects, err := s.loadJoined()
	if err != nil {
		return insights.UserInsights{}, false, err
	}

	result, ok := insights.ComputeUserInsights(tasks, projects)
	if err := s.log(ctx, "user", ok, len(tasks)); err != nil {
		return insights.UserInsights{}, false, fmt.Errorf("write activity log: %w", err)
	}
	return result, ok, nil
}

// TimeEstimateAccuracy computes per-type estimation accuracy.
func (s *InsightsService) TimeEstimateAccuracy(ctx context.Context) ([]insights.AccuracyGroup, bool, error) {
	tasks, projects, err := s.loadJoined()
	if err != nil {
		return nil, false, err
	}

	groups, ok := insights.ComputeTimeEstimateAccuracy(tasks, projects)
	if err := s.log(ctx, "accuracy", ok, len(tasks)); err != nil {
		return nil, false, fmt.Errorf("write activity log: %w", err)
	}
	return groups, ok, nil
}

// TypeEfficiency computes per-type throughput.
func (s *InsightsService) TypeEfficiency(ctx context.Context) ([]insights.TypeEfficiency, bool, error) {
	tasks, projects, err := s.loadJoined()
	if err != nil {
		return nil, false, err
	}

	result, ok := insights.ComputeTypeEfficiency(tasks, projects)
	if err := s.log(ctx, "efficiency", ok, len(tasks)); err != nil {
		return nil, false, fmt.Errorf("write activity log: %w", err)
	}
	return result, ok, nil
}

// ProductivityByDay computes the Monday-first weekday histogram.
func (s *InsightsService) ProductivityByDay(ctx context.Context) ([]insights.DayProductivity, bool, error) {
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, false, fmt.Errorf("load tasks: %w", err)
	}

	result, ok := insights.ComputeProductivityByDay(tasks)
	if err := s.log(ctx, "productivity", ok, len(tasks)); err != nil {
		return nil, false, fmt.Errorf("write activity log: %w", err)
	}
	return result, ok, nil
}

// AIContext assembles the prompt-ready user profile from the full snapshot.
func (s *InsightsService) AIContext(ctx context.Context, asOf time.Time) (aicontext.Context, error) {
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return aicontext.Context{}, fmt.Errorf("load tasks: %w", err)
	}
	projects, err := s.repo.LoadProjects()
	if err != nil {
		return aicontext.Context{}, fmt.Errorf("load projects: %w", err)
	}
	notes, err := s.repo.LoadNotes()
	if err != nil {
		return aicontext.Context{}, fmt.Errorf("load notes: %w", err)
	}
	settings, err := s.repo.LoadSettings()
	if err != nil {
		return aicontext.Context{}, fmt.Errorf("load settings: %w", err)
	}

	profile := aicontext.Build(settings, projects, tasks, notes, asOf)

	if err := s.activity.Log("context.build", actorFrom(ctx), map[string]interface{}{
		"projects": len(projects),
		"tasks":    len(tasks),
		"notes":    len(notes),
	}); err != nil {
		return aicontext.Context{}, fmt.Errorf("write activity log: %w", err)
	}

	return profile, nil
}
