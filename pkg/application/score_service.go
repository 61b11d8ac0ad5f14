package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lodestar/pkg/domain"
	"lodestar/pkg/domain/scoring"
	"lodestar/pkg/domain/tracker"
)

// ScoreService runs the priority scorer over the snapshot and writes the
// resulting scores back, so every surface reads the same ranking.
type ScoreService struct {
	repo     domain.SnapshotRepository
	activity domain.ActivityLogger
	scorer   *scoring.Scorer
}

func NewScoreService(repo domain.SnapshotRepository, activity domain.ActivityLogger, scorer *scoring.Scorer) *ScoreService {
	if scorer == nil {
		scorer = scoring.NewDefaultScorer()
	}
	return &ScoreService{repo: repo, activity: activity, scorer: scorer}
}

// Scorer returns the configured scorer.
func (s *ScoreService) Scorer() *scoring.Scorer {
	return s.scorer
}

// RankedProject is one row of a scoring run: the project, its factor
// breakdown, and its 1-based position in the ranking.
type RankedProject struct {
	Rank      int               `json:"rank"`
	Project   tracker.Project   `json:"project"`
	Breakdown scoring.Breakdown `json:"breakdown"`
}

// ScoreAll scores every project as of the given time, persists the scores,
// and returns the ranking. Ordering is score descending, ties broken by
// name then ID so reruns over the same snapshot agree.
func (s *ScoreService) ScoreAll(ctx context.Context, asOf time.Time) ([]RankedProject, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	projects, err := s.repo.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	ranked := s.rankProjects(projects, asOf)

	if len(projects) > 0 {
		if err := s.repo.SaveProjects(projects); err != nil {
			return nil, fmt.Errorf("save scores: %w", err)
		}
	}

	if err := s.activity.Log("score.run", actorFrom(ctx), map[string]interface{}{
		"project_count": len(projects),
		"as_of":         asOf.Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("write activity log: %w", err)
	}

	return ranked, nil
}

// Rank scores every project as of the given time and returns the ranking
// without persisting scores or recording activity. Watchers and other
// read-only surfaces use this path so a refresh never triggers itself.
func (s *ScoreService) Rank(ctx context.Context, asOf time.Time) ([]RankedProject, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	projects, err := s.repo.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	// Score a copy so a shared snapshot slice stays untouched.
	projects = append([]tracker.Project(nil), projects...)
	return s.rankProjects(projects, asOf), nil
}

// rankProjects scores and orders projects in place: score descending, ties
// broken by name then ID so reruns over the same snapshot agree.
func (s *ScoreService) rankProjects(projects []tracker.Project, asOf time.Time) []RankedProject {
	ranked := make([]RankedProject, 0, len(projects))
	for i := range projects {
		breakdown := s.scorer.Explain(projects[i], asOf)
		projects[i].PriorityScore = breakdown.Total
		ranked = append(ranked, RankedProject{Project: projects[i], Breakdown: breakdown})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Breakdown.Total != b.Breakdown.Total {
			return a.Breakdown.Total > b.Breakdown.Total
		}
		if a.Project.Name != b.Project.Name {
			return a.Project.Name < b.Project.Name
		}
		return a.Project.ID < b.Project.ID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// ScoreOne scores a single project by ID without persisting anything. It is
// the explain path: callers get the factor breakdown behind the number.
func (s *ScoreService) ScoreOne(ctx context.Context, projectID string, asOf time.Time) (*RankedProject, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	projects, err := s.repo.LoadProjects()
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	for _, p := range projects {
		if p.ID != projectID {
			continue
		}
		breakdown := s.scorer.Explain(p, asOf)
		p.PriorityScore = breakdown.Total
		return &RankedProject{Project: p, Breakdown: breakdown}, nil
	}

	return nil, fmt.Errorf("%w: %s", tracker.ErrProjectNotFound, projectID)
}

// actorKey carries the surface name ("cli", "mcp", "watch") through context.
type actorKey struct{}

// WithActor tags the context with the surface driving this call.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func actorFrom(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return "cli"
}
