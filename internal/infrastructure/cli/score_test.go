package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"lodestar/pkg/application"
)

func resetScoreFlags() {
	scoreAsOf = ""
	scoreJSON = false
	scoreExplain = false
}

func TestScoreCmdRequiresWorkspace(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()
	resetScoreFlags()

	RootCmd.SetArgs([]string{"score"})
	err := RootCmd.Execute()
	if err == nil {
		t.Fatal("score should fail without a workspace")
	}
	if !strings.Contains(err.Error(), "no workspace found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestScoreCmdRanking(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	resetScoreFlags()

	repo := initWorkspace(t, dir)
	seedRankedProjects(t, repo)

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"score", "--as-of", "2025-03-10T12:00:00Z"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("score failed: %v", err)
		}
	})

	if !strings.Contains(out, "Priority ranking (as of 2025-03-10)") {
		t.Errorf("missing ranking header: %q", out)
	}
	if !strings.Contains(out, "Website Redesign") || !strings.Contains(out, "Sketchbook") {
		t.Errorf("missing project rows: %q", out)
	}
	if strings.Index(out, "Website Redesign") > strings.Index(out, "Sketchbook") {
		t.Errorf("high-priority project should rank first: %q", out)
	}
	if !strings.Contains(out, "Scores written back to .lodestar/projects.json") {
		t.Errorf("missing persistence note: %q", out)
	}

	// Ranking persists scores and records a score.run event.
	projects, err := repo.LoadProjects()
	if err != nil {
		t.Fatalf("load projects: %v", err)
	}
	for _, p := range projects {
		if p.PriorityScore == 0 {
			t.Errorf("project %s score not persisted", p.ID)
		}
	}

	activity := application.NewActivityService(repo)
	events, err := activity.Timeline()
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	found := false
	for _, e := range events {
		if e.Action == "score.run" {
			found = true
		}
	}
	if !found {
		t.Error("expected a score.run event after ranking")
	}
}

func TestScoreCmdSingleProject(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	resetScoreFlags()

	repo := initWorkspace(t, dir)
	seedRankedProjects(t, repo)

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"score", "p-high", "--as-of", "2025-03-10T12:00:00Z", "--explain"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("score failed: %v", err)
		}
	})

	if !strings.Contains(out, "Website Redesign: priority 97") {
		t.Errorf("missing score line: %q", out)
	}
	if !strings.Contains(out, "cost:") || !strings.Contains(out, "timeline:") {
		t.Errorf("missing breakdown: %q", out)
	}

	// Single-project scoring never writes back.
	projects, err := repo.LoadProjects()
	if err != nil {
		t.Fatalf("load projects: %v", err)
	}
	for _, p := range projects {
		if p.PriorityScore != 0 {
			t.Errorf("project %s score persisted by read-only command", p.ID)
		}
	}
}

func TestScoreCmdJSON(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	resetScoreFlags()

	repo := initWorkspace(t, dir)
	seedRankedProjects(t, repo)

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"score", "--json", "--as-of", "2025-03-10"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("score failed: %v", err)
		}
	})

	var ranked []application.RankedProject
	if err := json.Unmarshal([]byte(out), &ranked); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked projects, got %d", len(ranked))
	}
	if ranked[0].Rank != 1 || ranked[0].Project.ID != "p-high" {
		t.Errorf("unexpected first row: %+v", ranked[0])
	}
}

func TestScoreCmdUnknownProject(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	resetScoreFlags()

	initWorkspace(t, dir)

	RootCmd.SetArgs([]string{"score", "ghost"})
	err := RootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown project")
	}
	if !strings.Contains(err.Error(), "project not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestScoreCmdRejectsBadAsOf(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	resetScoreFlags()

	initWorkspace(t, dir)

	RootCmd.SetArgs([]string{"score", "--as-of", "soon"})
	err := RootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for bad --as-of")
	}
	if !strings.Contains(err.Error(), "invalid --as-of") {
		t.Errorf("unexpected error: %v", err)
	}
}
