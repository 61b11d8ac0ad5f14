package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildBinary compiles the lodestar binary once per test run.
func buildBinary(t *testing.T) string {
	t.Helper()

	repoRoot, err := filepath.Abs("../..")
	if err != nil {
		t.Fatal(err)
	}
	binPath := filepath.Join(t.TempDir(), "lodestar")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/lodestar")
	cmd.Dir = repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

func TestHappyPath(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e in short mode")
	}

	bin := buildBinary(t)

	tempDir, err := os.MkdirTemp("", "lodestar-e2e-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	// Helper to run lodestar
	run := func(args ...string) string {
		cmd := exec.Command(bin, args...)
		cmd.Dir = tempDir
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("lodestar %v failed: %v\nOutput: %s", args, err, output)
		}
		return string(output)
	}

	// Helper that allows failure (for commands expected to exit nonzero)
	runAllowFail := func(args ...string) string {
		cmd := exec.Command(bin, args...)
		cmd.Dir = tempDir
		output, _ := cmd.CombinedOutput()
		return string(output)
	}

	// 1. Init
	t.Log("Running lodestar init...")
	out := run("init", "E2E Tester")
	if !strings.Contains(out, "Initialized lodestar workspace") {
		t.Errorf("Unexpected init output: %s", out)
	}
	if _, err := os.Stat(filepath.Join(tempDir, ".lodestar", "settings.yaml")); os.IsNotExist(err) {
		t.Error(".lodestar/settings.yaml missing")
	}

	// 2. Seed the snapshot the way a user edits it: directly in the files.
	projectsPath := filepath.Join(tempDir, ".lodestar", "projects.json")
	projectsContent := `[
  {"id": "p-site", "name": "Client Site", "budget": 12000, "end_date": "2030-06-01T00:00:00Z", "user_priority": 4, "project_type": "client", "complexity": "medium"},
  {"id": "p-zine", "name": "Photo Zine", "project_type": "hobby", "complexity": "easy"}
]`
	if err := os.WriteFile(projectsPath, []byte(projectsContent), 0644); err != nil {
		t.Fatal(err)
	}

	tasksPath := filepath.Join(tempDir, ".lodestar", "tasks.json")
	tasksContent := `[
  {"id": "t-nav", "project_id": "p-site", "description": "Navigation menu", "estimated_time": 3}
]`
	if err := os.WriteFile(tasksPath, []byte(tasksContent), 0644); err != nil {
		t.Fatal(err)
	}

	// 3. Score and rank
	t.Log("Running lodestar score...")
	out = run("score", "--as-of", "2030-05-20")
	if !strings.Contains(out, "Priority ranking") {
		t.Errorf("Score output missing ranking header: %s", out)
	}
	if !strings.Contains(out, "Client Site") || !strings.Contains(out, "Photo Zine") {
		t.Errorf("Score output missing projects: %s", out)
	}
	if strings.Index(out, "Client Site") > strings.Index(out, "Photo Zine") {
		t.Errorf("Funded deadline project should outrank the hobby: %s", out)
	}

	// Scores are persisted
	data, err := os.ReadFile(projectsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "priority_score") {
		t.Error("projects.json missing persisted scores")
	}

	// 4. Single project explain (read-only)
	out = run("score", "p-site", "--as-of", "2030-05-20", "--explain")
	if !strings.Contains(out, "Client Site: priority") {
		t.Errorf("Unexpected single score output: %s", out)
	}
	if !strings.Contains(out, "timeline:") {
		t.Errorf("Missing breakdown: %s", out)
	}

	// 5. Stage moves
	t.Log("Running lodestar stages...")
	out = run("stages", "--task", "t-nav")
	if !strings.Contains(out, "moved to stage Backlog") {
		t.Errorf("Unexpected stage output: %s", out)
	}
	out = run("stages")
	if !strings.Contains(out, "Backlog") {
		t.Errorf("Stage list missing Backlog: %s", out)
	}

	// Skipping ahead fails with a hint on stderr
	out = runAllowFail("stages", "--task", "t-nav", "--to", "Done")
	if !strings.Contains(out, "one step at a time") {
		t.Errorf("Expected skip rejection: %s", out)
	}

	// 6. Insights are honest about sparse data
	out = run("insights")
	if !strings.Contains(out, "Not enough data yet") {
		t.Errorf("Expected sparse-data notice: %s", out)
	}

	// 7. AI context renders settings
	out = run("context")
	if !strings.Contains(out, "max_daily_hours: 8") {
		t.Errorf("Context missing settings: %s", out)
	}

	// 8. Activity log is chained and verifiable
	out = run("activity")
	if !strings.Contains(out, "workspace.init") || !strings.Contains(out, "score.run") {
		t.Errorf("Activity timeline incomplete: %s", out)
	}
	out = run("activity", "verify")
	if !strings.Contains(out, "intact") {
		t.Errorf("Chain verification failed: %s", out)
	}
}
