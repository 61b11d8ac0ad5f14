package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"lodestar/pkg/domain/insights"
)

func TestInsightCommandsWithSparseData(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	initWorkspace(t, dir)

	commands := []string{"insights", "accuracy", "efficiency", "productivity"}
	for _, name := range commands {
		t.Run(name, func(t *testing.T) {
			out := captureStdout(t, func() {
				RootCmd.SetArgs([]string{name})
				if err := RootCmd.Execute(); err != nil {
					t.Errorf("%s failed: %v", name, err)
				}
			})
			if !strings.Contains(out, "Not enough data yet") {
				t.Errorf("%s should report sparse data: %q", name, out)
			}
		})
	}
}

func TestInsightsCmdWithHistory(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	insightsJSON = false

	repo := initWorkspace(t, dir)
	seedTrackedHistory(t, repo)

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"insights"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("insights failed: %v", err)
		}
	})

	if !strings.Contains(out, "Productivity insights") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "6 total, 6 completed (100.0%)") {
		t.Errorf("missing task counts: %q", out)
	}
	if !strings.Contains(out, "ratio 1.25") {
		t.Errorf("missing estimation ratio: %q", out)
	}
	if !strings.Contains(out, "Most productive:") {
		t.Errorf("missing productive day: %q", out)
	}
	if !strings.Contains(out, "Active projects:   2") {
		t.Errorf("missing project balance: %q", out)
	}
}

func TestInsightsCmdJSON(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	insightsJSON = false

	repo := initWorkspace(t, dir)
	seedTrackedHistory(t, repo)

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"insights", "--json"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("insights failed: %v", err)
		}
	})
	insightsJSON = false

	var result insights.UserInsights
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.TaskCount != 6 || result.CompletedCount != 6 {
		t.Errorf("unexpected counts: %+v", result)
	}
	if result.EstimationRatio != 1.25 {
		t.Errorf("ratio = %v, want 1.25", result.EstimationRatio)
	}
}

func TestAccuracyCmdWithHistory(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	repo := initWorkspace(t, dir)
	seedTrackedHistory(t, repo)

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"accuracy"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("accuracy failed: %v", err)
		}
	})

	if !strings.Contains(out, "Estimate accuracy by project type") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "client") || !strings.Contains(out, "learning") {
		t.Errorf("missing type rows: %q", out)
	}
	if !strings.Contains(out, "est   4.0h") || !strings.Contains(out, "actual   5.0h") {
		t.Errorf("missing averages: %q", out)
	}
}

func TestEfficiencyCmdWithHistory(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	repo := initWorkspace(t, dir)
	seedTrackedHistory(t, repo)

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"efficiency"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("efficiency failed: %v", err)
		}
	})

	if !strings.Contains(out, "Efficiency by project type") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "time ratio 1.25") {
		t.Errorf("missing time ratio: %q", out)
	}
}

func TestProductivityCmdWithHistory(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	repo := initWorkspace(t, dir)
	seedTrackedHistory(t, repo)

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"productivity"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("productivity failed: %v", err)
		}
	})

	if !strings.Contains(out, "Productivity by day") {
		t.Errorf("missing header: %q", out)
	}
	// All seven weekdays always print, including empty ones.
	for _, day := range []string{"Monday", "Tuesday", "Sunday"} {
		if !strings.Contains(out, day) {
			t.Errorf("missing %s row: %q", day, out)
		}
	}
	if !strings.Contains(out, "#") {
		t.Errorf("missing task bar: %q", out)
	}
}
