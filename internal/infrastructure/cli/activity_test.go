package cli

import (
	"strings"
	"testing"
)

func TestActivityCmdTimeline(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	activitySince = ""
	resetScoreFlags()

	repo := initWorkspace(t, dir)
	seedRankedProjects(t, repo)

	// A scoring run appends to the log.
	_ = captureStdout(t, func() {
		RootCmd.SetArgs([]string{"score"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("score failed: %v", err)
		}
	})

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"activity"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("activity failed: %v", err)
		}
	})

	if !strings.Contains(out, "Workspace activity") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "workspace.init") {
		t.Errorf("missing init event: %q", out)
	}
	if !strings.Contains(out, "score.run") {
		t.Errorf("missing scoring event: %q", out)
	}
	// Newest first.
	if strings.Index(out, "score.run") > strings.Index(out, "workspace.init") {
		t.Errorf("events should print newest first: %q", out)
	}
}

func TestActivityCmdSince(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	activitySince = ""

	initWorkspace(t, dir)

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"activity", "--since", "2099-01-01"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("activity failed: %v", err)
		}
	})
	activitySince = ""

	if !strings.Contains(out, "No activity recorded yet.") {
		t.Errorf("future cutoff should filter everything: %q", out)
	}
}

func TestActivityVerifyCmd(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	initWorkspace(t, dir)

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"activity", "verify"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("verify failed: %v", err)
		}
	})

	if !strings.Contains(out, "Activity log is intact and verified.") {
		t.Errorf("unexpected output: %q", out)
	}
}
