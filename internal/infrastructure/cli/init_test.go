package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCmd(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	out := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"init", "Tester"})
		if err := RootCmd.Execute(); err != nil {
			t.Errorf("init failed: %v", err)
		}
	})

	if !strings.Contains(out, "Initialized lodestar workspace") {
		t.Errorf("missing confirmation in output: %q", out)
	}
	if !strings.Contains(out, "Backlog, In Progress, Review, Done") {
		t.Errorf("missing default stages in output: %q", out)
	}

	if _, err := os.Stat(filepath.Join(dir, ".lodestar")); err != nil {
		t.Errorf(".lodestar directory not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".lodestar", "settings.yaml")); err != nil {
		t.Errorf("settings.yaml not created: %v", err)
	}
}

func TestInitCmdAlreadyInitialized(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()

	RootCmd.SetArgs([]string{"init"})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("first init failed: %v", err)
	}

	RootCmd.SetArgs([]string{"init"})
	err := RootCmd.Execute()
	if err == nil {
		t.Fatal("second init should fail")
	}
	if !strings.Contains(err.Error(), "already initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}
