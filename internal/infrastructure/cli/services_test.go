package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lodestar/pkg/domain/tracker"
)

func TestGetProjectRoot(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	t.Run("defaults to current directory", func(t *testing.T) {
		projectPath = ""
		root, err := getProjectRoot()
		if err != nil {
			t.Fatalf("getProjectRoot failed: %v", err)
		}
		resolved, _ := filepath.EvalSymlinks(root)
		expected, _ := filepath.EvalSymlinks(dir)
		if resolved != expected {
			t.Errorf("root = %s, want %s", resolved, expected)
		}
	})

	t.Run("honors --project override", func(t *testing.T) {
		other := t.TempDir()
		projectPath = other
		defer func() { projectPath = "" }()

		root, err := getProjectRoot()
		if err != nil {
			t.Fatalf("getProjectRoot failed: %v", err)
		}
		resolved, _ := filepath.EvalSymlinks(root)
		expected, _ := filepath.EvalSymlinks(other)
		if resolved != expected {
			t.Errorf("root = %s, want %s", resolved, expected)
		}
	})

	t.Run("rejects missing directory", func(t *testing.T) {
		projectPath = filepath.Join(dir, "does-not-exist")
		defer func() { projectPath = "" }()

		if _, err := getProjectRoot(); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("rejects plain file", func(t *testing.T) {
		file := filepath.Join(dir, "notadir")
		if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		projectPath = file
		defer func() { projectPath = "" }()

		if _, err := getProjectRoot(); err == nil {
			t.Error("expected error for non-directory path")
		}
	})
}

func TestParseAsOfFlag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date only",
			input: "2025-03-10",
			want:  time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339",
			input: "2025-03-10T12:00:00Z",
			want:  time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "next tuesday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAsOfFlag(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAsOfFlag failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("empty means now", func(t *testing.T) {
		before := time.Now()
		got, err := parseAsOfFlag("")
		if err != nil {
			t.Fatalf("parseAsOfFlag failed: %v", err)
		}
		if got.Before(before.Add(-time.Minute)) || got.After(before.Add(time.Minute)) {
			t.Errorf("empty flag should resolve near now, got %v", got)
		}
	})
}

func TestRequireWorkspace(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	services, err := loadServicesForCurrentDir()
	if err != nil {
		t.Fatalf("loadServices failed: %v", err)
	}
	if err := requireWorkspace(services); !errors.Is(err, tracker.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized before init, got %v", err)
	}

	initWorkspace(t, dir)

	services, err = loadServicesForCurrentDir()
	if err != nil {
		t.Fatalf("loadServices failed: %v", err)
	}
	if err := requireWorkspace(services); err != nil {
		t.Fatalf("expected nil after init, got %v", err)
	}
}
