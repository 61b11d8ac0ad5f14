package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"

	"lodestar/pkg/domain/tracker"
)

const LodestarDir = ".lodestar"
const ProjectsFile = "projects.json"
const TasksFile = "tasks.json"
const NotesFile = "notes.json"
const SettingsFile = "settings.yaml"
const ActivityFile = "activity.jsonl"

// FilesystemRepository persists the snapshot under root/.lodestar. Record
// files are the source of truth; the engine reads them, computes, and writes
// derived scores back through the same repository.
type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .lodestar directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	// Base directory is strictly root/.lodestar
	baseDir := filepath.Join(r.root, LodestarDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	// Check for traversal and ensure it's a direct child (no nested subdirs in .lodestar)
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, LodestarDir)
	// G301: Use 0700 for directories
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .lodestar directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, LodestarDir))
	return err == nil
}

// loadSnapshotFile reads one record file, gating decode behind the schema.
// A missing file is not an error: it reads as an empty snapshot. Reads retry
// briefly so a reader racing a writer sees the settled file.
func (r *FilesystemRepository) loadSnapshotFile(filename string, schema jsonSchema) ([]byte, error) {
	retryer := retry.New[[]byte](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) ([]byte, error) {
		path, err := r.ResolvePath(filename)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}

		if err := schema.Validate(data); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}

		return data, nil
	})
}

func (r *FilesystemRepository) saveSnapshotFile(filename string, v interface{}) error {
	path, err := r.ResolvePath(filename)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}

	// G306: Use 0600 for files
	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadProjects() ([]tracker.Project, error) {
	data, err := r.loadSnapshotFile(ProjectsFile, projectsSchema)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []tracker.Project{}, nil
	}

	var projects []tracker.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}
	if err := tracker.ValidateProjects(projects); err != nil {
		return nil, fmt.Errorf("%s: %w", ProjectsFile, err)
	}

	return projects, nil
}

func (r *FilesystemRepository) SaveProjects(projects []tracker.Project) error {
	if err := tracker.ValidateProjects(projects); err != nil {
		return err
	}
	return r.saveSnapshotFile(ProjectsFile, projects)
}

func (r *FilesystemRepository) LoadTasks() ([]tracker.Task, error) {
	data, err := r.loadSnapshotFile(TasksFile, tasksSchema)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []tracker.Task{}, nil
	}

	var tasks []tracker.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
	}
	if err := tracker.ValidateTasks(tasks); err != nil {
		return nil, fmt.Errorf("%s: %w", TasksFile, err)
	}

	return tasks, nil
}

func (r *FilesystemRepository) SaveTasks(tasks []tracker.Task) error {
	if err := tracker.ValidateTasks(tasks); err != nil {
		return err
	}
	return r.saveSnapshotFile(TasksFile, tasks)
}

func (r *FilesystemRepository) LoadNotes() ([]tracker.Note, error) {
	data, err := r.loadSnapshotFile(NotesFile, notesSchema)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []tracker.Note{}, nil
	}

	var notes []tracker.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notes: %w", err)
	}
	if err := tracker.ValidateNotes(notes); err != nil {
		return nil, fmt.Errorf("%s: %w", NotesFile, err)
	}

	return notes, nil
}

func (r *FilesystemRepository) SaveNotes(notes []tracker.Note) error {
	if err := tracker.ValidateNotes(notes); err != nil {
		return err
	}
	return r.saveSnapshotFile(NotesFile, notes)
}

// LoadSettings reads settings.yaml. A missing file yields the defaults, so a
// fresh workspace behaves sensibly before the user configures anything.
func (r *FilesystemRepository) LoadSettings() (*tracker.UserSettings, error) {
	retryer := retry.New[*tracker.UserSettings](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*tracker.UserSettings, error) {
		path, err := r.ResolvePath(SettingsFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return tracker.DefaultUserSettings(), nil
			}
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}

		var settings tracker.UserSettings
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
		}
		if err := tracker.ValidateStruct(settings); err != nil {
			return nil, fmt.Errorf("%s: %w", SettingsFile, err)
		}

		return &settings, nil
	})
}

func (r *FilesystemRepository) SaveSettings(settings *tracker.UserSettings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}
	if err := tracker.ValidateStruct(settings); err != nil {
		return err
	}

	path, err := r.ResolvePath(SettingsFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
