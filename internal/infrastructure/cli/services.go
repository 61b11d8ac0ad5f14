package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lodestar/internal/infrastructure/wiring"
	"lodestar/pkg/domain/tracker"
)

func loadServices(root string) (*wiring.AppServices, error) {
	services, loadErr := wiring.BuildAppServices(root)
	if services == nil {
		return nil, fmt.Errorf("failed to build services: %w", loadErr)
	}
	if loadErr != nil {
		fmt.Printf("Warning: %v\n", loadErr)
	}
	return services, nil
}

func getProjectRoot() (string, error) {
	if projectPath != "" {
		abs, err := filepath.Abs(projectPath)
		if err != nil {
			return "", fmt.Errorf("invalid project path %q: %w", projectPath, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("project path %q: %w", abs, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project path %q is not a directory", abs)
		}
		return abs, nil
	}
	return os.Getwd()
}

func loadServicesForCurrentDir() (*wiring.AppServices, error) {
	root, err := getProjectRoot()
	if err != nil {
		return nil, err
	}
	return loadServices(root)
}

// requireWorkspace gates commands that read or mutate the snapshot. Commands
// that work on a fresh directory (init, mcp) skip it.
func requireWorkspace(services *wiring.AppServices) error {
	if !services.Workspace.Repo.IsInitialized() {
		return tracker.ErrNotInitialized
	}
	return nil
}

// parseAsOfFlag accepts an empty string (now), a date (2006-01-02), or RFC3339.
func parseAsOfFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of value %q: use YYYY-MM-DD or RFC3339", value)
	}
	return t, nil
}
