package wiring

import (
	"lodestar/pkg/application"
	"lodestar/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Repo     *storage.FilesystemRepository
	Activity *application.ActivityService
}

func NewWorkspace(root string) *Workspace {
	repo := storage.NewFilesystemRepository(root)

	return &Workspace{
		Repo:     repo,
		Activity: application.NewActivityService(repo),
	}
}
