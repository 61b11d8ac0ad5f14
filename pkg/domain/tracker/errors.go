package tracker

import "errors"

// Domain errors for snapshot operations.
var (
	// ErrProjectNotFound indicates the project ID is not in the snapshot.
	ErrProjectNotFound = errors.New("project not found")

	// ErrTaskNotFound indicates the task ID is not in the snapshot.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotInitialized indicates no workspace exists in this directory.
	ErrNotInitialized = errors.New("workspace not initialized")

	// ErrAlreadyInitialized indicates a workspace already exists here.
	ErrAlreadyInitialized = errors.New("workspace already initialized")

	// ErrNoStages indicates the user's workflow defines no stages.
	ErrNoStages = errors.New("no workflow stages configured")
)
