package cli

import (
	"errors"
	"fmt"

	"lodestar/pkg/domain/tracker"
	"lodestar/pkg/domain/workflow"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var unknownErr *workflow.UnknownStageError
	if errors.As(err, &unknownErr) {
		return NewCLIError(
			unknownErr.Error(),
			"Run 'lodestar stages' to list the configured stages",
			err,
		)
	}

	var skipErr *workflow.SkipStageError
	if errors.As(err, &skipErr) {
		return NewCLIError(
			skipErr.Error(),
			fmt.Sprintf("Move the task to an adjacent stage first; '%s' is not next to '%s'", skipErr.To, skipErr.From),
			err,
		)
	}

	switch {
	case errors.Is(err, tracker.ErrNotInitialized):
		return NewCLIError("no workspace found", "Run 'lodestar init' to create one here", err)
	case errors.Is(err, tracker.ErrAlreadyInitialized):
		return NewCLIError("workspace already initialized", "Edit the files under .lodestar instead of re-initializing", err)
	case errors.Is(err, tracker.ErrProjectNotFound):
		return NewCLIError("project not found", "Run 'lodestar score' to list known projects", err)
	case errors.Is(err, tracker.ErrTaskNotFound):
		return NewCLIError("task not found", "Check the task id in .lodestar/tasks.json", err)
	case errors.Is(err, tracker.ErrNoStages):
		return NewCLIError("no workflow stages configured", "Add stages to .lodestar/settings.yaml, or rerun 'lodestar init' in a fresh directory", err)
	}

	return err
}
