package tracker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Record IDs are prefixed UUIDs so a bare ID in a log line or snapshot file
// still tells you which kind of record it names.
const (
	projectIDPrefix = "proj"
	taskIDPrefix    = "task"
	noteIDPrefix    = "note"
)

// idPattern matches IDs accepted at the boundary: a letter followed by
// alphanumerics, hyphens, or underscores.
var idPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// NewProjectID generates a fresh project identifier.
func NewProjectID() string {
	return projectIDPrefix + "-" + uuid.New().String()
}

// NewTaskID generates a fresh task identifier.
func NewTaskID() string {
	return taskIDPrefix + "-" + uuid.New().String()
}

// NewNoteID generates a fresh note identifier.
func NewNoteID() string {
	return noteIDPrefix + "-" + uuid.New().String()
}

// ValidateID checks a caller-supplied record ID. Generated IDs always pass;
// hand-written ones are accepted as long as they fit the pattern.
func ValidateID(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if !idPattern.MatchString(value) {
		return fmt.Errorf("invalid id format: %s", value)
	}
	return nil
}
