package tracker

import (
	"encoding/json"
	"fmt"
)

// TaskStatus is the lifecycle state of a task. Completed is terminal: the
// engine never moves a task back and never clears completed_at.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// AllTaskStatuses returns all valid task statuses.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusCompleted}
}

// IsValid returns true if the value is a known task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further status change is allowed.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// DisplayName returns a human-readable display name for the status.
func (s TaskStatus) DisplayName() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// ParseTaskStatus parses a string into a TaskStatus.
func ParseTaskStatus(v string) (TaskStatus, error) {
	s := TaskStatus(v)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", v)
	}
	return s, nil
}

// MarshalJSON implements json.Marshaler interface.
func (s TaskStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler interface.
// An empty string is accepted as pending so sparse records decode cleanly.
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	if str == "" {
		*s = StatusPending
		return nil
	}

	parsed := TaskStatus(str)
	if !parsed.IsValid() {
		return fmt.Errorf("invalid task status: %s", str)
	}

	*s = parsed
	return nil
}
