package domain

import (
	"lodestar/pkg/domain/tracker"
)

// SnapshotRepository handles the persistence of tracker records in the
// .lodestar/ directory. The engine itself never touches storage; services
// load a snapshot through this interface, run the pure functions over it,
// and write derived scores back.
type SnapshotRepository interface {
	Initialize() error
	IsInitialized() bool
	LoadProjects() ([]tracker.Project, error)
	SaveProjects(projects []tracker.Project) error
	LoadTasks() ([]tracker.Task, error)
	SaveTasks(tasks []tracker.Task) error
	LoadNotes() ([]tracker.Note, error)
	SaveNotes(notes []tracker.Note) error
	LoadSettings() (*tracker.UserSettings, error)
	SaveSettings(settings *tracker.UserSettings) error
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
}
