package application_test

import (
	"lodestar/pkg/domain"
	"lodestar/pkg/domain/tracker"
)

type MockRepo struct {
	Projects    []tracker.Project
	Tasks       []tracker.Task
	Notes       []tracker.Note
	Settings    *tracker.UserSettings
	Events      []domain.Event
	Initialized bool
	SaveError   error
	LoadError   error
}

func (m *MockRepo) Initialize() error   { m.Initialized = true; return nil }
func (m *MockRepo) IsInitialized() bool { return m.Initialized }

func (m *MockRepo) LoadProjects() ([]tracker.Project, error) { return m.Projects, m.LoadError }
func (m *MockRepo) SaveProjects(p []tracker.Project) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Projects = p
	return nil
}

func (m *MockRepo) LoadTasks() ([]tracker.Task, error) { return m.Tasks, m.LoadError }
func (m *MockRepo) SaveTasks(t []tracker.Task) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Tasks = t
	return nil
}

func (m *MockRepo) LoadNotes() ([]tracker.Note, error) { return m.Notes, m.LoadError }
func (m *MockRepo) SaveNotes(n []tracker.Note) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Notes = n
	return nil
}

func (m *MockRepo) LoadSettings() (*tracker.UserSettings, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Settings == nil {
		return tracker.DefaultUserSettings(), nil
	}
	return m.Settings, nil
}

func (m *MockRepo) SaveSettings(s *tracker.UserSettings) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Settings = s
	return nil
}

func (m *MockRepo) RecordEvent(e domain.Event) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Events = append(m.Events, e)
	return nil
}

func (m *MockRepo) LoadEvents() ([]domain.Event, error) { return m.Events, m.LoadError }
