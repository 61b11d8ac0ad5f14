// Package workflow models the user's ordered stage list and drives task
// stage progression through it. Stages come from UserSettings; a task's
// free-text stage field is matched against them case-insensitively.
package workflow

import (
	"fmt"

	"lodestar/pkg/domain/tracker"
)

// StageList is the user's ordered workflow, validated once at construction.
// Stage names must be non-empty and unique after normalization.
type StageList struct {
	stages []tracker.Stage
	index  map[string]int
}

// NewStageList builds a validated stage list from the settings' stages.
func NewStageList(stages []tracker.Stage) (StageList, error) {
	if len(stages) == 0 {
		return StageList{}, fmt.Errorf("workflow has no stages")
	}

	ordered := make([]tracker.Stage, len(stages))
	copy(ordered, stages)

	index := make(map[string]int, len(ordered))
	for i, s := range ordered {
		key := tracker.NormalizeStageName(s.Name)
		if key == "" {
			return StageList{}, fmt.Errorf("stage %d has an empty name", i)
		}
		if _, dup := index[key]; dup {
			return StageList{}, fmt.Errorf("duplicate stage name: %s", s.Name)
		}
		index[key] = i
	}

	return StageList{stages: ordered, index: index}, nil
}

// Len returns the number of stages.
func (l StageList) Len() int {
	return len(l.stages)
}

// At returns the stage at position i.
func (l StageList) At(i int) tracker.Stage {
	return l.stages[i]
}

// First returns the opening stage of the workflow.
func (l StageList) First() tracker.Stage {
	return l.stages[0]
}

// Names returns the canonical stage names in workflow order.
func (l StageList) Names() []string {
	names := make([]string, len(l.stages))
	for i, s := range l.stages {
		names[i] = s.Name
	}
	return names
}

// Index returns the position of the named stage, matching
// case-insensitively.
func (l StageList) Index(name string) (int, bool) {
	i, ok := l.index[tracker.NormalizeStageName(name)]
	return i, ok
}

// Lookup resolves a free-text stage value to its canonical stage record.
func (l StageList) Lookup(name string) (tracker.Stage, bool) {
	i, ok := l.Index(name)
	if !ok {
		return tracker.Stage{}, false
	}
	return l.stages[i], true
}

// Contains reports whether the named stage is part of the workflow.
func (l StageList) Contains(name string) bool {
	_, ok := l.Index(name)
	return ok
}

// IsFinal reports whether the named stage is the last one.
func (l StageList) IsFinal(name string) bool {
	i, ok := l.Index(name)
	return ok && i == len(l.stages)-1
}
