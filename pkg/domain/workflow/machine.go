package workflow

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"lodestar/pkg/domain/tracker"
)

// Events understood by the stage machine.
const (
	EventAdvance = "advance"
	EventRevert  = "revert"
)

// StageContext carries the task the machine is driving.
type StageContext struct {
	TaskID string
}

// StageMachine interprets one task's position in the user's workflow as a
// linear state machine: each stage links forward and backward to its
// neighbors, so progression happens one step at a time in either direction.
type StageMachine struct {
	list        StageList
	interpreter *statekit.Interpreter[StageContext]
}

// NewStageMachine builds a machine over the stage list, positioned at the
// task's current stage. An empty current stage starts at the first stage;
// a stage outside the workflow is rejected.
func NewStageMachine(list StageList, taskID, current string) (*StageMachine, error) {
	if list.Len() == 0 {
		return nil, fmt.Errorf("workflow has no stages")
	}

	initial := 0
	if current != "" {
		idx, ok := list.Index(current)
		if !ok {
			return nil, &UnknownStageError{Stage: current, Known: list.Names()}
		}
		initial = idx
	}

	builder := statekit.NewMachine[StageContext]("stage-machine").
		WithInitial(stateID(list.At(initial).Name)).
		WithContext(StageContext{TaskID: taskID})

	// Every state needs at least one transition for the builder chain; a
	// lone stage loops onto itself, which send() reads as no movement.
	if list.Len() == 1 {
		only := stateID(list.At(0).Name)
		builder.State(only).
			On(EventAdvance).Target(only).
			Done()
	} else {
		for i := 0; i < list.Len(); i++ {
			id := stateID(list.At(i).Name)
			switch {
			case i == 0:
				builder.State(id).
					On(EventAdvance).Target(stateID(list.At(i + 1).Name)).
					Done()
			case i == list.Len()-1:
				builder.State(id).
					On(EventRevert).Target(stateID(list.At(i - 1).Name)).
					Done()
			default:
				builder.State(id).
					On(EventAdvance).Target(stateID(list.At(i + 1).Name)).
					On(EventRevert).Target(stateID(list.At(i - 1).Name)).
					Done()
			}
		}
	}

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build stage machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &StageMachine{list: list, interpreter: interpreter}, nil
}

func stateID(name string) statekit.StateID {
	return statekit.StateID(tracker.NormalizeStageName(name))
}

// Current returns the canonical name of the machine's current stage.
func (m *StageMachine) Current() string {
	value := string(m.interpreter.State().Value)
	if stage, ok := m.list.Lookup(value); ok {
		return stage.Name
	}
	return value
}

// IsFinal reports whether the task sits in the last workflow stage.
func (m *StageMachine) IsFinal() bool {
	return m.list.IsFinal(m.Current())
}

// send fires an event and reports whether the state changed. statekit keeps
// the state unchanged when no transition matches.
func (m *StageMachine) send(event string) bool {
	before := m.interpreter.State().Value
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	return m.interpreter.State().Value != before
}

// Advance moves the task one stage forward and returns the new stage name.
func (m *StageMachine) Advance() (string, error) {
	if !m.send(EventAdvance) {
		return "", fmt.Errorf("stage %q is the final stage", m.Current())
	}
	return m.Current(), nil
}

// Revert moves the task one stage back and returns the new stage name.
func (m *StageMachine) Revert() (string, error) {
	if !m.send(EventRevert) {
		return "", fmt.Errorf("stage %q is the first stage", m.Current())
	}
	return m.Current(), nil
}

// TransitionTo validates and performs a move to the named stage. The target
// must be adjacent to the current stage in workflow order.
func (m *StageMachine) TransitionTo(target string) (string, error) {
	targetIdx, ok := m.list.Index(target)
	if !ok {
		return "", &UnknownStageError{Stage: target, Known: m.list.Names()}
	}

	currentIdx, _ := m.list.Index(m.Current())
	switch targetIdx - currentIdx {
	case 0:
		return "", fmt.Errorf("task is already in stage %q", m.Current())
	case 1:
		return m.Advance()
	case -1:
		return m.Revert()
	default:
		return "", &SkipStageError{From: m.Current(), To: m.list.At(targetIdx).Name}
	}
}

// UnknownStageError reports a stage name that is not part of the workflow.
type UnknownStageError struct {
	Stage string
	Known []string
}

func (e *UnknownStageError) Error() string {
	return fmt.Sprintf("unknown stage %q", e.Stage)
}

// SkipStageError reports an attempt to jump over intermediate stages.
type SkipStageError struct {
	From string
	To   string
}

func (e *SkipStageError) Error() string {
	return fmt.Sprintf("cannot move from stage %q directly to %q: stages advance one step at a time", e.From, e.To)
}
