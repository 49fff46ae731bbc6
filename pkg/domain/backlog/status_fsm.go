package backlog

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration.
// These must remain as untyped string constants for statekit.StateID
// compatibility. Values are kept in sync with DevStatus constants in status.go.
const (
	StateOnHold     = "on_hold"
	StateReady      = "ready_for_dev"
	StateInProgress = "in_progress"
	StateBlocked    = "blocked"
	StateCompleted  = "completed"
)

// init validates at startup that FSM state constants match DevStatus values.
func init() {
	stateMap := map[string]DevStatus{
		StateOnHold:     StatusOnHold,
		StateReady:      StatusReady,
		StateInProgress: StatusInProgress,
		StateBlocked:    StatusBlocked,
		StateCompleted:  StatusCompleted,
	}

	for fsmState, status := range stateMap {
		if fsmState != string(status) {
			panic(fmt.Sprintf("FSM state %q does not match DevStatus %q - constants are out of sync", fsmState, status))
		}
	}
}

// StoryContext carries state data.
type StoryContext struct {
	StoryID string
	Guard   func(storyID string, event string) bool
}

// StoryStateMachine defines the valid status transitions for a story.
type StoryStateMachine struct {
	interpreter *statekit.Interpreter[StoryContext]
}

// NewStoryStateMachine builds a machine starting at the given status. The
// optional guard can veto start/complete events (e.g. policy checks).
func NewStoryStateMachine(initialState string, storyID string, guard func(string, string) bool) (*StoryStateMachine, error) {
	if guard == nil {
		guard = func(string, string) bool { return true }
	}

	builder := statekit.NewMachine[StoryContext]("story-machine").
		WithInitial(statekit.StateID(initialState)).
		WithContext(StoryContext{
			StoryID: storyID,
			Guard:   guard,
		}).
		WithGuard("storyGuard", func(ctx StoryContext, e statekit.Event) bool {
			return ctx.Guard(ctx.StoryID, string(e.Type))
		})

	builder.State(StateOnHold).
		On("ready").Target(StateReady).
		Done()

	builder.State(StateReady).
		On("hold").Target(StateOnHold).
		On("start").Target(StateInProgress).Guard("storyGuard").
		On("block").Target(StateBlocked).
		Done()

	builder.State(StateInProgress).
		On("complete").Target(StateCompleted).Guard("storyGuard").
		On("block").Target(StateBlocked).
		On("stop").Target(StateReady).
		Done()

	builder.State(StateBlocked).
		On("unblock").Target(StateReady).
		Done()

	builder.State(StateCompleted).
		On("reopen").Target(StateReady).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &StoryStateMachine{interpreter: interpreter}, nil
}

// Transition attempts to move the story to a new status.
func (sm *StoryStateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.Current()

	if before != after {
		return nil
	}

	// If no transition matches or a guard fails, statekit leaves the state
	// unchanged, so an unchanged state means the event was rejected.
	return fmt.Errorf("the action '%s' is not allowed while the story is in the '%s' state", event, before)
}

// Current returns the current state identifier.
func (sm *StoryStateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// CurrentStatus returns the current state as a DevStatus value object.
func (sm *StoryStateMachine) CurrentStatus() DevStatus {
	return DevStatus(sm.Current())
}

// CanTransition checks if the given event is valid for the current status.
// This delegates to the DevStatus value object for consistency.
func (sm *StoryStateMachine) CanTransition(event string) bool {
	return sm.CurrentStatus().CanTransitionWith(event)
}

// ValidEvents returns the valid events for the current status.
func (sm *StoryStateMachine) ValidEvents() []string {
	return sm.CurrentStatus().ValidEvents()
}

// IsForecastable returns true if the story still counts as remaining work.
func (sm *StoryStateMachine) IsForecastable() bool {
	return sm.CurrentStatus().IsForecastable()
}
