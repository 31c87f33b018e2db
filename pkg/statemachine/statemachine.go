package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// State identifies a state by name.
type State string

// Event identifies a transition trigger by name.
type Event string

// Action runs side effects while a transition is in flight. Returning an
// error aborts the transition and leaves the machine in its current state.
type Action func(ctx context.Context, from, to State, event Event) error

// Transition declares that event moves the machine from one state to another,
// running the optional actions first.
type Transition struct {
	From    State
	To      State
	Event   Event
	Actions []Action
}

// Machine is a thread-safe finite state machine over a fixed transition
// table. Lookups are O(1) on (current state, event).
type Machine struct {
	mu          sync.RWMutex
	initial     State
	current     State
	transitions map[State]map[Event]Transition
}

// New creates a machine in the given initial state with the given
// transitions. Declaring two transitions for the same (from, event) pair is a
// programming error and panics.
func New(initial State, transitions ...Transition) *Machine {
	m := &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[State]map[Event]Transition),
	}

	for _, t := range transitions {
		if _, ok := m.transitions[t.From]; !ok {
			m.transitions[t.From] = make(map[Event]Transition)
		}
		if _, ok := m.transitions[t.From][t.Event]; ok {
			panic(fmt.Sprintf("statemachine: duplicate transition %s + %s", t.From, t.Event))
		}
		m.transitions[t.From][t.Event] = t
	}

	return m
}

// Current returns the machine's current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire applies event to the current state. If no transition is declared for
// the pair, ErrNoTransition is returned and the state is unchanged. Actions
// run before the state change; the first action error aborts the transition.
func (m *Machine) Fire(ctx context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transitions[m.current][event]
	if !ok {
		return fmt.Errorf("%w: %s + %s", ErrNoTransition, m.current, event)
	}

	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, t.From, t.To, event); err != nil {
			return fmt.Errorf("%w: %w", ErrActionFailed, err)
		}
	}

	m.current = t.To
	return nil
}

// Can reports whether event is fireable from the current state.
func (m *Machine) Can(event Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.transitions[m.current][event]
	return ok
}

// Reset returns the machine to its initial state without running actions.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}
