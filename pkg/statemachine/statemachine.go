package statemachine

import (
	"fmt"
	"sync"
)

// State is a named state of a machine.
type State string

// Event is a named trigger for a transition.
type Event string

// Guard decides at fire time whether a transition may proceed.
type Guard func(from State, event Event) bool

// Action runs after a transition has been committed. Actions must not call
// back into the machine.
type Action func(from, to State, event Event)

type transition struct {
	to     State
	guard  Guard
	action Action
}

// Machine is a thread-safe finite state machine with O(1) transition lookup.
// The zero value is not usable; construct with New.
type Machine struct {
	mu          sync.RWMutex
	initial     State
	current     State
	transitions map[State]map[Event]transition
}

// New creates a machine starting in the given state.
func New(initial State) *Machine {
	return &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[State]map[Event]transition),
	}
}

// TransitionOption customizes a single transition.
type TransitionOption func(*transition)

// WithGuard attaches a guard; the transition is rejected when it returns false.
func WithGuard(g Guard) TransitionOption {
	return func(t *transition) {
		if g != nil {
			t.guard = g
		}
	}
}

// WithAction attaches an action executed after the state change, while the
// machine's lock is still held.
func WithAction(a Action) TransitionOption {
	return func(t *transition) {
		if a != nil {
			t.action = a
		}
	}
}

// AddTransition registers from --event--> to. Registering the same
// (from, event) pair twice returns ErrDuplicateTransition.
func (m *Machine) AddTransition(from, to State, on Event, opts ...TransitionOption) error {
	if from == "" || to == "" || on == "" {
		return ErrInvalidTransition
	}

	tr := transition{to: to}
	for _, opt := range opts {
		opt(&tr)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	events, ok := m.transitions[from]
	if !ok {
		events = make(map[Event]transition)
		m.transitions[from] = events
	}
	if _, exists := events[on]; exists {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateTransition, from, on)
	}
	events[on] = tr
	return nil
}

// Fire applies the event to the current state and returns the new state.
// It returns ErrNoTransition when the current state has no transition for
// the event, and ErrTransitionRejected when a guard denies it.
func (m *Machine) Fire(on Event) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tr, ok := m.transitions[m.current][on]
	if !ok {
		return m.current, fmt.Errorf("%w: %s on %s", ErrNoTransition, m.current, on)
	}
	if tr.guard != nil && !tr.guard(m.current, on) {
		return m.current, fmt.Errorf("%w: %s on %s", ErrTransitionRejected, m.current, on)
	}

	from := m.current
	m.current = tr.to
	if tr.action != nil {
		tr.action(from, tr.to, on)
	}
	return m.current, nil
}

// CanFire reports whether Fire with the event would currently succeed.
func (m *Machine) CanFire(on Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tr, ok := m.transitions[m.current][on]
	if !ok {
		return false
	}
	return tr.guard == nil || tr.guard(m.current, on)
}

// Current returns the machine's current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is currently in any of the given states.
func (m *Machine) Is(states ...State) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range states {
		if m.current == s {
			return true
		}
	}
	return false
}

// Reset returns the machine to its initial state.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}
