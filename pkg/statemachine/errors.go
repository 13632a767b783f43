package statemachine

import "errors"

var (
	// ErrInvalidTransition is returned when from, to, or event is empty.
	ErrInvalidTransition = errors.New("invalid transition: from, to, and event must be non-empty")

	// ErrDuplicateTransition is returned when a (from, event) pair is registered twice.
	ErrDuplicateTransition = errors.New("transition already registered")

	// ErrNoTransition is returned by Fire when the current state has no
	// transition for the event.
	ErrNoTransition = errors.New("no transition available")

	// ErrTransitionRejected is returned by Fire when a guard denies the transition.
	ErrTransitionRejected = errors.New("transition rejected by guard")
)
