package statemachine

import "errors"

var (
	// ErrNoTransition indicates the event is not declared for the current state
	ErrNoTransition = errors.New("statemachine.no_transition")

	// ErrActionFailed indicates a transition action returned an error
	ErrActionFailed = errors.New("statemachine.action_failed")
)
