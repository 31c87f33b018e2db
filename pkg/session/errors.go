package session

import "errors"

var (
	// ErrStoreClosed indicates an operation on a closed store
	ErrStoreClosed = errors.New("session.store_closed")

	// ErrNotBootstrapped indicates Login was called before Bootstrap settled
	// the initial state
	ErrNotBootstrapped = errors.New("session.not_bootstrapped")

	// ErrAlreadyAuthenticated indicates Login was called with a session
	// already active
	ErrAlreadyAuthenticated = errors.New("session.already_authenticated")
)
