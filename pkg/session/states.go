package session

import "github.com/pharmago/clientkit/pkg/statemachine"

// State is the session store's authentication state.
type State = statemachine.State

const (
	// StateBootstrapping is the initial state while persisted credentials are
	// being read and revalidated.
	StateBootstrapping State = "bootstrapping"

	// StateUnauthenticated means no valid session exists.
	StateUnauthenticated State = "unauthenticated"

	// StateOptimisticallyAuthenticated means persisted credentials are being
	// trusted while server revalidation is still in flight.
	StateOptimisticallyAuthenticated State = "optimistically_authenticated"

	// StateAuthenticated means the server has confirmed the session.
	StateAuthenticated State = "authenticated"
)

const (
	eventBootstrapMiss    statemachine.Event = "bootstrap_miss"
	eventBootstrapHit     statemachine.Event = "bootstrap_hit"
	eventRevalidateOK     statemachine.Event = "revalidate_ok"
	eventRevalidateFailed statemachine.Event = "revalidate_failed"
	eventLoginOK          statemachine.Event = "login_ok"
	eventLogout           statemachine.Event = "logout"
)

// newMachine builds the session life-cycle machine. Keeping the legal moves
// in one table makes the trust-cache-then-confirm-or-revoke contract
// checkable on its own.
func newMachine() *statemachine.Machine {
	return statemachine.New(StateBootstrapping,
		statemachine.Transition{From: StateBootstrapping, To: StateUnauthenticated, Event: eventBootstrapMiss},
		statemachine.Transition{From: StateBootstrapping, To: StateOptimisticallyAuthenticated, Event: eventBootstrapHit},
		statemachine.Transition{From: StateOptimisticallyAuthenticated, To: StateAuthenticated, Event: eventRevalidateOK},
		statemachine.Transition{From: StateOptimisticallyAuthenticated, To: StateUnauthenticated, Event: eventRevalidateFailed},
		statemachine.Transition{From: StateOptimisticallyAuthenticated, To: StateUnauthenticated, Event: eventLogout},
		statemachine.Transition{From: StateUnauthenticated, To: StateAuthenticated, Event: eventLoginOK},
		statemachine.Transition{From: StateAuthenticated, To: StateUnauthenticated, Event: eventLogout},
	)
}
