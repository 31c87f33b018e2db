// Package statemachine implements a small table-driven finite state machine.
// It backs the session store's authentication life-cycle, where the legal
// moves between bootstrap, optimistic and settled states are a fixed table
// rather than nested conditionals.
//
//	m := statemachine.New("idle",
//	    statemachine.Transition{From: "idle", To: "busy", Event: "start"},
//	    statemachine.Transition{From: "busy", To: "idle", Event: "stop"},
//	)
//	_ = m.Fire(ctx, "start")
//
// Fire rejects undeclared (state, event) pairs with ErrNoTransition, which
// makes illegal transitions observable in tests instead of silently racing.
package statemachine
