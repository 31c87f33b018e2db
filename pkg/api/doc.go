// Package api is the typed client for the PharmaGo REST API: authentication,
// profile, catalog and order endpoints. It is transport plumbing only; the
// session and cart stores own all client-side state.
//
// Requests that carry user input (sign-in, sign-up, order placement) are
// validated locally before any network call; failed validation returns
// ErrValidation and never reaches the wire. Failed API responses are decoded
// into *Error, preserving the server's human-readable message for display.
//
// A TokenSource hook injects the live bearer token into every request:
//
//	var sess *session.Store
//	client := api.New(cfg, api.WithTokenSource(func() string {
//	    return sess.Token()
//	}))
package api
