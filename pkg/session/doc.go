// Package session owns the storefront client's authenticated-user identity
// and bearer token: bootstrap from persisted storage, login, logout and
// profile maintenance.
//
// The life-cycle is an explicit four-state machine. A new store starts in
// StateBootstrapping; Bootstrap either finds no persisted credentials
// (StateUnauthenticated) or trusts them optimistically
// (StateOptimisticallyAuthenticated) while one asynchronous revalidation call
// confirms (StateAuthenticated) or revokes them. Revalidation is strictly
// fail-closed: any error, network failures included, purges the persisted
// token and user.
//
// Login is the one deliberate exception to fail-closed. The sign-in response
// is fresh server-issued data, so it is applied immediately and retained even
// if the follow-up profile refresh fails.
//
// The store is a page-lifetime singleton by convention, but it is constructed
// explicitly and passed by handle; nothing in this package is global.
//
//	var sess *session.Store
//	client := api.New(cfg, api.WithTokenSource(func() string {
//	    if sess == nil {
//	        return ""
//	    }
//	    return sess.Token()
//	}))
//	sess = session.New(client, kvStore, session.WithLogger(log))
//	sess.Bootstrap(ctx)
//	<-sess.Ready()
//
// In-memory state and persisted storage are written inside the same critical
// section, so they never observably diverge at the end of an operation.
package session
