package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pharmago/clientkit/pkg/api"
)

// Bootstrap settles the initial state from persisted storage. Persisted
// credentials are trusted immediately (optimistic render), then confirmed by
// one asynchronous profile revalidation; any revalidation error purges the
// persisted credentials unconditionally. Safe to call multiple times; only
// the first call does anything.
func (s *Store) Bootstrap(ctx context.Context) {
	s.bootstrapOnce.Do(func() {
		s.bootstrap(ctx)
	})
}

func (s *Store) bootstrap(ctx context.Context) {
	s.mu.Lock()

	token, tokenErr := s.storage.Get(ctx, s.tokenKey)
	rawUser, userErr := s.storage.Get(ctx, s.userKey)

	// A zero ID means the value decoded but holds no identity (e.g. the
	// literal "null"), which is as unusable as garbage bytes.
	var user api.User
	persisted := tokenErr == nil && token != "" &&
		userErr == nil && json.Unmarshal([]byte(rawUser), &user) == nil &&
		user.ID != 0

	if !persisted {
		// Nothing usable persisted. Corrupt or partial leftovers are treated
		// as absence and swept.
		s.purgeLocked(ctx)
		_ = s.machine.Fire(ctx, eventBootstrapMiss)
		s.mu.Unlock()
		close(s.ready)
		return
	}

	s.token = token
	s.user = &user
	_ = s.machine.Fire(ctx, eventBootstrapHit)
	generation := s.generation
	s.mu.Unlock()

	s.log.DebugContext(ctx, "bootstrap found persisted session",
		slog.Int64("user_id", user.ID))

	// Revalidation outlives the caller's context: bootstrap is not
	// cancellable, only its result can be discarded.
	go s.revalidate(context.WithoutCancel(ctx), generation)
}

// revalidate confirms or revokes the optimistic session. Any error is
// fail-closed: the cached credentials are purged rather than trusted offline.
func (s *Store) revalidate(ctx context.Context, generation uint64) {
	defer close(s.ready)

	profile, err := s.client.Profile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.generation != generation {
		s.log.DebugContext(ctx, "discarding stale revalidation result")
		return
	}

	if err != nil {
		s.purgeLocked(ctx)
		_ = s.machine.Fire(ctx, eventRevalidateFailed)
		s.log.WarnContext(ctx, "session revalidation failed, credentials purged",
			slog.Any("error", err))
		return
	}

	s.applyUserLocked(ctx, profile)
	_ = s.machine.Fire(ctx, eventRevalidateOK)
	s.log.DebugContext(ctx, "session revalidated", slog.Int64("user_id", profile.ID))
}

// Login signs in with the given credentials. The sign-in response populates
// the store immediately; a best-effort profile refresh follows, and if the
// refresh fails the response data is kept rather than rolled back. On sign-in
// failure the store is left untouched and the error carries the server's
// user-displayable message.
func (s *Store) Login(ctx context.Context, creds api.Credentials) error {
	switch s.State() {
	case StateBootstrapping:
		return ErrNotBootstrapped
	case StateAuthenticated, StateOptimisticallyAuthenticated:
		return ErrAlreadyAuthenticated
	}

	resp, err := s.client.SignIn(ctx, creds)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	if err := s.machine.Fire(ctx, eventLoginOK); err != nil {
		// A concurrent login settled first.
		s.mu.Unlock()
		return ErrAlreadyAuthenticated
	}

	s.applyTokenLocked(ctx, resp.Token)
	s.applyUserLocked(ctx, userFromAuth(resp))
	generation := s.generation
	s.mu.Unlock()

	s.log.DebugContext(ctx, "signed in", slog.Int64("user_id", resp.ID))

	// The sign-in response carries only the identity core; fetch the full
	// profile while tolerating failure, since the optimistic data is fresh
	// server-issued data already.
	profile, err := s.client.Profile(ctx)
	if err != nil {
		s.log.DebugContext(ctx, "post-login profile refresh failed, keeping sign-in data",
			slog.Any("error", err))
		return nil
	}

	s.mu.Lock()
	if !s.closed && s.generation == generation {
		s.applyUserLocked(ctx, profile)
	}
	s.mu.Unlock()
	return nil
}

// Register creates a new account. It does not sign the user in.
func (s *Store) Register(ctx context.Context, reg api.Registration) error {
	_, err := s.client.SignUp(ctx, reg)
	return err
}

// Logout purges the session synchronously and fires a server-side sign-out
// whose result is neither awaited nor required. It has no failure mode
// visible to the caller.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	s.purgeLocked(ctx)
	if s.machine.Can(eventLogout) {
		_ = s.machine.Fire(ctx, eventLogout)
	}
	s.mu.Unlock()

	go func() {
		if err := s.client.SignOut(context.WithoutCancel(ctx)); err != nil {
			s.log.DebugContext(ctx, "server-side sign-out failed", slog.Any("error", err))
		}
	}()
}

// UpdateProfile applies a partial profile update. It returns immediately when
// no user is present. On success the stored user is replaced wholesale with
// the server's response; on failure the prior user is left intact.
func (s *Store) UpdateProfile(ctx context.Context, update api.ProfileUpdate) error {
	s.mu.RLock()
	if s.user == nil {
		s.mu.RUnlock()
		return nil
	}
	generation := s.generation
	s.mu.RUnlock()

	updated, err := s.client.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.generation != generation {
		s.log.DebugContext(ctx, "discarding stale profile update result")
		return nil
	}

	s.applyUserLocked(ctx, updated)
	return nil
}

// userFromAuth builds the provisional user record shown until the full
// profile arrives.
func userFromAuth(resp *api.AuthResponse) *api.User {
	return &api.User{
		ID:              resp.ID,
		Name:            resp.Name,
		Email:           resp.Email,
		Role:            resp.Role,
		IsActive:        true,
		IsEmailVerified: true,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
}
