package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/pharmago/clientkit/pkg/api"
	"github.com/pharmago/clientkit/pkg/kv"
	"github.com/pharmago/clientkit/pkg/statemachine"
)

// Client is the slice of the API surface the session store depends on.
// *api.Client satisfies it; tests plug in fakes.
type Client interface {
	SignIn(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	SignUp(ctx context.Context, reg api.Registration) (*api.Message, error)
	SignOut(ctx context.Context) error
	Profile(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.User, error)
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for life-cycle events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStorageKeys overrides the persisted-storage keys for the token and the
// user record.
func WithStorageKeys(tokenKey, userKey string) Option {
	return func(s *Store) {
		if tokenKey != "" {
			s.tokenKey = tokenKey
		}
		if userKey != "" {
			s.userKey = userKey
		}
	}
}

// Store owns the authenticated-user identity and bearer token for the
// lifetime of the process. It is created in StateBootstrapping; Bootstrap
// must be called once to settle the initial state from persisted storage.
//
// Every mutation writes persisted storage inside the same critical section
// as the in-memory change, so storage and memory never observably diverge.
type Store struct {
	mu      sync.RWMutex
	client  Client
	storage kv.Store
	log     *slog.Logger
	machine *statemachine.Machine

	user  *api.User
	token string

	tokenKey string
	userKey  string

	// generation invalidates in-flight async results: any result produced
	// under an older generation is discarded instead of being applied to a
	// store that has since logged out or closed.
	generation uint64
	closed     bool

	bootstrapOnce sync.Once
	ready         chan struct{}
}

// New creates a session store over the given API client and storage backend.
func New(client Client, storage kv.Store, opts ...Option) *Store {
	s := &Store{
		client:   client,
		storage:  storage,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		machine:  newMachine(),
		tokenKey: "token",
		userKey:  "user",
		ready:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns the current authentication state.
func (s *Store) State() State {
	return s.machine.Current()
}

// Token returns the current bearer token, or "" when no session is active.
// Install it as the api.Client's TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user record, or nil.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated reports whether both a token and a user record are present.
// It is true in the optimistic window as well, enabling optimistic render.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Ready returns a channel closed once bootstrap (including revalidation, if
// any) has settled. Callers that need a confirmed state wait on it; callers
// happy with the optimistic state don't.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Close discards the store. Results of calls still in flight are dropped
// instead of being applied to a torn-down store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		s.generation++
	}
	return nil
}

// applyUserLocked replaces the user wholesale and mirrors it to storage.
// Callers must hold the write lock.
func (s *Store) applyUserLocked(ctx context.Context, user *api.User) {
	s.user = user

	data, err := json.Marshal(user)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to encode user record", slog.Any("error", err))
		return
	}
	if err := s.storage.Set(ctx, s.userKey, string(data)); err != nil {
		s.log.ErrorContext(ctx, "failed to persist user record", slog.Any("error", err))
	}
}

// applyTokenLocked replaces the token and mirrors it to storage. Callers must
// hold the write lock.
func (s *Store) applyTokenLocked(ctx context.Context, token string) {
	s.token = token

	if err := s.storage.Set(ctx, s.tokenKey, token); err != nil {
		s.log.ErrorContext(ctx, "failed to persist token", slog.Any("error", err))
	}
}

// purgeLocked clears both credentials from memory and storage. Callers must
// hold the write lock.
func (s *Store) purgeLocked(ctx context.Context) {
	s.user = nil
	s.token = ""

	if err := s.storage.Delete(ctx, s.tokenKey, s.userKey); err != nil {
		s.log.ErrorContext(ctx, "failed to purge persisted credentials", slog.Any("error", err))
	}
}
