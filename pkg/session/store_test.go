package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmago/clientkit/pkg/api"
	"github.com/pharmago/clientkit/pkg/kv"
	"github.com/pharmago/clientkit/pkg/session"
)

type fakeClient struct {
	signIn        func(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	signUp        func(ctx context.Context, reg api.Registration) (*api.Message, error)
	signOut       func(ctx context.Context) error
	profile       func(ctx context.Context) (*api.User, error)
	updateProfile func(ctx context.Context, update api.ProfileUpdate) (*api.User, error)
}

func (f *fakeClient) SignIn(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error) {
	return f.signIn(ctx, creds)
}

func (f *fakeClient) SignUp(ctx context.Context, reg api.Registration) (*api.Message, error) {
	return f.signUp(ctx, reg)
}

func (f *fakeClient) SignOut(ctx context.Context) error {
	return f.signOut(ctx)
}

func (f *fakeClient) Profile(ctx context.Context) (*api.User, error) {
	return f.profile(ctx)
}

func (f *fakeClient) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.User, error) {
	return f.updateProfile(ctx, update)
}

func seedStorage(t *testing.T, storage kv.Store, token string, user api.User) {
	t.Helper()
	data, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, storage.Set(context.Background(), "token", token))
	require.NoError(t, storage.Set(context.Background(), "user", string(data)))
}

func waitReady(t *testing.T, s *session.Store) {
	t.Helper()
	select {
	case <-s.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("bootstrap did not settle")
	}
}

func TestStore_Bootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing persisted", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		client := &fakeClient{
			profile: func(ctx context.Context) (*api.User, error) {
				t.Fatal("no revalidation expected without persisted credentials")
				return nil, nil
			},
		}

		s := session.New(client, storage)
		assert.Equal(t, session.StateBootstrapping, s.State())

		s.Bootstrap(ctx)
		waitReady(t, s)

		assert.Equal(t, session.StateUnauthenticated, s.State())
		assert.False(t, s.IsAuthenticated())
		assert.Empty(t, s.Token())
		assert.Nil(t, s.User())
	})

	t.Run("persisted credentials trusted optimistically then confirmed", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		seedStorage(t, storage, "T", api.User{ID: 7, Name: "Cached Name", Email: "a@b.com", Role: api.RoleCustomer})

		revalidation := make(chan struct{})
		client := &fakeClient{
			profile: func(ctx context.Context) (*api.User, error) {
				<-revalidation
				return &api.User{ID: 7, Name: "Server Name", Email: "a@b.com", Role: api.RoleCustomer}, nil
			},
		}

		s := session.New(client, storage)
		s.Bootstrap(ctx)

		// Optimistic window: persisted user exposed before the server answers.
		assert.Equal(t, session.StateOptimisticallyAuthenticated, s.State())
		assert.True(t, s.IsAuthenticated())
		assert.Equal(t, "T", s.Token())
		assert.Equal(t, "Cached Name", s.User().Name)

		close(revalidation)
		waitReady(t, s)

		// Server truth replaces the cache, in memory and in storage.
		assert.Equal(t, session.StateAuthenticated, s.State())
		assert.Equal(t, "Server Name", s.User().Name)

		raw, err := storage.Get(ctx, "user")
		require.NoError(t, err)
		var persisted api.User
		require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
		assert.Equal(t, "Server Name", persisted.Name)
	})

	t.Run("revalidation failure purges everything", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		seedStorage(t, storage, "T", api.User{ID: 7, Name: "U", Email: "a@b.com"})

		client := &fakeClient{
			profile: func(ctx context.Context) (*api.User, error) {
				return nil, &api.Error{StatusCode: 401, Message: "Unauthorized"}
			},
		}

		s := session.New(client, storage)
		s.Bootstrap(ctx)
		waitReady(t, s)

		assert.Equal(t, session.StateUnauthenticated, s.State())
		assert.Empty(t, s.Token())
		assert.Nil(t, s.User())

		_, err := storage.Get(ctx, "token")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
		_, err = storage.Get(ctx, "user")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("network failure is fail-closed too", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		seedStorage(t, storage, "T", api.User{ID: 7})

		client := &fakeClient{
			profile: func(ctx context.Context) (*api.User, error) {
				return nil, errors.Join(api.ErrRequestFailed, errors.New("connection refused"))
			},
		}

		s := session.New(client, storage)
		s.Bootstrap(ctx)
		waitReady(t, s)

		assert.Equal(t, session.StateUnauthenticated, s.State())
		assert.Nil(t, s.User())
	})

	t.Run("corrupt persisted user treated as absent", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		require.NoError(t, storage.Set(ctx, "token", "T"))
		require.NoError(t, storage.Set(ctx, "user", "{corrupt"))

		client := &fakeClient{
			profile: func(ctx context.Context) (*api.User, error) {
				t.Fatal("no revalidation expected for corrupt data")
				return nil, nil
			},
		}

		s := session.New(client, storage)
		s.Bootstrap(ctx)
		waitReady(t, s)

		assert.Equal(t, session.StateUnauthenticated, s.State())

		// Leftover token swept along with the corrupt record.
		_, err := storage.Get(ctx, "token")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("null persisted user treated as absent", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		require.NoError(t, storage.Set(ctx, "token", "T"))
		require.NoError(t, storage.Set(ctx, "user", "null"))

		client := &fakeClient{
			profile: func(ctx context.Context) (*api.User, error) {
				t.Fatal("no revalidation expected for an empty record")
				return nil, nil
			},
		}

		s := session.New(client, storage)
		s.Bootstrap(ctx)
		waitReady(t, s)

		// The value decodes but carries no identity; never expose it,
		// not even optimistically.
		assert.Equal(t, session.StateUnauthenticated, s.State())
		assert.Nil(t, s.User())

		_, err := storage.Get(ctx, "token")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("bootstrap is idempotent", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		client := &fakeClient{}

		s := session.New(client, storage)
		s.Bootstrap(ctx)
		s.Bootstrap(ctx)
		waitReady(t, s)

		assert.Equal(t, session.StateUnauthenticated, s.State())
	})

	t.Run("result after Close is discarded", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		seedStorage(t, storage, "T", api.User{ID: 7, Name: "U"})

		release := make(chan struct{})
		client := &fakeClient{
			profile: func(ctx context.Context) (*api.User, error) {
				<-release
				return nil, errors.New("too late")
			},
		}

		s := session.New(client, storage)
		s.Bootstrap(ctx)
		require.NoError(t, s.Close())
		close(release)
		waitReady(t, s)

		// The failure arrived after Close: no purge was applied.
		_, err := storage.Get(ctx, "token")
		assert.NoError(t, err)
	})
}

func TestStore_Login(t *testing.T) {
	ctx := context.Background()

	newUnauthenticated := func(t *testing.T, client *fakeClient, storage kv.Store) *session.Store {
		t.Helper()
		s := session.New(client, storage)
		s.Bootstrap(ctx)
		waitReady(t, s)
		require.Equal(t, session.StateUnauthenticated, s.State())
		return s
	}

	t.Run("sign-in response applied before profile refresh resolves", func(t *testing.T) {
		storage := kv.NewMemoryStore()

		var s *session.Store
		var tokenDuringRefresh string
		var userIDDuringRefresh int64

		client := &fakeClient{
			signIn: func(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error) {
				return &api.AuthResponse{Token: "T2", Type: "Bearer", ID: 7, Name: "A", Email: "a@b.com", Role: api.RoleCustomer}, nil
			},
			profile: func(ctx context.Context) (*api.User, error) {
				// Observed from inside the refresh call: the login response
				// must already be applied.
				tokenDuringRefresh = s.Token()
				userIDDuringRefresh = s.User().ID
				return &api.User{ID: 7, Name: "Full Profile", Email: "a@b.com", Role: api.RoleCustomer, ContactNumber: "123"}, nil
			},
		}

		s = newUnauthenticated(t, client, storage)
		require.NoError(t, s.Login(ctx, api.Credentials{Email: "a@b.com", Password: "x"}))

		assert.Equal(t, "T2", tokenDuringRefresh)
		assert.Equal(t, int64(7), userIDDuringRefresh)

		assert.Equal(t, session.StateAuthenticated, s.State())
		assert.Equal(t, "Full Profile", s.User().Name)
		assert.Equal(t, "123", s.User().ContactNumber)

		token, err := storage.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "T2", token)
	})

	t.Run("refresh failure keeps sign-in data", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		client := &fakeClient{
			signIn: func(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error) {
				return &api.AuthResponse{Token: "T2", ID: 7, Name: "A", Email: "a@b.com", Role: api.RoleCustomer}, nil
			},
			profile: func(ctx context.Context) (*api.User, error) {
				return nil, errors.New("profile endpoint down")
			},
		}

		s := newUnauthenticated(t, client, storage)
		require.NoError(t, s.Login(ctx, api.Credentials{Email: "a@b.com", Password: "x"}))

		assert.Equal(t, session.StateAuthenticated, s.State())
		assert.Equal(t, "T2", s.Token())
		assert.Equal(t, "A", s.User().Name)
	})

	t.Run("sign-in failure leaves store untouched", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		client := &fakeClient{
			signIn: func(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error) {
				return nil, &api.Error{StatusCode: 401, Message: "Invalid email or password"}
			},
		}

		s := newUnauthenticated(t, client, storage)
		err := s.Login(ctx, api.Credentials{Email: "a@b.com", Password: "wrong"})
		require.Error(t, err)
		assert.EqualError(t, err, "Invalid email or password")

		assert.Equal(t, session.StateUnauthenticated, s.State())
		assert.Empty(t, s.Token())
		_, storageErr := storage.Get(ctx, "token")
		assert.ErrorIs(t, storageErr, kv.ErrKeyNotFound)
	})

	t.Run("login before bootstrap rejected", func(t *testing.T) {
		s := session.New(&fakeClient{}, kv.NewMemoryStore())
		err := s.Login(ctx, api.Credentials{Email: "a@b.com", Password: "x"})
		assert.ErrorIs(t, err, session.ErrNotBootstrapped)
	})

	t.Run("login while authenticated rejected", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		client := &fakeClient{
			signIn: func(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error) {
				return &api.AuthResponse{Token: "T", ID: 1, Email: "a@b.com", Role: api.RoleCustomer}, nil
			},
			profile: func(ctx context.Context) (*api.User, error) {
				return &api.User{ID: 1, Email: "a@b.com"}, nil
			},
		}

		s := newUnauthenticated(t, client, storage)
		require.NoError(t, s.Login(ctx, api.Credentials{Email: "a@b.com", Password: "x"}))

		err := s.Login(ctx, api.Credentials{Email: "a@b.com", Password: "x"})
		assert.ErrorIs(t, err, session.ErrAlreadyAuthenticated)
	})
}

func TestStore_Logout(t *testing.T) {
	ctx := context.Background()

	storage := kv.NewMemoryStore()
	signedOut := make(chan struct{})
	client := &fakeClient{
		signIn: func(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error) {
			return &api.AuthResponse{Token: "T", ID: 1, Email: "a@b.com", Role: api.RoleCustomer}, nil
		},
		profile: func(ctx context.Context) (*api.User, error) {
			return &api.User{ID: 1, Email: "a@b.com"}, nil
		},
		signOut: func(ctx context.Context) error {
			close(signedOut)
			return nil
		},
	}

	s := session.New(client, storage)
	s.Bootstrap(ctx)
	waitReady(t, s)
	require.NoError(t, s.Login(ctx, api.Credentials{Email: "a@b.com", Password: "x"}))

	s.Logout(ctx)

	// Purge is synchronous.
	assert.Equal(t, session.StateUnauthenticated, s.State())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())

	_, err := storage.Get(ctx, "token")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	_, err = storage.Get(ctx, "user")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)

	// Server invalidation is fire-and-forget but does get fired.
	select {
	case <-signedOut:
	case <-time.After(5 * time.Second):
		t.Fatal("sign-out call never fired")
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	authenticated := func(t *testing.T, client *fakeClient) *session.Store {
		t.Helper()
		client.signIn = func(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error) {
			return &api.AuthResponse{Token: "T", ID: 1, Name: "Old", Email: "a@b.com", Role: api.RoleCustomer}, nil
		}
		s := session.New(client, kv.NewMemoryStore())
		s.Bootstrap(ctx)
		waitReady(t, s)
		require.NoError(t, s.Login(ctx, api.Credentials{Email: "a@b.com", Password: "x"}))
		return s
	}

	t.Run("no-op without a user", func(t *testing.T) {
		client := &fakeClient{
			updateProfile: func(ctx context.Context, update api.ProfileUpdate) (*api.User, error) {
				t.Fatal("no call expected without a user")
				return nil, nil
			},
		}
		s := session.New(client, kv.NewMemoryStore())
		s.Bootstrap(ctx)
		waitReady(t, s)

		assert.NoError(t, s.UpdateProfile(ctx, api.ProfileUpdate{Name: "New"}))
	})

	t.Run("server response replaces user wholesale", func(t *testing.T) {
		client := &fakeClient{
			profile: func(ctx context.Context) (*api.User, error) {
				return &api.User{ID: 1, Name: "Old", Email: "a@b.com", City: "Old City"}, nil
			},
			updateProfile: func(ctx context.Context, update api.ProfileUpdate) (*api.User, error) {
				return &api.User{ID: 1, Name: "New", Email: "a@b.com"}, nil
			},
		}
		s := authenticated(t, client)

		require.NoError(t, s.UpdateProfile(ctx, api.ProfileUpdate{Name: "New"}))

		user := s.User()
		assert.Equal(t, "New", user.Name)
		// Wholesale replacement: fields absent from the response are gone.
		assert.Empty(t, user.City)
	})

	t.Run("failure leaves prior user intact", func(t *testing.T) {
		client := &fakeClient{
			profile: func(ctx context.Context) (*api.User, error) {
				return &api.User{ID: 1, Name: "Old", Email: "a@b.com"}, nil
			},
			updateProfile: func(ctx context.Context, update api.ProfileUpdate) (*api.User, error) {
				return nil, &api.Error{StatusCode: 500, Message: "Something went wrong"}
			},
		}
		s := authenticated(t, client)

		err := s.UpdateProfile(ctx, api.ProfileUpdate{Name: "New"})
		require.Error(t, err)
		assert.Equal(t, "Old", s.User().Name)
	})
}
