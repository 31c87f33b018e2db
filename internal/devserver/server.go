// Package devserver is a self-contained stand-in for the remote PharmaGo API,
// implementing the subset of endpoints the client consumes. It exists so the
// CLI and integration tests have something to talk to during development; it
// is not a production backend.
package devserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pharmago/clientkit/pkg/api"
)

// Config describes the dev server.
type Config struct {
	Addr      string        `env:"DEVSERVER_ADDR" envDefault:":8080"`
	JWTSecret string        `env:"DEVSERVER_JWT_SECRET" envDefault:"dev-only-secret"`
	TokenTTL  time.Duration `env:"DEVSERVER_TOKEN_TTL" envDefault:"24h"`
}

// Server holds the in-memory fixture state behind the stub API.
type Server struct {
	mu        sync.RWMutex
	cfg       Config
	users     map[string]*account // keyed by email
	medicines []api.Medicine
	orders    []api.Order
	revoked   map[string]struct{} // jti values invalidated by sign-out
	nextID    int64
}

type account struct {
	user         api.User
	passwordHash []byte
}

// New creates a server pre-seeded with demo accounts and a small catalog.
func New(cfg Config) *Server {
	s := &Server{
		cfg:     cfg,
		users:   make(map[string]*account),
		revoked: make(map[string]struct{}),
		nextID:  1000,
	}
	s.seed()
	return s
}

// Router returns the HTTP handler for the stub API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signin", s.handleSignIn)
		r.Post("/auth/signup", s.handleSignUp)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/auth/signout", s.handleSignOut)
			r.Post("/auth/refresh", s.handleRefresh)
			r.Get("/users/profile", s.handleGetProfile)
			r.Put("/users/profile", s.handleUpdateProfile)
			r.Post("/orders", s.handleCreateOrder)
			r.Get("/orders", s.handleListOrders)
			r.Get("/orders/{id}", s.handleGetOrder)
			r.Put("/orders/{id}/cancel", s.handleCancelOrder)
		})

		r.Get("/medicines", s.handleListMedicines)
		r.Get("/medicines/search", s.handleSearchMedicines)
		r.Get("/medicines/categories", s.handleCategories)
		r.Get("/medicines/{id}", s.handleGetMedicine)
	})

	return r
}

// requireAuth validates the bearer token and loads the account.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return []byte(s.cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		jti, _ := claims["jti"].(string)
		email, _ := claims["sub"].(string)

		s.mu.RLock()
		_, revoked := s.revoked[jti]
		acct := s.users[email]
		s.mu.RUnlock()

		if revoked || acct == nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := contextWithAccount(r.Context(), acct, jti)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Message{Message: message})
}
