package cart

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/pharmago/clientkit/pkg/api"
	"github.com/pharmago/clientkit/pkg/kv"
)

// Item is one cart line: a catalog snapshot and a quantity. No two items in a
// cart share a medicine id.
type Item struct {
	Medicine api.Medicine `json:"medicine"`
	Quantity int          `json:"quantity"`
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for persistence failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStorageKey overrides the persisted-storage key.
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Store owns the cart line items. It holds items without requiring a session
// (guest cart) and keeps them across logout; only Clear empties it. Every
// mutation rewrites the persisted cart before returning, so memory and
// storage never observably diverge.
//
// Mutations never fail: quantity validation is the caller's responsibility
// and persistence failures are logged, not returned.
type Store struct {
	mu      sync.RWMutex
	storage kv.Store
	log     *slog.Logger
	key     string
	items   []Item
}

// New creates a cart store, reloading any persisted items. A corrupt
// persisted cart is discarded silently.
func New(ctx context.Context, storage kv.Store, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		key:     "cart",
	}

	for _, opt := range opts {
		opt(s)
	}

	if raw, err := storage.Get(ctx, s.key); err == nil {
		var items []Item
		if jsonErr := json.Unmarshal([]byte(raw), &items); jsonErr == nil {
			s.items = items
		}
	}

	return s
}

// Add puts quantity units of medicine in the cart. If a line for the same id
// exists the quantity is added to it, never replaced; otherwise a new line is
// appended. Quantity is expected to be a positive integer.
func (s *Store) Add(ctx context.Context, medicine api.Medicine, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Medicine.ID == medicine.ID {
			s.items[i].Quantity += quantity
			s.persistLocked(ctx)
			return
		}
	}

	s.items = append(s.items, Item{Medicine: medicine, Quantity: quantity})
	s.persistLocked(ctx)
}

// Remove drops the line with the given medicine id. Absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, medicineID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, medicineID)
}

// UpdateQuantity sets the line's quantity to exactly quantity, an absolute
// set, unlike Add's additive semantics; the two serve distinct call sites
// ("add more" vs "set to N"). A quantity of zero or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, medicineID int64, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, medicineID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Medicine.ID == medicineID {
			s.items[i].Quantity = quantity
			s.persistLocked(ctx)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persistLocked(ctx)
}

// InCart reports whether a line exists for the given medicine id.
func (s *Store) InCart(medicineID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].Medicine.ID == medicineID {
			return true
		}
	}
	return false
}

// ItemQuantity returns the quantity for the given medicine id, or 0.
func (s *Store) ItemQuantity(medicineID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].Medicine.ID == medicineID {
			return s.items[i].Quantity
		}
	}
	return 0
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// TotalItems returns the sum of all line quantities. Recomputed on every
// read; carts are small.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for i := range s.items {
		total += s.items[i].Quantity
	}
	return total
}

// TotalAmount returns the sum of quantity times snapshot price over all lines.
func (s *Store) TotalAmount() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for i := range s.items {
		total += float64(s.items[i].Quantity) * s.items[i].Medicine.Price
	}
	return total
}

func (s *Store) removeLocked(ctx context.Context, medicineID int64) {
	for i := range s.items {
		if s.items[i].Medicine.ID == medicineID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked(ctx)
			return
		}
	}
}

// persistLocked rewrites the whole cart to storage. Callers must hold the
// write lock.
func (s *Store) persistLocked(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to encode cart", slog.Any("error", err))
		return
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		s.log.ErrorContext(ctx, "failed to persist cart", slog.Any("error", err))
	}
}
