// Package marketplace implements the application state container: session,
// catalog, cart and order-history collections with durable whole-collection
// persistence behind every mutation.
package marketplace

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/ecosprint/ecosprint-backend/pkg/config"
	pkgerrors "github.com/ecosprint/ecosprint-backend/pkg/errors"
	"github.com/ecosprint/ecosprint-backend/pkg/kv"
	"github.com/ecosprint/ecosprint-backend/pkg/logger"
	"github.com/ecosprint/ecosprint-backend/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Params packages the dependencies for the marketplace store.
type Params struct {
	Storage        kv.Store
	Logger         *logger.Logger
	Metrics        *metrics.StoreMetrics
	PasswordConfig config.PasswordConfig

	// StartEmpty skips the sample catalog when the products key has never
	// been written.
	StartEmpty bool

	// Now and NewID override time and id synthesis in tests.
	Now   func() time.Time
	NewID func() string
}

// Store owns the five persisted collections and mediates every read and
// write through the storage collaborator. A single mutex guards each
// read-modify-write cycle so whole-collection replacement stays atomic.
type Store struct {
	mu       sync.Mutex
	storage  kv.Store
	logg     *logger.Logger
	metrics  *metrics.StoreMetrics
	validate *validator.Validate

	passwordCfg config.PasswordConfig
	now         func() time.Time
	newID       func() string

	currentUser *User
	users       []User
	products    []Product
	cartItems   []CartItem
	purchases   []Purchase

	listeners []func(key string)
}

// New loads the five collections from storage, falling back to defaults for
// keys that have never been written: empty lists for users, cart and
// purchases, the sample catalog for products (unless StartEmpty), nil for
// the session.
func New(ctx context.Context, params Params) (*Store, error) {
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "storage collaborator required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.New(logger.Options{ServiceName: "marketplace", Output: io.Discard})
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	newID := params.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	s := &Store{
		storage:     params.Storage,
		logg:        logg,
		metrics:     params.Metrics,
		validate:    validator.New(),
		passwordCfg: params.PasswordConfig,
		now:         now,
		newID:       newID,
	}

	if err := s.load(ctx, params.StartEmpty); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context, startEmpty bool) error {
	if err := loadKey(ctx, s.storage, kv.KeyCurrentUser, &s.currentUser, nil); err != nil {
		return err
	}
	if err := loadKey(ctx, s.storage, kv.KeyUsers, &s.users, []User{}); err != nil {
		return err
	}
	defaultProducts := []Product{}
	if !startEmpty {
		defaultProducts = sampleProducts(s.now())
	}
	if err := loadKey(ctx, s.storage, kv.KeyProducts, &s.products, defaultProducts); err != nil {
		return err
	}
	if err := loadKey(ctx, s.storage, kv.KeyCartItems, &s.cartItems, []CartItem{}); err != nil {
		return err
	}
	if err := loadKey(ctx, s.storage, kv.KeyPurchases, &s.purchases, []Purchase{}); err != nil {
		return err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"users":     len(s.users),
		"products":  len(s.products),
		"cart":      len(s.cartItems),
		"purchases": len(s.purchases),
	}), "marketplace store loaded")
	return nil
}

func loadKey[T any](ctx context.Context, storage kv.Store, key string, target *T, fallback T) error {
	data, ok, err := storage.Get(ctx, key)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+key)
	}
	if !ok {
		*target = fallback
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode "+key)
	}
	return nil
}

// write pairs a collection key with the value to be durably replaced.
type write struct {
	key   string
	value any
}

// persist performs the durable half of the two-phase commit: every write
// must land before the caller swaps the in-memory collections. A failed
// write aborts the operation with the in-memory state untouched.
func (s *Store) persist(ctx context.Context, op string, writes ...write) error {
	for _, w := range writes {
		data, err := json.Marshal(w.value)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode "+w.key)
		}
		if err := s.storage.Set(ctx, w.key, data); err != nil {
			s.logg.Error(s.logg.WithOperation(ctx, op), "durable write failed", err)
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist "+w.key)
		}
	}
	return nil
}

// finish records operation metrics; deferred by every public mutation.
func (s *Store) finish(op string, start time.Time, err *error) {
	s.metrics.ObserveDuration(op, time.Since(start))
	if err != nil && *err != nil {
		s.metrics.IncFailure(op)
		return
	}
	s.metrics.IncSuccess(op)
}

// Subscribe registers a listener invoked with the affected collection key
// after each committed mutation. Listeners run on the mutating goroutine
// and must not call back into the store.
func (s *Store) Subscribe(fn func(key string)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(keys ...string) {
	s.mu.Lock()
	listeners := make([]func(string), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		for _, key := range keys {
			fn(key)
		}
	}
}

// CurrentUser returns a copy of the authenticated user, or nil when the
// session is anonymous.
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return nil
	}
	user := *s.currentUser
	return &user
}

// Users returns a copy of the registered users collection.
func (s *Store) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}
