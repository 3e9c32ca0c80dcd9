// Package storefront assembles the per-session containers a shopper works
// with and keeps recently used sessions in memory.
package storefront

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"cadoz/internal/cart"
	"cadoz/internal/gift"
	"cadoz/internal/kv"
	"cadoz/internal/order"
	"cadoz/internal/platform"
	"cadoz/internal/search"
	"cadoz/internal/wishlist"
)

// DefaultCacheSize is the number of live sessions kept in memory.
const DefaultCacheSize = 1024

// Session is one shopper's gift, base cart, wishlist and recent searches.
// The gift and the base cart are owned independently; only the order
// summary reads both.
type Session struct {
	ID        string
	Gift      *gift.Container
	Presenter *gift.Presenter
	Cart      *cart.Store
	Wishlist  *wishlist.Store
	Recent    *search.Recent

	refs int
}

// Summary aggregates the session's current order.
func (s *Session) Summary(agg order.Aggregator) order.Summary {
	return agg.Summarize(s.Cart.Lines(), s.Gift.State())
}

// Manager hands out hydrated sessions over one shared backend, each under
// its own key namespace. A session evicted while held stays pinned until its
// last holder releases it, so one id never has two live copies.
type Manager struct {
	mu       sync.Mutex
	sessions *lru.Cache
	pinned   map[string]*Session
	backend  kv.Backend
	items    gift.Catalog
	reducer  gift.Reducer
	logger   *zap.Logger
}

// NewManager creates a manager caching up to cacheSize sessions.
func NewManager(backend kv.Backend, items gift.Catalog, reducer gift.Reducer, cacheSize int, logger *zap.Logger) (*Manager, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	m := &Manager{
		pinned:  make(map[string]*Session),
		backend: backend,
		items:   items,
		reducer: reducer,
		logger:  logger,
	}
	sessions, err := lru.NewWithEvict(cacheSize, m.evicted)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	m.sessions = sessions
	return m, nil
}

// evicted runs inside cache.Add, with m.mu already held.
func (m *Manager) evicted(_, value interface{}) {
	s := value.(*Session)
	if s.refs > 0 {
		m.pinned[s.ID] = s
		m.logger.Debug("held session evicted; pinned", zap.String("session", s.ID), zap.Int("holders", s.refs))
	}
}

// Session returns the session for id, hydrating it from storage on first use.
// The session is not held; a caller that keeps it across other lookups should
// use Acquire.
func (m *Manager) Session(ctx context.Context, id string) (*Session, error) {
	s, release, err := m.Acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	release()
	return s, nil
}

// Acquire returns the session for id and holds it until release is called.
// A held session is never replaced by a freshly hydrated copy.
func (m *Manager) Acquire(ctx context.Context, id string) (*Session, func(), error) {
	if err := platform.FirstError(platform.RequireNotBlank(id, "session id is required")); err != nil {
		return nil, nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	s.refs++
	return s, sync.OnceFunc(func() { m.release(s) }), nil
}

func (m *Manager) release(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.refs--
	if s.refs == 0 && m.pinned[s.ID] == s {
		delete(m.pinned, s.ID)
	}
}

func (m *Manager) lookup(ctx context.Context, id string) (*Session, error) {
	if cached, ok := m.sessions.Get(id); ok {
		return cached.(*Session), nil
	}
	if s, ok := m.pinned[id]; ok {
		delete(m.pinned, id)
		m.sessions.Add(id, s)
		return s, nil
	}

	root := platform.SessionRoot(id).String()
	store := kv.Scoped(m.backend, root)
	logger := m.logger.With(zap.String("session", root))

	recent, err := search.NewRecent(store, logger)
	if err != nil {
		return nil, err
	}
	container := gift.NewContainer(store, m.reducer, logger)
	s := &Session{
		ID:        id,
		Gift:      container,
		Presenter: gift.NewPresenter(m.items, container),
		Cart:      cart.NewStore(store, logger),
		Wishlist:  wishlist.NewStore(store, logger),
		Recent:    recent,
	}
	s.Gift.Hydrate(ctx)
	s.Cart.Hydrate(ctx)
	s.Wishlist.Hydrate(ctx)
	s.Recent.Hydrate(ctx)

	m.sessions.Add(id, s)
	logger.Debug("session hydrated")
	return s, nil
}

// Len is the number of sessions currently cached.
func (m *Manager) Len() int { return m.sessions.Len() }

// Pinned is the number of evicted sessions still held by a caller.
func (m *Manager) Pinned() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pinned)
}
