// Package wishlist keeps the products a shopper marked for later.
package wishlist

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"cadoz/internal/catalog"
	"cadoz/internal/kv"
	"cadoz/internal/platform"
)

// StorageKey is the key the wishlist is persisted under.
const StorageKey = "wishlist"

const ErrMsgProductIDRequired = "product id is required"

// Item is one wishlisted product.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Price int64  `json:"price"`
}

// FromCatalog keeps the fields the wishlist shows.
func FromCatalog(it catalog.Item) Item {
	return Item{ID: it.ID, Name: it.Name, Image: it.Image, Price: it.Price}
}

// Store is one session's wishlist.
type Store struct {
	mu      sync.Mutex
	items   []Item
	backend kv.Backend
	logger  *zap.Logger
}

// NewStore creates an empty wishlist persisted to backend.
func NewStore(backend kv.Backend, logger *zap.Logger) *Store {
	return &Store{items: []Item{}, backend: backend, logger: logger}
}

// Hydrate loads the persisted wishlist, falling back to empty.
func (s *Store) Hydrate(ctx context.Context) []Item {
	items := kv.Load(ctx, s.backend, StorageKey, []Item{})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != "" && s.index(it.ID) < 0 {
			s.items = append(s.items, it)
		}
	}
	return s.snapshot()
}

// Items returns the wishlisted items in the order they were added.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Add wishlists an item once; adding it again changes nothing.
func (s *Store) Add(ctx context.Context, it Item) ([]Item, error) {
	if err := platform.FirstError(platform.RequireNotBlank(it.ID, ErrMsgProductIDRequired)); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(it.ID) < 0 {
		s.items = append(s.items, it)
		s.persist(ctx)
	}
	return s.snapshot(), nil
}

// Remove drops the item with id; an unknown id changes nothing.
func (s *Store) Remove(ctx context.Context, id string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		s.persist(ctx)
	}
	return s.snapshot()
}

// Toggle adds the item when absent and removes it when present.
// added reports which happened.
func (s *Store) Toggle(ctx context.Context, it Item) (items []Item, added bool, err error) {
	if err := platform.FirstError(platform.RequireNotBlank(it.ID, ErrMsgProductIDRequired)); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(it.ID); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
	} else {
		s.items = append(s.items, it)
		added = true
	}
	s.persist(ctx)
	return s.snapshot(), added, nil
}

// Contains reports whether id is wishlisted.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index(id) >= 0
}

func (s *Store) index(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []Item {
	return append([]Item{}, s.items...)
}

func (s *Store) persist(ctx context.Context) {
	if err := kv.Save(ctx, s.backend, StorageKey, s.items); err != nil {
		s.logger.Warn("failed to persist wishlist", zap.Error(err))
	}
}
