// Package cart is the base shopping cart: products bought as they are,
// outside any gift.
package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"cadoz/internal/catalog"
	"cadoz/internal/kv"
	"cadoz/internal/platform"
)

// StorageKey is the key the base cart is persisted under.
const StorageKey = "cart"

// Error message constants for the base cart.
const (
	ErrMsgProductIDRequired = "product id is required"
	ErrMsgQuantityPositive  = "quantity must be positive"
	ErrMsgDeltaZero         = "quantity change must not be zero"
	ErrMsgNotInCart         = "product is not in the cart"
	ErrMsgGiftOption        = "gift options are added through the gift builder"
)

// Line is one product in the base cart.
type Line struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// LineTotal is the line price times its quantity.
func (l Line) LineTotal() int64 { return l.Price * int64(l.Quantity) }

// Store is one session's base cart.
type Store struct {
	mu      sync.Mutex
	lines   []Line
	backend kv.Backend
	logger  *zap.Logger
}

// NewStore creates an empty cart; Hydrate loads the persisted one.
func NewStore(backend kv.Backend, logger *zap.Logger) *Store {
	return &Store{lines: []Line{}, backend: backend, logger: logger}
}

// Hydrate loads the persisted cart, falling back to empty.
func (s *Store) Hydrate(ctx context.Context) []Line {
	lines := kv.Load(ctx, s.backend, StorageKey, []Line{})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ID == "" {
			continue
		}
		l.Quantity = max(1, l.Quantity)
		s.lines = append(s.lines, l)
	}
	return s.snapshot()
}

// Lines returns a copy of the cart contents.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Add puts quantity units of a product in the cart, adding to an existing line.
func (s *Store) Add(ctx context.Context, item catalog.Item, quantity int) ([]Line, error) {
	if err := platform.FirstError(
		platform.RequireNotBlank(item.ID, ErrMsgProductIDRequired),
		platform.RequirePositive(quantity, ErrMsgQuantityPositive),
	); err != nil {
		return nil, err
	}
	if !item.IsProduct() {
		return nil, platform.NewFailedPrecondition(ErrMsgGiftOption)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ID == item.ID {
			s.lines[i].Quantity += quantity
			s.persist(ctx)
			return s.snapshot(), nil
		}
	}
	s.lines = append(s.lines, Line{
		ID:       item.ID,
		Name:     item.Name,
		Image:    item.Image,
		Price:    item.Price,
		Quantity: quantity,
	})
	s.persist(ctx)
	return s.snapshot(), nil
}

// Remove drops a product from the cart. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, id string) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	s.persist(ctx)
	return s.snapshot()
}

// UpdateQuantity changes a line's quantity by delta, never below one.
func (s *Store) UpdateQuantity(ctx context.Context, id string, delta int) ([]Line, error) {
	if err := platform.FirstError(platform.RequireNonZero(delta, ErrMsgDeltaZero)); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Quantity = max(1, s.lines[i].Quantity+delta)
			s.persist(ctx)
			return s.snapshot(), nil
		}
	}
	return nil, platform.NewNotFoundf("%s: %s", ErrMsgNotInCart, id)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = []Line{}
	s.persist(ctx)
}

// Total is the sum of line totals.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.lines)
}

// Count is the number of units in the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Total sums the line totals of lines.
func Total(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}

func (s *Store) snapshot() []Line {
	return append([]Line{}, s.lines...)
}

func (s *Store) persist(ctx context.Context) {
	if err := kv.Save(ctx, s.backend, StorageKey, s.lines); err != nil {
		s.logger.Warn("failed to persist cart", zap.Error(err))
	}
}
