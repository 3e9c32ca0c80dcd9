package gift

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"cadoz/internal/kv"
)

// StorageKey is the key the gift state is persisted under.
const StorageKey = "giftState"

// Container owns one session's gift state. Dispatches are applied one at a
// time and the result is persisted after each.
type Container struct {
	mu      sync.Mutex
	state   State
	reducer Reducer
	store   kv.Backend
	logger  *zap.Logger
}

// NewContainer creates a container holding the default state. Call Hydrate
// to load what the session persisted.
func NewContainer(store kv.Backend, reducer Reducer, logger *zap.Logger) *Container {
	return &Container{
		state:   EmptyState(),
		reducer: reducer,
		store:   store,
		logger:  logger,
	}
}

// Hydrate replaces the state with the persisted one. A missing or corrupt
// value leaves the default state in place.
func (c *Container) Hydrate(ctx context.Context) State {
	loaded, err := kv.Lookup[State](ctx, c.store, StorageKey)

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err == nil:
		c.state = loaded.normalize()
	case errors.Is(err, kv.ErrNotFound):
		c.state = EmptyState()
	default:
		c.logger.Warn("discarding unreadable gift state", zap.Error(err))
		c.state = EmptyState()
	}
	return c.state.Clone()
}

// State returns a snapshot of the current state.
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Dispatch applies action to the current state and persists the result.
// Persistence failures are logged; the in-memory transition still holds.
func (c *Container) Dispatch(ctx context.Context, action Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(ctx, action)
	return c.state.Clone()
}

// DispatchFunc resolves the action from the current state and applies it
// under the same lock, so no other dispatch lands in between.
func (c *Container) DispatchFunc(ctx context.Context, resolve func(current State) Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(ctx, resolve(c.state.Clone()))
	return c.state.Clone()
}

func (c *Container) apply(ctx context.Context, action Action) {
	c.state = c.reducer.Reduce(c.state, action)
	c.logger.Info("gift action applied",
		zap.String("action", string(action.Type())),
		zap.String("step", string(c.state.CurrentStep)),
		zap.Int("entries", len(c.state.Cart)))

	if err := kv.Save(ctx, c.store, StorageKey, c.state); err != nil {
		c.logger.Warn("failed to persist gift state", zap.Error(err))
	}
}
