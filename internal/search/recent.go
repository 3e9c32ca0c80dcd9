package search

import (
	"context"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"go.uber.org/zap"

	"cadoz/internal/kv"
)

const (
	// RecentLimit is how many recent terms are kept.
	RecentLimit = 5

	// RecentStorageKey is the key recent terms are persisted under.
	RecentStorageKey = "recentSearches"
)

// Recent is a bounded, most-recent-first, de-duplicated list of search terms.
type Recent struct {
	mu      sync.Mutex
	terms   *simplelru.LRU
	backend kv.Backend
	logger  *zap.Logger
}

// NewRecent creates an empty recent-search list holding up to RecentLimit terms.
func NewRecent(backend kv.Backend, logger *zap.Logger) (*Recent, error) {
	terms, err := simplelru.NewLRU(RecentLimit, nil)
	if err != nil {
		return nil, err
	}
	return &Recent{terms: terms, backend: backend, logger: logger}, nil
}

// Hydrate loads persisted terms, replacing what is held.
func (r *Recent) Hydrate(ctx context.Context) []string {
	stored := kv.Load(ctx, r.backend, RecentStorageKey, []string{})
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terms.Purge()
	// Stored most-recent-first; replay oldest first so the newest ends on top.
	for i := len(stored) - 1; i >= 0; i-- {
		if term := strings.TrimSpace(stored[i]); term != "" {
			r.terms.Add(term, struct{}{})
		}
	}
	return r.list()
}

// Add records term as the most recent search.
func (r *Recent) Add(ctx context.Context, term string) []string {
	term = strings.TrimSpace(term)
	r.mu.Lock()
	defer r.mu.Unlock()
	if term == "" {
		return r.list()
	}
	r.terms.Add(term, struct{}{})
	terms := r.list()
	if err := kv.Save(ctx, r.backend, RecentStorageKey, terms); err != nil {
		r.logger.Warn("failed to persist recent searches", zap.Error(err))
	}
	return terms
}

// List returns the terms, most recent first.
func (r *Recent) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list()
}

func (r *Recent) list() []string {
	keys := r.terms.Keys()
	terms := make([]string, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		terms = append(terms, keys[i].(string))
	}
	return terms
}
