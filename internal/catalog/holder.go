package catalog

import "sync/atomic"

// Holder publishes the current catalogue to readers while a watcher swaps it.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder creates a holder serving c.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Current returns the catalogue in effect.
func (h *Holder) Current() *Catalog { return h.current.Load() }

// Swap replaces the catalogue.
func (h *Holder) Swap(c *Catalog) { h.current.Store(c) }

func (h *Holder) Find(id string) (Item, bool) { return h.Current().Find(id) }
func (h *Holder) ByCategory(category Category) []Item { return h.Current().ByCategory(category) }
