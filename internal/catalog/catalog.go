package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// DisplayGroupSize is the number of items shown per carousel row.
const DisplayGroupSize = 10

// Catalog is an immutable, indexed catalogue.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// New builds a catalogue, assigning KindProduct to every product and
// KindGiftOption to every gift option.
func New(products, giftOptions []Item) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(products)+len(giftOptions))}
	add := func(it Item, kind Kind) error {
		if strings.TrimSpace(it.ID) == "" {
			return fmt.Errorf("catalog item %q has no id", it.Name)
		}
		if it.Price < 0 {
			return fmt.Errorf("catalog item %s has a negative price", it.ID)
		}
		if _, dup := c.byID[it.ID]; dup {
			return fmt.Errorf("duplicate catalog id %s", it.ID)
		}
		it = it.Clone()
		it.Kind = kind
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
		return nil
	}
	for _, p := range products {
		if err := add(p, KindProduct); err != nil {
			return nil, err
		}
	}
	for _, g := range giftOptions {
		if err := add(g, KindGiftOption); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len returns the number of items in the catalogue.
func (c *Catalog) Len() int { return len(c.items) }

// Find returns a copy of the item with id.
func (c *Catalog) Find(id string) (Item, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[idx].Clone(), true
}

// Products returns every ordinary product in catalogue order.
func (c *Catalog) Products() []Item {
	return c.filter(func(it Item) bool { return it.Kind == KindProduct })
}

// GiftOptions returns every gift option in catalogue order.
func (c *Catalog) GiftOptions() []Item {
	return c.filter(func(it Item) bool { return it.Kind == KindGiftOption })
}

// ByCategory returns the items tagged with category, sorted by their first
// tag and then by id.
func (c *Catalog) ByCategory(category Category) []Item {
	items := c.filter(func(it Item) bool { return it.Category == category })
	sort.Slice(items, func(i, j int) bool {
		if a, b := items[i].SortTag(), items[j].SortTag(); a != b {
			return a < b
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// ProductsIn returns the products of a category and sub-category, compared
// case-insensitively.
func (c *Catalog) ProductsIn(category, subCategory string) []Item {
	return c.filter(func(it Item) bool {
		return it.Kind == KindProduct &&
			strings.EqualFold(string(it.Category), category) &&
			strings.EqualFold(it.SubCategory, subCategory)
	})
}

// Brands lists the distinct non-empty brands of items, in first-seen order.
func Brands(items []Item) []string {
	seen := make(map[string]bool)
	var brands []string
	for _, it := range items {
		if it.Brand == "" || seen[it.Brand] {
			continue
		}
		seen[it.Brand] = true
		brands = append(brands, it.Brand)
	}
	return brands
}

// Group partitions items into consecutive groups of at most size items.
func Group(items []Item, size int) [][]Item {
	if size <= 0 {
		size = DisplayGroupSize
	}
	var groups [][]Item
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		groups = append(groups, items[i:end])
	}
	return groups
}

func (c *Catalog) filter(keep func(Item) bool) []Item {
	var out []Item
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it.Clone())
		}
	}
	return out
}
