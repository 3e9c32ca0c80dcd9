// Package search finds products by fuzzy match, remembers recent search
// terms, and debounces keystroke input.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"cadoz/internal/catalog"
)

// MinQueryLength is the shortest query that is searched at all.
const MinQueryLength = 2

// Result is one matching product.
type Result struct {
	Item  catalog.Item `json:"item"`
	Score int          `json:"score"`
}

// field is one searchable attribute of every indexed item, in the shape
// fuzzy.FindFrom consumes.
type field struct {
	name   string
	values []string
}

func (f field) String(i int) string { return f.values[i] }
func (f field) Len() int            { return len(f.values) }

// Index searches a fixed set of items on name, category, description and tags.
type Index struct {
	items  []catalog.Item
	fields []field
}

// NewIndex indexes items in the given order.
func NewIndex(items []catalog.Item) *Index {
	ix := &Index{items: items}
	extract := []struct {
		name string
		fn   func(catalog.Item) string
	}{
		{"name", func(it catalog.Item) string { return it.Name }},
		{"category", func(it catalog.Item) string { return string(it.Category) }},
		{"description", func(it catalog.Item) string { return it.Description }},
		{"tags", func(it catalog.Item) string { return strings.Join(it.Tags, " ") }},
	}
	for _, e := range extract {
		f := field{name: e.name, values: make([]string, len(items))}
		for i, it := range items {
			f.values[i] = strings.ToLower(e.fn(it))
		}
		ix.fields = append(ix.fields, f)
	}
	return ix
}

// Len is the number of indexed items.
func (ix *Index) Len() int { return len(ix.items) }

// Search returns items matching query, best first. Short queries return
// nothing. A limit of zero or less means no limit.
func (ix *Index) Search(query string, limit int) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < MinQueryLength {
		return nil
	}

	best := make(map[int]int)
	for _, f := range ix.fields {
		for _, m := range fuzzy.FindFrom(q, f) {
			if score, seen := best[m.Index]; !seen || m.Score > score {
				best[m.Index] = m.Score
			}
		}
	}

	results := make([]Result, 0, len(best))
	order := make([]int, 0, len(best))
	for idx := range best {
		order = append(order, idx)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if best[a] != best[b] {
			return best[a] > best[b]
		}
		return a < b
	})
	for _, idx := range order {
		results = append(results, Result{Item: ix.items[idx].Clone(), Score: best[idx]})
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results
}
