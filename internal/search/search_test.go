package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"cadoz/internal/catalog"
	"cadoz/internal/kv"
)

func TestSearchMatchesFields(t *testing.T) {
	ix := NewIndex(catalog.Default().Products())
	require.Positive(t, ix.Len())

	byName := ix.Search("Oud", 0)
	require.NotEmpty(t, byName)
	assert.Equal(t, "p-101", byName[0].Item.ID)

	byTag := ix.Search("pearl", 0)
	require.NotEmpty(t, byTag)
	assert.Equal(t, "p-203", byTag[0].Item.ID)

	byCategory := ix.Search("kids", 0)
	ids := map[string]bool{}
	for _, r := range byCategory {
		ids[r.Item.ID] = true
	}
	assert.True(t, ids["p-301"] && ids["p-302"], "expected kids products, got %v", ids)
}

func TestSearchShortQueryReturnsNothing(t *testing.T) {
	ix := NewIndex(catalog.Default().Products())
	assert.Empty(t, ix.Search("o", 0))
	assert.Empty(t, ix.Search("  ", 0))
}

func TestSearchDeduplicatesAndLimits(t *testing.T) {
	items := []catalog.Item{
		{ID: "a", Name: "rose", Description: "rose rose", Tags: []string{"rose"}},
		{ID: "b", Name: "rosewood"},
		{ID: "c", Name: "primrose"},
	}
	results := NewIndex(items).Search("rose", 0)
	seen := map[string]int{}
	for _, r := range results {
		seen[r.Item.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "item %s repeated", id)
	}
	assert.Len(t, NewIndex(items).Search("rose", 2), 2)
}

func newRecent(t *testing.T) (*Recent, kv.Backend) {
	t.Helper()
	b, err := kv.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	r, err := NewRecent(b, zap.NewNop())
	require.NoError(t, err)
	return r, b
}

func TestRecentIsBoundedMostRecentFirstAndDeduplicated(t *testing.T) {
	ctx := context.Background()
	r, _ := newRecent(t)

	for _, term := range []string{"one", "two", "three", "four", "five", "six"} {
		r.Add(ctx, term)
	}
	assert.Equal(t, []string{"six", "five", "four", "three", "two"}, r.List())

	assert.Equal(t, []string{"three", "six", "five", "four", "two"}, r.Add(ctx, "three"))
	assert.Equal(t, []string{"three", "six", "five", "four", "two"}, r.Add(ctx, "  "))
}

func TestRecentPersists(t *testing.T) {
	ctx := context.Background()
	r, b := newRecent(t)
	r.Add(ctx, "oud")
	r.Add(ctx, "scarf")

	fresh, err := NewRecent(b, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"scarf", "oud"}, fresh.Hydrate(ctx))

	require.NoError(t, b.Put(ctx, RecentStorageKey, []byte("{")))
	assert.Empty(t, fresh.Hydrate(ctx))
}

func receive(t *testing.T, ch <-chan string) (string, bool) {
	t.Helper()
	select {
	case v, ok := <-ch:
		return v, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced value")
		return "", false
	}
}

func TestDebounceCoalescesBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := make(chan string)
	out := Debounce(ctx, 50*time.Millisecond, in)

	for _, q := range []string{"r", "ro", "ros", "rose"} {
		in <- q
	}
	v, ok := receive(t, out)
	require.True(t, ok)
	assert.Equal(t, "rose", v)

	select {
	case extra := <-out:
		t.Fatalf("superseded query executed: %q", extra)
	case <-time.After(150 * time.Millisecond):
	}

	close(in)
	_, ok = receive(t, out)
	assert.False(t, ok)
}

func TestDebounceSeparateBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := make(chan string)
	out := Debounce(ctx, 30*time.Millisecond, in)

	in <- "oud"
	v, _ := receive(t, out)
	assert.Equal(t, "oud", v)

	in <- "silk"
	v, _ = receive(t, out)
	assert.Equal(t, "silk", v)

	close(in)
	_, ok := receive(t, out)
	assert.False(t, ok)
}

func TestDebounceFlushesPendingOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	in := make(chan string)
	out := Debounce(context.Background(), 30*time.Millisecond, in)
	in <- "last"
	close(in)

	v, ok := receive(t, out)
	require.True(t, ok)
	assert.Equal(t, "last", v)
	_, ok = receive(t, out)
	assert.False(t, ok)
}

func TestDebounceStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan string)
	out := Debounce(ctx, time.Hour, in)
	in <- "never"
	cancel()

	_, ok := receive(t, out)
	assert.False(t, ok)
}
