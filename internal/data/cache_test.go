package data

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestCache(ttl time.Duration) (*SelectionCache[string], *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
	c := NewSelectionCache[string](ttl)
	c.now = clk.now
	return c, clk
}

func TestSelectionSignature(t *testing.T) {
	a := Selection{Vessel: "A", Cargo: "X", VLSFOPrice: 490, MGOPrice: 650, SpeedKnots: 12}
	b := a
	assert.Equal(t, a.Signature(), b.Signature())
	assert.Len(t, a.Signature(), 64)

	b.ExtraDays = 0.5
	assert.NotEqual(t, a.Signature(), b.Signature())
}

func TestSelectionCachePutGet(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	sel := Selection{Vessel: "A", Cargo: "X", VLSFOPrice: 490}

	id := c.Put(sel, "analysis-1")
	require.NotEmpty(t, id)

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, "analysis-1", got)

	gotID, got, ok := c.Lookup(sel)
	require.True(t, ok)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "analysis-1", got)

	_, ok = c.Get("unknown")
	assert.False(t, ok)
}

func TestSelectionCacheNewestEntryWinsLookup(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	sel := Selection{Vessel: "A", Cargo: "X"}

	first := c.Put(sel, "v1")
	second := c.Put(sel, "v2")
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, c.Len())

	gotID, got, ok := c.Lookup(sel)
	require.True(t, ok)
	assert.Equal(t, second, gotID)
	assert.Equal(t, "v2", got)

	// An ID already handed out stays valid.
	got, ok = c.Get(first)
	require.True(t, ok)
	assert.Equal(t, "v1", got)
}

func TestSelectionCacheSweepKeepsNewerSelectionEntry(t *testing.T) {
	c, clk := newTestCache(time.Minute)
	sel := Selection{Vessel: "A", Cargo: "X"}

	first := c.Put(sel, "v1")
	clk.t = clk.t.Add(30 * time.Second)
	second := c.Put(sel, "v2")
	clk.t = clk.t.Add(45 * time.Second)

	assert.Equal(t, 1, c.Sweep())
	_, ok := c.Get(first)
	assert.False(t, ok)
	gotID, _, ok := c.Lookup(sel)
	require.True(t, ok)
	assert.Equal(t, second, gotID)
}

func TestSelectionCacheConcurrentPutsKeepEveryID(t *testing.T) {
	c := NewSelectionCache[string](time.Minute)
	sel := Selection{Vessel: "A", Cargo: "X"}

	const n = 16
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, ok := c.Lookup(sel); !ok {
				ids <- c.Put(sel, "v")
			}
		}()
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		_, ok := c.Get(id)
		assert.True(t, ok, id)
	}
}

func TestSelectionCacheExpiry(t *testing.T) {
	c, clk := newTestCache(time.Minute)
	sel := Selection{Vessel: "A", Cargo: "X"}
	id := c.Put(sel, "v")

	clk.t = clk.t.Add(59 * time.Second)
	_, ok := c.Get(id)
	assert.True(t, ok)

	clk.t = clk.t.Add(2 * time.Second)
	_, ok = c.Get(id)
	assert.False(t, ok)
	_, _, ok = c.Lookup(sel)
	assert.False(t, ok)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 0, c.Len())
}

func TestSelectionCacheDefaults(t *testing.T) {
	c := NewSelectionCache[int](0)
	assert.Equal(t, DefaultCacheTTL, c.ttl)

	c.Put(Selection{Vessel: "A"}, 1)
	c.Put(Selection{Vessel: "B"}, 2)
	assert.Equal(t, 2, c.Len())
}

func TestNilSelectionCache(t *testing.T) {
	var c *SelectionCache[string]
	id := c.Put(Selection{}, "v")
	assert.NotEmpty(t, id)
	_, ok := c.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Sweep())
	c.Run(context.Background(), time.Millisecond)
}

func TestSelectionCacheRunStopsOnCancel(t *testing.T) {
	c := NewSelectionCache[string](time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
