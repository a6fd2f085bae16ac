package data

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCacheTTL is how long a stored analysis stays retrievable.
const DefaultCacheTTL = 1 * time.Hour

// Selection is the set of user inputs an analysis was computed for.
type Selection struct {
	Vessel     string
	Cargo      string
	VLSFOPrice float64
	MGOPrice   float64
	SpeedKnots float64
	ExtraDays  float64
}

// Signature hashes the selection into a fixed-size cache key.
func (s Selection) Signature() string {
	keyStr := fmt.Sprintf("%s:%s:%g:%g:%g:%g",
		s.Vessel,
		s.Cargo,
		s.VLSFOPrice,
		s.MGOPrice,
		s.SpeedKnots,
		s.ExtraDays,
	)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}

type cacheEntry[T any] struct {
	id        string
	sig       string
	value     T
	expiresAt time.Time
}

// SelectionCache keeps computed analyses for the lifetime of a session.
// Entries are reachable by ID and by the selection that produced them,
// and expire after the TTL. A nil cache stores nothing.
type SelectionCache[T any] struct {
	mu    sync.RWMutex
	byID  map[string]*cacheEntry[T]
	bySig map[string]*cacheEntry[T]
	ttl   time.Duration
	now   func() time.Time
}

// NewSelectionCache returns an empty cache. A non-positive ttl means DefaultCacheTTL.
func NewSelectionCache[T any](ttl time.Duration) *SelectionCache[T] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &SelectionCache[T]{
		byID:  make(map[string]*cacheEntry[T]),
		bySig: make(map[string]*cacheEntry[T]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the analysis stored under id if it has not expired.
func (c *SelectionCache[T]) Get(id string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.byID[id]
	if !ok || c.now().After(entry.expiresAt) {
		return zero, false
	}
	return entry.value, true
}

// Lookup returns the ID and analysis previously stored for sel.
func (c *SelectionCache[T]) Lookup(sel Selection) (string, T, bool) {
	var zero T
	if c == nil {
		return "", zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.bySig[sel.Signature()]
	if !ok || c.now().After(entry.expiresAt) {
		return "", zero, false
	}
	return entry.id, entry.value, true
}

// Put stores value for sel under a new ID and returns it. Later lookups
// of sel return the new entry; IDs handed out earlier for the same
// selection stay retrievable until they expire.
func (c *SelectionCache[T]) Put(sel Selection, value T) string {
	id := uuid.NewString()
	if c == nil {
		return id
	}

	sig := sel.Signature()
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry[T]{
		id:        id,
		sig:       sig,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
	c.byID[id] = entry
	c.bySig[sig] = entry
	return id
}

// Len counts stored entries, expired ones included until the next Sweep.
func (c *SelectionCache[T]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Sweep drops expired entries and reports how many were removed.
func (c *SelectionCache[T]) Sweep() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, entry := range c.byID {
		if now.After(entry.expiresAt) {
			delete(c.byID, id)
			if c.bySig[entry.sig] == entry {
				delete(c.bySig, entry.sig)
			}
			removed++
		}
	}
	return removed
}

// Run sweeps expired entries every interval until ctx is done.
func (c *SelectionCache[T]) Run(ctx context.Context, interval time.Duration) {
	if c == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}
