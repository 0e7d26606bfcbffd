// Package cache memoizes pure stage functions in a bounded LRU store.
//
// The default cache is relaxed: two goroutines missing on the same key at the
// same time may both compute the value, and the later write wins. Because the
// wrapped functions are pure this only costs duplicate work. WithSingleFlight
// upgrades a cache to at most one in-flight computation per key.
package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/cognicore/lexsim/pkg/lexsim/internalerr"
)

// Cache is a bounded key/value store with get-or-compute semantics.
type Cache[K comparable, V any] interface {
	GetOrCompute(key K, compute func(K) V) V
}

// Option configures an LRU.
type Option func(*options)

type options struct {
	singleFlight bool
}

// WithSingleFlight collapses concurrent misses on the same key into a single
// computation whose result every waiting caller receives.
func WithSingleFlight() Option {
	return func(o *options) { o.singleFlight = true }
}

// LRU is a fixed-capacity, least-recently-used cache. It is safe for
// concurrent use.
type LRU[K comparable, V any] struct {
	entries *lru.Cache[K, V]
	group   *singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewLRU creates a cache holding at most capacity entries.
func NewLRU[K comparable, V any](capacity int, opts ...Option) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d: %w", capacity, internalerr.ErrInvalidConfig)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := lru.New[K, V](capacity)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}

	c := &LRU[K, V]{entries: entries}
	if o.singleFlight {
		c.group = &singleflight.Group{}
	}
	return c, nil
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. Storing may evict the least recently used entry. A panic in compute
// propagates to the caller and nothing is stored.
func (c *LRU[K, V]) GetOrCompute(key K, compute func(K) V) V {
	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)

	if c.group == nil {
		v := compute(key)
		c.entries.Add(key, v)
		return v
	}

	res, _, _ := c.group.Do(flightKey(key), func() (any, error) {
		// Another flight may have stored the value between our miss and now.
		if v, ok := c.entries.Get(key); ok {
			return v, nil
		}
		v := compute(key)
		c.entries.Add(key, v)
		return v, nil
	})
	return res.(V)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.entries.Len()
}

// Purge drops every entry. Counters are kept.
func (c *LRU[K, V]) Purge() {
	c.entries.Purge()
}

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// Stats returns the hit/miss counters and the current size.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Len:    c.entries.Len(),
	}
}

func flightKey[K comparable](key K) string {
	if s, ok := any(key).(string); ok {
		return s
	}
	return fmt.Sprintf("%#v", key)
}

// Memoize wraps f so that every call goes through c.
func Memoize[K comparable, V any](c Cache[K, V], f func(K) V) func(K) V {
	return func(key K) V {
		return c.GetOrCompute(key, f)
	}
}
