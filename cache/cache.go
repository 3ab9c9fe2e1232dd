// Package cache provides a process-wide, in-memory cache with sliding
// expiration. Every Get hit and every Put pushes the entry's deadline out by
// the TTL. The cache is a memoization window only: it offers no mutual
// exclusion to callers and a cold cache must behave exactly like a warm one.
package cache

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// sweepEvery is the number of Puts on a shard between expired-entry sweeps.
const sweepEvery = 64

type entry[V any] struct {
	value   V
	expires time.Time
}

type shard[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	puts    int
}

// Cache maps string keys to values of type V. All methods are safe for
// concurrent use. There is no teardown; expired entries are dropped lazily.
type Cache[V any] struct {
	ttl    time.Duration
	now    func() time.Time
	shards []*shard[V]
}

type options struct {
	ttl    time.Duration
	shards int
	now    func() time.Time
}

// Option configures a Cache at construction.
type Option func(*options)

// WithTTL sets the sliding expiration.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithShards sets the number of lock stripes.
func WithShards(n int) Option {
	return func(o *options) { o.shards = n }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewCache creates an empty Cache. Without options it uses DefaultTTL.
func NewCache[V any](opts ...Option) *Cache[V] {
	o := options{ttl: DefaultTTL, shards: defaultShards, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ttl <= 0 {
		o.ttl = DefaultTTL
	}
	if o.shards < 1 {
		o.shards = 1
	}

	c := &Cache[V]{
		ttl:    o.ttl,
		now:    o.now,
		shards: make([]*shard[V], o.shards),
	}
	for i := range c.shards {
		c.shards[i] = &shard[V]{entries: make(map[string]*entry[V])}
	}
	return c
}

// New creates a Cache from configuration. Options are applied after the
// configured values and override them.
func New[V any](cfg *Config, opts ...Option) (*Cache[V], error) {
	ttl, err := cfg.Duration()
	if err != nil {
		return nil, err
	}
	base := []Option{WithTTL(ttl)}
	if cfg.Shards > 0 {
		base = append(base, WithShards(cfg.Shards))
	}
	return NewCache[V](append(base, opts...)...), nil
}

// TTL returns the sliding expiration.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[V]) shardFor(key string) *shard[V] {
	return c.shards[xxhash.Sum64String(key)%uint64(len(c.shards))]
}

// Get returns the live value for key and resets its TTL.
func (c *Cache[V]) Get(key string) (V, bool) {
	s := c.shardFor(key)
	now := c.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !now.Before(e.expires) {
		delete(s.entries, key)
		var zero V
		return zero, false
	}
	e.expires = now.Add(c.ttl)
	return e.value, true
}

// Put stores value under key unconditionally and resets its TTL.
func (c *Cache[V]) Put(key string, value V) {
	s := c.shardFor(key)
	now := c.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &entry[V]{value: value, expires: now.Add(c.ttl)}
	s.puts++
	if s.puts%sweepEvery == 0 {
		s.sweep(now)
	}
}

// Len returns the number of live entries. Expired entries are dropped as a
// side effect.
func (c *Cache[V]) Len() int {
	now := c.now()
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		s.sweep(now)
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

func (s *shard[V]) sweep(now time.Time) {
	for key, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, key)
		}
	}
}
