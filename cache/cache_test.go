package cache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pwrlabs/dbm/cache"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCache_PutGet(t *testing.T) {
	c := cache.NewCache[string]()

	c.Put("a", "alpha")

	got, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, "alpha", got)

	_, ok = c.Get("missing")
	require.False(t, ok)
}

func TestCache_DefaultTTL(t *testing.T) {
	c := cache.NewCache[int]()
	require.Equal(t, 2*time.Second, c.TTL())
}

func TestCache_Expires(t *testing.T) {
	clock := newFakeClock()
	c := cache.NewCache[int](cache.WithTTL(2*time.Second), cache.WithClock(clock.Now))

	c.Put("k", 1)
	clock.Advance(2 * time.Second)

	_, ok := c.Get("k")
	require.False(t, ok, "entry should expire exactly at TTL")
	require.Zero(t, c.Len())
}

func TestCache_SlidingOnGet(t *testing.T) {
	clock := newFakeClock()
	c := cache.NewCache[int](cache.WithTTL(2*time.Second), cache.WithClock(clock.Now))

	c.Put("k", 1)
	for range 5 {
		clock.Advance(1500 * time.Millisecond)
		_, ok := c.Get("k")
		require.True(t, ok, "each read should push the deadline out")
	}

	clock.Advance(2 * time.Second)
	_, ok := c.Get("k")
	require.False(t, ok)
}

func TestCache_SlidingOnPut(t *testing.T) {
	clock := newFakeClock()
	c := cache.NewCache[int](cache.WithTTL(2*time.Second), cache.WithClock(clock.Now))

	c.Put("k", 1)
	clock.Advance(1500 * time.Millisecond)
	c.Put("k", 2)
	clock.Advance(1500 * time.Millisecond)

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, got)
}

func TestCache_PutOverwrites(t *testing.T) {
	c := cache.NewCache[string]()
	c.Put("k", "v1")
	c.Put("k", "v2")

	got, _ := c.Get("k")
	require.Equal(t, "v2", got)
	require.Equal(t, 1, c.Len())
}

func TestCache_SweepDropsExpired(t *testing.T) {
	clock := newFakeClock()
	c := cache.NewCache[int](cache.WithTTL(time.Second), cache.WithShards(1), cache.WithClock(clock.Now))

	for i := range 10 {
		c.Put(fmt.Sprintf("old-%d", i), i)
	}
	clock.Advance(time.Second)
	for i := range 100 {
		c.Put(fmt.Sprintf("new-%d", i), i)
	}

	require.Equal(t, 100, c.Len())
}

func TestNew_FromConfig(t *testing.T) {
	cfg := cache.DefaultConfig()
	cfg.TTL = "150ms"

	c, err := cache.New[int](&cfg)
	require.NoError(t, err)
	require.Equal(t, 150*time.Millisecond, c.TTL())
}

func TestNew_InvalidTTL(t *testing.T) {
	for _, ttl := range []string{"soon", "-1s", "0s"} {
		cfg := cache.Config{TTL: ttl}
		_, err := cache.New[int](&cfg)
		require.Error(t, err, "ttl %q", ttl)
	}
}

func TestCache_RealClockExpiry(t *testing.T) {
	c := cache.NewCache[int](cache.WithTTL(20 * time.Millisecond))
	c.Put("k", 1)

	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("k")
	require.False(t, ok)
}

func TestCache_Concurrent(t *testing.T) {
	c := cache.NewCache[int](cache.WithShards(4))
	const n = 100

	var wg sync.WaitGroup
	wg.Add(3 * n)
	for i := range n {
		key := fmt.Sprintf("k%d", i%7)
		go func() {
			defer wg.Done()
			c.Put(key, i)
		}()
		go func() {
			defer wg.Done()
			c.Get(key)
		}()
		go func() {
			defer wg.Done()
			c.Len()
		}()
	}
	wg.Wait()

	require.LessOrEqual(t, c.Len(), 7)
}
