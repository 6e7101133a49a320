package cache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lumocms/themehub/internal/cache"
)

// fakeClock is a manually advanced clock for TTL tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
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

func TestSetAndGet(t *testing.T) {
	c := cache.New()

	c.Set("key1", "value1", time.Minute)

	v, ok := c.Get("key1")
	if !ok {
		t.Fatalf("expected hit for key1")
	}
	if v != "value1" {
		t.Fatalf("expected value1, got %v", v)
	}
}

func TestGetMissingKey(t *testing.T) {
	c := cache.New()

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestTTLExpiry(t *testing.T) {
	clock := newFakeClock()
	c := cache.NewWithClock(clock.Now)

	c.Set("ttlKey", "temp", 900*time.Second)

	if _, ok := c.Get("ttlKey"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	clock.Advance(899 * time.Second)
	if _, ok := c.Get("ttlKey"); !ok {
		t.Fatalf("expected hit just before expiry")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get("ttlKey"); ok {
		t.Fatalf("expected miss after TTL elapsed")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	clock := newFakeClock()
	c := cache.NewWithClock(clock.Now)

	c.Set("pinned", "value", 0)

	clock.Advance(24 * time.Hour * 365)

	v, ok := c.Get("pinned")
	if !ok || v != "value" {
		t.Fatalf("expected zero-TTL entry to survive, got %v (hit=%v)", v, ok)
	}
}

func TestDelete(t *testing.T) {
	c := cache.New()

	c.Set("key1", "value1", 0)
	c.Delete("key1")

	if _, ok := c.Get("key1"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestFlushClearsEverySetKey(t *testing.T) {
	c := cache.New()

	keys := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		k := fmt.Sprintf("key%d", i)
		keys = append(keys, k)
		c.Set(k, i, time.Hour)
	}

	c.Flush()

	for _, k := range keys {
		if _, ok := c.Get(k); ok {
			t.Fatalf("expected miss for %s after flush", k)
		}
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after flush, got %d entries", c.Len())
	}
}

func TestOverwriteExistingKey(t *testing.T) {
	c := cache.New()

	c.Set("key1", "value1", time.Minute)
	c.Set("key1", "value2", time.Minute)

	v, _ := c.Get("key1")
	if v != "value2" {
		t.Fatalf("expected value2, got %v", v)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := cache.New()
	c.Set("key", "value", time.Minute)

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set(fmt.Sprintf("key%d", n), n, time.Minute)
			if v, ok := c.Get("key"); !ok || v != "value" {
				t.Errorf("expected value, got %v", v)
			}
		}(i)
	}
	wg.Wait()
}
