package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(ttl time.Duration) (*TTLCache[string, int], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string, int](ttl)
	c.now = clock.Now
	return c, clock
}

func TestSetAndGet(t *testing.T) {
	cache, _ := newTestCache(time.Minute)
	if cache.Len() != 0 {
		t.Error("new cache should be empty")
	}

	cache.Set("GEN.1.1", 42)
	if v, ok := cache.Get("GEN.1.1"); !ok || v != 42 {
		t.Errorf("Get = %d, %v; want 42, true", v, ok)
	}
	if _, ok := cache.Get("nonexistent"); ok {
		t.Error("Get returned ok=true for non-existent key")
	}

	cache.Set("GEN.1.1", 43)
	if v, _ := cache.Get("GEN.1.1"); v != 43 {
		t.Errorf("overwrite not visible, got %d", v)
	}
}

func TestEntriesExpireIndividually(t *testing.T) {
	cache, clock := newTestCache(time.Minute)

	cache.Set("old", 1)
	clock.Advance(40 * time.Second)
	cache.Set("new", 2)
	clock.Advance(20 * time.Second)

	if _, ok := cache.Get("old"); ok {
		t.Error("old entry should expire exactly at its deadline")
	}
	if v, ok := cache.Get("new"); !ok || v != 2 {
		t.Error("new entry should still be live")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	cache, clock := newTestCache(0)
	cache.Set("k", 7)
	clock.Advance(24 * 365 * time.Hour)
	if v, ok := cache.Get("k"); !ok || v != 7 {
		t.Error("entry with zero TTL expired")
	}
	if n := cache.Purge(); n != 0 {
		t.Errorf("Purge removed %d entries without a TTL", n)
	}
}

func TestPurge(t *testing.T) {
	cache, clock := newTestCache(time.Minute)
	cache.Set("a", 1)
	cache.Set("b", 2)
	clock.Advance(2 * time.Minute)
	cache.Set("c", 3)

	if n := cache.Purge(); n != 2 {
		t.Errorf("Purge removed %d, want 2", n)
	}
	if cache.Len() != 1 {
		t.Errorf("Len after purge = %d, want 1", cache.Len())
	}
}

func TestWritesSweepExpired(t *testing.T) {
	cache, clock := newTestCache(time.Minute)
	for i := 0; i < purgeEvery/2; i++ {
		cache.Set(fmt.Sprintf("old-%d", i), i)
	}
	clock.Advance(2 * time.Minute)
	for i := 0; i < purgeEvery/2; i++ {
		cache.Set(fmt.Sprintf("new-%d", i), i)
	}

	if n := cache.Len(); n != purgeEvery/2 {
		t.Errorf("Len = %d, want %d after the periodic sweep", n, purgeEvery/2)
	}
}

func TestConcurrentAccess(t *testing.T) {
	cache := New[int, int](time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			cache.Set(n, n*2)
		}(i)
		go func(n int) {
			defer wg.Done()
			cache.Get(n)
		}(i)
	}
	wg.Wait()

	if cache.Len() != 50 {
		t.Errorf("Len = %d, want 50", cache.Len())
	}
}
