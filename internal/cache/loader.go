package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces the value for a key.
type LoadFunc[V any] func(ctx context.Context, key string) (V, error)

// LoadHook observes every completed load.
type LoadHook func(key string, duration time.Duration, err error)

// Loader loads each key at most once at a time and keeps successful
// results. Concurrent callers for the same key share one in-flight load.
// A failed load is not kept, so the next caller starts a fresh one.
//
// The load runs detached from the caller's cancellation: a caller whose
// context ends stops waiting, and the others still get the result.
type Loader[V any] struct {
	load   LoadFunc[V]
	loaded *TTLCache[string, V]
	group  singleflight.Group
	hook   LoadHook

	// waiting, when set, is called once a caller has joined the load for
	// key and is about to wait for its result.
	waiting func(key string)
}

// NewLoader creates a loader. Loaded values are kept for ttl, or for the
// lifetime of the loader when ttl is zero.
func NewLoader[V any](ttl time.Duration, load LoadFunc[V]) *Loader[V] {
	return &Loader[V]{
		load:   load,
		loaded: New[string, V](ttl),
	}
}

// OnLoad registers a hook called after each load finishes.
func (l *Loader[V]) OnLoad(hook LoadHook) {
	l.hook = hook
}

// Get returns the value for key, loading it if needed.
func (l *Loader[V]) Get(ctx context.Context, key string) (V, error) {
	if v, ok := l.loaded.Get(key); ok {
		return v, nil
	}

	ch := l.group.DoChan(key, func() (any, error) {
		if v, ok := l.loaded.Get(key); ok {
			return v, nil
		}
		start := time.Now()
		v, err := l.load(context.WithoutCancel(ctx), key)
		if l.hook != nil {
			l.hook(key, time.Since(start), err)
		}
		if err != nil {
			return nil, err
		}
		l.loaded.Set(key, v)
		return v, nil
	})
	if l.waiting != nil {
		l.waiting(key)
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// Loaded reports whether key has a kept value.
func (l *Loader[V]) Loaded(key string) bool {
	_, ok := l.loaded.Get(key)
	return ok
}

// Len returns the number of kept values.
func (l *Loader[V]) Len() int {
	return l.loaded.Len()
}
