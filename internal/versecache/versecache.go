// Package versecache keeps looked-up passages so repeated lookups skip the
// corpus or remote provider.
package versecache

import (
	"context"
	"time"

	"github.com/FocuswithJustin/tamilbible/internal/cache"
)

// Entry is a cached passage.
type Entry struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Reference string `json:"reference"`
	Source    string `json:"source"`
}

// Cache stores entries by key. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
}

// Key builds the cache key for a passage from a source and translation.
func Key(source, bibleID, passageID string) string {
	return source + ":" + bibleID + ":" + passageID
}

// Memory is an in-process cache.
type Memory struct {
	entries *cache.TTLCache[string, Entry]
}

var _ Cache = (*Memory)(nil)

// NewMemory creates an in-process cache. Entries live for ttl, or forever
// when ttl is zero.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{entries: cache.New[string, Entry](ttl)}
}

// Get returns the entry for key.
func (m *Memory) Get(_ context.Context, key string) (*Entry, bool, error) {
	e, ok := m.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	return &e, true, nil
}

// Set stores e under key.
func (m *Memory) Set(_ context.Context, key string, e Entry) error {
	m.entries.Set(key, e)
	return nil
}

// Len returns the number of held entries, expired ones included until
// they are read or purged.
func (m *Memory) Len() int {
	return m.entries.Len()
}
