package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/matheuskafuri/hotwatch/internal/trend"
)

// Loader produces a fresh dataset, typically by running the pipeline.
type Loader func(ctx context.Context) (trend.Dataset, error)

// Entry is a dataset together with the time it was fetched.
type Entry struct {
	Dataset   trend.Dataset
	FetchedAt time.Time
}

func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// Cache memoizes a single dataset slot for ttl. At most one load runs at a
// time; callers that arrive while a load is in flight share its result.
type Cache struct {
	key  string
	ttl  time.Duration
	load Loader

	group singleflight.Group

	mu    sync.Mutex
	entry *Entry
	valid bool
	gen   uint64
}

func New(key string, ttl time.Duration, load Loader) *Cache {
	return &Cache{key: key, ttl: ttl, load: load}
}

func (c *Cache) Key() string { return c.key }

func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the cached entry while it is younger than ttl, otherwise it runs
// the loader and replaces the slot. A failed load leaves the previous entry
// available through Last.
func (c *Cache) Get(ctx context.Context, now time.Time) (Entry, error) {
	if e, ok := c.fresh(now); ok {
		slog.DebugContext(ctx, "cache hit", "key", c.key, "age", e.Age(now))
		return e, nil
	}

	v, err, shared := c.group.Do(c.key, func() (any, error) {
		if e, ok := c.fresh(now); ok {
			return e, nil
		}

		c.mu.Lock()
		gen := c.gen
		c.mu.Unlock()

		slog.DebugContext(ctx, "cache miss, loading", "key", c.key)
		ds, err := c.load(ctx)
		if err != nil {
			return nil, err
		}

		e := Entry{Dataset: ds, FetchedAt: now}
		c.mu.Lock()
		c.entry = &e
		// An Invalidate that raced this load wins.
		c.valid = gen == c.gen
		c.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return Entry{}, err
	}
	if shared {
		slog.DebugContext(ctx, "joined in-flight load", "key", c.key)
	}
	return v.(Entry), nil
}

// Invalidate forces the next Get to load regardless of the remaining ttl.
// The last good entry stays readable through Last.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.gen++
}

// Last returns the most recent successfully loaded entry, fresh or not.
func (c *Cache) Last() (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil {
		return Entry{}, false
	}
	return *c.entry, true
}

func (c *Cache) fresh(now time.Time) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil || !c.valid {
		return Entry{}, false
	}
	if c.entry.Age(now) >= c.ttl {
		return Entry{}, false
	}
	return *c.entry, true
}
