// Package cache holds the last fetched record list per collection and
// implements invalidate-and-refetch: a successful mutation marks the
// collection stale and schedules a refetch on the shard executor keyed
// by collection name, so the refreshed state observed by subscribers is
// always post-mutation. Entries are never patched optimistically, and
// a per-collection generation counter drops fetch responses that were
// in flight when an invalidation landed.
package cache

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fintrackapp/fintrack-go/internal/job"
	"github.com/fintrackapp/fintrack-go/internal/shardqueue"
)

// FetchFunc loads the full, ordered record list for one collection.
type FetchFunc func(ctx context.Context) (any, error)

// Executor is the subset of the shard executor the cache schedules on.
type Executor interface {
	Submit(ctx context.Context, key string, j shardqueue.Job) error
}

type entry struct {
	value any
	fresh bool
}

// Cache is the process-wide query cache keyed by collection name.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	gens    map[string]uint64
	fetch   map[string]FetchFunc
	subs    map[string][]chan struct{}

	exec Executor
	log  zerolog.Logger
}

// New constructs an empty cache scheduling refetches on exec.
func New(exec Executor, log zerolog.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
		fetch:   make(map[string]FetchFunc),
		subs:    make(map[string][]chan struct{}),
		exec:    exec,
		log:     log,
	}
}

// Register binds the fetch function used to refresh name after an
// invalidation. Typically called once per collection at client setup.
func (c *Cache) Register(name string, fn FetchFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetch[name] = fn
}

// Fresh returns the cached value for name if it has not been
// invalidated since it was stored.
func (c *Cache) Fresh(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	if !ok || !e.fresh {
		return nil, false
	}
	return e.value, true
}

// Generation returns the invalidation generation for name. A fetch
// running outside the refetch queue captures it before issuing the
// request and hands it back to Put, so a response that raced a
// mutation cannot overwrite the post-mutation refetch.
func (c *Cache) Generation(name string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[name]
}

// Put stores a fetched value and notifies subscribers, provided gen
// still matches the collection's current generation. A response whose
// fetch started before an invalidation is dropped: its results may
// predate the mutation, and the refetch the invalidation scheduled
// already carries (or will carry) the newer state. Returns whether the
// value was accepted.
func (c *Cache) Put(name string, gen uint64, v any) bool {
	c.mu.Lock()
	if c.gens[name] != gen {
		c.mu.Unlock()
		return false
	}
	c.entries[name] = &entry{value: v, fresh: true}
	subs := make([]chan struct{}, len(c.subs[name]))
	copy(subs, c.subs[name])
	c.mu.Unlock()

	// Non-blocking notify: a subscriber that went away (screen
	// unmounted) simply never drains its buffered signal.
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return true
}

// Invalidate marks name stale, bumps its generation so in-flight
// fetches land in the bin, and schedules an asynchronous refetch.
// The shard executor serialises refetches per collection, so a refetch
// scheduled after a mutation's response always observes the mutated
// state. Without a registered fetch function the entry just goes stale
// and the next synchronous read refetches.
func (c *Cache) Invalidate(ctx context.Context, name string) error {
	c.mu.Lock()
	if e, ok := c.entries[name]; ok {
		e.fresh = false
	}
	c.gens[name]++
	fn := c.fetch[name]
	c.mu.Unlock()

	invalidationsTotal.WithLabelValues(name).Inc()

	if fn == nil {
		return nil
	}

	refetch := job.New(func(jobCtx context.Context) error {
		gen := c.Generation(name)
		v, err := fn(jobCtx)
		if err != nil {
			refetchTotal.WithLabelValues(name, "error").Inc()
			c.log.Warn().Err(err).Str("collection", name).Msg("cache refetch failed")
			return err
		}
		if !c.Put(name, gen, v) {
			// Another invalidation landed mid-fetch; its own queued
			// refetch supersedes this result.
			refetchTotal.WithLabelValues(name, "superseded").Inc()
			return nil
		}
		refetchTotal.WithLabelValues(name, "ok").Inc()
		return nil
	})
	return c.exec.Submit(ctx, name, refetch)
}

// Subscribe returns a channel signalled after each refresh of name.
// The channel has a buffer of one; missed signals coalesce.
func (c *Cache) Subscribe(name string) <-chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.subs[name] = append(c.subs[name], ch)
	c.mu.Unlock()
	return ch
}

// Unsubscribe detaches a channel obtained from Subscribe. Safe to call
// with a channel that was never registered.
func (c *Cache) Unsubscribe(name string, ch <-chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	subs := c.subs[name]
	for i, s := range subs {
		if s == ch {
			c.subs[name] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
