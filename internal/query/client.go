package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Fetcher loads the value for a key.
type Fetcher func(ctx context.Context) (any, error)

// Options control how a key is kept fresh. A zero StaleTime means cached
// data is refetched on every read. CacheTime drops an entry once it has gone
// unread that long; zero keeps it until Clear.
type Options struct {
	RefetchInterval time.Duration
	RefetchOnFocus  bool
	StaleTime       time.Duration
	CacheTime       time.Duration
}

type entry struct {
	key       Key
	data      any
	hasData   bool
	err       error
	updatedAt time.Time
	fetchedAt time.Time
	readAt    time.Time
	stale     bool
	fetcher   Fetcher
	opts      Options
}

// Client is a keyed query cache for one visitor. Concurrent fetches of the
// same key share one request; late completions still write the cache.
type Client struct {
	log   zerolog.Logger
	now   func() time.Time
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
}

func NewClient(log zerolog.Logger) *Client {
	return &Client{
		log:     log,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

func (c *Client) entryLocked(key Key) *entry {
	id := key.String()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{key: append(Key(nil), key...)}
		c.entries[id] = e
	}
	return e
}

// Fetch returns cached data when it is still fresh, otherwise runs fetcher.
// The key becomes observed: later Tick and Focus calls may refetch it.
func (c *Client) Fetch(ctx context.Context, key Key, fetcher Fetcher, opts Options) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	e.fetcher = fetcher
	e.opts = opts
	e.readAt = c.now()
	if e.hasData && !e.stale && opts.StaleTime > 0 && c.now().Sub(e.updatedAt) < opts.StaleTime {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	return c.run(ctx, key, fetcher)
}

func (c *Client) run(ctx context.Context, key Key, fetcher Fetcher) (any, error) {
	id := key.String()
	v, err, _ := c.group.Do(id, func() (any, error) {
		data, err := fetcher(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		e := c.entryLocked(key)
		e.fetchedAt = c.now()
		e.err = err
		if err == nil {
			e.data = data
			e.hasData = true
			e.updatedAt = e.fetchedAt
			e.stale = false
		}
		return data, err
	})
	return v, err
}

// Get is the typed form of Client.Fetch.
func Get[T any](ctx context.Context, c *Client, key Key, fetch func(context.Context) (T, error), opts Options) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}, opts)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached %T, want %T", key, v, zero)
	}
	return out, nil
}

// Peek returns the cached value without fetching.
func (c *Client) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok || !e.hasData {
		return nil, false
	}
	return e.data, true
}

// IsStale reports whether key is unknown or has been invalidated.
func (c *Client) IsStale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	return !ok || !e.hasData || e.stale
}

// Invalidate marks every entry under the given prefixes stale and returns
// how many entries were hit.
func (c *Client) Invalidate(prefixes ...Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		for _, p := range prefixes {
			if e.key.HasPrefix(p) {
				e.stale = true
				n++
				break
			}
		}
	}
	return n
}

// SetData patches the cached value in place. update receives nil when the
// key holds nothing yet.
func (c *Client) SetData(key Key, update func(old any) any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryLocked(key)
	var old any
	if e.hasData {
		old = e.data
	}
	e.data = update(old)
	e.hasData = true
	e.updatedAt = c.now()
}

// Clear drops every entry, as after the visitor signs out.
func (c *Client) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

type pending struct {
	key     Key
	fetcher Fetcher
}

// Focus refetches every observed key that asked for RefetchOnFocus.
func (c *Client) Focus(ctx context.Context) int {
	return c.refetch(ctx, c.collect(func(e *entry, _ time.Time) bool {
		return e.opts.RefetchOnFocus
	}, c.now()))
}

// Tick evicts entries past their CacheTime, then refetches polled keys that
// are stale or whose RefetchInterval elapsed. Keys without an interval stay
// stale until their next read.
func (c *Client) Tick(ctx context.Context, now time.Time) int {
	c.evict(now)
	return c.refetch(ctx, c.collect(func(e *entry, now time.Time) bool {
		if e.opts.RefetchInterval <= 0 {
			return false
		}
		return e.stale || now.Sub(e.fetchedAt) >= e.opts.RefetchInterval
	}, now))
}

func (c *Client) evict(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for id, e := range c.entries {
		if e.opts.CacheTime > 0 && now.Sub(e.readAt) >= e.opts.CacheTime {
			delete(c.entries, id)
			n++
		}
	}
	return n
}

// Len reports how many keys are cached.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Client) collect(match func(*entry, time.Time) bool, now time.Time) []pending {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []pending
	for _, e := range c.entries {
		if e.fetcher == nil || !match(e, now) {
			continue
		}
		out = append(out, pending{key: e.key, fetcher: e.fetcher})
	}
	return out
}

func (c *Client) refetch(ctx context.Context, items []pending) int {
	n := 0
	for _, p := range items {
		if ctx.Err() != nil {
			break
		}
		if _, err := c.run(ctx, p.key, p.fetcher); err != nil {
			c.log.Warn().Err(err).Str("key", p.key.String()).Msg("background refetch failed")
			continue
		}
		n++
	}
	return n
}
