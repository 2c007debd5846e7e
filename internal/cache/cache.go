// Package cache is an in-process query cache keyed by logical resource.
//
// Each key has at most one fetch in flight. A successful result stays fresh
// for the staleness window; once stale, the next caller refreshes it while
// concurrent callers keep receiving the previous value until the refresh
// lands (stale-while-revalidate). Failed fetches are never stored.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultStaleTime is how long a fetched value is served without a refetch.
const DefaultStaleTime = 5 * time.Minute

type Option func(*Cache)

// WithStaleTime overrides the staleness window. Non-positive values disable
// freshness, so every call refetches (concurrent calls are still shared).
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) { c.staleTime = d }
}

// WithClock injects the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

type entry struct {
	value     interface{}
	hasValue  bool
	updatedAt time.Time
	fetching  bool
	failed    bool
}

// State is a snapshot of one key.
type State struct {
	HasValue  bool
	Fetching  bool
	Failed    bool
	UpdatedAt time.Time
}

type Cache struct {
	mu        sync.Mutex
	entries   map[string]*entry
	group     singleflight.Group
	staleTime time.Duration
	now       func() time.Time
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries:   make(map[string]*entry),
		staleTime: DefaultStaleTime,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value for key, calling fn when there is none or
// it has gone stale. If fn fails and a previous value exists, that value is
// returned together with the error.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	return FetchIf(ctx, c, key, fn, nil)
}

// FetchIf is Fetch for keys whose results are not always worth keeping. A
// result rejected by keep is handed to the callers sharing the flight and the
// key is then forgotten. A nil keep stores every successful result.
func FetchIf[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error), keep func(T) bool) (T, error) {
	var keepAny func(interface{}) bool
	if keep != nil {
		keepAny = func(v interface{}) bool {
			t, _ := v.(T)
			return keep(t)
		}
	}
	v, err := c.load(ctx, key.String(), func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	}, keepAny)
	out, _ := v.(T)
	return out, err
}

// Peek returns the stored value for key if it is still fresh. It never
// triggers a fetch.
func Peek[T any](c *Cache, key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	e, ok := c.entries[key.String()]
	if !ok || !c.fresh(e) {
		return zero, false
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *Cache) fresh(e *entry) bool {
	return e.hasValue && c.staleTime > 0 && c.now().Sub(e.updatedAt) < c.staleTime
}

func (c *Cache) load(ctx context.Context, k string, fn func(context.Context) (interface{}, error), keep func(interface{}) bool) (interface{}, error) {
	c.mu.Lock()
	e, ok := c.entries[k]
	if ok && e.hasValue && (c.fresh(e) || e.fetching) {
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	if !ok {
		e = &entry{}
		c.entries[k] = e
	}
	e.fetching = true
	c.mu.Unlock()

	v, err, _ := c.group.Do(k, func() (interface{}, error) {
		c.mu.Lock()
		cur, ok := c.entries[k]
		if ok && c.fresh(cur) {
			// Another flight finished between our check and Do.
			v := cur.value
			cur.fetching = false
			c.mu.Unlock()
			return v, nil
		}
		if !ok {
			cur = &entry{}
			c.entries[k] = cur
		}
		cur.fetching = true
		c.mu.Unlock()

		var (
			val interface{}
			err error
			ran bool
		)
		defer func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			cur.fetching = false
			if !ran {
				cur.failed = true
				return
			}
			// An Invalidate during the flight detached cur; drop the result.
			if c.entries[k] != cur {
				return
			}
			if err != nil {
				cur.failed = true
				return
			}
			if keep != nil && !keep(val) {
				delete(c.entries, k)
				return
			}
			cur.value = val
			cur.hasValue = true
			cur.failed = false
			cur.updatedAt = c.now()
		}()

		val, err = fn(context.WithoutCancel(ctx))
		ran = true
		if err != nil {
			c.mu.Lock()
			stale, hasStale := cur.value, cur.hasValue
			c.mu.Unlock()
			if hasStale {
				return stale, err
			}
		}
		return val, err
	})
	return v, err
}

// Invalidate drops the given keys. A flight already running for one of them
// still answers its waiters but its result is not stored.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		k := key.String()
		if e, ok := c.entries[k]; ok {
			e.fetching = false
		}
		delete(c.entries, k)
		c.group.Forget(k)
	}
}

// State reports the current state of key without triggering a fetch.
func (c *Cache) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return State{}
	}
	return State{
		HasValue:  e.hasValue,
		Fetching:  e.fetching,
		Failed:    e.failed,
		UpdatedAt: e.updatedAt,
	}
}

// Len returns the number of keys holding a value.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.hasValue {
			n++
		}
	}
	return n
}
