// Package view owns list state for each dashboard page: the base list fetched
// from a provider, the role scope layered under the user's filters, and the
// loading flag shown while a fetch is outstanding.
package view

import (
	"context"
	"errors"
	"sync"

	"github.com/noah-isme/ur-campus-api/internal/filter"
)

// ErrStale is returned by Load when its result was discarded because the
// controller was unmounted or a newer load started.
var ErrStale = errors.New("stale result discarded")

// Fetcher loads the base list from a provider.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Controller holds a page's base list and derives the visible list from it.
type Controller[T any] struct {
	mu         sync.Mutex
	base       []T
	scope      filter.Predicate[T]
	filters    []filter.Predicate[T]
	loading    bool
	err        error
	mounted    bool
	generation uint64
	notify     func(error)
}

// Option customises a Controller.
type Option[T any] func(*Controller[T])

// WithNotifier registers a callback for fetch failures.
func WithNotifier[T any](notify func(error)) Option[T] {
	return func(c *Controller[T]) { c.notify = notify }
}

// NewController returns a mounted controller restricted to scope. A nil scope
// shows everything.
func NewController[T any](scope filter.Predicate[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{scope: scope, mounted: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the base list. The result is applied only when the controller
// is still mounted and no newer Load has started; otherwise ErrStale is
// returned. A failed fetch keeps the previous list.
func (c *Controller[T]) Load(ctx context.Context, fetch Fetcher[T]) error {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return ErrStale
	}
	c.generation++
	gen := c.generation
	c.loading = true
	c.mu.Unlock()

	items, err := fetch(ctx)

	c.mu.Lock()
	if !c.mounted || gen != c.generation {
		c.mu.Unlock()
		return ErrStale
	}
	c.loading = false
	if err != nil {
		c.err = err
		notify := c.notify
		c.mu.Unlock()
		if notify != nil {
			notify(err)
		}
		return err
	}
	c.base = items
	c.err = nil
	c.mu.Unlock()
	return nil
}

// Refetch reloads the base list for provider-side filters. The visible list
// is hidden until the new result lands.
func (c *Controller[T]) Refetch(ctx context.Context, fetch Fetcher[T]) error {
	return c.Load(ctx, fetch)
}

// SetFilters replaces the user's filters. The base list is not refetched.
func (c *Controller[T]) SetFilters(preds ...filter.Predicate[T]) {
	c.mu.Lock()
	c.filters = append([]filter.Predicate[T](nil), preds...)
	c.mu.Unlock()
}

// ClearFilters restores the role scoped base list.
func (c *Controller[T]) ClearFilters() {
	c.SetFilters()
}

// Unmount discards any outstanding result.
func (c *Controller[T]) Unmount() {
	c.mu.Lock()
	c.mounted = false
	c.loading = false
	c.mu.Unlock()
}

// Items returns the scoped and filtered list, or nil while loading.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return nil
	}
	preds := make([]filter.Predicate[T], 0, len(c.filters)+1)
	preds = append(preds, c.scope)
	preds = append(preds, c.filters...)
	return filter.Apply(c.base, preds...)
}

// Scoped returns the base list restricted to the role scope only.
func (c *Controller[T]) Scoped() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return filter.Apply(c.base, c.scope)
}

// Loading reports whether a fetch is outstanding.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last fetch failure, cleared by the next successful load.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
