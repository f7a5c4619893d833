// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets loads garment part assets from a [Source] and caches
// the decoded scene graphs. Every load returns an independent clone,
// so callers can modify and dispose what they get.
package assets

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"cogentcore.org/tailor/xyz"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// LoadError is the error returned by [Cache.Load].
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("assets: loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Cache is a cache of decoded assets, shared by all viewers.
// It holds one canonical graph per path and hands out clones of it.
// Failed loads are not cached, so a later load retries.
type Cache struct {
	// Source is where assets are read from.
	Source Source

	// Metrics, if non-nil, records cache activity.
	Metrics *Metrics

	// PreloadLimit is the maximum number of concurrent decodes
	// started by [Cache.Preload]; 0 means no limit.
	PreloadLimit int

	mu      sync.RWMutex
	entries map[string]*xyz.Group
	pending map[string]bool

	// epoch is incremented by Dispose, so that decodes started
	// before it are not stored.
	epoch int

	flight singleflight.Group
}

// NewCache returns a new cache reading from src.
func NewCache(src Source) *Cache {
	return &Cache{Source: src}
}

// Load returns a clone of the decoded asset at the given path. The first
// load of a path decodes it; concurrent loads of a path that is being
// decoded wait for that decode rather than starting their own. Each
// caller stops waiting when its own context is done, without stopping
// the decode for the others.
func (c *Cache) Load(ctx context.Context, p string) (*xyz.Group, error) {
	p = CleanPath(p)
	gp, err := c.canonical(ctx, p)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return xyz.CloneGroup(gp), nil
}

// canonical returns the cached graph for the path, decoding it if needed.
func (c *Cache) canonical(ctx context.Context, p string) (*xyz.Group, error) {
	c.mu.RLock()
	gp, ok := c.entries[p]
	c.mu.RUnlock()
	if ok {
		c.Metrics.load(ResultHit)
		return gp, nil
	}
	ch := c.flight.DoChan(p, func() (any, error) {
		return c.decode(context.WithoutCancel(ctx), p)
	})
	select {
	case <-ctx.Done():
		c.Metrics.load(ResultError)
		return nil, &LoadError{Path: p, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			c.Metrics.load(ResultError)
			return nil, res.Err
		}
		c.Metrics.load(ResultMiss)
		return res.Val.(*xyz.Group), nil
	}
}

func (c *Cache) decode(ctx context.Context, p string) (*xyz.Group, error) {
	c.mu.Lock()
	if gp, ok := c.entries[p]; ok {
		c.mu.Unlock()
		return gp, nil
	}
	if c.pending == nil {
		c.pending = make(map[string]bool)
	}
	c.pending[p] = true
	epoch := c.epoch
	c.mu.Unlock()

	start := time.Now()
	gp, err := Decode(ctx, c.Source, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, p)
	if err != nil {
		slog.Warn("assets: load failed", "path", p, "err", err)
		return nil, &LoadError{Path: p, Err: err}
	}
	c.Metrics.decoded(start)
	if epoch == c.epoch {
		if c.entries == nil {
			c.entries = make(map[string]*xyz.Group)
		}
		c.entries[p] = gp
		c.Metrics.entries(len(c.entries))
	}
	slog.Debug("assets: decoded", "path", p, "elapsed", time.Since(start))
	return gp, nil
}

// Pending returns whether the asset at the given path is being decoded.
func (c *Cache) Pending(p string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending[CleanPath(p)]
}

// Has returns whether the asset at the given path is cached.
func (c *Cache) Has(p string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[CleanPath(p)]
	return ok
}

// Len returns the number of cached assets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Paths returns the paths of the cached assets, sorted.
func (c *Cache) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ps := make([]string, 0, len(c.entries))
	for p := range c.entries {
		ps = append(ps, p)
	}
	slices.Sort(ps)
	return ps
}

// Preload decodes the assets at the given paths into the cache,
// concurrently, and returns the first error.
func (c *Cache) Preload(ctx context.Context, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	if c.PreloadLimit > 0 {
		g.SetLimit(c.PreloadLimit)
	}
	for _, p := range paths {
		g.Go(func() error {
			_, err := c.canonical(ctx, CleanPath(p))
			return err
		})
	}
	return g.Wait()
}

// Dispose releases all cached graphs. Later loads decode afresh.
// Clones handed out earlier are not affected.
func (c *Cache) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, gp := range c.entries {
		xyz.Dispose(gp)
	}
	c.entries = nil
	c.epoch++
	c.Metrics.entries(0)
}
