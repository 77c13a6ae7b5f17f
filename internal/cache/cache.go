package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrHydrate = errors.New("error hydrating cache")

// Source provides the newest persisted last_updated value, if any.
type Source interface {
	LatestLastUpdated(ctx context.Context) (int64, bool, error)
}

type Cache interface {
	Get() int64
	Set(lastUpdated int64)
}

// SeenCache holds the last observed feed timestamp. The zero value is ready
// to use and starts at 0.
type SeenCache struct {
	mu          sync.RWMutex
	lastUpdated int64
	setAt       time.Time
}

func New() *SeenCache {
	return &SeenCache{}
}

func (c *SeenCache) Get() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdated
}

func (c *SeenCache) Set(lastUpdated int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastUpdated == lastUpdated {
		return
	}
	c.lastUpdated = lastUpdated
	c.setAt = time.Now()
}

// SetAt reports when the current value was last changed.
func (c *SeenCache) SetAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.setAt
}

func (c *SeenCache) Dump() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	slog.Info("Cache Dump", "last_updated", c.lastUpdated, "set_at", c.setAt)
}

// Hydrate seeds the cache from src. An empty source leaves the cache as is.
func (c *SeenCache) Hydrate(ctx context.Context, src Source) error {
	const fn = "Cache:Hydrate"
	slog.InfoContext(ctx, "Starting cache hydration...")
	lastUpdated, ok, err := src.LatestLastUpdated(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrHydrate, err)
	}
	if !ok {
		slog.InfoContext(ctx, "Cache hydration complete - no snapshots indexed")
		return nil
	}
	c.Set(lastUpdated)
	slog.InfoContext(ctx, "Cache hydration complete", "last_updated", lastUpdated)
	return nil
}
