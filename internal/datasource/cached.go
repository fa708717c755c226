package datasource

import (
	"context"
	"sync"

	"github.com/mboersen/divvy/pkg/walkthrough"
)

type flagKey struct {
	user   string
	screen walkthrough.ScreenID
}

// CachedCompletion wraps a CompletionDB with an in-memory read-through
// cache so the per-tab gating reads after startup hit memory instead of
// disk. Writes go through to SQLite and update the cache on success, so
// a cached flag is never fresher than the database.
type CachedCompletion struct {
	db *CompletionDB

	mu    sync.RWMutex
	flags map[flagKey]bool
}

// NewCachedCompletion wraps db. Call Warm before the first gate read to
// preload the known screens.
func NewCachedCompletion(db *CompletionDB) *CachedCompletion {
	return &CachedCompletion{db: db, flags: make(map[flagKey]bool)}
}

// Warm preloads the flags for user across screens via Prefetch. Errors
// fail open inside Prefetch, so a warmed "false" may be a read failure;
// that matches how the session treats direct read errors.
func (c *CachedCompletion) Warm(ctx context.Context, user string, screens []walkthrough.ScreenID) {
	flags := c.db.Prefetch(ctx, user, screens)
	c.mu.Lock()
	defer c.mu.Unlock()
	for screen, done := range flags {
		c.flags[flagKey{user, screen}] = done
	}
}

// IsCompleted serves from the cache when the pair has been seen, and
// reads through to the database otherwise.
func (c *CachedCompletion) IsCompleted(ctx context.Context, user string, screen walkthrough.ScreenID) (bool, error) {
	key := flagKey{user, screen}
	c.mu.RLock()
	done, ok := c.flags[key]
	c.mu.RUnlock()
	if ok {
		return done, nil
	}

	done, err := c.db.IsCompleted(ctx, user, screen)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	c.flags[key] = done
	c.mu.Unlock()
	return done, nil
}

// MarkCompleted writes through and caches the flag on success.
func (c *CachedCompletion) MarkCompleted(ctx context.Context, user string, screen walkthrough.ScreenID) error {
	if err := c.db.MarkCompleted(ctx, user, screen); err != nil {
		return err
	}
	c.mu.Lock()
	c.flags[flagKey{user, screen}] = true
	c.mu.Unlock()
	return nil
}

// ClearCompleted writes through and caches the cleared flag on success.
func (c *CachedCompletion) ClearCompleted(ctx context.Context, user string, screen walkthrough.ScreenID) error {
	if err := c.db.ClearCompleted(ctx, user, screen); err != nil {
		return err
	}
	c.mu.Lock()
	c.flags[flagKey{user, screen}] = false
	c.mu.Unlock()
	return nil
}

// Close closes the underlying database.
func (c *CachedCompletion) Close() error {
	return c.db.Close()
}

// Path returns the on-disk location of the underlying database.
func (c *CachedCompletion) Path() string {
	return c.db.Path()
}
