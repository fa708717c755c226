// Package datasource holds dv's durable storage backends. The only durable
// state the app owns locally is walkthrough completion: everything else
// (boards, expenses, members) lives behind the remote API interfaces.
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/mboersen/divvy/pkg/debug"
	"github.com/mboersen/divvy/pkg/walkthrough"
)

// CompletionDB is a SQLite-backed walkthrough.CompletionStore. One row per
// (user_id, screen) pair; upserts are last-write-wins, which matches the
// session's hand-off ordering (a ClearCompleted is always causally followed
// by the target's own later MarkCompleted, never the reverse).
type CompletionDB struct {
	db   *sql.DB
	path string
}

const completionSchema = `
CREATE TABLE IF NOT EXISTS walkthrough_completion (
	user_id      TEXT NOT NULL,
	screen       TEXT NOT NULL,
	completed_at TEXT NOT NULL,
	PRIMARY KEY (user_id, screen)
);`

// OpenCompletionDB opens (creating if needed) the completion database at
// path. The parent directory is created; WAL and a busy timeout keep the
// short writes from ever blocking the UI for long.
func OpenCompletionDB(path string) (*CompletionDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open completion db: %w", err)
	}
	// A single connection sidesteps SQLITE_BUSY between the gating read
	// and the background writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(completionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create completion schema: %w", err)
	}
	return &CompletionDB{db: db, path: path}, nil
}

// Close closes the database connection.
func (c *CompletionDB) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Path returns the on-disk location, for status output.
func (c *CompletionDB) Path() string {
	return c.path
}

// IsCompleted reports whether user has finished screen's walkthrough.
// Callers treat an error as "not completed" (fail open).
func (c *CompletionDB) IsCompleted(ctx context.Context, user string, screen walkthrough.ScreenID) (bool, error) {
	var one int
	err := c.db.QueryRowContext(ctx,
		`SELECT 1 FROM walkthrough_completion WHERE user_id = ? AND screen = ?`,
		user, string(screen)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read completion %s/%s: %w", user, screen, err)
	}
	return true, nil
}

// MarkCompleted records the flag. Best-effort: the session logs and ignores
// failures.
func (c *CompletionDB) MarkCompleted(ctx context.Context, user string, screen walkthrough.ScreenID) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO walkthrough_completion (user_id, screen, completed_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id, screen) DO UPDATE SET completed_at = excluded.completed_at`,
		user, string(screen), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("mark completion %s/%s: %w", user, screen, err)
	}
	return nil
}

// ClearCompleted removes the flag (hand-offs and explicit restarts).
func (c *CompletionDB) ClearCompleted(ctx context.Context, user string, screen walkthrough.ScreenID) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM walkthrough_completion WHERE user_id = ? AND screen = ?`,
		user, string(screen))
	if err != nil {
		return fmt.Errorf("clear completion %s/%s: %w", user, screen, err)
	}
	return nil
}

// Prefetch reads the flags for every registered screen concurrently and
// returns them. CachedCompletion warms its cache with this at startup so
// tab switches gate against memory instead of disk; errors fail open per
// screen.
func (c *CompletionDB) Prefetch(ctx context.Context, user string, screens []walkthrough.ScreenID) map[walkthrough.ScreenID]bool {
	start := time.Now()
	results := make([]bool, len(screens))

	g, gctx := errgroup.WithContext(ctx)
	for i, screen := range screens {
		g.Go(func() error {
			done, err := c.IsCompleted(gctx, user, screen)
			if err != nil {
				debug.Log("datasource: prefetch %s/%s failed open: %v", user, screen, err)
				done = false
			}
			results[i] = done
			return nil
		})
	}
	_ = g.Wait() // goroutines only report via results

	flags := make(map[walkthrough.ScreenID]bool, len(screens))
	for i, screen := range screens {
		flags[screen] = results[i]
	}
	debug.LogTiming("completion prefetch", time.Since(start))
	return flags
}
