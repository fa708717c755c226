package datasource

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mboersen/divvy/pkg/walkthrough"
)

func TestCachedWarmServesFromMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "completion.db")
	ctx := context.Background()

	db, err := OpenCompletionDB(path)
	if err != nil {
		t.Fatalf("OpenCompletionDB: %v", err)
	}
	if err := db.MarkCompleted(ctx, "ana", walkthrough.ScreenBoards); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	cache := NewCachedCompletion(db)
	cache.Warm(ctx, "ana", []walkthrough.ScreenID{
		walkthrough.ScreenBoards,
		walkthrough.ScreenSummary,
	})

	// Closing the database proves the warmed reads never touch disk.
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	done, err := cache.IsCompleted(ctx, "ana", walkthrough.ScreenBoards)
	if err != nil {
		t.Fatalf("IsCompleted(boards): %v", err)
	}
	if !done {
		t.Error("warmed boards flag lost")
	}
	done, err = cache.IsCompleted(ctx, "ana", walkthrough.ScreenSummary)
	if err != nil {
		t.Fatalf("IsCompleted(summary): %v", err)
	}
	if done {
		t.Error("warmed summary flag must be false")
	}

	// A pair the warm never saw has to read through, and the closed
	// database makes that visible.
	if _, err := cache.IsCompleted(ctx, "ana", walkthrough.ScreenBoard); err == nil {
		t.Error("unwarmed read must go to the database")
	}
}

func TestCachedWriteThrough(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	cache := NewCachedCompletion(db)

	if err := cache.MarkCompleted(ctx, "ana", walkthrough.ScreenBoard); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	done, err := db.IsCompleted(ctx, "ana", walkthrough.ScreenBoard)
	if err != nil {
		t.Fatalf("IsCompleted on db: %v", err)
	}
	if !done {
		t.Error("mark must reach the database")
	}

	if err := cache.ClearCompleted(ctx, "ana", walkthrough.ScreenBoard); err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	done, _ = db.IsCompleted(ctx, "ana", walkthrough.ScreenBoard)
	if done {
		t.Error("clear must reach the database")
	}
	done, err = cache.IsCompleted(ctx, "ana", walkthrough.ScreenBoard)
	if err != nil {
		t.Fatalf("IsCompleted on cache: %v", err)
	}
	if done {
		t.Error("cache must reflect the clear")
	}
}

func TestCachedMissReadsThrough(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// A flag written behind the cache's back is still found on a miss.
	if err := db.MarkCompleted(ctx, "ben", walkthrough.ScreenSummary); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	cache := NewCachedCompletion(db)
	done, err := cache.IsCompleted(ctx, "ben", walkthrough.ScreenSummary)
	if err != nil {
		t.Fatalf("IsCompleted: %v", err)
	}
	if !done {
		t.Error("cache miss must read through to the database")
	}
}

func TestCachedKeysPerUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	cache := NewCachedCompletion(db)

	cache.Warm(ctx, "ana", []walkthrough.ScreenID{walkthrough.ScreenBoards})
	if err := cache.MarkCompleted(ctx, "ana", walkthrough.ScreenBoards); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	done, err := cache.IsCompleted(ctx, "ben", walkthrough.ScreenBoards)
	if err != nil {
		t.Fatalf("IsCompleted(ben): %v", err)
	}
	if done {
		t.Error("ben must not see ana's cached flag")
	}
}

func TestSessionOverCachedStore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	cache := NewCachedCompletion(db)
	reg := walkthrough.DefaultRegistry()
	cache.Warm(ctx, "ana", reg.Screens())

	s := walkthrough.NewSession(reg, cache, "ana",
		walkthrough.WithDispatch(func(fn func()) { fn() }))

	s.FocusSync(ctx, walkthrough.ScreenSettings)
	if !s.Snapshot().Visible {
		t.Fatal("expected the settings tour to show")
	}
	s.Skip()

	s.FocusSync(ctx, walkthrough.ScreenSettings)
	if s.Snapshot().Visible {
		t.Error("completed tour must stay hidden behind the cache")
	}

	done, err := db.IsCompleted(ctx, "ana", walkthrough.ScreenSettings)
	if err != nil {
		t.Fatalf("IsCompleted on db: %v", err)
	}
	if !done {
		t.Error("skip must persist through the cached store")
	}
}
