package walkthrough

import (
	"context"
	"sync"
)

// CompletionStore persists which screens a user has finished or dismissed.
// Keys are (user, screen) pairs so tutorial progress never leaks between
// signed-in identities.
//
// The contract is deliberately lenient: reads that fail should be reported
// as errors and the caller treats them as "never completed" (fail open, so a
// flaky disk can only ever replay onboarding, not hide it); writes are
// best-effort and a failure must never crash the session. Writes are
// last-write-wins — a hand-off's ClearCompleted is always causally followed
// by the target screen's own later MarkCompleted, never the reverse.
type CompletionStore interface {
	IsCompleted(ctx context.Context, user string, screen ScreenID) (bool, error)
	MarkCompleted(ctx context.Context, user string, screen ScreenID) error
	ClearCompleted(ctx context.Context, user string, screen ScreenID) error
}

// MemoryStore is an in-process CompletionStore for tests and ephemeral runs
// (no config dir, --no-persist). Safe for concurrent use: session writes are
// dispatched off the event loop.
type MemoryStore struct {
	mu    sync.Mutex
	flags map[memoryKey]bool
}

type memoryKey struct {
	user   string
	screen ScreenID
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flags: make(map[memoryKey]bool)}
}

// IsCompleted reports the stored flag; absent means false.
func (s *MemoryStore) IsCompleted(_ context.Context, user string, screen ScreenID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags[memoryKey{user, screen}], nil
}

// MarkCompleted sets the flag.
func (s *MemoryStore) MarkCompleted(_ context.Context, user string, screen ScreenID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[memoryKey{user, screen}] = true
	return nil
}

// ClearCompleted removes the flag.
func (s *MemoryStore) ClearCompleted(_ context.Context, user string, screen ScreenID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flags, memoryKey{user, screen})
	return nil
}
