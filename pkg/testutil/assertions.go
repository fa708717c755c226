// Package testutil provides shared assertion helpers for walkthrough tests.
package testutil

import (
	"context"
	"testing"

	"github.com/mboersen/divvy/pkg/walkthrough"
)

// AssertSnapshot verifies the session's render state in one call.
func AssertSnapshot(t *testing.T, s *walkthrough.Session, visible bool, stepNumber, total int) {
	t.Helper()
	snap := s.Snapshot()
	if snap.Visible != visible {
		t.Errorf("expected visible=%v, got %v", visible, snap.Visible)
	}
	if snap.StepNumber != stepNumber {
		t.Errorf("expected step %d, got %d", stepNumber, snap.StepNumber)
	}
	if snap.TotalSteps != total {
		t.Errorf("expected %d total steps, got %d", total, snap.TotalSteps)
	}
	if visible && snap.Step == nil {
		t.Error("visible snapshot must carry a step")
	}
	if !visible && snap.Step != nil {
		t.Error("hidden snapshot must not carry a step")
	}
}

// AssertCompleted verifies a store flag.
func AssertCompleted(t *testing.T, store walkthrough.CompletionStore, user string, screen walkthrough.ScreenID, want bool) {
	t.Helper()
	got, err := store.IsCompleted(context.Background(), user, screen)
	if err != nil {
		t.Fatalf("IsCompleted(%s, %s): %v", user, screen, err)
	}
	if got != want {
		t.Errorf("expected completed=%v for %s/%s, got %v", want, user, screen, got)
	}
}

// SyncDispatch makes session store writes synchronous so tests can assert
// on the store immediately after a transition.
func SyncDispatch() walkthrough.SessionOption {
	return walkthrough.WithDispatch(func(fn func()) { fn() })
}
