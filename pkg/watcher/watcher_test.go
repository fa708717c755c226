package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitChange(t *testing.T, w *Watcher, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-w.Changed():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestDetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond) // let the watch settle
	if err := os.WriteFile(path, []byte("a: 2\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !waitChange(t, w, 3*time.Second) {
		t.Fatal("no change signal after a write")
	}
}

func TestDetectsCreation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "steps.yaml")

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !waitChange(t, w, 3*time.Second) {
		t.Fatal("no change signal after file creation")
	}
}

func TestDetectsAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "steps.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	tmp := filepath.Join(dir, ".steps.yaml.tmp")
	if err := os.WriteFile(tmp, []byte("a: 2\n"), 0o644); err != nil {
		t.Fatalf("write tmp: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if !waitChange(t, w, 3*time.Second) {
		t.Fatal("no change signal after an atomic rename save")
	}
}

func TestPollingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path, WithForcePoll(true), WithPollInterval(30*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling mode")
	}

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("a: 2 and longer\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !waitChange(t, w, 3*time.Second) {
		t.Fatal("polling missed the change")
	}
}

func TestStartTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yaml")
	w, err := New(path, WithForcePoll(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "steps.yaml"), WithForcePoll(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Stop() // never started
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop()
}

func TestStopWhileEventsArrive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "steps.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Stop races with the fsnotify loop reading events. Run a few
	// start/stop cycles with writes in flight; the race detector flags
	// any unsynchronized access to the underlying watcher.
	for i := 0; i < 10; i++ {
		w, err := New(path, WithDebounce(time.Millisecond))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := w.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for j := 0; j < 20; j++ {
				os.WriteFile(path, []byte("churn\n"), 0o644)
			}
		}()

		w.Stop()
		<-done
	}
}

func TestCoalescesBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path, WithDebounce(100*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("burst\n"), 0o644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if !waitChange(t, w, 3*time.Second) {
		t.Fatal("no change signal after a burst")
	}
	// The burst fits inside one debounce window: at most one more signal
	// may be pending, and after draining it the channel stays quiet.
	select {
	case <-w.Changed():
	case <-time.After(300 * time.Millisecond):
	}
	select {
	case <-w.Changed():
		t.Error("burst produced more than two signals")
	case <-time.After(300 * time.Millisecond):
	}
}
