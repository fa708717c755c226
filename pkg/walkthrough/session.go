package walkthrough

import (
	"context"
	"time"

	"github.com/mboersen/divvy/pkg/debug"
)

// DefaultWriteTimeout bounds the background completion-flag writes.
const DefaultWriteTimeout = 5 * time.Second

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDispatch replaces the background write dispatcher. The default runs
// writes in a goroutine; tests inject a synchronous dispatcher so they can
// assert on the store immediately.
func WithDispatch(dispatch func(func())) SessionOption {
	return func(s *Session) {
		s.dispatch = dispatch
	}
}

// WithWriteTimeout bounds each background store write.
func WithWriteTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.writeTimeout = d
	}
}

// GateRequest asks the host to read the completion flag for a freshly
// focused screen and report back via ResolveGate. Gen ties the answer to the
// focus event that asked: answers for screens the user has already left are
// dropped, which also prevents a startup flash of an overlay meant to stay
// hidden.
type GateRequest struct {
	User   string
	Screen ScreenID
	Gen    uint64
}

// Snapshot is the read-only view the host renders from.
type Snapshot struct {
	Visible    bool
	Step       *Step // nil unless Visible
	StepNumber int   // 1-based
	TotalSteps int
}

// Session is the walkthrough state machine: one instance per running app,
// owned by the UI event loop. All methods must be called from that loop; the
// only concurrency the Session creates is the background store writes it
// dispatches, and the gating read the host performs between Focus and
// ResolveGate.
type Session struct {
	registry *Registry
	store    CompletionStore
	user     string

	dispatch     func(func())
	writeTimeout time.Duration

	active  ScreenID
	steps   []Step
	index   int
	visible bool
	done    bool // completion already recorded for this screen visit
	gen     uint64

	restartPending map[ScreenID]bool
}

// NewSession creates a session over the given registry and store for the
// signed-in user.
func NewSession(registry *Registry, store CompletionStore, user string, opts ...SessionOption) *Session {
	s := &Session{
		registry:       registry,
		store:          store,
		user:           user,
		dispatch:       func(fn func()) { go fn() },
		writeTimeout:   DefaultWriteTimeout,
		restartPending: make(map[ScreenID]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Focus reports that the user is now looking at screen. The step index
// resets to 0 (re-entry restarts the sequence rather than resuming — a
// deliberate choice) and the overlay stays hidden until the returned gate is
// resolved. A nil gate means no read is needed: either the screen has no
// steps, or an explicit restart bypasses the completion flag and the overlay
// is visible already.
func (s *Session) Focus(screen ScreenID) *GateRequest {
	s.gen++
	s.active = screen
	s.steps = s.registry.Steps(screen)
	s.index = 0
	s.done = false
	s.visible = false

	if len(s.steps) == 0 {
		return nil
	}
	if s.restartPending[screen] {
		delete(s.restartPending, screen)
		s.visible = true
		return nil
	}
	return &GateRequest{User: s.user, Screen: screen, Gen: s.gen}
}

// ResolveGate applies the completion read the host performed for req. A read
// error fails open: the walkthrough shows rather than silently hiding
// onboarding. Stale requests (the user focused something else meanwhile) are
// dropped.
func (s *Session) ResolveGate(req GateRequest, completed bool, err error) {
	if req.Gen != s.gen || req.Screen != s.active {
		debug.Log("walkthrough: dropping stale gate for %s (gen %d, now %d)", req.Screen, req.Gen, s.gen)
		return
	}
	if err != nil {
		debug.Log("walkthrough: completion read for %s/%s failed open: %v", req.User, req.Screen, err)
		completed = false
	}
	if completed {
		s.done = true
		return
	}
	s.visible = true
}

// FocusSync focuses a screen and performs the gating read inline. Hosts with
// an async event loop use Focus/ResolveGate instead so the UI never waits on
// storage.
func (s *Session) FocusSync(ctx context.Context, screen ScreenID) {
	req := s.Focus(screen)
	if req == nil {
		return
	}
	completed, err := s.store.IsCompleted(ctx, req.User, req.Screen)
	s.ResolveGate(*req, completed, err)
}

// Next advances the walkthrough. On the last step it completes the screen;
// on a hand-off step it first arms the target screen (clearing its
// completion flag so it auto-plays on the user's next visit, even if they
// had dismissed it before) and then completes the current screen without
// advancing further.
func (s *Session) Next() {
	if !s.visible {
		return
	}
	step := s.steps[s.index]
	if step.Action.IsHandoff() {
		s.clearInBackground(step.Action.Target)
		s.complete()
		return
	}
	if s.index+1 < len(s.steps) {
		s.index++
		return
	}
	s.complete()
}

// Previous steps back one step. No-op on the first step.
func (s *Session) Previous() {
	if s.visible && s.index > 0 {
		s.index--
	}
}

// Skip dismisses the rest of the active screen's walkthrough, recording the
// screen as completed. Calling it again (or after completion) does nothing.
func (s *Session) Skip() {
	if !s.visible {
		return
	}
	s.complete()
}

// Restart arms an explicit replay for screen: its completion flag is cleared
// in the background and the screen is refocused with the gate bypassed, so
// the walkthrough starts immediately at step one.
func (s *Session) Restart(screen ScreenID) {
	if len(s.registry.Steps(screen)) == 0 {
		return
	}
	s.clearInBackground(screen)
	s.restartPending[screen] = true
	s.Focus(screen)
}

// SetUser switches the signed-in identity. All transient state resets and
// in-flight gating reads are invalidated; the host must refocus the current
// screen so gating is re-issued under the new user.
func (s *Session) SetUser(user string) {
	if user == s.user {
		return
	}
	s.user = user
	s.gen++
	s.active = ""
	s.steps = nil
	s.index = 0
	s.visible = false
	s.done = false
	s.restartPending = make(map[ScreenID]bool)
}

// SetRegistry swaps in a reloaded registry (e.g. after an overlay file
// change). The host refocuses the active screen afterwards so the new tables
// take effect.
func (s *Session) SetRegistry(registry *Registry) {
	if registry != nil {
		s.registry = registry
	}
}

// ActiveScreen returns the screen the session currently tracks.
func (s *Session) ActiveScreen() ScreenID {
	return s.active
}

// Snapshot returns the render state for the host. The Step pointer refers to
// registry data and must be treated as read-only.
func (s *Session) Snapshot() Snapshot {
	if !s.visible || s.index >= len(s.steps) {
		return Snapshot{TotalSteps: len(s.steps)}
	}
	return Snapshot{
		Visible:    true,
		Step:       &s.steps[s.index],
		StepNumber: s.index + 1,
		TotalSteps: len(s.steps),
	}
}

// complete records the active screen as finished and hides the overlay.
// done guards the store against double marking when Skip and Next land on
// the same visit.
func (s *Session) complete() {
	s.visible = false
	if s.done {
		return
	}
	s.done = true

	user, screen := s.user, s.active
	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		defer cancel()
		if err := s.store.MarkCompleted(ctx, user, screen); err != nil {
			debug.Log("walkthrough: mark completed %s/%s: %v", user, screen, err)
		}
	})
}

// clearInBackground best-effort clears a completion flag (hand-offs and
// explicit restarts). Failures are logged, never surfaced: the worst case is
// that a tour does not replay, which beats crashing the host.
func (s *Session) clearInBackground(screen ScreenID) {
	user := s.user
	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		defer cancel()
		if err := s.store.ClearCompleted(ctx, user, screen); err != nil {
			debug.Log("walkthrough: clear completed %s/%s: %v", user, screen, err)
		}
	})
}
