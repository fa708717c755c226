// Package walkthrough implements divvy's guided walkthrough engine: per-user,
// per-screen onboarding sequences rendered as positioned overlays on top of
// the regular screens.
//
// The package is split along the data/behavior boundary: Step and Registry
// are plain serializable data, Session is the state machine that plays a
// screen's sequence, Resolver turns a step into overlay coordinates, and
// CompletionStore persists which screens a user has already finished.
package walkthrough

import (
	"fmt"
	"strings"
)

// ScreenID identifies a logical screen of the host application
// (tab switch or stack push, as reported by the coordinator).
type ScreenID string

// The divvy screens that carry built-in walkthroughs.
const (
	ScreenBoards   ScreenID = "boards"
	ScreenBoard    ScreenID = "board"
	ScreenSummary  ScreenID = "summary"
	ScreenSettings ScreenID = "settings"
)

// Rect is an axis-aligned rectangle in viewport cells.
type Rect struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Empty reports whether the rectangle has no usable area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Point is a position in viewport cells.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Size is a width/height pair in viewport cells.
type Size struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// ArrowDirection says on which side of the tooltip the pointer arrow is
// drawn, and relative to which side of the target the tooltip is offset.
type ArrowDirection string

const (
	ArrowTop    ArrowDirection = "top"    // arrow on top edge, tooltip below target
	ArrowBottom ArrowDirection = "bottom" // arrow on bottom edge, tooltip above target
	ArrowLeft   ArrowDirection = "left"   // arrow on left edge, tooltip right of target
	ArrowRight  ArrowDirection = "right"  // arrow on right edge, tooltip left of target
)

// Valid reports whether d is one of the four known directions.
func (d ArrowDirection) Valid() bool {
	switch d {
	case ArrowTop, ArrowBottom, ArrowLeft, ArrowRight:
		return true
	}
	return false
}

// ActionKind tags the special behavior a step requests from the Session.
// The set is closed; the zero value is plain advancement.
type ActionKind string

const (
	// ActionAdvance is an ordinary step: Next moves to the following step.
	ActionAdvance ActionKind = ""
	// ActionHandoff completes the current screen and arms the walkthrough
	// of Target so it auto-plays on the user's next visit there. The user
	// is expected to navigate themselves; the session never forces it.
	ActionHandoff ActionKind = "handoff"
	// ActionHighlightOnly keeps region-relative placement but suppresses
	// the arrow glyph (used for wide regions where a pointer is noise).
	ActionHighlightOnly ActionKind = "highlight-only"
)

// Action is the tagged special behavior of a step. Target is only
// meaningful for ActionHandoff.
type Action struct {
	Kind   ActionKind `yaml:"kind" json:"kind"`
	Target ScreenID   `yaml:"target,omitempty" json:"target,omitempty"`
}

// IsHandoff reports whether the action is a cross-screen hand-off.
func (a Action) IsHandoff() bool {
	return a.Kind == ActionHandoff
}

// Step is one screen-anchored instruction of a walkthrough sequence.
// Order is positional: a screen's steps play in slice order, and ID exists
// only for bookkeeping (overlay files, debug logs), never for sequencing.
type Step struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	// Body is markdown; the host renders it with glamour.
	Body string `yaml:"body" json:"body"`
	// Target is the region being explained, in reference-viewport cells.
	Target Rect           `yaml:"target" json:"target"`
	Arrow  ArrowDirection `yaml:"arrow" json:"arrow"`
	Action Action         `yaml:"action,omitempty" json:"action,omitempty"`
	// HighlightColor overrides the theme's highlight border when set
	// (hex string, e.g. "#FFB86C").
	HighlightColor string `yaml:"highlight_color,omitempty" json:"highlight_color,omitempty"`
}

// Validate checks the fields that step authors get wrong in overlay files.
func (s Step) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("step has empty id")
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("step %s: empty title", s.ID)
	}
	if !s.Arrow.Valid() {
		return fmt.Errorf("step %s: unknown arrow direction %q", s.ID, s.Arrow)
	}
	switch s.Action.Kind {
	case ActionAdvance, ActionHighlightOnly:
		if s.Action.Target != "" {
			return fmt.Errorf("step %s: action %q does not take a target", s.ID, s.Action.Kind)
		}
	case ActionHandoff:
		if s.Action.Target == "" {
			return fmt.Errorf("step %s: handoff action needs a target screen", s.ID)
		}
	default:
		return fmt.Errorf("step %s: unknown action kind %q", s.ID, s.Action.Kind)
	}
	return nil
}
