package walkthrough

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Registry maps screens to their ordered step sequences. It is immutable
// after construction; hosts that reload overlay files build a fresh Registry
// and swap the pointer on their own event loop.
type Registry struct {
	screens map[ScreenID][]Step
}

// NewRegistry builds a registry from explicit step tables, typically
// BuiltinScreens(). The tables are copied and validated.
func NewRegistry(screens map[ScreenID][]Step) (*Registry, error) {
	r := &Registry{screens: make(map[ScreenID][]Step, len(screens))}
	for screen, steps := range screens {
		r.screens[screen] = append([]Step(nil), steps...)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNewRegistry is NewRegistry for compiled-in tables, where a validation
// failure is a programming error.
func MustNewRegistry(screens map[ScreenID][]Step) *Registry {
	r, err := NewRegistry(screens)
	if err != nil {
		panic(err)
	}
	return r
}

// Steps returns the ordered sequence for a screen. It is total: unknown or
// uncovered screens yield an empty slice, never an error. Callers must not
// mutate the result.
func (r *Registry) Steps(screen ScreenID) []Step {
	if r == nil {
		return nil
	}
	return r.screens[screen]
}

// Screens returns the covered screen IDs in stable order.
func (r *Registry) Screens() []ScreenID {
	ids := make([]ScreenID, 0, len(r.screens))
	for id := range r.screens {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// overlayFile is the on-disk shape of a user overlay: whole-screen
// replacements keyed by screen ID. Replacing (rather than splicing) keeps
// ordering unambiguous, since order is positional.
type overlayFile struct {
	Screens map[ScreenID][]Step `yaml:"screens" json:"screens"`
}

// LoadOverlay reads a YAML or JSON overlay file and returns a new registry
// with the file's screens replacing the base tables. Unlisted screens keep
// their base sequences.
func (r *Registry) LoadOverlay(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay: %w", err)
	}

	var of overlayFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &of); err != nil {
			return nil, fmt.Errorf("parse overlay %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &of); err != nil {
			return nil, fmt.Errorf("parse overlay %s: %w", path, err)
		}
	}

	merged := make(map[ScreenID][]Step, len(r.screens)+len(of.Screens))
	for screen, steps := range r.screens {
		merged[screen] = steps
	}
	for screen, steps := range of.Screens {
		merged[screen] = steps
	}
	return NewRegistry(merged)
}

// validate enforces the invariants step authors can break: IDs unique within
// a screen, well-formed steps, hand-off targets pointing at known screens.
func (r *Registry) validate() error {
	for screen, steps := range r.screens {
		seen := make(map[string]bool, len(steps))
		for i, step := range steps {
			if err := step.Validate(); err != nil {
				return fmt.Errorf("screen %s step %d: %w", screen, i, err)
			}
			if seen[step.ID] {
				return fmt.Errorf("screen %s: duplicate step id %q", screen, step.ID)
			}
			seen[step.ID] = true
			if step.Action.IsHandoff() {
				if _, ok := r.screens[step.Action.Target]; !ok {
					return fmt.Errorf("screen %s step %q: handoff target %q has no registry entry",
						screen, step.ID, step.Action.Target)
				}
				if step.Action.Target == screen {
					return fmt.Errorf("screen %s step %q: handoff target is its own screen", screen, step.ID)
				}
			}
		}
	}
	return nil
}
