package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds dv's key bindings. Walkthrough keys only apply while the
// overlay is visible; the rest are global.
type keyMap struct {
	Quit key.Binding

	TabBoards   key.Binding
	TabBoard    key.Binding
	TabSummary  key.Binding
	TabSettings key.Binding

	Up   key.Binding
	Down key.Binding
	Open key.Binding

	CopyCode key.Binding

	StepNext key.Binding
	StepPrev key.Binding
	StepSkip key.Binding
	Restart  key.Binding
	Wizard   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		TabBoards:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "boards")),
		TabBoard:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "board")),
		TabSummary:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "summary")),
		TabSettings: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "settings")),

		Up:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "move")),
		Down: key.NewBinding(key.WithKeys("j", "down")),
		Open: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),

		CopyCode: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "copy invite code")),

		StepNext: key.NewBinding(key.WithKeys("n", "right", " "), key.WithHelp("n", "next step")),
		StepPrev: key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "previous step")),
		StepSkip: key.NewBinding(key.WithKeys("s", "esc"), key.WithHelp("s", "skip tour")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "replay this screen's tour")),
		Wizard:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "replay wizard")),
	}
}
