package ui

import (
	"github.com/charmbracelet/huh"

	"github.com/mboersen/divvy/pkg/walkthrough"
)

// resetWizard is the "replay walkthrough" form: pick a screen, confirm.
// It runs embedded in the main model; when the form completes, the model
// reads the choice and restarts that screen's tour.
type resetWizard struct {
	form    *huh.Form
	screen  string
	confirm bool
}

func newResetWizard(registry *walkthrough.Registry) *resetWizard {
	w := &resetWizard{confirm: true}

	var options []huh.Option[string]
	for _, screen := range registry.Screens() {
		if len(registry.Steps(screen)) == 0 {
			continue
		}
		options = append(options, huh.NewOption(screenLabel(screen), string(screen)))
	}

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Replay which screen's walkthrough?").
				Options(options...).
				Value(&w.screen),
			huh.NewConfirm().
				Title("Start it now?").
				Description("The screen's completion flag is cleared either way.").
				Value(&w.confirm),
		),
	).WithTheme(huh.ThemeDracula())

	return w
}

func (w *resetWizard) done() bool {
	return w.form.State == huh.StateCompleted
}

func (w *resetWizard) aborted() bool {
	return w.form.State == huh.StateAborted
}

func (w *resetWizard) choice() (walkthrough.ScreenID, bool) {
	return walkthrough.ScreenID(w.screen), w.confirm
}

func screenLabel(screen walkthrough.ScreenID) string {
	switch screen {
	case walkthrough.ScreenBoards:
		return "Boards (home)"
	case walkthrough.ScreenBoard:
		return "Board (expense feed)"
	case walkthrough.ScreenSummary:
		return "Summary (balances)"
	case walkthrough.ScreenSettings:
		return "Settings"
	}
	return string(screen)
}
