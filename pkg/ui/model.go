// Package ui provides the terminal user interface for dv. The root model is
// also the walkthrough coordinator: it reports every screen focus to the
// session, performs the gating reads off the event loop, and composites the
// overlay over whichever screen is active.
package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mboersen/divvy/pkg/api"
	"github.com/mboersen/divvy/pkg/config"
	"github.com/mboersen/divvy/pkg/debug"
	"github.com/mboersen/divvy/pkg/walkthrough"
	"github.com/mboersen/divvy/pkg/watcher"
)

// gateReadTimeout bounds the completion read behind a screen focus. On
// expiry the gate resolves with an error and fails open.
const gateReadTimeout = 3 * time.Second

type gateResolvedMsg struct {
	req       walkthrough.GateRequest
	completed bool
	err       error
}

type registryChangedMsg struct{}

// Model is the bubbletea root model.
type Model struct {
	cfg     config.Config
	theme   Theme
	keys    keyMap
	screens Screens
	overlay *Overlay

	svc      api.Service
	store    walkthrough.CompletionStore
	session  *walkthrough.Session
	registry *walkthrough.Registry
	watch    *watcher.Watcher

	width  int
	height int

	screen      walkthrough.ScreenID
	boards      []api.Board
	selected    int
	board       api.Board
	expenses    []api.Expense
	settlements []api.Settlement

	wizard *resetWizard
	status string
}

// NewModel wires the UI. watch may be nil (no steps overlay file
// configured); the demo data is loaded up front since the static service
// never blocks.
func NewModel(cfg config.Config, svc api.Service, store walkthrough.CompletionStore,
	registry *walkthrough.Registry, session *walkthrough.Session, watch *watcher.Watcher) Model {

	theme := DefaultTheme(lipgloss.DefaultRenderer())
	m := Model{
		cfg:      cfg,
		theme:    theme,
		keys:     newKeyMap(),
		screens:  NewScreens(theme),
		overlay:  NewOverlay(theme, resolverFromConfig(cfg.Walkthrough.Overlay)),
		svc:      svc,
		store:    store,
		session:  session,
		registry: registry,
		watch:    watch,
		screen:   walkthrough.ScreenBoards,
		width:    walkthrough.RefViewport.Width,
		height:   walkthrough.RefViewport.Height,
	}
	m.loadData()
	return m
}

// resolverFromConfig applies config overrides on top of resolver defaults.
func resolverFromConfig(oc config.OverlayConfig) walkthrough.Resolver {
	r := walkthrough.NewResolver()
	if oc.Inset > 0 {
		r.Inset = oc.Inset
	}
	if oc.Clearance > 0 {
		r.Clearance = oc.Clearance
	}
	if oc.MinMargin > 0 {
		r.MinMargin = oc.MinMargin
	}
	return r
}

func (m *Model) loadData() {
	ctx := context.Background()
	boards, err := m.svc.Boards(ctx, m.cfg.UserID)
	if err != nil {
		debug.Log("ui: load boards: %v", err)
	}
	m.boards = boards
	if len(boards) > 0 {
		m.setActiveBoard(boards[0])
	}
}

func (m *Model) setActiveBoard(b api.Board) {
	ctx := context.Background()
	m.board = b
	m.expenses, _ = m.svc.Expenses(ctx, b.ID)
	m.settlements, _ = m.svc.Settlements(ctx, b.ID)
}

// Init focuses the home screen and arms the registry watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.focusCmd(walkthrough.ScreenBoards), m.watchCmd())
}

// focusCmd reports a screen focus to the session and, when gating is
// needed, returns the command that reads the completion flag off the event
// loop. The overlay stays hidden until the read resolves, so a returning
// user never sees a flash of their dismissed tour.
func (m *Model) focusCmd(screen walkthrough.ScreenID) tea.Cmd {
	m.screen = screen
	req := m.session.Focus(screen)
	if req == nil {
		return nil
	}
	store, r := m.store, *req
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateReadTimeout)
		defer cancel()
		completed, err := store.IsCompleted(ctx, r.User, r.Screen)
		return gateResolvedMsg{req: r, completed: completed, err: err}
	}
}

// watchCmd blocks on the next registry overlay change.
func (m *Model) watchCmd() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	ch := m.watch.Changed()
	return func() tea.Msg {
		<-ch
		return registryChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case gateResolvedMsg:
		m.session.ResolveGate(msg.req, msg.completed, msg.err)
		return m, nil

	case registryChangedMsg:
		return m.reloadRegistry()

	case tea.KeyMsg:
		if m.wizard != nil {
			return m.updateWizard(msg)
		}
		return m.handleKey(msg)
	}

	if m.wizard != nil {
		return m.updateWizard(msg)
	}
	return m, nil
}

func (m Model) reloadRegistry() (tea.Model, tea.Cmd) {
	path := m.cfg.Walkthrough.StepsFile
	reloaded, err := walkthrough.DefaultRegistry().LoadOverlay(path)
	if err != nil {
		// Keep the previous tables; a half-saved file shouldn't kill the tour.
		debug.Log("ui: registry reload from %s failed: %v", path, err)
		m.status = "steps file has errors, keeping previous walkthrough"
		return m, m.watchCmd()
	}
	m.registry = reloaded
	m.session.SetRegistry(reloaded)
	m.status = "walkthrough steps reloaded"
	return m, tea.Batch(m.focusCmd(m.screen), m.watchCmd())
}

func (m Model) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.wizard.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.wizard.form = f
	}
	switch {
	case m.wizard.done():
		screen, startNow := m.wizard.choice()
		m.wizard = nil
		if startNow {
			m.session.Restart(screen)
			m.screen = screen
			return m, nil
		}
		// Clear only: the tour replays on the next natural visit.
		m.session.Restart(screen)
		return m, m.focusCmd(m.screen)
	case m.wizard.aborted():
		m.wizard = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	snap := m.session.Snapshot()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	// Walkthrough controls take precedence while the overlay is up.
	case snap.Visible && key.Matches(msg, keys.StepNext):
		m.session.Next()
		return m, nil
	case snap.Visible && key.Matches(msg, keys.StepPrev):
		m.session.Previous()
		return m, nil
	case snap.Visible && key.Matches(msg, keys.StepSkip):
		m.session.Skip()
		return m, nil

	case key.Matches(msg, keys.TabBoards):
		return m, m.focusCmd(walkthrough.ScreenBoards)
	case key.Matches(msg, keys.TabBoard):
		return m, m.focusCmd(walkthrough.ScreenBoard)
	case key.Matches(msg, keys.TabSummary):
		return m, m.focusCmd(walkthrough.ScreenSummary)
	case key.Matches(msg, keys.TabSettings):
		return m, m.focusCmd(walkthrough.ScreenSettings)

	case key.Matches(msg, keys.Restart):
		m.session.Restart(m.screen)
		return m, nil
	case key.Matches(msg, keys.Wizard):
		m.wizard = newResetWizard(m.registry)
		return m, m.wizard.form.Init()

	case m.screen == walkthrough.ScreenBoards && key.Matches(msg, keys.Down):
		if m.selected < len(m.boards)-1 {
			m.selected++
		}
		return m, nil
	case m.screen == walkthrough.ScreenBoards && key.Matches(msg, keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case m.screen == walkthrough.ScreenBoards && key.Matches(msg, keys.Open):
		if m.selected < len(m.boards) {
			m.setActiveBoard(m.boards[m.selected])
		}
		return m, m.focusCmd(walkthrough.ScreenBoard)

	case m.screen == walkthrough.ScreenBoard && key.Matches(msg, keys.CopyCode):
		if err := clipboard.WriteAll(m.board.InviteCode); err != nil {
			debug.Log("ui: clipboard write: %v", err)
			m.status = "clipboard unavailable"
		} else {
			m.status = "invite code copied"
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var base string
	switch m.screen {
	case walkthrough.ScreenBoard:
		base = m.screens.Board(m.board, m.expenses, m.width, m.height)
	case walkthrough.ScreenSummary:
		base = m.screens.Summary(m.board, m.settlements, m.width, m.height)
	case walkthrough.ScreenSettings:
		base = m.screens.Settings(m.cfg.UserID, m.cfg.DisplayName, m.width, m.height)
	default:
		base = m.screens.Boards(m.boards, m.selected, m.width, m.height)
	}

	if m.status != "" {
		base = overlayAt(base, m.theme.StatusLine.Render(" "+m.status), 0, m.height-1, m.width, m.height)
	}

	base = m.overlay.Render(base, m.session.Snapshot(), m.width, m.height)

	if m.wizard != nil {
		form := m.wizard.form.View()
		x := (m.width - lipgloss.Width(form)) / 2
		y := (m.height - lipgloss.Height(form)) / 2
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		base = overlayAt(base, form, x, y, m.width, m.height)
	}
	return base
}
