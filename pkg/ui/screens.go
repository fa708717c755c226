package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mboersen/divvy/pkg/api"
	"github.com/mboersen/divvy/pkg/walkthrough"
)

// Screens renders the four dv screens. Panes are anchored on the same
// reference grid the built-in walkthrough targets are authored against
// (walkthrough.RefViewport), so highlight boxes line up with what they
// explain. Terminals smaller than the grid clip at the right/bottom edge.
type Screens struct {
	theme Theme
}

// NewScreens creates the screen renderer.
func NewScreens(theme Theme) Screens {
	return Screens{theme: theme}
}

type tab struct {
	id    walkthrough.ScreenID
	label string
}

var tabs = []tab{
	{walkthrough.ScreenBoards, "1 Boards"},
	{walkthrough.ScreenBoard, "2 Board"},
	{walkthrough.ScreenSummary, "3 Summary"},
	{walkthrough.ScreenSettings, "4 Settings"},
}

// TabBar renders the top tab strip.
func (s Screens) TabBar(active walkthrough.ScreenID) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.id == active {
			parts = append(parts, s.theme.TabActive.Render(t.label))
		} else {
			parts = append(parts, s.theme.TabInactive.Render(t.label))
		}
	}
	return " " + strings.Join(parts, s.theme.MutedText.Render("  │  "))
}

// Boards renders the home screen: board list, overall balance, create hint.
func (s Screens) Boards(boards []api.Board, selected int, width, height int) string {
	canvas := fitCanvas(s.TabBar(walkthrough.ScreenBoards), width, height)

	var rows []string
	for i, b := range boards {
		marker, style := "=", s.theme.MutedText
		if b.NetCents > 0 {
			marker, style = "▲", s.theme.PositiveAmt
		} else if b.NetCents < 0 {
			marker, style = "▼", s.theme.NegativeAmt
		}
		row := fmt.Sprintf("%s %s  %d members  %s",
			marker, padCells(truncateCells(b.Name, 16, "…"), 16),
			len(b.Members), formatCents(b.NetCents, b.Currency))
		if i == selected {
			row = "→ " + row
		} else {
			row = "  " + row
		}
		rows = append(rows, style.Render(row))
	}
	canvas = overlayAt(canvas, s.pane("Your boards", strings.Join(rows, "\n"), 40, 20), 2, 3, width, height)

	var total int64
	currency := "EUR"
	for _, b := range boards {
		total += b.NetCents
		currency = b.Currency
	}
	balStyle := s.theme.PositiveAmt
	if total < 0 {
		balStyle = s.theme.NegativeAmt
	}
	balance := balStyle.Render(formatCents(total, currency)) + "\n" +
		s.theme.MutedText.Render("across all boards")
	canvas = overlayAt(canvas, s.pane("Overall", balance, 30, 5), 60, 3, width, height)

	hint := s.theme.MutedText.Render("c) create a board   Enter) open   j/k) move")
	canvas = overlayAt(canvas, s.pane("", hint, 50, 3), 2, 26, width, height)
	return canvas
}

// Board renders one board's expense feed, member strip and invite code.
func (s Screens) Board(board api.Board, expenses []api.Expense, width, height int) string {
	canvas := fitCanvas(s.TabBar(walkthrough.ScreenBoard), width, height)

	var rows []string
	for _, e := range expenses {
		rows = append(rows, fmt.Sprintf("%s  %s  %s",
			padCells(truncateCells(e.Note, 22, "…"), 22),
			s.theme.MutedText.Render(padCells("["+e.Category+"]", 12)),
			formatCents(e.AmountCents, board.Currency)))
	}
	if len(rows) == 0 {
		rows = append(rows, s.theme.MutedText.Render("no expenses yet — press a"))
	}
	canvas = overlayAt(canvas, s.pane(board.Name, strings.Join(rows, "\n"), 55, 22), 2, 3, width, height)

	var names []string
	for _, m := range board.Members {
		n := m.DisplayName
		if m.HasUnseen {
			n += " •"
		}
		names = append(names, n)
	}
	canvas = overlayAt(canvas, s.pane("Members", strings.Join(names, ", "), 35, 4), 60, 3, width, height)

	code := s.theme.PaneTitle.Render(board.InviteCode) + s.theme.MutedText.Render("  C) copy")
	canvas = overlayAt(canvas, s.pane("", code, 35, 3), 60, 8, width, height)

	hint := s.theme.MutedText.Render("a) add expense   Enter) details   j/k) scroll")
	canvas = overlayAt(canvas, s.pane("", hint, 55, 3), 2, 26, width, height)
	return canvas
}

// Summary renders balances, settle-up suggestions and the category pane.
func (s Screens) Summary(board api.Board, settlements []api.Settlement, width, height int) string {
	canvas := fitCanvas(s.TabBar(walkthrough.ScreenSummary), width, height)

	rows := []string{s.theme.MutedText.Render(
		padCells("member", 12) + padCells("paid", 12) + padCells("owed", 12) + "net")}
	for _, m := range board.Members {
		net := m.PaidCents - m.OwedCents
		style := s.theme.PositiveAmt
		if net < 0 {
			style = s.theme.NegativeAmt
		}
		rows = append(rows,
			padCells(truncateCells(m.DisplayName, 11, "…"), 12)+
				padCells(formatCents(m.PaidCents, board.Currency), 12)+
				padCells(formatCents(m.OwedCents, board.Currency), 12)+
				style.Render(formatCents(net, board.Currency)))
	}
	canvas = overlayAt(canvas, s.pane("Balances — "+board.Name, strings.Join(rows, "\n"), 50, 14), 2, 3, width, height)

	var st []string
	for _, x := range settlements {
		st = append(st, fmt.Sprintf("%s → %s  %s",
			memberName(board, x.FromID), memberName(board, x.ToID),
			formatCents(x.AmountCents, board.Currency)))
	}
	if len(st) == 0 {
		st = append(st, s.theme.MutedText.Render("all settled up"))
	}
	canvas = overlayAt(canvas, s.pane("Settle up", strings.Join(st, "\n"), 50, 5), 2, 18, width, height)

	cats := s.theme.MutedText.Render("groceries ████████  64.20\nutilities █████     39.99\nhousehold ██        18.45")
	canvas = overlayAt(canvas, s.pane("This month", cats, 40, 14), 56, 3, width, height)
	return canvas
}

// Settings renders the profile, walkthrough replay and notification rows.
func (s Screens) Settings(userID, displayName string, width, height int) string {
	canvas := fitCanvas(s.TabBar(walkthrough.ScreenSettings), width, height)

	if displayName == "" {
		displayName = userID
	}
	profile := fmt.Sprintf("Display name: %s  %s", displayName, s.theme.MutedText.Render("(e to edit)"))
	canvas = overlayAt(canvas, s.pane("", profile, 40, 3), 2, 3, width, height)

	replay := "Replay walkthrough " + s.theme.MutedText.Render("(R to choose a screen)")
	canvas = overlayAt(canvas, s.pane("", replay, 40, 3), 2, 7, width, height)

	notif := "Notifications: settle-ups only " + s.theme.MutedText.Render("(n to change)")
	canvas = overlayAt(canvas, s.pane("", notif, 40, 3), 2, 11, width, height)
	return canvas
}

// pane renders a bordered box of exactly width x height outer cells.
func (s Screens) pane(title, content string, width, height int) string {
	style := s.theme.Renderer.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.theme.Border).
		Width(width - 2).
		Height(height - 2)

	if title != "" {
		content = s.theme.PaneTitle.Render(title) + "\n" + content
	}
	lines := splitToLines(content, height-2)
	return style.Render(strings.Join(lines, "\n"))
}

func memberName(board api.Board, id string) string {
	for _, m := range board.Members {
		if m.ID == id {
			return m.DisplayName
		}
	}
	return id
}
