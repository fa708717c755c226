package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mboersen/divvy/pkg/walkthrough"
)

func plainCanvas(width, height int, fill rune) string {
	row := strings.Repeat(string(fill), width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func assertCanvasSize(t *testing.T, s string, width, height int) {
	t.Helper()
	lines := strings.Split(s, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d rows, got %d", height, len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != width {
			t.Errorf("row %d: expected width %d, got %d", i, width, w)
		}
	}
}

func TestFitCanvas(t *testing.T) {
	out := fitCanvas("ab\ncdef", 4, 3)
	assertCanvasSize(t, out, 4, 3)

	// Oversized input is clipped, both axes.
	out = fitCanvas(plainCanvas(10, 10, 'x'), 4, 3)
	assertCanvasSize(t, out, 4, 3)
}

func TestOverlayAtBasic(t *testing.T) {
	base := plainCanvas(10, 4, '.')
	out := overlayAt(base, "AB\nCD", 3, 1, 10, 4)
	assertCanvasSize(t, out, 10, 4)

	lines := strings.Split(out, "\n")
	if lines[1] != "...AB....." {
		t.Errorf("row 1: %q", lines[1])
	}
	if lines[2] != "...CD....." {
		t.Errorf("row 2: %q", lines[2])
	}
	if lines[0] != strings.Repeat(".", 10) || lines[3] != strings.Repeat(".", 10) {
		t.Error("untouched rows changed")
	}
}

func TestOverlayAtClipsRightEdge(t *testing.T) {
	base := plainCanvas(10, 2, '.')
	out := overlayAt(base, "ABCDEF", 7, 0, 10, 2)
	assertCanvasSize(t, out, 10, 2)
	if got := strings.Split(out, "\n")[0]; got != ".......ABC" {
		t.Errorf("row 0: %q", got)
	}
}

func TestOverlayAtClipsBottomAndNegativeRows(t *testing.T) {
	base := plainCanvas(6, 3, '.')
	out := overlayAt(base, "A\nB\nC\nD", 0, -1, 6, 3)
	assertCanvasSize(t, out, 6, 3)
	lines := strings.Split(out, "\n")
	if lines[0][:1] != "B" || lines[1][:1] != "C" || lines[2][:1] != "D" {
		t.Errorf("negative y clip wrong: %q", lines)
	}

	out = overlayAt(base, "A", 10, 0, 6, 3) // entirely off-canvas
	if out != base {
		t.Error("off-canvas overlay must leave the base untouched")
	}
}

func TestOverlayAtPreservesStyledBase(t *testing.T) {
	r := lipgloss.NewRenderer(nil)
	red := r.NewStyle().Foreground(lipgloss.Color("1"))
	base := red.Render(strings.Repeat("x", 10))

	out := overlayAt(base, "AB", 4, 0, 10, 1)
	if w := ansi.StringWidth(out); w != 10 {
		t.Errorf("styled row width: %d", w)
	}
	if !strings.Contains(ansi.Strip(out), "AB") {
		t.Errorf("overlay lost: %q", ansi.Strip(out))
	}
}

func TestDropColumns(t *testing.T) {
	if got := dropColumns("abcdef", 2); got != "cdef" {
		t.Errorf("dropColumns plain: %q", got)
	}
	if got := dropColumns("abc", 0); got != "abc" {
		t.Errorf("dropColumns zero: %q", got)
	}
	if got := dropColumns("abc", 10); got != "" {
		t.Errorf("dropColumns past end: %q", got)
	}
}

func testOverlay() *Overlay {
	theme := DefaultTheme(lipgloss.NewRenderer(nil))
	return NewOverlay(theme, walkthrough.NewResolver())
}

func visibleSnap(step walkthrough.Step) walkthrough.Snapshot {
	return walkthrough.Snapshot{Visible: true, Step: &step, StepNumber: 1, TotalSteps: 3}
}

func TestRenderHiddenReturnsBase(t *testing.T) {
	o := testOverlay()
	base := plainCanvas(80, 24, '.')
	if got := o.Render(base, walkthrough.Snapshot{}, 80, 24); got != base {
		t.Error("hidden snapshot must not repaint")
	}
}

func TestRenderPaintsTooltipAndHighlight(t *testing.T) {
	o := testOverlay()
	base := plainCanvas(100, 30, '.')
	step := walkthrough.Step{
		ID: "s", Title: "The boards list", Body: "Pick a board.",
		Target: walkthrough.Rect{X: 2, Y: 3, Width: 40, Height: 10},
		Arrow:  walkthrough.ArrowLeft,
	}

	out := o.Render(base, visibleSnap(step), 100, 30)
	assertCanvasSize(t, out, 100, 30)

	plain := ansi.Strip(out)
	if !strings.Contains(plain, "The boards list") {
		t.Error("tooltip title missing")
	}
	if !strings.Contains(plain, "1/3") {
		t.Error("progress footer missing")
	}
	if !strings.Contains(plain, "╭") || !strings.Contains(plain, "╰") {
		t.Error("highlight corners missing")
	}
	if !strings.Contains(plain, "◀") {
		t.Error("arrow glyph missing")
	}
}

func TestRenderHandoffCenteredNoHighlight(t *testing.T) {
	o := testOverlay()
	base := plainCanvas(100, 30, '.')
	step := walkthrough.Step{
		ID: "s", Title: "Over to the board", Body: "Open a board with Enter.",
		Arrow:  walkthrough.ArrowTop,
		Action: walkthrough.Action{Kind: walkthrough.ActionHandoff, Target: walkthrough.ScreenBoard},
	}

	out := o.Render(base, visibleSnap(step), 100, 30)
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Over to the board") {
		t.Error("tooltip missing")
	}
	for _, glyph := range []string{"▲", "▼", "◀", "▶"} {
		if strings.Contains(plain, glyph) {
			t.Errorf("hand-off step painted an arrow %q", glyph)
		}
	}
}

func TestRenderTinyViewportStaysInBounds(t *testing.T) {
	o := testOverlay()
	step := walkthrough.Step{
		ID: "s", Title: "Tiny", Body: "Small terminal.",
		Target: walkthrough.Rect{X: 90, Y: 28, Width: 8, Height: 2},
		Arrow:  walkthrough.ArrowTop,
	}

	for _, dim := range []struct{ w, h int }{{40, 12}, {24, 8}, {100, 30}} {
		base := plainCanvas(dim.w, dim.h, '.')
		out := o.Render(base, visibleSnap(step), dim.w, dim.h)
		assertCanvasSize(t, out, dim.w, dim.h)
	}
}

func TestRenderZeroViewportReturnsBase(t *testing.T) {
	o := testOverlay()
	step := walkthrough.Step{ID: "s", Title: "t", Body: "b", Arrow: walkthrough.ArrowTop}
	if got := o.Render("base", visibleSnap(step), 0, 0); got != "base" {
		t.Error("zero viewport must not repaint")
	}
}
