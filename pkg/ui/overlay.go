package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mboersen/divvy/pkg/walkthrough"
)

// Overlay paints the walkthrough layer — highlight box, directional arrow,
// tooltip bubble — on top of a rendered screen, at the coordinates the
// resolver computed.
type Overlay struct {
	theme    Theme
	resolver walkthrough.Resolver
	md       *MarkdownRenderer
}

// NewOverlay creates the painter.
func NewOverlay(theme Theme, resolver walkthrough.Resolver) *Overlay {
	return &Overlay{
		theme:    theme,
		resolver: resolver,
		md:       NewMarkdownRenderer(40),
	}
}

// Render composites the overlay for snap onto base. base is the active
// screen's full-viewport render; when the snapshot is not visible it is
// returned unchanged.
func (o *Overlay) Render(base string, snap walkthrough.Snapshot, width, height int) string {
	if !snap.Visible || snap.Step == nil || width <= 0 || height <= 0 {
		return base
	}
	step := *snap.Step

	tooltip := o.renderTooltip(step, snap, width)
	size := walkthrough.Size{Width: lipgloss.Width(tooltip), Height: lipgloss.Height(tooltip)}
	placement := o.resolver.Resolve(step, walkthrough.Size{Width: width, Height: height}, size)

	out := fitCanvas(base, width, height)
	if placement.ShowHighlight {
		out = o.paintHighlight(out, placement.Highlight, step.HighlightColor, width, height)
	}
	out = overlayAt(out, tooltip, placement.Tooltip.X, placement.Tooltip.Y, width, height)
	if placement.ShowArrow {
		out = overlayAt(out, o.arrowGlyph(placement.ArrowDir, step.HighlightColor),
			placement.Arrow.X, placement.Arrow.Y, width, height)
	}
	return out
}

// renderTooltip builds the bubble: title, markdown body, progress footer.
func (o *Overlay) renderTooltip(step walkthrough.Step, snap walkthrough.Snapshot, viewportWidth int) string {
	r := o.theme.Renderer

	boxWidth := 44
	if boxWidth > viewportWidth-4 {
		boxWidth = viewportWidth - 4
	}
	if boxWidth < 20 {
		boxWidth = 20
	}
	contentWidth := boxWidth - 4 // border + padding

	o.md.SetWidth(contentWidth)

	title := r.NewStyle().Bold(true).Foreground(o.theme.Primary).Render(step.Title)
	body := o.md.Render(step.Body)

	keyStyle := r.NewStyle().Bold(true).Foreground(o.theme.Primary)
	descStyle := r.NewStyle().Foreground(o.theme.Subtext)
	progress := descStyle.Render(fmt.Sprintf("%d/%d", snap.StepNumber, snap.TotalSteps))
	hints := []string{
		keyStyle.Render("n") + descStyle.Render(" next"),
		keyStyle.Render("p") + descStyle.Render(" back"),
		keyStyle.Render("s") + descStyle.Render(" skip"),
	}
	footer := progress + o.theme.MutedText.Render(" │ ") +
		strings.Join(hints, o.theme.MutedText.Render(" │ "))

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(o.theme.Border).Render(strings.Repeat("─", contentWidth)))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(footer)

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(o.theme.Primary).
		Padding(0, 1).
		Width(boxWidth - 2)

	return box.Render(b.String())
}

// paintHighlight draws only the border cells of the highlight box, leaving
// the highlighted content itself untouched.
func (o *Overlay) paintHighlight(base string, box walkthrough.Rect, colorOverride string, width, height int) string {
	if box.Width < 2 || box.Height < 2 {
		return base
	}

	color := lipgloss.TerminalColor(o.theme.Highlight)
	if colorOverride != "" {
		color = lipgloss.Color(colorOverride)
	}
	style := o.theme.Renderer.NewStyle().Foreground(color)

	top := style.Render("╭" + strings.Repeat("─", box.Width-2) + "╮")
	bottom := style.Render("╰" + strings.Repeat("─", box.Width-2) + "╯")
	side := style.Render("│")

	out := overlayAt(base, top, box.X, box.Y, width, height)
	out = overlayAt(out, bottom, box.X, box.Y+box.Height-1, width, height)
	for row := box.Y + 1; row < box.Y+box.Height-1; row++ {
		out = overlayAt(out, side, box.X, row, width, height)
		out = overlayAt(out, side, box.X+box.Width-1, row, width, height)
	}
	return out
}

func (o *Overlay) arrowGlyph(dir walkthrough.ArrowDirection, colorOverride string) string {
	color := lipgloss.TerminalColor(o.theme.Highlight)
	if colorOverride != "" {
		color = lipgloss.Color(colorOverride)
	}
	style := o.theme.Renderer.NewStyle().Foreground(color).Bold(true)

	switch dir {
	case walkthrough.ArrowTop:
		return style.Render("▲")
	case walkthrough.ArrowBottom:
		return style.Render("▼")
	case walkthrough.ArrowLeft:
		return style.Render("◀")
	case walkthrough.ArrowRight:
		return style.Render("▶")
	}
	return style.Render("▲")
}

// --- ANSI-aware canvas primitives -------------------------------------------

// fitCanvas pads/truncates s to exactly width x height cells.
func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRightANSI(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// overlayAt paints overlay onto base with its top-left corner at (x, y),
// clipping to the width x height canvas. Rows outside the canvas are
// skipped; every touched row is re-truncated to the canvas width.
func overlayAt(base, overlay string, x, y, width, height int) string {
	if x >= width || y >= height {
		return base
	}
	baseLines := splitToLines(base, height)
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := maxLineWidth(overlayLines)

	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		target := padRightANSI(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += spaces(x - w)
		}

		painted := padRightANSI(line, overlayWidth)
		pos := x + ansi.StringWidth(painted)
		right := ""
		if pos < width {
			right = dropColumns(target, pos)
			if gap := width - pos - ansi.StringWidth(right); gap > 0 {
				right = spaces(gap) + right
			}
		}
		baseLines[row] = ansi.Truncate(left+painted+right, width, "")
	}
	return strings.Join(baseLines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// dropColumns removes the first cols visual columns of s, preserving the
// remainder's styling.
func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	truncated := ansi.Truncate(s, cols, "")
	return strings.TrimPrefix(s, truncated)
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + spaces(width-w)
	}
	return s
}
