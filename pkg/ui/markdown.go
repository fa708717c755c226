package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer wraps glamour for walkthrough step bodies. Rendering
// falls back to the raw text on any error so a bad step never blanks the
// tooltip.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a renderer wrapping at the given width.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	if width < 20 {
		width = 20
	}
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	return &MarkdownRenderer{renderer: r, width: width}
}

// Width returns the current wrap width.
func (m *MarkdownRenderer) Width() int {
	return m.width
}

// SetWidth rebuilds the underlying renderer when the wrap width changes.
func (m *MarkdownRenderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width == m.width {
		return
	}
	m.width = width
	m.renderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

// Render renders markdown to styled terminal text.
func (m *MarkdownRenderer) Render(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return compressBlankLines(strings.TrimRight(out, "\n"))
}

// compressBlankLines collapses runs of 3+ blank lines into 2, working around
// glamour's occasional excessive whitespace.
func compressBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 2 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
