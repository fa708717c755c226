package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mboersen/divvy/pkg/api"
	"github.com/mboersen/divvy/pkg/walkthrough"
)

func TestTruncateCells(t *testing.T) {
	cases := []struct {
		in     string
		width  int
		suffix string
		want   string
	}{
		{"hello", 10, "…", "hello"},
		{"hello world", 8, "…", "hello w…"},
		{"hello", 0, "…", ""},
		{"日本語テスト", 7, "…", "日本語…"},
		{"abc", 1, "...", "."},
	}
	for _, tc := range cases {
		if got := truncateCells(tc.in, tc.width, tc.suffix); got != tc.want {
			t.Errorf("truncateCells(%q, %d, %q) = %q, want %q", tc.in, tc.width, tc.suffix, got, tc.want)
		}
	}
}

func TestPadCells(t *testing.T) {
	if got := padCells("ab", 5); got != "ab   " {
		t.Errorf("padCells short: %q", got)
	}
	if got := padCells("abcdef", 3); got != "abcdef" {
		t.Errorf("padCells long must not truncate: %q", got)
	}
	if got := padCells("日本", 6); got != "日本  " {
		t.Errorf("padCells wide: %q", got)
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents    int64
		currency string
		want     string
	}{
		{0, "EUR", "0.00 EUR"},
		{1234, "EUR", "12.34 EUR"},
		{-507, "EUR", "-5.07 EUR"},
		{100000, "USD", "1000.00 USD"},
		{5, "EUR", "0.05 EUR"},
	}
	for _, tc := range cases {
		if got := formatCents(tc.cents, tc.currency); got != tc.want {
			t.Errorf("formatCents(%d, %s) = %q, want %q", tc.cents, tc.currency, got, tc.want)
		}
	}
}

func TestScreensRenderOnReferenceGrid(t *testing.T) {
	s := NewScreens(DefaultTheme(lipgloss.NewRenderer(nil)))
	svc := api.NewStaticService()
	boards, _ := svc.Boards(nil, "ana")
	board := boards[0]
	expenses, _ := svc.Expenses(nil, board.ID)
	settlements, _ := svc.Settlements(nil, board.ID)

	w, h := walkthrough.RefViewport.Width, walkthrough.RefViewport.Height
	views := map[string]string{
		"boards":   s.Boards(boards, 0, w, h),
		"board":    s.Board(board, expenses, w, h),
		"summary":  s.Summary(board, settlements, w, h),
		"settings": s.Settings("ana", "Ana", w, h),
	}
	for name, view := range views {
		lines := strings.Split(view, "\n")
		if len(lines) != h {
			t.Errorf("%s: expected %d rows, got %d", name, h, len(lines))
		}
		for i, line := range lines {
			if got := ansi.StringWidth(line); got != w {
				t.Errorf("%s row %d: expected width %d, got %d", name, i, w, got)
				break
			}
		}
	}
}

func TestScreensSurviveTinyViewport(t *testing.T) {
	s := NewScreens(DefaultTheme(lipgloss.NewRenderer(nil)))
	boards, _ := api.NewStaticService().Boards(nil, "ana")

	for _, dim := range []struct{ w, h int }{{20, 6}, {1, 1}} {
		if view := s.Boards(boards, 0, dim.w, dim.h); view == "" {
			t.Errorf("%dx%d rendered empty", dim.w, dim.h)
		}
	}
}

func TestTabBarMarksActive(t *testing.T) {
	s := NewScreens(DefaultTheme(lipgloss.NewRenderer(nil)))
	bar := ansi.Strip(s.TabBar(walkthrough.ScreenSummary))
	if !strings.Contains(bar, "Summary") {
		t.Errorf("tab bar missing the summary tab: %q", bar)
	}
}
