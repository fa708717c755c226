// Package export renders walkthrough placements to static images, so step
// authors can review overlay layout for every step of a screen without
// clicking through the TUI at each terminal size.
package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/mboersen/divvy/pkg/walkthrough"
)

// Cell size in pixels; roughly the aspect ratio of a terminal cell.
const (
	cellW = 9
	cellH = 18
)

// SnapshotOptions controls walkthrough snapshot export.
type SnapshotOptions struct {
	Path     string               // output path; format inferred from extension when Format empty
	Format   string               // "svg" or "png" (case-insensitive)
	Screen   walkthrough.ScreenID // rendered in the header
	Steps    []walkthrough.Step   // steps to lay out
	Viewport walkthrough.Size     // terminal size in cells
	Resolver walkthrough.Resolver // placement metrics under review
	Tooltip  walkthrough.Size     // assumed tooltip box size in cells
}

// SaveSnapshot renders one image per call: the viewport frame plus, for each
// step, its highlight box, tooltip outline and arrow position, numbered in
// play order.
func SaveSnapshot(opts SnapshotOptions) error {
	if len(opts.Steps) == 0 {
		return fmt.Errorf("screen %s has no steps to snapshot", opts.Screen)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = walkthrough.RefViewport
	}
	if opts.Tooltip.Width <= 0 || opts.Tooltip.Height <= 0 {
		opts.Tooltip = walkthrough.Size{Width: 44, Height: 12}
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".png":
			format = "png"
		default:
			format = "svg"
			if filepath.Ext(opts.Path) == "" {
				opts.Path += ".svg"
			}
		}
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	placements := make([]walkthrough.Placement, len(opts.Steps))
	for i, step := range opts.Steps {
		placements[i] = opts.Resolver.Resolve(step, opts.Viewport, opts.Tooltip)
	}

	switch format {
	case "svg":
		return renderSVG(opts, placements)
	case "png":
		return renderPNG(opts, placements)
	default:
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
}

const headerPx = 40

func imageSize(v walkthrough.Size) (int, int) {
	return v.Width * cellW, v.Height*cellH + headerPx
}

func renderSVG(opts SnapshotOptions, placements []walkthrough.Placement) error {
	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w, h := imageSize(opts.Viewport)
	canvas := svg.New(f)
	canvas.Start(w, h)
	canvas.Rect(0, 0, w, h, "fill:#282a36")
	canvas.Text(10, 26, fmt.Sprintf("dv walkthrough — %s (%dx%d cells, %d steps)",
		opts.Screen, opts.Viewport.Width, opts.Viewport.Height, len(opts.Steps)),
		"fill:#f8f8f2;font-family:monospace;font-size:15px")
	canvas.Rect(0, headerPx, w, h-headerPx, "fill:none;stroke:#6272a4;stroke-width:1")

	for i, p := range placements {
		label := fmt.Sprintf("%d", i+1)
		if p.ShowHighlight {
			canvas.Rect(p.Highlight.X*cellW, headerPx+p.Highlight.Y*cellH,
				p.Highlight.Width*cellW, p.Highlight.Height*cellH,
				"fill:none;stroke:#ffb86c;stroke-width:2")
		}
		canvas.Rect(p.Tooltip.X*cellW, headerPx+p.Tooltip.Y*cellH,
			opts.Tooltip.Width*cellW, opts.Tooltip.Height*cellH,
			"fill:#44475a;fill-opacity:0.55;stroke:#bd93f9;stroke-width:2")
		canvas.Text(p.Tooltip.X*cellW+6, headerPx+p.Tooltip.Y*cellH+16, label,
			"fill:#bd93f9;font-family:monospace;font-size:13px")
		if p.ShowArrow {
			canvas.Circle(p.Arrow.X*cellW+cellW/2, headerPx+p.Arrow.Y*cellH+cellH/2, 4,
				"fill:#ffb86c")
		}
	}

	canvas.End()
	return nil
}

func renderPNG(opts SnapshotOptions, placements []walkthrough.Placement) error {
	w, h := imageSize(opts.Viewport)
	dc := gg.NewContext(w, h)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(color.RGBA{0x28, 0x2a, 0x36, 0xff})
	dc.Clear()

	dc.SetColor(color.RGBA{0xf8, 0xf8, 0xf2, 0xff})
	dc.DrawString(fmt.Sprintf("dv walkthrough — %s (%dx%d cells, %d steps)",
		opts.Screen, opts.Viewport.Width, opts.Viewport.Height, len(opts.Steps)), 10, 26)

	dc.SetColor(color.RGBA{0x62, 0x72, 0xa4, 0xff})
	dc.SetLineWidth(1)
	dc.DrawRectangle(0, headerPx, float64(w), float64(h-headerPx))
	dc.Stroke()

	for i, p := range placements {
		if p.ShowHighlight {
			dc.SetColor(color.RGBA{0xff, 0xb8, 0x6c, 0xff})
			dc.SetLineWidth(2)
			dc.DrawRectangle(float64(p.Highlight.X*cellW), float64(headerPx+p.Highlight.Y*cellH),
				float64(p.Highlight.Width*cellW), float64(p.Highlight.Height*cellH))
			dc.Stroke()
		}

		dc.SetColor(color.RGBA{0x44, 0x47, 0x5a, 0x8c})
		dc.DrawRectangle(float64(p.Tooltip.X*cellW), float64(headerPx+p.Tooltip.Y*cellH),
			float64(opts.Tooltip.Width*cellW), float64(opts.Tooltip.Height*cellH))
		dc.Fill()
		dc.SetColor(color.RGBA{0xbd, 0x93, 0xf9, 0xff})
		dc.SetLineWidth(2)
		dc.DrawRectangle(float64(p.Tooltip.X*cellW), float64(headerPx+p.Tooltip.Y*cellH),
			float64(opts.Tooltip.Width*cellW), float64(opts.Tooltip.Height*cellH))
		dc.Stroke()
		dc.DrawString(fmt.Sprintf("%d", i+1),
			float64(p.Tooltip.X*cellW+6), float64(headerPx+p.Tooltip.Y*cellH+16))

		if p.ShowArrow {
			dc.SetColor(color.RGBA{0xff, 0xb8, 0x6c, 0xff})
			dc.DrawCircle(float64(p.Arrow.X*cellW+cellW/2), float64(headerPx+p.Arrow.Y*cellH+cellH/2), 4)
			dc.Fill()
		}
	}

	if err := dc.SavePNG(opts.Path); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
