package walkthrough

// Resolver computes overlay placement for a step: the highlight box around
// the target region, the tooltip position, and the connecting arrow. All
// tunables live here as configuration; step data carries only the regions.
//
// Resolution never fails. Degenerate inputs (zero viewport, empty target,
// oversized tooltip) degrade to a fully clamped or centered placement.
type Resolver struct {
	// Inset expands the highlight box past the target's edges so the
	// border does not clip the element itself.
	Inset int
	// Clearance is the gap kept between the target region and the tooltip.
	Clearance int
	// MinMargin keeps the tooltip this far inside the viewport edges.
	MinMargin int
}

// NewResolver returns a resolver with the standard overlay metrics.
func NewResolver() Resolver {
	return Resolver{Inset: 1, Clearance: 1, MinMargin: 1}
}

// Placement is a resolved overlay layout in viewport cells.
type Placement struct {
	Highlight     Rect
	ShowHighlight bool

	Tooltip Point // top-left corner of the tooltip box
	// Centered marks viewport-centered placement (hand-off steps and
	// steps without a usable target region).
	Centered bool

	Arrow     Point
	ArrowDir  ArrowDirection
	ShowArrow bool
}

// Resolve computes the placement for step inside viewport, given the
// measured size of the rendered tooltip box.
func (r Resolver) Resolve(step Step, viewport Size, tooltip Size) Placement {
	viewport = sanitizeSize(viewport)
	tooltip = sanitizeSize(tooltip)

	// Hand-off steps explain a navigation instruction, not an element:
	// skip region-relative placement entirely. Steps with degenerate
	// targets get the same treatment so we never anchor to nothing.
	if step.Action.IsHandoff() || step.Target.Empty() {
		return Placement{
			Tooltip:  r.centerTooltip(viewport, tooltip),
			Centered: true,
			ArrowDir: step.Arrow,
		}
	}

	highlight := Rect{
		X:      step.Target.X - r.Inset,
		Y:      step.Target.Y - r.Inset,
		Width:  step.Target.Width + 2*r.Inset,
		Height: step.Target.Height + 2*r.Inset,
	}

	pos := r.anchorTooltip(step.Target, step.Arrow, tooltip)
	pos.X = clamp(pos.X, r.MinMargin, viewport.Width-tooltip.Width-r.MinMargin)
	pos.Y = clamp(pos.Y, r.MinMargin, viewport.Height-tooltip.Height-r.MinMargin)

	p := Placement{
		Highlight:     highlight,
		ShowHighlight: true,
		Tooltip:       pos,
		ArrowDir:      step.Arrow,
	}
	if step.Action.Kind != ActionHighlightOnly {
		p.Arrow = r.arrowPoint(highlight, pos, tooltip, step.Arrow, viewport)
		p.ShowArrow = true
	}
	return p
}

// anchorTooltip places the tooltip on the side of the target implied by the
// arrow direction, centered along the other axis, before any clamping.
func (r Resolver) anchorTooltip(target Rect, dir ArrowDirection, tooltip Size) Point {
	c := target.Center()
	switch dir {
	case ArrowTop: // tooltip below the region
		return Point{X: c.X - tooltip.Width/2, Y: target.Y + target.Height + r.Clearance}
	case ArrowBottom: // tooltip above the region
		return Point{X: c.X - tooltip.Width/2, Y: target.Y - r.Clearance - tooltip.Height}
	case ArrowLeft: // tooltip right of the region
		return Point{X: target.X + target.Width + r.Clearance, Y: c.Y - tooltip.Height/2}
	case ArrowRight: // tooltip left of the region
		return Point{X: target.X - r.Clearance - tooltip.Width, Y: c.Y - tooltip.Height/2}
	default:
		return Point{X: c.X - tooltip.Width/2, Y: target.Y + target.Height + r.Clearance}
	}
}

// arrowPoint puts the arrow glyph midway between the (clamped) tooltip edge
// and the highlight box, aligned with the target along the cross axis.
func (r Resolver) arrowPoint(highlight Rect, tooltip Point, size Size, dir ArrowDirection, viewport Size) Point {
	c := highlight.Center()
	var p Point
	switch dir {
	case ArrowTop:
		p = Point{X: c.X, Y: midpoint(highlight.Y+highlight.Height, tooltip.Y)}
		p.X = clamp(p.X, tooltip.X, tooltip.X+size.Width-1)
	case ArrowBottom:
		p = Point{X: c.X, Y: midpoint(tooltip.Y+size.Height-1, highlight.Y)}
		p.X = clamp(p.X, tooltip.X, tooltip.X+size.Width-1)
	case ArrowLeft:
		p = Point{X: midpoint(highlight.X+highlight.Width, tooltip.X), Y: c.Y}
		p.Y = clamp(p.Y, tooltip.Y, tooltip.Y+size.Height-1)
	case ArrowRight:
		p = Point{X: midpoint(tooltip.X+size.Width-1, highlight.X), Y: c.Y}
		p.Y = clamp(p.Y, tooltip.Y, tooltip.Y+size.Height-1)
	}
	p.X = clamp(p.X, 0, viewport.Width-1)
	p.Y = clamp(p.Y, 0, viewport.Height-1)
	return p
}

func (r Resolver) centerTooltip(viewport, tooltip Size) Point {
	return Point{
		X: clamp((viewport.Width-tooltip.Width)/2, r.MinMargin, viewport.Width),
		Y: clamp((viewport.Height-tooltip.Height)/2, r.MinMargin, viewport.Height),
	}
}

func sanitizeSize(s Size) Size {
	if s.Width < 1 {
		s.Width = 1
	}
	if s.Height < 1 {
		s.Height = 1
	}
	return s
}

// clamp bounds v into [lo, hi]; if the interval is inverted (the tooltip is
// larger than the viewport allows) the lower bound wins.
func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func midpoint(a, b int) int {
	return (a + b) / 2
}
