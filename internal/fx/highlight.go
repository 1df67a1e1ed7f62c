package fx

import (
	"iter"
	"math"
)

// Highlight sweeps a bright diagonal band across the final gradient.
type Highlight struct {
	*base
	cfg    HighlightConfig
	center int
	last   int
}

func newHighlight(b *base, cfg HighlightConfig) *Highlight {
	if cfg.Brightness <= 0 {
		cfg.Brightness = 1.75
	}
	if cfg.Width <= 0 {
		cfg.Width = 8
	}
	b.applyFinal(cfg.FinalStops, cfg.FinalDirection)
	return &Highlight{
		base:   b,
		cfg:    cfg,
		center: -cfg.Width,
		last:   b.canvas.Width + b.canvas.Height - 2 + cfg.Width,
	}
}

func (e *Highlight) Kind() Kind { return KindHighlight }

func (e *Highlight) Frames() iter.Seq[string] { return e.run(e.step) }

func (e *Highlight) step(c *Canvas) bool {
	defer func() { e.center++ }()
	if e.center > e.last {
		e.drawFinal(c)
		return false
	}
	half := float64(e.cfg.Width) / 2
	for _, ch := range e.chars {
		d := math.Abs(float64(e.key(ch) - e.center))
		col := ch.final
		if d < half {
			col = scale(col, 1+(e.cfg.Brightness-1)*(1-d/half))
		}
		c.Set(ch.fx, ch.fy, ch.r, col)
	}
	return true
}

// key orders characters along the sweep so that the band starts at
// the sweep's origin corner.
func (e *Highlight) key(ch *character) int {
	right, bottom := e.canvas.Width-1, e.canvas.Height-1
	switch e.cfg.Direction {
	case BottomRightToTopLeft:
		return (right - ch.fx) + (bottom - ch.fy)
	case TopLeftToBottomRight:
		return ch.fx + ch.fy
	case TopRightToBottomLeft:
		return (right - ch.fx) + ch.fy
	default:
		return ch.fx + (bottom - ch.fy)
	}
}
