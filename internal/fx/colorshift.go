package fx

import (
	"iter"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	spectrumSteps = 8
	fadeFrames    = 20
)

// ColorShift runs the gradient across the text, then settles on the final gradient.
type ColorShift struct {
	*base
	cfg      ColorShiftConfig
	spectrum []colorful.Color
	total    int
	frame    int
}

func newColorShift(b *base, cfg ColorShiftConfig) *ColorShift {
	cfg.Cycles = max(1, cfg.Cycles)
	cfg.GradientFrames = max(1, cfg.GradientFrames)
	if len(cfg.Stops) == 0 {
		cfg.Stops = Rainbow
	}
	b.applyFinal(cfg.FinalStops, cfg.FinalDirection)
	spectrum := NewGradient(cfg.Stops...).Spectrum(spectrumSteps)
	return &ColorShift{
		base:     b,
		cfg:      cfg,
		spectrum: spectrum,
		total:    cfg.Cycles * len(spectrum) * cfg.GradientFrames,
	}
}

func (e *ColorShift) Kind() Kind { return KindColorShift }

func (e *ColorShift) Frames() iter.Seq[string] { return e.run(e.step) }

func (e *ColorShift) step(c *Canvas) bool {
	defer func() { e.frame++ }()
	switch {
	case e.frame < e.total:
		shift := e.frame / e.cfg.GradientFrames
		for _, ch := range e.chars {
			c.Set(ch.fx, ch.fy, ch.r, e.colorAt(ch, shift))
		}
		return true
	case e.frame < e.total+fadeFrames:
		t := float64(e.frame-e.total+1) / fadeFrames
		for _, ch := range e.chars {
			c.Set(ch.fx, ch.fy, ch.r, e.colorAt(ch, e.total/e.cfg.GradientFrames).BlendLuv(ch.final, t).Clamped())
		}
		return true
	default:
		e.drawFinal(c)
		return false
	}
}

// colorAt returns the travelling colour of ch after shift spectrum steps.
func (e *ColorShift) colorAt(ch *character, shift int) colorful.Color {
	n := len(e.spectrum)
	pos := coordinate(e.cfg.Travel, ch.fx, ch.fy, e.canvas.Width, e.canvas.Height)
	idx := int(math.Round(pos*float64(n-1))) - shift
	return e.spectrum[((idx%n)+n)%n]
}
