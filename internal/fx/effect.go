package fx

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Effect is one playable animation. Frames may be ranged over once.
type Effect interface {
	Kind() Kind
	Frames() iter.Seq[string]
}

// New builds the effect described by cfg over text.
func New(text string, cfg Config, term TerminalConfig, rng *rand.Rand) (Effect, error) {
	b := newBase(text, term)
	switch c := cfg.(type) {
	case ColorShiftConfig:
		return newColorShift(b, c), nil
	case SpotlightsConfig:
		return newSpotlights(b, c, rng), nil
	case SprayConfig:
		return newSpray(b, c, rng), nil
	case VHSTapeConfig:
		return newVHSTape(b, c, rng), nil
	case FireworksConfig:
		return newFireworks(b, c, rng), nil
	case HighlightConfig:
		return newHighlight(b, c), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, cfg)
	}
}

// character is one visible glyph of the source text.
type character struct {
	r     rune
	fx    int // final column
	fy    int // final row
	final colorful.Color
}

type base struct {
	chars   []*character
	canvas  *Canvas
	painter *Painter
	used    bool
}

func newBase(text string, term TerminalConfig) *base {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	width := 0
	var chars []*character
	for y, line := range lines {
		x := 0
		for _, r := range line {
			if r != ' ' {
				chars = append(chars, &character{r: r, fx: x, fy: y})
			}
			x++
		}
		width = max(width, x)
	}
	return &base{
		chars:   chars,
		canvas:  NewCanvas(width, len(lines)),
		painter: NewPainter(term),
	}
}

// applyFinal assigns each character its colour in the final gradient.
func (b *base) applyFinal(stops []colorful.Color, dir Direction) {
	if len(stops) == 0 {
		stops = Rainbow
	}
	g := NewGradient(stops...)
	for _, ch := range b.chars {
		ch.final = g.Sample(dir, ch.fx, ch.fy, b.canvas.Width, b.canvas.Height)
	}
}

func (b *base) drawFinal(c *Canvas) {
	for _, ch := range b.chars {
		c.Set(ch.fx, ch.fy, ch.r, ch.final)
	}
}

// run drives step once per frame until it reports the last frame.
func (b *base) run(step func(c *Canvas) bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		if b.used {
			return
		}
		b.used = true
		for {
			b.canvas.Clear()
			more := step(b.canvas)
			if !yield(b.painter.Paint(b.canvas)) || !more {
				return
			}
		}
	}
}

func between(rng *rand.Rand, r [2]float64) float64 {
	lo, hi := r[0], r[1]
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + rng.Float64()*(hi-lo)
}

func pick(rng *rand.Rand, colors []colorful.Color) colorful.Color {
	if len(colors) == 0 {
		return White
	}
	return colors[rng.IntN(len(colors))]
}
