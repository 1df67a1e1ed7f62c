package fx

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient interpolates between colour stops in Luv space.
type Gradient struct {
	stops []colorful.Color
}

func NewGradient(stops ...colorful.Color) Gradient {
	if len(stops) == 0 {
		stops = []colorful.Color{White}
	}
	return Gradient{stops: stops}
}

// At returns the colour at t in [0,1]; t is clamped.
func (g Gradient) At(t float64) colorful.Color {
	if len(g.stops) == 1 {
		return g.stops[0]
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(g.stops)-1)
	i := int(pos)
	if i >= len(g.stops)-1 {
		return g.stops[len(g.stops)-1]
	}
	return g.stops[i].BlendLuv(g.stops[i+1], pos-float64(i)).Clamped()
}

// Spectrum samples steps colours per segment between consecutive stops.
func (g Gradient) Spectrum(steps int) []colorful.Color {
	steps = max(1, steps)
	if len(g.stops) == 1 {
		return []colorful.Color{g.stops[0]}
	}
	out := make([]colorful.Color, 0, (len(g.stops)-1)*steps+1)
	for i := 0; i < len(g.stops)-1; i++ {
		for s := range steps {
			out = append(out, g.stops[i].BlendLuv(g.stops[i+1], float64(s)/float64(steps)).Clamped())
		}
	}
	return append(out, g.stops[len(g.stops)-1])
}

// Sample maps cell (x, y) of a w by h canvas onto the gradient.
func (g Gradient) Sample(dir Direction, x, y, w, h int) colorful.Color {
	return g.At(coordinate(dir, x, y, w, h))
}

// coordinate returns the normalised position of a cell along dir.
func coordinate(dir Direction, x, y, w, h int) float64 {
	switch dir {
	case Vertical:
		return ratio(y, h-1)
	case Radial:
		cx, cy := float64(w-1)/2, float64(h-1)/2
		// Cells are about twice as tall as they are wide.
		dx, dy := (float64(x)-cx)/2, float64(y)-cy
		far := math.Hypot(cx/2, cy)
		if far == 0 {
			return 0
		}
		return math.Hypot(dx, dy) / far
	case Diagonal:
		return ratio(x+y, w+h-2)
	default:
		return ratio(x, w-1)
	}
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// scale multiplies a colour's channels by f and clamps the result.
func scale(c colorful.Color, f float64) colorful.Color {
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped()
}
