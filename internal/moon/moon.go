// Package moon draws the --moon picture: an ASCII circle sized to the
// terminal, the payload across its equator, and craters scattered inside.
//
// The picture depends only on the terminal size and the options, so a
// given seed always yields the same moon.
package moon

import (
	"math"
	"math/rand/v2"
	"unicode/utf8"
)

const (
	boundaryGlyph = '#'
	// edge is the half-thickness of the drawn circle.
	edge = 0.5
)

var craters = []string{"()", "o", ".", "o", ".", "()"}

type Options struct {
	Payload       string
	Seed          uint64
	CraterDivisor int
	MaxRadius     int
	Aspect        float64
}

// Geometry is the circle's vertical radius and half-width in cells.
type Geometry struct {
	Radius    int
	HalfWidth int
	Aspect    float64
}

// Measure fits the circle into cols x rows. The half-width follows the
// radius through the cell aspect ratio unless the terminal is too narrow,
// in which case the radius is derived from the half-width instead.
func Measure(cols, rows, maxRadius int, aspect float64) Geometry {
	r := min(rows/2-1, maxRadius)
	w := int(float64(r) * aspect)
	if 2*w+1 > cols {
		w = (cols - 1) / 2
		r = int(float64(w) / aspect)
	}
	return Geometry{Radius: max(0, r), HalfWidth: max(0, w), Aspect: aspect}
}

func (g Geometry) Rows() int { return 2*g.Radius + 1 }
func (g Geometry) Cols() int { return 2*g.HalfWidth + 1 }

// Distance is the aspect-corrected distance of cell offset (x, y) from the centre.
func (g Geometry) Distance(x, y int) float64 {
	return math.Hypot(float64(x)/g.Aspect, float64(y))
}

func (g Geometry) OnBoundary(x, y int) bool {
	return math.Abs(g.Distance(x, y)-float64(g.Radius)) < edge
}

func (g Geometry) Inside(x, y int) bool {
	return g.Distance(x, y) < float64(g.Radius)-edge
}

// Render draws the moon for a cols x rows terminal.
func Render(cols, rows int, opts Options) string {
	return Draw(Measure(cols, rows, opts.MaxRadius, opts.Aspect), opts).String()
}

// Draw fills a grid for geometry g, one row at a time from the top.
func Draw(g Geometry, opts Options) *Grid {
	grid := NewGrid(g.Cols(), g.Rows())
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	divisor := max(1, opts.CraterDivisor)

	for y := -g.Radius; y <= g.Radius; y++ {
		row := y + g.Radius
		for x := -g.HalfWidth; x <= g.HalfWidth; x++ {
			if g.OnBoundary(x, y) {
				grid.Set(x+g.HalfWidth, row, boundaryGlyph)
			}
		}

		if y == 0 {
			start := g.HalfWidth - utf8.RuneCountInString(opts.Payload)/2
			j := 0
			for _, r := range opts.Payload {
				grid.Set(start+j, row, r)
				j++
			}
			continue
		}

		var interior []int
		for x := -g.HalfWidth; x <= g.HalfWidth; x++ {
			if g.Inside(x, y) && grid.Blank(x+g.HalfWidth, row) {
				interior = append(interior, x+g.HalfWidth)
			}
		}
		if len(interior) == 0 {
			continue
		}
		for range max(1, len(interior)/divisor) {
			crater := craters[rng.IntN(len(craters))]
			pos := interior[rng.IntN(len(interior))]
			j := 0
			for _, r := range crater {
				if grid.Blank(pos+j, row) {
					grid.Set(pos+j, row, r)
				}
				j++
			}
		}
	}
	return grid
}
