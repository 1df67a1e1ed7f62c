package moon

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Options {
	return Options{
		Payload:       "Bofa deez nuts",
		Seed:          42,
		CraterDivisor: 12,
		MaxRadius:     10,
		Aspect:        2.0,
	}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		want       Geometry
	}{
		{"standard", 80, 24, Geometry{Radius: 10, HalfWidth: 20, Aspect: 2}},
		{"short", 80, 10, Geometry{Radius: 4, HalfWidth: 8, Aspect: 2}},
		{"narrow", 10, 24, Geometry{Radius: 2, HalfWidth: 4, Aspect: 2}},
		{"exact fit", 41, 24, Geometry{Radius: 10, HalfWidth: 20, Aspect: 2}},
		{"one too narrow", 40, 24, Geometry{Radius: 9, HalfWidth: 19, Aspect: 2}},
		{"single row", 80, 1, Geometry{Radius: 0, HalfWidth: 0, Aspect: 2}},
		{"no columns", 0, 24, Geometry{Radius: 0, HalfWidth: 0, Aspect: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Measure(tt.cols, tt.rows, 10, 2.0))
		})
	}
}

func TestRender_Shape(t *testing.T) {
	lines := strings.Split(Render(80, 24, defaults()), "\n")
	require.Len(t, lines, 21)

	top := strings.Repeat(" ", 14) + strings.Repeat("#", 13)
	assert.Equal(t, top, lines[0])
	assert.Equal(t, top, lines[20])

	equator := "#" + strings.Repeat(" ", 12) + "Bofa deez nuts" + strings.Repeat(" ", 13) + "#"
	assert.Equal(t, equator, lines[10])

	for _, l := range lines {
		assert.Equal(t, strings.TrimRight(l, " "), l)
		assert.LessOrEqual(t, len([]rune(l)), 41)
	}
}

func TestRender_Boundary(t *testing.T) {
	g := Measure(80, 24, 10, 2.0)
	require.Equal(t, 10, g.Radius)
	grid := Draw(g, defaults())

	for y := -g.Radius; y <= g.Radius; y++ {
		if y == 0 {
			continue
		}
		for x := -g.HalfWidth; x <= g.HalfWidth; x++ {
			got := grid.At(x+g.HalfWidth, y+g.Radius)
			dist := math.Sqrt(math.Pow(float64(x)/2, 2) + float64(y*y))
			if math.Abs(dist-10) < 0.5 {
				assert.Equal(t, '#', got, "boundary cell (%d,%d)", x, y)
				continue
			}
			assert.NotEqual(t, '#', got, "cell (%d,%d) off the boundary", x, y)
			assert.Contains(t, " ()o.", string(got))
		}
	}
}

func TestRender_CratersInside(t *testing.T) {
	g := Measure(80, 24, 10, 2.0)
	grid := Draw(g, defaults())

	craters := 0
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			switch grid.At(x, y) {
			case 'o', '.', '(':
				craters++
				assert.True(t, g.Inside(x-g.HalfWidth, y-g.Radius), "crater start at (%d,%d)", x, y)
			}
		}
	}
	assert.Positive(t, craters)
}

func TestRender_Deterministic(t *testing.T) {
	opts := defaults()
	a := Render(80, 24, opts)

	assert.Equal(t, a, Render(80, 24, opts))

	opts.Seed = 43
	assert.NotEqual(t, a, Render(80, 24, opts))
}

func TestRender_NarrowClipsPayload(t *testing.T) {
	lines := strings.Split(Render(10, 24, defaults()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "a deez nu", lines[2])
}

func TestRender_Degenerate(t *testing.T) {
	// A single cell: the boundary glyph is overwritten by the payload's middle rune.
	assert.Equal(t, "e", Render(80, 1, defaults()))
	assert.Equal(t, "e", Render(0, 0, defaults()))
}

func TestGrid(t *testing.T) {
	g := NewGrid(3, 2)
	g.Set(0, 0, 'a')
	g.Set(5, 0, 'b')
	g.Set(-1, 1, 'c')

	assert.Equal(t, "a\n", g.String())
	assert.True(t, g.Blank(1, 0))
	assert.False(t, g.Blank(9, 9))
}

func TestRender_UppercasePayload(t *testing.T) {
	opts := defaults()
	opts.Payload = "BOFA DEEZ NUTS"
	g := Measure(80, 24, opts.MaxRadius, opts.Aspect)
	grid := Draw(g, opts)

	row := string(grid.Cells[g.Radius])
	assert.Equal(t, "BOFA DEEZ NUTS", row[13:27])
	assert.LessOrEqual(t, g.Radius, 10)
	assert.LessOrEqual(t, g.Cols(), 80)
}
