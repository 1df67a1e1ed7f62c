package fx

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Cell is one character position of the canvas.
type Cell struct {
	Rune  rune
	Color colorful.Color
	// Styled is false for blank cells and uncoloured glyphs.
	Styled bool
}

// Canvas is a fixed-size grid the effects draw each frame into.
type Canvas struct {
	Width, Height int
	Grid          [][]Cell
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]Cell, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]Cell, w)
	}
	c.Clear()
	return c
}

// Set paints r at (x, y) in colour col. Out-of-range cells are ignored.
func (c *Canvas) Set(x, y int, r rune, col colorful.Color) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Grid[y][x] = Cell{Rune: r, Color: col, Styled: r != ' '}
}

func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return Cell{Rune: ' '}
	}
	return c.Grid[y][x]
}

// Clear resets the canvas to blanks.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = Cell{Rune: ' '}
		}
	}
}

// String returns the canvas without colour, rows right-trimmed.
func (c *Canvas) String() string {
	rows := make([]string, len(c.Grid))
	for i, row := range c.Grid {
		var b strings.Builder
		for _, cell := range row {
			b.WriteRune(cell.Rune)
		}
		rows[i] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(rows, "\n")
}
