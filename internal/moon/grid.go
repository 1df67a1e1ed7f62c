package moon

import "strings"

// Grid is a row-major rune buffer; blank cells hold a space.
type Grid struct {
	Width, Height int
	Cells         [][]rune
}

func NewGrid(w, h int) *Grid {
	w, h = max(0, w), max(0, h)
	g := &Grid{
		Width:  w,
		Height: h,
		Cells:  make([][]rune, h),
	}
	for i := range g.Cells {
		g.Cells[i] = make([]rune, w)
		for j := range g.Cells[i] {
			g.Cells[i][j] = ' '
		}
	}
	return g
}

// Set writes r at (x, y). Cells outside the grid are skipped.
func (g *Grid) Set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Cells[y][x] = r
}

func (g *Grid) At(x, y int) rune {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.Cells[y][x]
}

func (g *Grid) Blank(x, y int) bool {
	return g.At(x, y) == ' '
}

// String joins the rows with newlines, each right-trimmed.
func (g *Grid) String() string {
	rows := make([]string, g.Height)
	for i, row := range g.Cells {
		rows[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(rows, "\n")
}
