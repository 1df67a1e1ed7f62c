package fx

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Painter turns a canvas into a styled frame for the configured colour profile.
type Painter struct {
	renderer *lipgloss.Renderer
	term     TerminalConfig
	styles   map[string]lipgloss.Style
}

func NewPainter(term TerminalConfig) *Painter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(term.Profile)
	return &Painter{
		renderer: r,
		term:     term,
		styles:   make(map[string]lipgloss.Style),
	}
}

// Paint renders every row of c, left-padded when the canvas is anchored
// to the centre of the terminal.
func (p *Painter) Paint(c *Canvas) string {
	pad := ""
	if p.term.AnchorCenter && p.term.Columns > c.Width {
		pad = strings.Repeat(" ", (p.term.Columns-c.Width)/2)
	}
	rows := make([]string, len(c.Grid))
	for y, row := range c.Grid {
		var b strings.Builder
		b.WriteString(pad)
		for _, cell := range row {
			if !cell.Styled {
				b.WriteRune(cell.Rune)
				continue
			}
			b.WriteString(p.style(cell.Color).Render(string(cell.Rune)))
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

func (p *Painter) style(c colorful.Color) lipgloss.Style {
	hex := c.Clamped().Hex()
	if s, ok := p.styles[hex]; ok {
		return s
	}
	s := p.renderer.NewStyle().Foreground(lipgloss.Color(hex))
	p.styles[hex] = s
	return s
}
