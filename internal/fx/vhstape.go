package fx

import (
	"iter"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	maxGlitchShift = 3
	waveRowFrames  = 6
)

var noiseGlyphs = []rune("#%&@$*=+")

// VHSTape glitches whole lines and flashes noise, then a wave restores the text.
type VHSTape struct {
	*base
	cfg   VHSTapeConfig
	rows  [][]*character
	rng   *rand.Rand
	frame int
}

func newVHSTape(b *base, cfg VHSTapeConfig, rng *rand.Rand) *VHSTape {
	if cfg.TotalGlitchTime <= 0 {
		cfg.TotalGlitchTime = 1000
	}
	if len(cfg.GlitchLineColors) == 0 {
		cfg.GlitchLineColors = Rainbow
	}
	if len(cfg.GlitchWaveColors) == 0 {
		cfg.GlitchWaveColors = cfg.GlitchLineColors
	}
	b.applyFinal(cfg.FinalStops, cfg.FinalDirection)

	rows := make([][]*character, b.canvas.Height)
	for _, ch := range b.chars {
		rows[ch.fy] = append(rows[ch.fy], ch)
	}
	return &VHSTape{base: b, cfg: cfg, rows: rows, rng: rng}
}

func (e *VHSTape) Kind() Kind { return KindVHSTape }

func (e *VHSTape) Frames() iter.Seq[string] { return e.run(e.step) }

func (e *VHSTape) step(c *Canvas) bool {
	defer func() { e.frame++ }()
	wave := e.canvas.Height * waveRowFrames
	switch {
	case e.frame < e.cfg.TotalGlitchTime:
		if e.rng.Float64() < e.cfg.NoiseChance {
			e.noise(c)
			return true
		}
		for _, row := range e.rows {
			if e.rng.Float64() < e.cfg.GlitchLineChance {
				e.glitchRow(c, row, e.shift(), pick(e.rng, e.cfg.GlitchLineColors))
				continue
			}
			e.drawRow(c, row)
		}
		return true
	case e.frame < e.cfg.TotalGlitchTime+wave:
		band := (e.frame - e.cfg.TotalGlitchTime) / waveRowFrames
		colors := e.cfg.GlitchWaveColors
		for y, row := range e.rows {
			switch {
			case y == band:
				e.glitchRow(c, row, 0, colors[e.frame%len(colors)])
			case y > band:
				e.glitchRow(c, row, e.shift(), pick(e.rng, e.cfg.GlitchLineColors))
			default:
				e.drawRow(c, row)
			}
		}
		return true
	default:
		e.drawFinal(c)
		return false
	}
}

func (e *VHSTape) shift() int {
	s := e.rng.IntN(2*maxGlitchShift) - maxGlitchShift
	if s >= 0 {
		s++
	}
	return s
}

func (e *VHSTape) drawRow(c *Canvas, row []*character) {
	for _, ch := range row {
		c.Set(ch.fx, ch.fy, ch.r, ch.final)
	}
}

func (e *VHSTape) glitchRow(c *Canvas, row []*character, shift int, col colorful.Color) {
	for _, ch := range row {
		c.Set(ch.fx+shift, ch.fy, ch.r, col)
	}
}

func (e *VHSTape) noise(c *Canvas) {
	for y := range c.Height {
		for x := range c.Width {
			c.Set(x, y, noiseGlyphs[e.rng.IntN(len(noiseGlyphs))], pick(e.rng, e.cfg.GlitchLineColors))
		}
	}
}
