package fx

import (
	"iter"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	riseFrames   = 8
	flightFrames = 20
	settleFrames = 10
)

type shell struct {
	chars  []*character
	launch int
	bx, by float64
	sx     float64
	color  colorful.Color
}

// Fireworks launches shells that burst into the characters of the text.
type Fireworks struct {
	*base
	cfg    FireworksConfig
	shells []shell
	end    int
	frame  int
}

func newFireworks(b *base, cfg FireworksConfig, rng *rand.Rand) *Fireworks {
	if cfg.LaunchDelay <= 0 {
		cfg.LaunchDelay = 60
	}
	if cfg.Volume <= 0 {
		cfg.Volume = 0.02
	}
	if cfg.Symbol == 0 {
		cfg.Symbol = 'o'
	}
	if len(cfg.Colors) == 0 {
		cfg.Colors = Rainbow
	}
	b.applyFinal(cfg.FinalStops, cfg.FinalDirection)

	order := make([]*character, len(b.chars))
	copy(order, b.chars)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	w, h := float64(b.canvas.Width), float64(b.canvas.Height)
	size := max(1, int(math.Ceil(cfg.Volume*float64(len(order)))))
	var shells []shell
	for i := 0; i < len(order); i += size {
		s := shell{
			chars:  order[i:min(i+size, len(order))],
			launch: len(shells) * cfg.LaunchDelay,
			sx:     rng.Float64() * w,
			color:  pick(rng, cfg.Colors),
		}
		if cfg.ExplodeAnywhere {
			s.bx, s.by = rng.Float64()*w, rng.Float64()*h
		} else {
			s.bx, s.by = s.sx, rng.Float64()*h/3
		}
		shells = append(shells, s)
	}
	end := 0
	if n := len(shells); n > 0 {
		end = shells[n-1].launch + riseFrames + flightFrames + settleFrames
	}
	return &Fireworks{base: b, cfg: cfg, shells: shells, end: end}
}

func (e *Fireworks) Kind() Kind { return KindFireworks }

func (e *Fireworks) Frames() iter.Seq[string] { return e.run(e.step) }

func (e *Fireworks) step(c *Canvas) bool {
	defer func() { e.frame++ }()
	if e.frame >= e.end {
		e.drawFinal(c)
		return false
	}
	// Settled characters first so anything in flight draws over them.
	for _, s := range e.shells {
		t := e.frame - s.launch - riseFrames - flightFrames
		if t < 0 {
			continue
		}
		mix := math.Min(1, float64(t+1)/settleFrames)
		for _, ch := range s.chars {
			c.Set(ch.fx, ch.fy, ch.r, s.color.BlendLuv(ch.final, mix).Clamped())
		}
	}
	for _, s := range e.shells {
		t := e.frame - s.launch
		switch {
		case t < 0:
		case t < riseFrames:
			k := float64(t+1) / riseFrames
			bottom := float64(e.canvas.Height - 1)
			x := s.sx + (s.bx-s.sx)*k
			y := bottom + (s.by-bottom)*k
			c.Set(int(math.Round(x)), int(math.Round(y)), e.cfg.Symbol, s.color)
		case t < riseFrames+flightFrames:
			k := easeOut(float64(t-riseFrames+1) / flightFrames)
			for _, ch := range s.chars {
				x := s.bx + (float64(ch.fx)-s.bx)*k
				y := s.by + (float64(ch.fy)-s.by)*k
				c.Set(int(math.Round(x)), int(math.Round(y)), e.cfg.Symbol, s.color)
			}
		}
	}
	return true
}

func easeOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
