package fx

import (
	"iter"
	"math"
	"math/rand/v2"
)

const (
	ambientLight   = 0.2
	convergeFrames = 40
)

type beam struct {
	x, y   float64
	vx, vy float64
}

// Spotlights sweeps beams over a dimmed text, then converges and lights it fully.
type Spotlights struct {
	*base
	cfg    SpotlightsConfig
	beams  []beam
	radius float64
	frame  int
}

func newSpotlights(b *base, cfg SpotlightsConfig, rng *rand.Rand) *Spotlights {
	if cfg.SearchDuration <= 0 {
		cfg.SearchDuration = 750
	}
	if cfg.SpeedRange == [2]float64{} {
		cfg.SpeedRange = [2]float64{0.25, 0.5}
	}
	if cfg.Count <= 0 {
		cfg.Count = 3
	}
	if cfg.BeamWidthRatio <= 0 {
		cfg.BeamWidthRatio = 2.0
	}
	if cfg.BeamFalloff <= 0 || cfg.BeamFalloff > 1 {
		cfg.BeamFalloff = 0.3
	}
	b.applyFinal(cfg.FinalStops, cfg.FinalDirection)

	w, h := float64(b.canvas.Width), float64(b.canvas.Height)
	beams := make([]beam, cfg.Count)
	for i := range beams {
		angle := rng.Float64() * 2 * math.Pi
		speed := between(rng, cfg.SpeedRange)
		beams[i] = beam{
			x:  rng.Float64() * w,
			y:  rng.Float64() * h,
			vx: math.Cos(angle) * speed * 2,
			vy: math.Sin(angle) * speed,
		}
	}
	return &Spotlights{
		base:   b,
		cfg:    cfg,
		beams:  beams,
		radius: cfg.BeamWidthRatio * math.Max(2, h),
	}
}

func (e *Spotlights) Kind() Kind { return KindSpotlights }

func (e *Spotlights) Frames() iter.Seq[string] { return e.run(e.step) }

func (e *Spotlights) step(c *Canvas) bool {
	defer func() { e.frame++ }()
	radius := e.radius
	switch {
	case e.frame < e.cfg.SearchDuration:
		e.move()
	case e.frame < e.cfg.SearchDuration+convergeFrames:
		t := float64(e.frame-e.cfg.SearchDuration+1) / convergeFrames
		e.converge(t)
		full := math.Hypot(float64(c.Width)/4, float64(c.Height)) + e.radius
		radius = e.radius + (full-e.radius)*t
	default:
		e.drawFinal(c)
		return false
	}
	for _, ch := range e.chars {
		c.Set(ch.fx, ch.fy, ch.r, scale(ch.final, e.light(ch, radius)))
	}
	return true
}

func (e *Spotlights) move() {
	w, h := float64(e.canvas.Width), float64(e.canvas.Height)
	for i := range e.beams {
		b := &e.beams[i]
		b.x += b.vx
		b.y += b.vy
		if b.x < 0 || b.x > w {
			b.vx = -b.vx
			b.x = math.Max(0, math.Min(w, b.x))
		}
		if b.y < 0 || b.y > h {
			b.vy = -b.vy
			b.y = math.Max(0, math.Min(h, b.y))
		}
	}
}

// converge pulls every beam towards the canvas centre.
func (e *Spotlights) converge(t float64) {
	cx, cy := float64(e.canvas.Width-1)/2, float64(e.canvas.Height-1)/2
	for i := range e.beams {
		b := &e.beams[i]
		b.x += (cx - b.x) * t
		b.y += (cy - b.y) * t
	}
}

// light returns the brightness of ch under the brightest beam.
func (e *Spotlights) light(ch *character, radius float64) float64 {
	level := ambientLight
	core := radius * (1 - e.cfg.BeamFalloff)
	for _, b := range e.beams {
		d := math.Hypot((float64(ch.fx)-b.x)/2, float64(ch.fy)-b.y)
		switch {
		case d <= core:
			return 1
		case d < radius:
			level = math.Max(level, ambientLight+(1-ambientLight)*(radius-d)/(radius-core))
		}
	}
	return level
}
