package fx

import (
	"iter"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

const minSpeed = 0.05

type particle struct {
	ch     *character
	x, y   float64
	speed  float64
	color  colorful.Color
	landed bool
}

// Spray launches the characters from a compass point to their final places.
type Spray struct {
	*base
	cfg      SprayConfig
	pending  []*character
	flying   []*particle
	landed   []*particle
	perFrame int
	originX  float64
	originY  float64
	rng      *rand.Rand
}

func newSpray(b *base, cfg SprayConfig, rng *rand.Rand) *Spray {
	if cfg.Volume <= 0 {
		cfg.Volume = 0.005
	}
	if cfg.SpeedRange == [2]float64{} {
		cfg.SpeedRange = [2]float64{0.4, 1.0}
	}
	b.applyFinal(cfg.FinalStops, cfg.FinalDirection)

	pending := make([]*character, len(b.chars))
	copy(pending, b.chars)
	rng.Shuffle(len(pending), func(i, j int) { pending[i], pending[j] = pending[j], pending[i] })

	ox, oy := origin(cfg.Position, b.canvas.Width, b.canvas.Height)
	return &Spray{
		base:     b,
		cfg:      cfg,
		pending:  pending,
		perFrame: max(1, int(math.Ceil(cfg.Volume*float64(len(b.chars))))),
		originX:  ox,
		originY:  oy,
		rng:      rng,
	}
}

func (e *Spray) Kind() Kind { return KindSpray }

func (e *Spray) Frames() iter.Seq[string] { return e.run(e.step) }

func (e *Spray) step(c *Canvas) bool {
	if len(e.pending) == 0 && len(e.flying) == 0 {
		e.drawFinal(c)
		return false
	}
	n := min(e.perFrame, len(e.pending))
	for _, ch := range e.pending[:n] {
		e.flying = append(e.flying, &particle{
			ch:    ch,
			x:     e.originX,
			y:     e.originY,
			speed: math.Max(minSpeed, between(e.rng, e.cfg.SpeedRange)),
			color: pick(e.rng, Rainbow),
		})
	}
	e.pending = e.pending[n:]

	still := e.flying[:0]
	for _, p := range e.flying {
		p.advance()
		if p.landed {
			e.landed = append(e.landed, p)
		} else {
			still = append(still, p)
		}
	}
	e.flying = still

	for _, p := range e.landed {
		c.Set(p.ch.fx, p.ch.fy, p.ch.r, p.ch.final)
	}
	for _, p := range e.flying {
		c.Set(int(math.Round(p.x)), int(math.Round(p.y)), p.ch.r, p.color)
	}
	return true
}

// advance moves p one frame towards its final cell. Vertical distance
// counts double to match the cell aspect ratio.
func (p *particle) advance() {
	dx := float64(p.ch.fx) - p.x
	dy := float64(p.ch.fy) - p.y
	d := math.Hypot(dx, dy*2)
	if d <= p.speed {
		p.x, p.y = float64(p.ch.fx), float64(p.ch.fy)
		p.landed = true
		return
	}
	p.x += dx / d * p.speed
	p.y += dy / d * p.speed
}

func origin(pos Position, w, h int) (float64, float64) {
	right, bottom := float64(max(0, w-1)), float64(max(0, h-1))
	midX, midY := right/2, bottom/2
	switch pos {
	case North:
		return midX, 0
	case NorthEast:
		return right, 0
	case East:
		return right, midY
	case SouthEast:
		return right, bottom
	case South:
		return midX, bottom
	case SouthWest:
		return 0, bottom
	case West:
		return 0, midY
	case NorthWest:
		return 0, 0
	default:
		return midX, midY
	}
}
