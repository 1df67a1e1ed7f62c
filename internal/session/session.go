// Package session sequences the phases of one bofa run: an intro picked by
// weight, an optional interlude, and a three-part finale over the punchline.
//
// All randomness comes from one seeded source owned by the Session. Each
// phase gets its own child source forked from it, so a fixed seed replays
// the whole run.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/san-kum/bofa/internal/banner"
	"github.com/san-kum/bofa/internal/fx"
	"github.com/san-kum/bofa/internal/logging"
	"github.com/san-kum/bofa/internal/probe"
)

// Builder constructs an effect for one phase.
type Builder func(text string, cfg fx.Config, term fx.TerminalConfig, rng *rand.Rand) (fx.Effect, error)

type Options struct {
	// Seed fixes the random source; 0 draws a fresh one.
	Seed            uint64
	IntroWeights    []float64
	InterludeChance float64
	Charset         probe.Charset
	Width           int
	Terminal        fx.TerminalConfig
	Output          fx.Output
	// Fallback receives the plain payload when playback is interrupted.
	Fallback io.Writer
	Logger   *log.Logger
	// Build defaults to fx.New.
	Build Builder
}

type Session struct {
	rng             *rand.Rand
	seed            uint64
	intro           *Dispatcher[fx.Kind]
	interludeChance float64
	charset         probe.Charset
	width           int
	term            fx.TerminalConfig
	out             fx.Output
	fallback        io.Writer
	log             *log.Logger
	build           Builder
}

func New(opts Options) (*Session, error) {
	if opts.Output == nil {
		return nil, errors.New("session: no output")
	}
	if len(opts.IntroWeights) != 3 {
		return nil, fmt.Errorf("session: need 3 intro weights, got %d", len(opts.IntroWeights))
	}
	intro, err := NewDispatcher(
		Choice[fx.Kind]{Weight: opts.IntroWeights[0], Value: fx.KindColorShift},
		Choice[fx.Kind]{Weight: opts.IntroWeights[1], Value: fx.KindSpotlights},
		Choice[fx.Kind]{Weight: opts.IntroWeights[2], Value: fx.KindSpray},
	)
	if err != nil {
		return nil, fmt.Errorf("intro weights: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	s := &Session{
		rng:             rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed:            seed,
		intro:           intro,
		interludeChance: opts.InterludeChance,
		charset:         opts.Charset,
		width:           opts.Width,
		term:            opts.Terminal,
		out:             opts.Output,
		fallback:        opts.Fallback,
		log:             opts.Logger,
		build:           opts.Build,
	}
	if s.fallback == nil {
		s.fallback = io.Discard
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.build == nil {
		s.build = fx.New
	}
	return s, nil
}

func (s *Session) Seed() uint64 { return s.seed }

// Run plays every phase in order. An interruption prints the plain payload
// to the fallback writer and is not an error.
func (s *Session) Run(ctx context.Context) error {
	s.log.Debug("session start", "seed", s.seed, "charset", s.charset, "width", s.width)

	err := s.playIntro(ctx)
	if err == nil && s.rng.Float64() < s.interludeChance {
		err = s.playInterlude(ctx)
	}
	if err == nil {
		err = s.playFinale(ctx)
	}

	if errors.Is(err, fx.ErrInterrupted) {
		s.log.Info("interrupted", "err", err)
		_, werr := fmt.Fprintln(s.fallback, banner.Payload)
		return werr
	}
	return err
}

func (s *Session) playIntro(ctx context.Context) error {
	text := compose(banner.Intro, s.width, s.charset, s.rng)

	var cfg fx.Config
	switch s.intro.Pick(s.rng.Float64()) {
	case fx.KindColorShift:
		cfg = colorShiftIntro()
	case fx.KindSpotlights:
		cfg = spotlightsIntro()
	default:
		cfg = sprayIntro(s.rng)
	}
	return s.play(ctx, newPlan(StageIntro, cfg, text))
}

func (s *Session) playInterlude(ctx context.Context) error {
	text := compose(banner.Interlude, s.width, s.charset, s.rng)
	return s.play(ctx, newPlan(StageInterlude, vhsInterlude(), text))
}

// playFinale bursts, sweeps and shimmers over a single punchline banner.
func (s *Session) playFinale(ctx context.Context) error {
	symbols := FireworkSymbols(s.charset)
	symbol := symbols[s.rng.IntN(len(symbols))]
	text := compose(banner.Punchline, s.width, s.charset, s.rng)

	if err := s.play(ctx, newPlan(StageFinale, fireworksFinale(symbol), text)); err != nil {
		return err
	}
	if err := s.play(ctx, newPlan(StageFinale, spotlightsFinale(), text)); err != nil {
		return err
	}
	return s.play(ctx, newPlan(StageFinale, highlightFinale(s.rng), text))
}

func (s *Session) play(ctx context.Context, p Plan) error {
	child := rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))
	effect, err := s.build(p.Text, p.Config, s.term, child)
	if err != nil {
		return &PhaseError{Stage: p.Stage, Kind: p.Kind, Wrapped: err}
	}

	frames, err := fx.Play(ctx, effect, s.out)
	s.log.Debug("phase", "stage", p.Stage, "kind", p.Kind, "width", s.width, "frames", frames)
	if err != nil {
		return &PhaseError{Stage: p.Stage, Kind: p.Kind, Frames: frames, Wrapped: err}
	}
	return nil
}
