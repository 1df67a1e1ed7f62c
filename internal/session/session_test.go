package session_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bofa/internal/banner"
	"github.com/san-kum/bofa/internal/fx"
	"github.com/san-kum/bofa/internal/probe"
	"github.com/san-kum/bofa/internal/session"
)

// stubEffect plays its text as a fixed number of identical frames.
type stubEffect struct {
	kind   fx.Kind
	text   string
	frames int
}

func (e stubEffect) Kind() fx.Kind { return e.kind }

func (e stubEffect) Frames() iter.Seq[string] {
	return func(yield func(string) bool) {
		for range e.frames {
			if !yield(e.text) {
				return
			}
		}
	}
}

type recorder struct {
	plans []session.Plan
	err   error
}

func (r *recorder) build(text string, cfg fx.Config, _ fx.TerminalConfig, _ *rand.Rand) (fx.Effect, error) {
	r.plans = append(r.plans, session.Plan{Kind: cfg.Kind(), Config: cfg, Text: text})
	if r.err != nil {
		return nil, r.err
	}
	return stubEffect{kind: cfg.Kind(), text: text, frames: 3}, nil
}

func (r *recorder) kinds() []fx.Kind {
	out := make([]fx.Kind, len(r.plans))
	for i, p := range r.plans {
		out[i] = p.Kind
	}
	return out
}

// fakeOutput interrupts when the given phase opens.
type fakeOutput struct {
	opened      int
	closed      int
	frames      int
	interruptAt int
}

func (o *fakeOutput) Open(context.Context) (fx.Sink, error) {
	o.opened++
	return &fakeSink{out: o, phase: o.opened}, nil
}

type fakeSink struct {
	out   *fakeOutput
	phase int
}

func (s *fakeSink) Print(string) error {
	if s.phase == s.out.interruptAt {
		return fx.ErrInterrupted
	}
	s.out.frames++
	return nil
}

func (s *fakeSink) Close() error {
	s.out.closed++
	return nil
}

var finale = []fx.Kind{fx.KindFireworks, fx.KindSpotlights, fx.KindHighlight}

var _ = Describe("Session", func() {
	var (
		rec      *recorder
		out      *fakeOutput
		fallback *bytes.Buffer
		opts     session.Options
	)

	BeforeEach(func() {
		rec = &recorder{}
		out = &fakeOutput{}
		fallback = &bytes.Buffer{}
		opts = session.Options{
			Seed:            1,
			IntroWeights:    []float64{0.34, 0.33, 0.33},
			InterludeChance: 0.75,
			Charset:         probe.Extended,
			Width:           40,
			Terminal:        fx.DefaultTerminalConfig(),
			Output:          out,
			Fallback:        fallback,
			Build:           rec.build,
		}
	})

	run := func() error {
		s, err := session.New(opts)
		Expect(err).NotTo(HaveOccurred())
		return s.Run(context.Background())
	}

	It("plays intro, interlude and finale in order", func() {
		opts.InterludeChance = 1
		Expect(run()).To(Succeed())

		kinds := rec.kinds()
		Expect(kinds).To(HaveLen(5))
		Expect(kinds[0]).To(BeElementOf(fx.KindColorShift, fx.KindSpotlights, fx.KindSpray))
		Expect(kinds[1]).To(Equal(fx.KindVHSTape))
		Expect(kinds[2:]).To(Equal(finale))
		Expect(out.opened).To(Equal(5))
		Expect(out.closed).To(Equal(5))
		Expect(out.frames).To(Equal(15))
		Expect(fallback.String()).To(BeEmpty())
	})

	It("skips the interlude when the chance is zero", func() {
		opts.InterludeChance = 0
		Expect(run()).To(Succeed())
		Expect(rec.kinds()[1:]).To(Equal(finale))
	})

	It("builds three-line banners at the render width", func() {
		opts.InterludeChance = 1
		Expect(run()).To(Succeed())

		for _, p := range rec.plans {
			lines := strings.Split(p.Text, "\n")
			Expect(lines).To(HaveLen(3))
			Expect(lines[0]).To(Equal(lines[2]))
			Expect(utf8.RuneCountInString(lines[0])).To(Equal(40))
		}
		Expect(rec.plans[1].Text).To(ContainSubstring("✧ ...Bofa Bofa Bofa... ✧"))
		Expect(rec.plans[2].Text).To(ContainSubstring("❇ " + banner.Celebrate + " ❇"))
		Expect(rec.plans[3].Text).To(Equal(rec.plans[2].Text), "the finale shares one punchline")
		Expect(rec.plans[4].Text).To(Equal(rec.plans[2].Text))
	})

	It("uses the finale parameters", func() {
		Expect(run()).To(Succeed())
		n := len(rec.plans)

		fw := rec.plans[n-3].Config.(fx.FireworksConfig)
		Expect(fw.ExplodeAnywhere).To(BeTrue())
		Expect(fw.LaunchDelay).To(Equal(12))
		Expect(fw.Volume).To(Equal(0.12))
		Expect(session.FireworkSymbols(probe.Extended)).To(ContainElement(fw.Symbol))

		sp := rec.plans[n-2].Config.(fx.SpotlightsConfig)
		Expect(sp.SearchDuration).To(Equal(120))
		Expect(sp.SpeedRange).To(Equal([2]float64{0.7, 1.4}))
		Expect(sp.Count).To(Equal(5))
		Expect(sp.FinalDirection).To(Equal(fx.Radial))

		hl := rec.plans[n-1].Config.(fx.HighlightConfig)
		Expect(hl.Brightness).To(Equal(2.6))
		Expect(hl.Width).To(Equal(14))
		Expect(fx.Sweeps).To(ContainElement(hl.Direction))
	})

	It("draws basic firework symbols without the extended palette", func() {
		opts.Charset = probe.Basic
		for seed := uint64(1); seed <= 20; seed++ {
			rec.plans = nil
			opts.Seed = seed
			Expect(run()).To(Succeed())
			fw := rec.plans[len(rec.plans)-3].Config.(fx.FireworksConfig)
			Expect([]rune{'o', '*', '+', 'x'}).To(ContainElement(fw.Symbol))
			Expect(rec.plans[0].Text).NotTo(ContainSubstring("✦"))
		}
	})

	It("replays the same phases for the same seed", func() {
		opts.Seed = 99
		Expect(run()).To(Succeed())
		first := rec.plans

		rec.plans = nil
		Expect(run()).To(Succeed())
		Expect(rec.plans).To(Equal(first))
	})

	It("converges on the intro weights and interlude chance", func() {
		const runs = 4000
		counts := map[fx.Kind]int{}
		interludes := 0
		for seed := uint64(1); seed <= runs; seed++ {
			rec.plans = nil
			opts.Seed = seed
			Expect(run()).To(Succeed())
			counts[rec.plans[0].Kind]++
			if rec.plans[1].Kind == fx.KindVHSTape {
				interludes++
			}
		}
		Expect(float64(counts[fx.KindColorShift]) / runs).To(BeNumerically("~", 0.34, 0.03))
		Expect(float64(counts[fx.KindSpotlights]) / runs).To(BeNumerically("~", 0.33, 0.03))
		Expect(float64(counts[fx.KindSpray]) / runs).To(BeNumerically("~", 0.33, 0.03))
		Expect(float64(interludes) / runs).To(BeNumerically("~", 0.75, 0.03))
	})

	Context("when playback is interrupted", func() {
		It("stops and prints the plain payload", func() {
			opts.InterludeChance = 1
			out.interruptAt = 2
			Expect(run()).To(Succeed())

			Expect(rec.kinds()).To(HaveLen(2))
			Expect(out.closed).To(Equal(2))
			Expect(fallback.String()).To(Equal(banner.Payload + "\n"))
		})

		It("treats a cancelled context the same way", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			s, err := session.New(opts)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Run(ctx)).To(Succeed())
			Expect(rec.plans).To(HaveLen(1))
			Expect(fallback.String()).To(Equal(banner.Payload + "\n"))
		})
	})

	It("propagates other failures with the phase attached", func() {
		boom := errors.New("boom")
		rec.err = boom

		err := run()
		Expect(err).To(MatchError(boom))
		var pe *session.PhaseError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Stage).To(Equal(session.StageIntro))
		Expect(fallback.String()).To(BeEmpty())
	})

	It("rejects bad options", func() {
		opts.IntroWeights = []float64{1, 1}
		_, err := session.New(opts)
		Expect(err).To(HaveOccurred())

		opts.IntroWeights = []float64{1, -1, 1}
		_, err = session.New(opts)
		Expect(err).To(MatchError(session.ErrBadWeight))

		opts.IntroWeights = []float64{1, 1, 1}
		opts.Output = nil
		_, err = session.New(opts)
		Expect(err).To(HaveOccurred())
	})
})
