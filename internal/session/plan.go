package session

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/bofa/internal/banner"
	"github.com/san-kum/bofa/internal/fx"
	"github.com/san-kum/bofa/internal/probe"
)

type Stage string

const (
	StageIntro     Stage = "intro"
	StageInterlude Stage = "interlude"
	StageFinale    Stage = "finale"
)

// Plan is one phase, built right before it plays.
type Plan struct {
	Stage  Stage
	Kind   fx.Kind
	Config fx.Config
	Text   string
}

func newPlan(stage Stage, cfg fx.Config, text string) Plan {
	return Plan{Stage: stage, Kind: cfg.Kind(), Config: cfg, Text: text}
}

var (
	extendedSymbols = []rune{'✦', '✧', '❇', '❈', '✺', '*', '+', 'x'}
	basicSymbols    = []rune{'o', '*', '+', 'x'}
)

// FireworkSymbols returns the launch glyphs available for a charset.
func FireworkSymbols(cs probe.Charset) []rune {
	if cs == probe.Extended {
		return extendedSymbols
	}
	return basicSymbols
}

// glitchColors frames the rainbow with white on both ends.
func glitchColors() []colorful.Color {
	out := make([]colorful.Color, 0, len(fx.Rainbow)+2)
	out = append(out, fx.White)
	out = append(out, fx.Rainbow...)
	return append(out, fx.White)
}

func colorShiftIntro() fx.Config {
	return fx.ColorShiftConfig{
		Cycles:         2,
		GradientFrames: 1,
		Stops:          fx.Rainbow,
		Travel:         fx.Horizontal,
		FinalStops:     fx.Rainbow,
		FinalDirection: fx.Horizontal,
	}
}

func spotlightsIntro() fx.Config {
	return fx.SpotlightsConfig{
		SearchDuration: 160,
		Count:          4,
		FinalStops:     fx.Rainbow,
		FinalDirection: fx.Radial,
	}
}

func sprayIntro(rng *rand.Rand) fx.Config {
	return fx.SprayConfig{
		Position:       fx.Positions[rng.IntN(len(fx.Positions))],
		Volume:         0.08,
		SpeedRange:     [2]float64{0.8, 2.2},
		FinalStops:     fx.Rainbow,
		FinalDirection: fx.Horizontal,
	}
}

func vhsInterlude() fx.Config {
	colors := glitchColors()
	return fx.VHSTapeConfig{
		TotalGlitchTime:  140,
		GlitchLineChance: 0.22,
		NoiseChance:      0.03,
		GlitchLineColors: colors,
		GlitchWaveColors: colors,
		FinalStops:       fx.Rainbow,
		FinalDirection:   fx.Horizontal,
	}
}

func fireworksFinale(symbol rune) fx.Config {
	return fx.FireworksConfig{
		ExplodeAnywhere: true,
		LaunchDelay:     12,
		Volume:          0.12,
		Colors:          fx.Rainbow,
		Symbol:          symbol,
		FinalStops:      fx.Rainbow,
		FinalDirection:  fx.Horizontal,
	}
}

func spotlightsFinale() fx.Config {
	return fx.SpotlightsConfig{
		SearchDuration: 120,
		SpeedRange:     [2]float64{0.7, 1.4},
		Count:          5,
		BeamWidthRatio: 1.25,
		BeamFalloff:    0.25,
		FinalStops:     fx.Rainbow,
		FinalDirection: fx.Radial,
	}
}

func highlightFinale(rng *rand.Rand) fx.Config {
	return fx.HighlightConfig{
		Brightness:     2.6,
		Width:          14,
		Direction:      fx.Sweeps[rng.IntN(len(fx.Sweeps))],
		FinalStops:     fx.Rainbow,
		FinalDirection: fx.Horizontal,
	}
}

func compose(kind banner.Kind, width int, cs probe.Charset, rng *rand.Rand) string {
	return banner.Compose(kind, width, cs, rng).String()
}
