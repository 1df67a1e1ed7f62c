package fx

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

type Kind string

const (
	KindColorShift Kind = "colorshift"
	KindSpotlights Kind = "spotlights"
	KindSpray      Kind = "spray"
	KindVHSTape    Kind = "vhstape"
	KindFireworks  Kind = "fireworks"
	KindHighlight  Kind = "highlight"
)

// Config is the phase-specific parameter set of one effect.
type Config interface {
	Kind() Kind
}

// Direction orients a gradient over the canvas.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
	Radial
	Diagonal
)

func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case Radial:
		return "radial"
	case Diagonal:
		return "diagonal"
	default:
		return "horizontal"
	}
}

// Sweep is the direction a highlight travels.
type Sweep int

const (
	BottomLeftToTopRight Sweep = iota
	BottomRightToTopLeft
	TopLeftToBottomRight
	TopRightToBottomLeft
)

var Sweeps = []Sweep{
	BottomLeftToTopRight,
	BottomRightToTopLeft,
	TopLeftToBottomRight,
	TopRightToBottomLeft,
}

// Position is a compass point on the canvas.
type Position string

const (
	North     Position = "n"
	NorthEast Position = "ne"
	East      Position = "e"
	SouthEast Position = "se"
	South     Position = "s"
	SouthWest Position = "sw"
	West      Position = "w"
	NorthWest Position = "nw"
	Center    Position = "center"
)

var Positions = []Position{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest, Center}

// Rainbow is the seven-stop palette every phase shares.
var Rainbow = []colorful.Color{
	mustHex("#e81416"),
	mustHex("#ffa500"),
	mustHex("#faeb36"),
	mustHex("#79c314"),
	mustHex("#487de7"),
	mustHex("#4b369d"),
	mustHex("#70369d"),
}

var White = mustHex("#ffffff")

// TerminalConfig is shared by every phase of a session.
type TerminalConfig struct {
	FrameRate int
	// Columns is the terminal width used to centre the canvas; 0 disables anchoring.
	Columns      int
	AnchorCenter bool
	ReuseCanvas  bool
	Profile      termenv.Profile
}

func DefaultTerminalConfig() TerminalConfig {
	return TerminalConfig{
		FrameRate:    90,
		AnchorCenter: true,
		ReuseCanvas:  true,
		Profile:      termenv.TrueColor,
	}
}

type ColorShiftConfig struct {
	Cycles         int
	GradientFrames int
	Stops          []colorful.Color
	Travel         Direction
	FinalStops     []colorful.Color
	FinalDirection Direction
}

func (ColorShiftConfig) Kind() Kind { return KindColorShift }

type SpotlightsConfig struct {
	SearchDuration int
	// SpeedRange bounds beam speed in cells per frame.
	SpeedRange     [2]float64
	Count          int
	BeamWidthRatio float64
	BeamFalloff    float64
	FinalStops     []colorful.Color
	FinalDirection Direction
}

func (SpotlightsConfig) Kind() Kind { return KindSpotlights }

type SprayConfig struct {
	Position Position
	// Volume is the fraction of characters launched per frame.
	Volume         float64
	SpeedRange     [2]float64
	FinalStops     []colorful.Color
	FinalDirection Direction
}

func (SprayConfig) Kind() Kind { return KindSpray }

type VHSTapeConfig struct {
	TotalGlitchTime  int
	GlitchLineChance float64
	NoiseChance      float64
	GlitchLineColors []colorful.Color
	GlitchWaveColors []colorful.Color
	FinalStops       []colorful.Color
	FinalDirection   Direction
}

func (VHSTapeConfig) Kind() Kind { return KindVHSTape }

type FireworksConfig struct {
	ExplodeAnywhere bool
	LaunchDelay     int
	// Volume is the fraction of characters in each shell.
	Volume         float64
	Colors         []colorful.Color
	Symbol         rune
	FinalStops     []colorful.Color
	FinalDirection Direction
}

func (FireworksConfig) Kind() Kind { return KindFireworks }

type HighlightConfig struct {
	Brightness     float64
	Width          int
	Direction      Sweep
	FinalStops     []colorful.Color
	FinalDirection Direction
}

func (HighlightConfig) Kind() Kind { return KindHighlight }

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
