// Package banner composes the three-line confetti blocks the animations
// play over: a random border, a centred message, and the border again.
package banner

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/san-kum/bofa/internal/probe"
)

const (
	Payload   = "Bofa deez nuts"
	Celebrate = "BOFA DEEZ NUTS!!!"
	Prefix    = "Bofa"
)

const (
	BasicConfetti    = "*+x~^@"
	ExtendedConfetti = "✦✧❖✺✹✷✸✶✱✲✳✴✵✼✽❇❈❉" + BasicConfetti
)

var (
	basicRunes    = []rune(BasicConfetti)
	extendedRunes = []rune(ExtendedConfetti)
)

type Kind int

const (
	Intro Kind = iota
	Interlude
	Punchline
)

func (k Kind) String() string {
	switch k {
	case Intro:
		return "intro"
	case Interlude:
		return "interlude"
	case Punchline:
		return "punchline"
	default:
		return "unknown"
	}
}

// Message returns the undecorated text and the ornament used around it.
func (k Kind) Message() (text string, ornament rune) {
	switch k {
	case Interlude:
		return "..." + Prefix + " " + Prefix + " " + Prefix + "...", '✧'
	case Punchline:
		return Celebrate, '❇'
	default:
		return "HAVE YOU HEARD OF " + Prefix + "?", '✦'
	}
}

// Banner is a bordered, centred block. It is a value; nothing mutates it.
type Banner struct {
	Border  string
	Message string
}

func (b Banner) String() string {
	return b.Border + "\n" + b.Message + "\n" + b.Border
}

// Palette returns the confetti glyphs for a charset.
func Palette(cs probe.Charset) []rune {
	if cs == probe.Extended {
		return extendedRunes
	}
	return basicRunes
}

// Compose builds the banner of the given kind. Only the border consumes
// randomness.
func Compose(kind Kind, width int, cs probe.Charset, rng *rand.Rand) Banner {
	return Banner{
		Border:  Border(width, cs, rng),
		Message: Center(Decorate(kind, width, cs), width),
	}
}

// Border draws width glyphs independently from the charset's palette.
func Border(width int, cs probe.Charset, rng *rand.Rand) string {
	palette := Palette(cs)
	var b strings.Builder
	for range width {
		b.WriteRune(palette[rng.IntN(len(palette))])
	}
	return b.String()
}

// Decorate flanks the message with its ornament when the extended palette
// is active and the decorated text still fits.
func Decorate(kind Kind, width int, cs probe.Charset) string {
	text, ornament := kind.Message()
	if cs == probe.Extended && utf8.RuneCountInString(text)+4 <= width {
		return string(ornament) + " " + text + " " + string(ornament)
	}
	return text
}

// Center pads s to width runes, putting the odd space on the right.
// Strings at least width long are returned unchanged.
func Center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
