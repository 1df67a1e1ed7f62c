// Package probe inspects the output terminal once per session.
//
// Nothing here fails: an unknown encoding, a missing TTY or an unreadable
// window size all resolve to a fallback value.
package probe

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/encoding/htmlindex"
)

const (
	MinWidth = 34
	MaxWidth = 120

	FallbackColumns = 80
	FallbackRows    = 24
)

// extendedProbe must encode cleanly for the extended palette to be used.
const extendedProbe = "✦❖✺"

// Charset selects the glyph palette for a whole session.
type Charset int

const (
	Basic Charset = iota
	Extended
)

func (c Charset) String() string {
	if c == Extended {
		return "extended"
	}
	return "basic"
}

// Environment is the resolved view of the output terminal.
type Environment struct {
	Encoding string
	TTY      bool
	Dumb     bool
	Columns  int
	Rows     int
	Profile  termenv.Profile
}

// Detect reads stdout and the process environment.
func Detect() Environment {
	fd := os.Stdout.Fd()
	cols, rows := TerminalSize(int(fd), os.Getenv)
	return Environment{
		Encoding: EncodingFromLocale(os.Getenv),
		TTY:      isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		Dumb:     strings.EqualFold(os.Getenv("TERM"), "dumb"),
		Columns:  cols,
		Rows:     rows,
		Profile:  termenv.NewOutput(os.Stdout).EnvColorProfile(),
	}
}

// Plain reports whether only the bare payload should be printed.
func (e Environment) Plain() bool {
	return !e.TTY || e.Dumb
}

func (e Environment) Charset() Charset {
	return CharsetFor(e.Encoding)
}

func (e Environment) Width() int {
	return RenderWidth(e.Columns)
}

// CharsetFor reports Extended only when encoding is declared and can
// represent the probe glyphs.
func CharsetFor(encoding string) Charset {
	if encoding == "" {
		return Basic
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return Basic
	}
	if _, err := enc.NewEncoder().String(extendedProbe); err != nil {
		return Basic
	}
	return Extended
}

// RenderWidth derives the banner width from the terminal column count.
func RenderWidth(columns int) int {
	target := columns - 2
	if target <= 0 {
		target = columns
	}
	return max(MinWidth, min(target, MaxWidth))
}

// EncodingFromLocale returns the charset named by LC_ALL, LC_CTYPE or LANG,
// in that order. An empty result means no encoding is declared.
func EncodingFromLocale(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			continue
		}
		if v == "C" || v == "POSIX" {
			return "US-ASCII"
		}
		if i := strings.IndexByte(v, '@'); i >= 0 {
			v = v[:i]
		}
		if i := strings.IndexByte(v, '.'); i >= 0 {
			return v[i+1:]
		}
		return ""
	}
	return ""
}

// TerminalSize returns the window size of fd. COLUMNS and LINES take
// precedence; any dimension still unknown falls back to 80x24.
func TerminalSize(fd int, getenv func(string) string) (cols, rows int) {
	cols = positiveEnv(getenv, "COLUMNS")
	rows = positiveEnv(getenv, "LINES")
	if cols == 0 || rows == 0 {
		if w, h, err := term.GetSize(fd); err == nil {
			if cols == 0 && w > 0 {
				cols = w
			}
			if rows == 0 && h > 0 {
				rows = h
			}
		}
	}
	if cols <= 0 {
		cols = FallbackColumns
	}
	if rows <= 0 {
		rows = FallbackRows
	}
	return cols, rows
}

func positiveEnv(getenv func(string) string, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(getenv(key)))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
