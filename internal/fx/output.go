package fx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

// Output hands out a sink for the duration of one phase.
type Output interface {
	Open(ctx context.Context) (Sink, error)
}

// Sink receives the frames of one phase. Close must be called on every
// exit path.
type Sink interface {
	Print(frame string) error
	Close() error
}

// Play pushes every frame of e to a sink opened from out and returns the
// number of frames delivered. The sink is closed before Play returns.
func Play(ctx context.Context, e Effect, out Output) (frames int, err error) {
	sink, err := out.Open(ctx)
	if err != nil {
		return 0, fmt.Errorf("open sink: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close sink: %w", cerr)
		}
	}()

	for frame := range e.Frames() {
		if ctx.Err() != nil {
			return frames, ErrInterrupted
		}
		if err := sink.Print(frame); err != nil {
			return frames, err
		}
		frames++
	}
	return frames, nil
}

// TerminalOutput plays each phase in its own Bubble Tea program.
type TerminalOutput struct {
	In     io.Reader
	Out    io.Writer
	Config TerminalConfig

	// lastHeight is the line count of the frame the previous phase left behind.
	lastHeight int
}

func NewTerminalOutput(in io.Reader, out io.Writer, cfg TerminalConfig) *TerminalOutput {
	return &TerminalOutput{In: in, Out: out, Config: cfg}
}

func (o *TerminalOutput) Open(ctx context.Context) (Sink, error) {
	if o.Config.ReuseCanvas && o.lastHeight > 0 {
		// The cursor sits on the blank line under the old frame.
		termenv.NewOutput(o.Out).ClearLines(o.lastHeight)
		o.lastHeight = 0
	}

	rate := max(1, o.Config.FrameRate)
	interrupted := &atomic.Bool{}
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(o.Out),
		tea.WithoutSignalHandler(),
		tea.WithFPS(rate),
	}
	if o.In != nil {
		opts = append(opts, tea.WithInput(o.In))
	}
	s := &terminalSink{
		ctx:         ctx,
		out:         o,
		prog:        tea.NewProgram(frameModel{interrupted: interrupted}, opts...),
		interrupted: interrupted,
		ticker:      time.NewTicker(time.Second / time.Duration(rate)),
		done:        make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		_, s.runErr = s.prog.Run()
	}()
	return s, nil
}

type terminalSink struct {
	ctx         context.Context
	out         *TerminalOutput
	prog        *tea.Program
	interrupted *atomic.Bool
	ticker      *time.Ticker
	done        chan struct{}
	runErr      error
	height      int
	closeOnce   sync.Once
}

func (s *terminalSink) Print(frame string) error {
	select {
	case <-s.ctx.Done():
		return ErrInterrupted
	case <-s.done:
		return s.exitErr()
	case <-s.ticker.C:
	}
	s.prog.Send(frameMsg(frame))
	s.height = strings.Count(frame, "\n") + 1
	return nil
}

func (s *terminalSink) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.prog.Quit()
		<-s.done
		s.ticker.Stop()
		s.out.lastHeight = s.height
		switch {
		case s.stopped():
			// Ctrl+C can land after the last Print; it still ends the session.
			err = ErrInterrupted
		case s.runErr != nil:
			err = fmt.Errorf("terminal: %w", s.runErr)
		}
	})
	return err
}

// stopped reports whether the program ended by ctrl+c or cancellation.
// Only valid once done is closed.
func (s *terminalSink) stopped() bool {
	return s.interrupted.Load() || s.ctx.Err() != nil || errors.Is(s.runErr, tea.ErrProgramKilled)
}

// exitErr explains why the program stopped before the phase finished.
// Only valid once done is closed.
func (s *terminalSink) exitErr() error {
	switch {
	case s.stopped():
		return ErrInterrupted
	case s.runErr != nil:
		return fmt.Errorf("terminal: %w", s.runErr)
	default:
		return ErrSinkClosed
	}
}

type frameMsg string

// frameModel shows the most recent frame and turns ctrl+c into an interruption.
type frameModel struct {
	frame       string
	interrupted *atomic.Bool
}

func (m frameModel) Init() tea.Cmd { return nil }

func (m frameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.interrupted.Store(true)
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m frameModel) View() string {
	if m.frame == "" {
		return ""
	}
	// The renderer clears the line under the cursor on exit; keep the
	// frame above it.
	return m.frame + "\n"
}
