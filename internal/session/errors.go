package session

import (
	"errors"
	"fmt"

	"github.com/san-kum/bofa/internal/fx"
)

var (
	// ErrEmptyDispatcher indicates a dispatcher built without choices.
	ErrEmptyDispatcher = errors.New("session: dispatcher has no choices")

	// ErrBadWeight indicates a zero, negative or non-finite choice weight.
	ErrBadWeight = errors.New("session: choice weight must be positive")
)

// PhaseError wraps a playback failure with the phase it happened in.
type PhaseError struct {
	Stage   Stage
	Kind    fx.Kind
	Frames  int
	Wrapped error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s %s after %d frames: %v", e.Stage, e.Kind, e.Frames, e.Wrapped)
}

func (e *PhaseError) Unwrap() error {
	return e.Wrapped
}
