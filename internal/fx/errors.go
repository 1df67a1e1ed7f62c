package fx

import "errors"

var (
	// ErrInterrupted indicates playback was stopped by the user.
	ErrInterrupted = errors.New("fx: playback interrupted")

	// ErrUnknownKind indicates a config type New does not know how to build.
	ErrUnknownKind = errors.New("fx: unknown effect kind")

	// ErrSinkClosed indicates a frame was pushed after the sink went away.
	ErrSinkClosed = errors.New("fx: sink closed")
)
