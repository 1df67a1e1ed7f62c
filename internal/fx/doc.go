// Package fx is the terminal text-effect engine the session plays through.
//
// The contract is narrow:
//
//   - [New] builds an [Effect] from text, a phase [Config] and the shared
//     [TerminalConfig], drawing any randomness from an injected *rand.Rand.
//   - [Effect.Frames] yields a finite, single-use sequence of frames; the
//     last frame always shows the text in its final gradient.
//   - [Play] opens an [Output], pushes every frame to the [Sink] and closes
//     it on every exit path.
//
// Six effects are provided: [ColorShiftConfig], [SpotlightsConfig],
// [SprayConfig], [VHSTapeConfig], [FireworksConfig] and [HighlightConfig].
//
// # Interruption
//
// [TerminalOutput] runs one Bubble Tea program per phase. Ctrl+C inside the
// program, or cancellation of the context passed to [Play], surfaces as
// [ErrInterrupted].
package fx
