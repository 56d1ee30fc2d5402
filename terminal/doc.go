// Package terminal adapts byte streams to and from a color terminal.
//
// Features:
//   - Escape-sequence stripping as a push-style io.Writer (Stripper)
//   - Pull-style byte source over the stripper backed by one FIFO queue (StripReader)
//   - True color (24-bit) and 256-color foreground output with per-line color reselection (Writer)
//   - Color capability detection from environment and tty state
//   - Raw stdin reads retried on EINTR/EAGAIN (unix)
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
package terminal
