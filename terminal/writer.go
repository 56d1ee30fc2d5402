package terminal

import (
	"bufio"
	"bytes"
	"io"
	"os"
)

// outputBufferSize matches a few screens of dense output
const outputBufferSize = 131072

// Writer is a buffered color sink
//
// Foreground changes are coalesced within a line. A newline invalidates the
// coalescing state, so the first SetForeground of every line reaches the terminal.
type Writer struct {
	w    *bufio.Writer
	mode ColorMode

	lastFg    RGB
	lastValid bool
}

// NewWriter creates a sink over w emitting colors in the given mode
func NewWriter(w io.Writer, mode ColorMode) *Writer {
	return &Writer{
		w:    bufio.NewWriterSize(w, outputBufferSize),
		mode: mode,
	}
}

// Mode returns the color mode in effect
func (o *Writer) Mode() ColorMode {
	return o.mode
}

// SetForeground selects the color for subsequent bytes
func (o *Writer) SetForeground(c RGB) error {
	if o.mode == ColorModeNone {
		return nil
	}
	if o.lastValid && c == o.lastFg {
		return nil
	}

	w := o.w
	if o.mode == ColorModeTrueColor {
		w.Write(csiFgRGB)
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
	} else {
		w.Write(csiFg256)
		writeInt(w, int(RGBTo256(c)))
	}
	// bufio errors are sticky; the last write reports any earlier failure
	if err := w.WriteByte('m'); err != nil {
		return err
	}

	o.lastFg = c
	o.lastValid = true
	return nil
}

// Write emits raw bytes in the current color
func (o *Writer) Write(p []byte) (int, error) {
	n, err := o.w.Write(p)
	if bytes.IndexByte(p[:n], '\n') >= 0 {
		o.lastValid = false
	}
	return n, err
}

// Reset restores the terminal default attributes
func (o *Writer) Reset() error {
	o.lastValid = false
	if o.mode == ColorModeNone {
		return nil
	}
	_, err := o.w.Write(csiSGR0)
	return err
}

// Flush pushes buffered output to the underlying writer
func (o *Writer) Flush() error {
	return o.w.Flush()
}

// EmergencyReset writes an attribute reset directly to w, bypassing any buffer
// Best-effort for crash and signal paths; errors ignored
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
