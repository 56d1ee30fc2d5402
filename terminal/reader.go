package terminal

import (
	"bytes"
	"io"
)

// readChunk is the size of each read from the underlying source
const readChunk = 256

// maxEmptyReads bounds consecutive (0, nil) reads from a misbehaving source
const maxEmptyReads = 100

// StripReader exposes a Stripper as a pull source
//
// The stripper writes into a FIFO queue and readers drain it. The source is
// read only when the queue is empty, so a blocking source blocks the caller
// only when no filtered bytes are available.
type StripReader struct {
	src   io.Reader
	queue bytes.Buffer
	strip *Stripper
	chunk []byte
	err   error // sticky source error, reported once the queue drains
}

// NewStripReader wraps src
func NewStripReader(src io.Reader) *StripReader {
	r := &StripReader{
		src:   src,
		chunk: make([]byte, readChunk),
	}
	r.strip = NewStripper(&r.queue)
	return r
}

// fill reads until the queue holds bytes or the source fails
func (r *StripReader) fill() {
	empty := 0
	for r.queue.Len() == 0 && r.err == nil {
		n, err := r.src.Read(r.chunk)
		if n > 0 {
			empty = 0
			// Writes into bytes.Buffer cannot fail
			r.strip.Write(r.chunk[:n])
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				err = io.ErrNoProgress
			}
		}
		if err != nil {
			r.err = err
		}
	}
}

// Read drains filtered bytes into p
func (r *StripReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.fill()
	if r.queue.Len() > 0 {
		return r.queue.Read(p)
	}
	return 0, r.err
}

// ReadByte returns the next filtered byte
func (r *StripReader) ReadByte() (byte, error) {
	r.fill()
	if r.queue.Len() > 0 {
		return r.queue.ReadByte()
	}
	return 0, r.err
}

// Buffered returns the number of filtered bytes readable without touching the source
func (r *StripReader) Buffered() int {
	return r.queue.Len()
}
