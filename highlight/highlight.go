// Package highlight drives the compressibility coloring pipeline.
//
// Bytes are pulled one at a time from a filtered source, partitioned into runs
// by a window.Searcher, scored, mapped through a gradient and written to a
// color sink. Every exit path resets the sink's color.
package highlight

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/lixenwraith/comphl/gradient"
	"github.com/lixenwraith/comphl/score"
	"github.com/lixenwraith/comphl/status"
	"github.com/lixenwraith/comphl/terminal"
	"github.com/lixenwraith/comphl/window"
)

// ByteSource is a pull-style byte stream that can report readiness
type ByteSource interface {
	ReadByte() (byte, error)
	// Buffered returns how many bytes ReadByte can return without blocking
	Buffered() int
}

// Sink is a color-capable output
type Sink interface {
	SetForeground(c terminal.RGB) error
	Reset() error
	Write(p []byte) (int, error)
	Flush() error
}

// Options configures a Highlighter
type Options struct {
	WindowSize int
	Scorer     score.Scorer      // nil selects the decay formula
	Gradient   gradient.Gradient // nil selects Cool
	Stats      *status.RunStats  // optional
}

// Highlighter colors a stream by run compressibility
type Highlighter struct {
	windowSize int
	scorer     score.Scorer
	gradient   gradient.Gradient
	stats      *status.RunStats
}

// New validates opts before any stream processing
func New(opts Options) (*Highlighter, error) {
	if opts.WindowSize <= 0 {
		return nil, fmt.Errorf("highlight: %w (got %d)", window.ErrInvalidWindow, opts.WindowSize)
	}
	h := &Highlighter{
		windowSize: opts.WindowSize,
		scorer:     opts.Scorer,
		gradient:   opts.Gradient,
		stats:      opts.Stats,
	}
	if h.scorer == nil {
		h.scorer = score.Decay{Window: opts.WindowSize, Shape: 1}
	}
	if h.gradient == nil {
		h.gradient = gradient.Cool
	}
	return h, nil
}

// Run processes src until EOF
// The sink color is reset and output flushed on every return path; an I/O
// error aborts the stream and is returned after the reset attempt
func (h *Highlighter) Run(src ByteSource, sink Sink) (err error) {
	searcher, err := window.New(h.windowSize)
	if err != nil {
		return err
	}

	defer func() {
		if rerr := sink.Reset(); rerr != nil && err == nil {
			err = fmt.Errorf("resetting color: %w", rerr)
		}
		if ferr := sink.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("flushing output: %w", ferr)
		}
	}()

	log.Printf("highlight: start window=%d", h.windowSize)

	for {
		// Nothing queued means the next read may block: show what we have
		if src.Buffered() == 0 {
			if err := sink.Flush(); err != nil {
				return fmt.Errorf("flushing output: %w", err)
			}
		}

		b, err := src.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				rest := searcher.Flush()
				log.Printf("highlight: eof, %d residual bytes", len(rest))
				return h.render(sink, rest, 0, false)
			}
			return fmt.Errorf("reading input: %w", err)
		}

		if run, flushed := searcher.Search(b); flushed {
			if err := h.render(sink, run.Bytes, run.Age, run.Repeat); err != nil {
				return err
			}
		}
	}
}

// render writes one run, reselecting the color at the start of every line fragment
func (h *Highlighter) render(sink Sink, run []byte, age int, repeat bool) error {
	if len(run) == 0 {
		return nil
	}

	sc := h.scorer.Score(len(run), age, repeat)
	r, g, b := gradient.RGB255(h.gradient, sc)
	color := terminal.RGB{R: r, G: g, B: b}
	if h.stats != nil {
		h.stats.Observe(len(run), repeat, sc)
	}

	for p := run; len(p) > 0; {
		frag := p
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			frag = p[:i+1]
		}
		if err := sink.SetForeground(color); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if _, err := sink.Write(frag); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		p = p[len(frag):]
	}
	return nil
}
