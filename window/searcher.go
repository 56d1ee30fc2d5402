// Package window implements an incremental sliding-window repeat detector.
//
// A Searcher consumes a byte stream one byte at a time and partitions it into
// runs. A run is resolved when it can no longer be extended as a repeat of
// something in the bounded history; each resolved run carries the distance
// back to its most recent prior occurrence, if any.
package window

import (
	"errors"
)

// ErrInvalidWindow is returned for a non-positive window size
var ErrInvalidWindow = errors.New("window size must be positive")

// Run is a resolved byte sequence
// Age is meaningful only when Repeat is true
type Run struct {
	Bytes  []byte
	Age    int  // bytes between the end of the prior occurrence and the end of history
	Repeat bool // false when no prior occurrence exists in the window
}

// Searcher holds the history (haystack), the pending run (needle) and the
// candidate start positions of the needle in the history
type Searcher struct {
	windowSize int
	haystack   []byte
	needle     []byte
	matches    []int // ascending; last element is the most recent candidate
	flushed    bool
}

// New creates a Searcher retaining at most windowSize bytes of history
func New(windowSize int) (*Searcher, error) {
	if windowSize <= 0 {
		return nil, ErrInvalidWindow
	}
	return &Searcher{
		windowSize: windowSize,
		// Needle never exceeds the window, so history peaks at twice the window before trimming
		haystack: make([]byte, 0, 2*windowSize),
		needle:   make([]byte, 0, 16),
	}, nil
}

// Search advances the engine by one byte
// Returns the resolved run and true when the pending run could not be extended,
// or a zero Run and false while the repeat may still grow
func (s *Searcher) Search(b byte) (Run, bool) {
	if s.flushed {
		panic("window: Search after Flush")
	}

	n := len(s.needle)

	age, repeat := 0, false
	if len(s.matches) > 0 {
		age = len(s.haystack) - s.matches[len(s.matches)-1] - n
		repeat = true
	}

	// Keep candidates whose continuation equals b, in place
	kept := s.matches[:0]
	for _, p := range s.matches {
		if p+n < len(s.haystack) && s.haystack[p+n] == b {
			kept = append(kept, p)
		}
	}
	s.matches = kept

	var run Run
	resolved := len(s.matches) == 0
	if resolved {
		s.commit()
		run = Run{Bytes: s.needle, Age: age, Repeat: repeat}
		// Ownership of the old needle moves to the caller
		s.needle = make([]byte, 0, max(16, n))
		s.rescan(b)
	}

	s.needle = append(s.needle, b)
	return run, resolved
}

// Flush returns the unresolved pending bytes at end of stream
// The Searcher is unusable afterwards
func (s *Searcher) Flush() []byte {
	if s.flushed {
		panic("window: Flush called twice")
	}
	s.flushed = true
	rest := s.needle
	s.needle = nil
	s.haystack = nil
	s.matches = nil
	return rest
}

// WindowSize returns the configured history bound
func (s *Searcher) WindowSize() int {
	return s.windowSize
}

// HistoryLen returns the number of committed history bytes
func (s *Searcher) HistoryLen() int {
	return len(s.haystack)
}

// Pending returns the number of buffered, unresolved bytes
func (s *Searcher) Pending() int {
	return len(s.needle)
}

// commit appends the needle to the history and evicts from the front
func (s *Searcher) commit() {
	s.haystack = append(s.haystack, s.needle...)
	if excess := len(s.haystack) - s.windowSize; excess > 0 {
		copy(s.haystack, s.haystack[excess:])
		s.haystack = s.haystack[:s.windowSize]
	}
}

// rescan collects every history position holding b as candidate starts
func (s *Searcher) rescan(b byte) {
	s.matches = s.matches[:0]
	for i, c := range s.haystack {
		if c == b {
			s.matches = append(s.matches, i)
		}
	}
}
