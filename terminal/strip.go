package terminal

import (
	"io"
)

// stripState is the parser position inside an escape sequence
type stripState uint8

const (
	stateGround  stripState = iota
	stateEscape             // after ESC
	stateEscInt             // ESC followed by intermediates 0x20-0x2F
	stateCSI                // ESC [ params/intermediates, until final 0x40-0x7E
	stateString             // OSC/DCS/SOS/PM/APC body, until BEL or ST
	stateStrEsc             // ESC inside a string body, ST if followed by '\'
)

// Stripper removes terminal escape sequences from everything written to it and
// forwards the remaining bytes to dst
//
// Parser state persists across writes, so sequences split between chunks are
// removed as a whole. Tab, LF and CR are kept; other C0 controls and DEL are
// dropped. Bytes >= 0x80 pass through untouched (no encoding assumptions).
type Stripper struct {
	dst   io.Writer
	state stripState
	out   []byte
}

// NewStripper creates a Stripper forwarding to dst
func NewStripper(dst io.Writer) *Stripper {
	return &Stripper{dst: dst, out: make([]byte, 0, 256)}
}

// Write filters p; the returned count is len(p) unless dst fails
func (s *Stripper) Write(p []byte) (int, error) {
	out := s.out[:0]
	for _, b := range p {
		out = s.step(b, out)
	}
	s.out = out[:0]

	if len(out) > 0 {
		if _, err := s.dst.Write(out); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// InSequence reports whether the parser is inside an unterminated sequence
func (s *Stripper) InSequence() bool {
	return s.state != stateGround
}

// step consumes one byte, appending any surviving output to out
func (s *Stripper) step(b byte, out []byte) []byte {
	switch s.state {
	case stateGround:
		return s.ground(b, out)

	case stateEscape:
		switch {
		case b == '[':
			s.state = stateCSI
		case b == ']' || b == 'P' || b == 'X' || b == '^' || b == '_':
			s.state = stateString
		case b >= 0x20 && b <= 0x2f:
			s.state = stateEscInt
		case b >= 0x30 && b <= 0x7e:
			// Two-byte sequence (ESC 7, ESC c, ESC =, ...)
			s.state = stateGround
		case b == esc:
			// Restart
		case b == can || b == sub:
			s.state = stateGround
		case b < 0x20:
			return keepControl(b, out)
		case b == del:
		default:
			// Not a sequence after all; drop the ESC and reprocess
			s.state = stateGround
			return s.ground(b, out)
		}

	case stateEscInt:
		switch {
		case b >= 0x20 && b <= 0x2f:
		case b >= 0x30 && b <= 0x7e:
			s.state = stateGround
		case b == esc:
			s.state = stateEscape
		case b == can || b == sub:
			s.state = stateGround
		case b < 0x20:
			return keepControl(b, out)
		case b == del:
		default:
			s.state = stateGround
			return s.ground(b, out)
		}

	case stateCSI:
		switch {
		case b >= 0x40 && b <= 0x7e:
			s.state = stateGround
		case b >= 0x20 && b <= 0x3f:
		case b == esc:
			s.state = stateEscape
		case b == can || b == sub:
			s.state = stateGround
		case b < 0x20:
			return keepControl(b, out)
		case b == del:
		default:
			s.state = stateGround
			return s.ground(b, out)
		}

	case stateString:
		switch b {
		case bel, can, sub:
			s.state = stateGround
		case esc:
			s.state = stateStrEsc
		}

	case stateStrEsc:
		if b == '\\' {
			s.state = stateGround
			return out
		}
		// ESC not followed by '\' terminates the string and starts a new sequence
		s.state = stateEscape
		return s.step(b, out)
	}
	return out
}

func (s *Stripper) ground(b byte, out []byte) []byte {
	switch {
	case b == esc:
		s.state = stateEscape
		return out
	case b < 0x20:
		return keepControl(b, out)
	case b == del:
		return out
	}
	return append(out, b)
}

// keepControl retains the layout controls that survive stripping
func keepControl(b byte, out []byte) []byte {
	switch b {
	case '\t', '\n', '\r':
		return append(out, b)
	}
	return out
}
