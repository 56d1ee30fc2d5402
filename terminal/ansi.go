package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations per run)
var (
	csiSGR0  = []byte("\x1b[0m")
	csiFg256 = []byte("\x1b[38;5;") // followed by N;m
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B;m
)

// Escape-sequence introducers and terminators recognized by the stripper
const (
	bel = 0x07
	can = 0x18 // cancels a sequence in progress
	sub = 0x1a // cancels a sequence in progress
	esc = 0x1b
	del = 0x7f
)

// writeInt writes a non-negative integer without allocation
// Optimized for color channel values (0-255)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}
