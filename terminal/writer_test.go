package terminal

import (
	"bytes"
	"testing"
)

func TestWriter_TrueColor(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ColorModeTrueColor)
	w.SetForeground(RGB{110, 64, 170})
	w.Write([]byte("ab"))
	w.Reset()
	w.Flush()

	if want := "\x1b[38;2;110;64;170mab\x1b[0m"; out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}
}

func TestWriter_256(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ColorMode256)
	w.SetForeground(RGB{255, 0, 0})
	w.Write([]byte("x"))
	w.Flush()

	if want := "\x1b[38;5;196mx"; out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}
}

func TestWriter_NoneEmitsPlainBytes(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ColorModeNone)
	w.SetForeground(RGB{1, 2, 3})
	w.Write([]byte("plain\n"))
	w.Reset()
	w.Flush()

	if out.String() != "plain\n" {
		t.Errorf("Expected plain output, got %q", out.String())
	}
}

func TestWriter_CoalescesWithinLine(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ColorModeTrueColor)
	c := RGB{1, 2, 3}

	w.SetForeground(c)
	w.Write([]byte("a"))
	w.SetForeground(c)
	w.Write([]byte("b\n"))
	w.SetForeground(c)
	w.Write([]byte("c"))
	w.Flush()

	want := "\x1b[38;2;1;2;3mab\n\x1b[38;2;1;2;3mc"
	if out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}
}

func TestWriter_ResetInvalidatesColor(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, ColorMode256)
	c := RGB{0, 0, 0}

	w.SetForeground(c)
	w.Reset()
	w.SetForeground(c)
	w.Flush()

	if want := "\x1b[38;5;16m\x1b[0m\x1b[38;5;16m"; out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}
}

func TestEmergencyReset(t *testing.T) {
	var out bytes.Buffer
	EmergencyReset(&out)
	if out.String() != "\x1b[0m" {
		t.Errorf("Expected SGR reset, got %q", out.String())
	}
}
