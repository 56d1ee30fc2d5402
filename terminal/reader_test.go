package terminal

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestStripReader_ReadByte(t *testing.T) {
	r := NewStripReader(iotest.OneByteReader(strings.NewReader("a\x1b[1mb\x1b[0mc")))

	var got []byte
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, b)
	}
	if string(got) != "abc" {
		t.Errorf("Expected %q, got %q", "abc", got)
	}
}

func TestStripReader_ReadAll(t *testing.T) {
	in := strings.Repeat("\x1b[32mline\x1b[0m\n", 200)
	got, err := io.ReadAll(NewStripReader(strings.NewReader(in)))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if want := strings.Repeat("line\n", 200); string(got) != want {
		t.Errorf("Expected %d bytes, got %d", len(want), len(got))
	}
}

func TestStripReader_Buffered(t *testing.T) {
	r := NewStripReader(strings.NewReader("abcd"))
	if r.Buffered() != 0 {
		t.Errorf("Expected empty queue before first read, got %d", r.Buffered())
	}
	r.ReadByte()
	if r.Buffered() != 3 {
		t.Errorf("Expected 3 queued bytes, got %d", r.Buffered())
	}
}

func TestStripReader_ErrorAfterDrain(t *testing.T) {
	boom := errors.New("boom")
	r := NewStripReader(iotest.DataErrReader(&failingReader{data: "xy", err: boom}))

	for _, want := range []byte("xy") {
		b, err := r.ReadByte()
		if err != nil || b != want {
			t.Fatalf("Expected %q, got %q (%v)", want, b, err)
		}
	}
	if _, err := r.ReadByte(); !errors.Is(err, boom) {
		t.Errorf("Expected source error after drain, got %v", err)
	}
}

func TestStripReader_OnlyEscapesYieldsEOF(t *testing.T) {
	r := NewStripReader(strings.NewReader("\x1b[0m\x1b]0;t\x07"))
	if _, err := r.ReadByte(); err != io.EOF {
		t.Errorf("Expected EOF, got %v", err)
	}
}

func TestStripReader_NoProgress(t *testing.T) {
	r := NewStripReader(stallReader{})
	if _, err := r.ReadByte(); !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("Expected io.ErrNoProgress, got %v", err)
	}
}

type failingReader struct {
	data string
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.data == "" {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

type stallReader struct{}

func (stallReader) Read([]byte) (int, error) { return 0, nil }
