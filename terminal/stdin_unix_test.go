//go:build unix

package terminal

import (
	"io"
	"os"
	"testing"
)

func TestFdReader_ReadsUntilEOF(t *testing.T) {
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer pr.Close()

	go func() {
		pw.Write([]byte("piped\x1b[1m bytes"))
		pw.Close()
	}()

	got, err := io.ReadAll(NewStripReader(&fdReader{fd: int(pr.Fd())}))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(got) != "piped bytes" {
		t.Errorf("Expected %q, got %q", "piped bytes", got)
	}
}
