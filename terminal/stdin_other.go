//go:build !unix

package terminal

import (
	"io"
	"os"
)

// Stdin returns a reader over the process's standard input
func Stdin() io.Reader {
	return os.Stdin
}
