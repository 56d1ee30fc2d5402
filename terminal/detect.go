package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ResolveColorMode combines the user's choice (auto, always, never) with the
// requested mode and the state of the output descriptor
// auto disables color when NO_COLOR is set, TERM is dumb, or fd is not a tty
func ResolveColorMode(choice, mode string, fd uintptr) (ColorMode, error) {
	switch choice {
	case "never":
		return ColorModeNone, nil
	case "always":
		return ParseColorMode(mode)
	case "", "auto":
		if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
			return ColorModeNone, nil
		}
		if !term.IsTerminal(int(fd)) {
			return ColorModeNone, nil
		}
		return ParseColorMode(mode)
	}
	return ColorModeNone, fmt.Errorf("unknown color choice %q", choice)
}
