package terminal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		c    RGB
		want uint8
	}{
		{RGB{0, 0, 0}, 16},
		{RGB{255, 255, 255}, 231},
		{RGB{255, 0, 0}, 196},
		{RGB{0, 255, 0}, 46},
		{RGB{0, 0, 255}, 21},
		{RGB{128, 128, 128}, 244},
		{RGB{250, 250, 250}, 231},
		{RGB{110, 64, 170}, 61},
	}
	for _, tc := range tests {
		if got := RGBTo256(tc.c); got != tc.want {
			t.Errorf("RGBTo256(%v): expected %d, got %d", tc.c, tc.want, got)
		}
	}
}

func TestDetectColorMode(t *testing.T) {
	for _, k := range []string{"COLORTERM", "KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "WEZTERM_PANE"} {
		t.Setenv(k, "")
	}

	t.Setenv("TERM", "xterm-256color")
	if got := DetectColorMode(); got != ColorMode256 {
		t.Errorf("Expected 256 for xterm-256color, got %v", got)
	}

	t.Setenv("COLORTERM", "truecolor")
	if got := DetectColorMode(); got != ColorModeTrueColor {
		t.Errorf("Expected truecolor with COLORTERM, got %v", got)
	}
}

func TestParseColorMode(t *testing.T) {
	tests := map[string]ColorMode{
		"truecolor": ColorModeTrueColor,
		"24bit":     ColorModeTrueColor,
		"256":       ColorMode256,
		"none":      ColorModeNone,
	}
	for name, want := range tests {
		got, err := ParseColorMode(name)
		if err != nil || got != want {
			t.Errorf("%q: expected %v, got %v (%v)", name, want, got, err)
		}
	}
	if _, err := ParseColorMode("16"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestResolveColorMode(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm")

	if got, _ := ResolveColorMode("never", "truecolor", f.Fd()); got != ColorModeNone {
		t.Errorf("never: expected none, got %v", got)
	}
	if got, _ := ResolveColorMode("always", "256", f.Fd()); got != ColorMode256 {
		t.Errorf("always: expected 256, got %v", got)
	}
	if got, _ := ResolveColorMode("auto", "truecolor", f.Fd()); got != ColorModeNone {
		t.Errorf("auto on regular file: expected none, got %v", got)
	}
	if _, err := ResolveColorMode("sometimes", "auto", f.Fd()); err == nil {
		t.Error("Expected error for unknown choice")
	}
}
