package gradient

import (
	"errors"
	"testing"
)

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestCool_Endpoints(t *testing.T) {
	tests := []struct {
		t       float64
		r, g, b uint8
	}{
		{0, 110, 64, 170},
		{1, 175, 240, 91},
	}
	for _, tc := range tests {
		r, g, b := RGB255(Cool, tc.t)
		if !near(r, tc.r) || !near(g, tc.g) || !near(b, tc.b) {
			t.Errorf("t=%v: expected (%d,%d,%d), got (%d,%d,%d)", tc.t, tc.r, tc.g, tc.b, r, g, b)
		}
	}
}

func TestWarm_SharesEndpointsWithCool(t *testing.T) {
	for _, at := range []float64{0, 1} {
		cr, cg, cb := RGB255(Cool, at)
		wr, wg, wb := RGB255(Warm, at)
		if !near(cr, wr) || !near(cg, wg) || !near(cb, wb) {
			t.Errorf("t=%v: cool (%d,%d,%d) != warm (%d,%d,%d)", at, cr, cg, cb, wr, wg, wb)
		}
	}
	cr, cg, cb := RGB255(Cool, 0.5)
	wr, wg, wb := RGB255(Warm, 0.5)
	if cr == wr && cg == wg && cb == wb {
		t.Error("Expected cool and warm to differ at midpoint")
	}
}

func TestGradient_ClampsInput(t *testing.T) {
	for _, g := range []Gradient{Cool, Warm, Stops{{R: 0}, {R: 1}}} {
		if g.At(-3) != g.At(0) {
			t.Errorf("%T: expected t<0 to clamp to 0", g)
		}
		if g.At(7) != g.At(1) {
			t.Errorf("%T: expected t>1 to clamp to 1", g)
		}
	}
}

func TestParseStop(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
	}{
		{"red", 255, 0, 0},
		{"#00ff00", 0, 255, 0},
		{" Blue ", 0, 0, 255},
	}
	for _, tc := range tests {
		c, err := ParseStop(tc.name)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.name, err)
			continue
		}
		r, g, b := c.RGB255()
		if r != tc.r || g != tc.g || b != tc.b {
			t.Errorf("%q: expected (%d,%d,%d), got (%d,%d,%d)", tc.name, tc.r, tc.g, tc.b, r, g, b)
		}
	}

	if _, err := ParseStop("definitely-not-a-color"); !errors.Is(err, ErrBadStop) {
		t.Errorf("Expected ErrBadStop, got %v", err)
	}
}

func TestStops_Interpolation(t *testing.T) {
	s, err := ParseStops([]string{"black", "white"})
	if err != nil {
		t.Fatalf("ParseStops failed: %v", err)
	}
	if r, g, b := RGB255(s, 0); r != 0 || g != 0 || b != 0 {
		t.Errorf("Expected black at 0, got (%d,%d,%d)", r, g, b)
	}
	if r, g, b := RGB255(s, 1); r != 255 || g != 255 || b != 255 {
		t.Errorf("Expected white at 1, got (%d,%d,%d)", r, g, b)
	}
	r, _, _ := RGB255(s, 0.5)
	if r == 0 || r == 255 {
		t.Errorf("Expected a mid gray at 0.5, got red channel %d", r)
	}

	if _, err := ParseStops([]string{"red"}); !errors.Is(err, ErrBadStop) {
		t.Errorf("Expected ErrBadStop for single stop, got %v", err)
	}
}

func TestNew(t *testing.T) {
	g, err := New(Options{Name: "cool", Reverse: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if g.At(0) != Cool.At(1) {
		t.Error("Expected reversed gradient to start at the end color")
	}

	if _, err := New(Options{Name: "custom", Stops: []string{"navy", "#ffcc00", "white"}}); err != nil {
		t.Errorf("custom gradient: unexpected error %v", err)
	}
	if _, err := New(Options{Name: "custom"}); !errors.Is(err, ErrBadStop) {
		t.Errorf("Expected ErrBadStop for custom without stops, got %v", err)
	}
	if _, err := New(Options{Name: "rainbow"}); !errors.Is(err, ErrUnknownGradient) {
		t.Errorf("Expected ErrUnknownGradient, got %v", err)
	}
}
