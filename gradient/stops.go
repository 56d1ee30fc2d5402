package gradient

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Stops is a piecewise gradient over evenly spaced colors, blended in HCL
type Stops []colorful.Color

func (s Stops) At(t float64) colorful.Color {
	switch len(s) {
	case 0:
		return colorful.Color{}
	case 1:
		return s[0]
	}
	t = clampUnit(t)
	span := t * float64(len(s)-1)
	i := int(span)
	if i >= len(s)-1 {
		return s[len(s)-1]
	}
	return s[i].BlendHcl(s[i+1], span-float64(i)).Clamped()
}

// ParseStop resolves a W3C/X11 color name or #rrggbb literal
func ParseStop(name string) (colorful.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault || !c.Valid() {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrBadStop, name)
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return colorful.Color{}, fmt.Errorf("%w: %q has no RGB value", ErrBadStop, name)
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, nil
}

// ParseStops builds a Stops gradient; at least two stops are required
func ParseStops(names []string) (Stops, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 stops, got %d", ErrBadStop, len(names))
	}
	stops := make(Stops, 0, len(names))
	for _, n := range names {
		c, err := ParseStop(n)
		if err != nil {
			return nil, err
		}
		stops = append(stops, c)
	}
	return stops, nil
}
