// Package gradient provides continuous color gradients sampled over [0,1].
package gradient

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrUnknownGradient = errors.New("unknown gradient")
	ErrBadStop         = errors.New("invalid color stop")
)

// Gradient maps t in [0,1] to a color; t outside the range is clamped
type Gradient interface {
	At(t float64) colorful.Color
}

// Func adapts a plain function to Gradient
type Func func(t float64) colorful.Color

func (f Func) At(t float64) colorful.Color { return f(clampUnit(t)) }

// Reverse flips a gradient end to end
func Reverse(g Gradient) Gradient {
	return Func(func(t float64) colorful.Color { return g.At(1 - t) })
}

// RGB255 samples g at t and returns 8-bit channels
func RGB255(g Gradient, t float64) (r, gr, b uint8) {
	return g.At(t).Clamped().RGB255()
}

// Options selects a gradient by name
type Options struct {
	Name    string   // cool | warm | custom
	Stops   []string // color names or #rrggbb, used by custom
	Reverse bool
}

// New builds the gradient described by opts
func New(opts Options) (Gradient, error) {
	var g Gradient
	switch opts.Name {
	case "", "cool":
		g = Cool
	case "warm":
		g = Warm
	case "custom":
		s, err := ParseStops(opts.Stops)
		if err != nil {
			return nil, err
		}
		g = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGradient, opts.Name)
	}
	if opts.Reverse {
		g = Reverse(g)
	}
	return g, nil
}

// Names lists the built-in gradient names
func Names() []string {
	return []string{"cool", "warm", "custom"}
}

func clampUnit(t float64) float64 {
	if t != t || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
