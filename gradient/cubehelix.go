package gradient

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Cubehelix rotation matrix coefficients (Green, 2011)
const (
	chA = -0.14861
	chB = +1.78277
	chC = -0.29227
	chD = -0.90649
	chE = +1.97294
)

// helixPoint is a cubehelix color: hue in degrees, saturation, lightness
type helixPoint struct {
	H, S, L float64
}

// Cubehelix interpolates linearly in cubehelix space without hue wrapping
type Cubehelix struct {
	From, To helixPoint
}

var (
	// Cool runs purple → blue → green (rgb 110,64,170 to 175,240,91)
	Cool = Cubehelix{From: helixPoint{260, 0.75, 0.35}, To: helixPoint{80, 1.50, 0.8}}
	// Warm shares the endpoints of Cool but rotates through orange
	Warm = Cubehelix{From: helixPoint{-100, 0.75, 0.35}, To: helixPoint{80, 1.50, 0.8}}
)

func (c Cubehelix) At(t float64) colorful.Color {
	t = clampUnit(t)
	p := helixPoint{
		H: c.From.H + t*(c.To.H-c.From.H),
		S: c.From.S + t*(c.To.S-c.From.S),
		L: c.From.L + t*(c.To.L-c.From.L),
	}
	return p.color()
}

func (p helixPoint) color() colorful.Color {
	h := (p.H + 120) * math.Pi / 180
	a := p.S * p.L * (1 - p.L)
	cosh, sinh := math.Cos(h), math.Sin(h)
	return colorful.Color{
		R: p.L + a*(chA*cosh+chB*sinh),
		G: p.L + a*(chC*cosh+chD*sinh),
		B: p.L + a*(chE*cosh),
	}.Clamped()
}
