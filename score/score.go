// Package score maps a resolved run to a compressibility score in [0,1].
//
// A score near 1 means the run looks cheap to encode (short, recently seen);
// a score near 0 means it looks novel (long, distant, or never seen).
// The formulas are isolated here so they can change without touching the
// match engine.
package score

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownFormula = errors.New("unknown score formula")
	ErrUnknownAbsent  = errors.New("unknown absent-age policy")
)

// Scorer maps a run length and optional age to [0,1]
// found is false when the run has no prior occurrence in the window
type Scorer interface {
	Score(length, age int, found bool) float64
}

// Absent selects how a run without a prior occurrence is scored
type Absent uint8

const (
	// AbsentNovel scores a never-seen run as 0
	AbsentNovel Absent = iota
	// AbsentZero scores a never-seen run as if its age were 0
	AbsentZero
)

// ParseAbsent resolves a policy name
func ParseAbsent(name string) (Absent, error) {
	switch name {
	case "", "novel":
		return AbsentNovel, nil
	case "zero":
		return AbsentZero, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAbsent, name)
}

func (a Absent) String() string {
	if a == AbsentZero {
		return "zero"
	}
	return "novel"
}

// resolveAge applies the absent policy; ok is false when the run scores 0 outright
func (a Absent) resolveAge(age int, found bool) (int, bool) {
	if found {
		return age, true
	}
	if a == AbsentZero {
		return 0, true
	}
	return 0, false
}

// Decay is the window-normalized decay formula
//
//	na    = (min(age, Window-1) / Window) ^ Shape
//	score = 1 / max(1, length / (1 - na))
//
// Shape 1 gives the linear decay; larger shapes forgive older matches.
// Shape <= 0 selects the linear decay, since x^0 would mark every match as stale.
type Decay struct {
	Window int
	Shape  float64
	Absent Absent
}

func (d Decay) Score(length, age int, found bool) float64 {
	age, ok := d.Absent.resolveAge(age, found)
	if !ok {
		return 0
	}
	window := max(d.Window, 1)
	na := float64(min(max(age, 0), window-1)) / float64(window)
	if d.Shape > 0 && d.Shape != 1 {
		na = math.Pow(na, d.Shape)
	}
	return clamp(1 / math.Max(1, float64(length)/(1-na)))
}

// Penalty charges each byte of age a fixed fraction of a byte of length
//
//	score = 1 / max(1, length + age*Penalty)
type Penalty struct {
	Penalty float64
	Absent  Absent
}

func (p Penalty) Score(length, age int, found bool) float64 {
	age, ok := p.Absent.resolveAge(age, found)
	if !ok {
		return 0
	}
	return clamp(1 / math.Max(1, float64(length)+float64(age)*p.Penalty))
}

// Reciprocal ignores age beyond the absent policy: score = 1 / max(1, length)
type Reciprocal struct {
	Absent Absent
}

func (r Reciprocal) Score(length, age int, found bool) float64 {
	if _, ok := r.Absent.resolveAge(age, found); !ok {
		return 0
	}
	return clamp(1 / math.Max(1, float64(length)))
}

// clamp bounds v to [0,1], NaN maps to 0
func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Options selects and parameterizes a formula
type Options struct {
	Formula    string // decay | penalty | reciprocal | lua
	Window     int
	AgePenalty float64
	DecayShape float64
	Absent     Absent
	Script     string // Lua source path for the lua formula
}

// New builds the Scorer named by opts.Formula
func New(opts Options) (Scorer, error) {
	switch opts.Formula {
	case "", "decay":
		return Decay{Window: opts.Window, Shape: opts.DecayShape, Absent: opts.Absent}, nil
	case "penalty":
		return Penalty{Penalty: opts.AgePenalty, Absent: opts.Absent}, nil
	case "reciprocal":
		return Reciprocal{Absent: opts.Absent}, nil
	case "lua":
		return LoadLua(opts.Script, opts.Window, opts.Absent)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormula, opts.Formula)
}
