package config

import (
	"math"
	"slices"

	"github.com/lixenwraith/comphl/gradient"
	"github.com/lixenwraith/comphl/score"
	"github.com/lixenwraith/comphl/terminal"
)

var (
	formulas = []string{"decay", "penalty", "reciprocal", "lua"}
	choices  = []string{"auto", "always", "never"}
)

// colorModeValues lists every name terminal.ParseColorMode accepts
const colorModeValues = "must be auto, truecolor (or true, 24bit), 256 or none"

// Validate checks every setting and returns the first failure as a *ValidationError
func (c *Config) Validate() error {
	if c.WindowSize <= 0 {
		return &ValidationError{Key: "window_size", Message: "must be positive", Value: c.WindowSize}
	}

	s := c.Score
	if !slices.Contains(formulas, s.Formula) {
		return &ValidationError{Key: "score.formula", Message: "unknown formula", Value: s.Formula}
	}
	if !nonNegative(s.AgePenalty) {
		return &ValidationError{Key: "score.age_penalty", Message: "must be a non-negative number", Value: s.AgePenalty}
	}
	if !nonNegative(s.DecayShape) || s.DecayShape == 0 {
		return &ValidationError{Key: "score.decay_shape", Message: "must be a positive number", Value: s.DecayShape}
	}
	if _, err := score.ParseAbsent(s.Absent); err != nil {
		return &ValidationError{Key: "score.absent", Message: "must be novel or zero", Value: s.Absent}
	}
	if s.Formula == "lua" && s.Script == "" {
		return &ValidationError{Key: "score.script", Message: "required by the lua formula", Value: s.Script}
	}

	col := c.Color
	if !slices.Contains(choices, col.Choice) {
		return &ValidationError{Key: "color.choice", Message: "must be auto, always or never", Value: col.Choice}
	}
	if _, err := terminal.ParseColorMode(col.Mode); err != nil {
		return &ValidationError{Key: "color.mode", Message: colorModeValues, Value: col.Mode}
	}
	if !slices.Contains(gradient.Names(), col.Gradient) {
		return &ValidationError{Key: "color.gradient", Message: "unknown gradient", Value: col.Gradient}
	}
	if col.Gradient == "custom" {
		if _, err := gradient.ParseStops(col.Stops); err != nil {
			return &ValidationError{Key: "color.stops", Message: err.Error(), Value: col.Stops}
		}
	}
	return nil
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
