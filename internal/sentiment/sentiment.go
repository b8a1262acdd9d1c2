// Package sentiment converts token sequences into behavioral axis scores.
// Multiple scoring strategies implement the same interface and are selected
// via configuration at session construction.
package sentiment

import (
	"context"
	"math"
)

// Canonical behavioral axes. Every scorer must populate all of them; a
// missing axis is a defect, not a valid state.
const (
	AxisDetermination = "determination"
	AxisWillingness   = "willingness"
	AxisReliability   = "reliability"
	AxisHonesty       = "honesty"
)

// Axes lists the canonical axis set in a stable order.
var Axes = []string{AxisDetermination, AxisWillingness, AxisReliability, AxisHonesty}

// AxisScore maps axis names to scores in [-1, 1].
type AxisScore map[string]float64

// Scorer is the strategy interface for sentiment engines.
type Scorer interface {
	Name() string
	ScoreAxes(ctx context.Context, tokens []string) (AxisScore, error)
}

// Neutral returns a fully populated AxisScore with every axis at 0.0 exactly.
func Neutral() AxisScore {
	score := make(AxisScore, len(Axes))
	for _, axis := range Axes {
		score[axis] = 0.0
	}
	return score
}

// Overall returns the arithmetic mean over all canonical axes, rounded to 4
// decimal digits.
func (s AxisScore) Overall() float64 {
	if len(Axes) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, axis := range Axes {
		sum += s[axis]
	}
	return round4(sum / float64(len(Axes)))
}

// Complete reports whether every canonical axis is present.
func (s AxisScore) Complete() bool {
	for _, axis := range Axes {
		if _, ok := s[axis]; !ok {
			return false
		}
	}
	return true
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func clamp(v, low, high float64) float64 {
	return math.Min(high, math.Max(low, v))
}
