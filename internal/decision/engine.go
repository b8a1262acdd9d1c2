// Package decision turns accumulated interview scores and candidate metadata
// into a final pass/fail recommendation. Everything here is a pure function
// of its inputs.
package decision

import (
	"errors"
	"fmt"
	"math"
)

// Phi is the golden ratio, the wage-penalty trigger: a candidate asking for
// phi times the budget or more takes a fixed penalty. This is a deliberate
// cliff edge, not a smooth function.
const Phi = 1.618033988749895

// WagePenaltyValue is the flat penalty applied above the golden-ratio cliff.
const WagePenaltyValue = 0.05

// Difficulty is the interview tier selected from working experience.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Label is the categorical hiring recommendation.
type Label string

const (
	Accept   Label = "Accept"
	Consider Label = "Consider"
	Reject   Label = "Reject"
)

// ErrEmptyScores is returned when a final score is requested over an empty
// score vector. That indicates a sequencing bug in the caller, not bad user
// input, so it is never guessed around.
var ErrEmptyScores = errors.New("empty score vector")

// Thresholds is the label threshold pair. Two engine revisions disagreed on
// the accept cut-off, so both remain reproducible via configuration.
type Thresholds struct {
	Accept   float64 `mapstructure:"accept"`
	Consider float64 `mapstructure:"consider"`
}

// DefaultThresholds is the current revision's pair.
func DefaultThresholds() Thresholds {
	return Thresholds{Accept: 0.8, Consider: 0.6}
}

// LegacyThresholds reproduces the earlier revision's labeling behavior.
func LegacyThresholds() Thresholds {
	return Thresholds{Accept: 0.75, Consider: 0.6}
}

// Validate rejects threshold pairs the labeling rule cannot order.
func (t Thresholds) Validate() error {
	if t.Accept <= t.Consider {
		return fmt.Errorf("accept threshold %v must exceed consider threshold %v", t.Accept, t.Consider)
	}
	if t.Accept > 1 || t.Consider < 0 {
		return fmt.Errorf("thresholds %v/%v must lie within [0, 1]", t.Accept, t.Consider)
	}
	return nil
}

// Result is the full outcome of judging one candidate.
type Result struct {
	Difficulty Difficulty `json:"difficulty"`
	BaseScore  float64    `json:"base_score"`
	Penalty    float64    `json:"penalty"`
	FinalScore float64    `json:"final_score"`
	Label      Label      `json:"label"`
	// ThresholdUsed is the accept threshold the label was computed against.
	ThresholdUsed float64 `json:"threshold_used"`
}

// Engine scores candidates against a company budget.
type Engine struct {
	budget     int
	thresholds Thresholds
}

// New creates an engine for the given company budget, the maximum wage the
// company can provide.
func New(budget int, thresholds Thresholds) (*Engine, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("company budget must be positive, got %d", budget)
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Engine{budget: budget, thresholds: thresholds}, nil
}

// DetermineDifficulty maps months of working experience to an interview tier.
func DetermineDifficulty(months int) Difficulty {
	switch {
	case months < 12:
		return Beginner
	case months < 18:
		return Intermediate
	default:
		return Advanced
	}
}

// FinalScore combines the per-question scores with the overall sentiment.
// The sentiment is remapped from [-1,1] to [0,1] before averaging, so the
// result is in [0,1] by construction. An empty score vector is a caller bug.
func FinalScore(scores []float64, sentiment float64) (float64, error) {
	if len(scores) == 0 {
		return 0, ErrEmptyScores
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	avg := sum / float64(len(scores))
	sentComponent := (sentiment + 1) / 2

	return round4((avg + sentComponent) / 2), nil
}

// WagePenalty returns the flat penalty when the expectation-to-budget ratio
// reaches the golden ratio, boundary inclusive.
func (e *Engine) WagePenalty(expectation int) float64 {
	ratio := float64(expectation) / float64(e.budget)
	if ratio >= Phi {
		return WagePenaltyValue
	}
	return 0.0
}

// Judge is the main scoring interface: question scores, overall sentiment,
// months of experience and the wage expectation go in, a labelled Result
// comes out.
func (e *Engine) Judge(questionScores []float64, sentiment float64, monthsExperience, wageExpectation int) (*Result, error) {
	base, err := FinalScore(questionScores, sentiment)
	if err != nil {
		return nil, fmt.Errorf("judging candidate: %w", err)
	}

	penalty := e.WagePenalty(wageExpectation)
	final := round4(math.Max(0, base-penalty))

	return &Result{
		Difficulty:    DetermineDifficulty(monthsExperience),
		BaseScore:     base,
		Penalty:       penalty,
		FinalScore:    final,
		Label:         e.label(final),
		ThresholdUsed: e.thresholds.Accept,
	}, nil
}

func (e *Engine) label(final float64) Label {
	switch {
	case final >= e.thresholds.Accept:
		return Accept
	case final >= e.thresholds.Consider:
		return Consider
	default:
		return Reject
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
