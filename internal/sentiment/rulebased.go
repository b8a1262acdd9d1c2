package sentiment

import "context"

// RuleBased is a generic single-lexicon sentiment strategy. It predates the
// axis model and survives as a cheap alternative: the single damped score is
// replicated onto every canonical axis so the AxisScore contract still holds.
type RuleBased struct {
	pos wordSet
	neg wordSet
}

var (
	ruleBasedPositive = []string{"good", "great", "excellent", "positive", "improve", "support"}
	ruleBasedNegative = []string{"bad", "poor", "worse", "negative", "fail", "issue"}
)

// NewRuleBased creates the rule-based scorer with its built-in word lists.
func NewRuleBased() *RuleBased {
	pos := make(wordSet, len(ruleBasedPositive))
	for _, w := range ruleBasedPositive {
		pos[w] = struct{}{}
	}
	neg := make(wordSet, len(ruleBasedNegative))
	for _, w := range ruleBasedNegative {
		neg[w] = struct{}{}
	}
	return &RuleBased{pos: pos, neg: neg}
}

func (r *RuleBased) Name() string { return "rule-based" }

func (r *RuleBased) ScoreAxes(_ context.Context, tokens []string) (AxisScore, error) {
	value := round4(axisScore(tokens, r.pos, r.neg))

	score := make(AxisScore, len(Axes))
	for _, axis := range Axes {
		score[axis] = value
	}
	return score, nil
}
