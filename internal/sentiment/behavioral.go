package sentiment

import (
	"context"
	"fmt"
)

// Behavioral scores tokens against per-axis positive/negative vocabularies.
// It is pure and deterministic: identical input always yields identical
// output.
type Behavioral struct {
	vocab map[string]axisVocab
}

// NewBehavioral creates a Behavioral scorer backed by the built-in lexicon.
func NewBehavioral() *Behavioral {
	scorer, _ := NewBehavioralWithLexicon(DefaultLexicon())
	return scorer
}

// NewBehavioralWithLexicon creates a Behavioral scorer backed by the given
// lexicon. The lexicon must cover every canonical axis.
func NewBehavioralWithLexicon(lexicon Lexicon) (*Behavioral, error) {
	if err := lexicon.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon: %w", err)
	}
	return &Behavioral{vocab: lexicon.compile()}, nil
}

func (b *Behavioral) Name() string { return "behavioral" }

// ScoreAxes computes one score per axis. Token membership is counted over the
// multiset: a word appearing twice counts twice. An axis with no matches in
// either vocabulary scores 0.0 exactly.
func (b *Behavioral) ScoreAxes(_ context.Context, tokens []string) (AxisScore, error) {
	score := make(AxisScore, len(Axes))
	for _, axis := range Axes {
		vocab := b.vocab[axis]
		score[axis] = round4(axisScore(tokens, vocab.pos, vocab.neg))
	}
	return score, nil
}

// axisScore implements the damped lexicon formula. The +1 denominator term
// keeps a single matched word from saturating to +-1.
func axisScore(tokens []string, pos, neg wordSet) float64 {
	posCount, negCount := 0, 0
	for _, token := range tokens {
		if _, ok := pos[token]; ok {
			posCount++
		}
		if _, ok := neg[token]; ok {
			negCount++
		}
	}

	if posCount == 0 && negCount == 0 {
		return 0.0
	}

	raw := float64(posCount-negCount) / float64(posCount+negCount+1)
	return clamp(raw, -1, 1)
}
