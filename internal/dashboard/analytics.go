package dashboard

import (
	"math"
	"unicode"

	"github.com/hireon/hireon/internal/decision"
	"github.com/hireon/hireon/internal/textproc"
)

// stopwords excluded from clarity scoring. Function words carry no signal
// about how substantively a question was answered.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "i": {},
	"in": {}, "is": {}, "it": {}, "of": {}, "on": {}, "or": {},
	"that": {}, "the": {}, "this": {}, "to": {}, "was": {}, "we": {},
	"with": {}, "you": {},
}

const (
	clarityMinTokens = 8
	clarityMaxTokens = 40
)

// ClarityScore rates an answer in [0, 1] from its token length, stopword
// fraction and special-character fraction. Eight to forty tokens is the
// ideal length band.
func ClarityScore(text string) float64 {
	tokens := textproc.Tokenize(text)
	n := len(tokens)
	if n == 0 {
		return 0.0
	}

	capped := math.Min(float64(n), clarityMaxTokens)
	lengthScore := (capped - clarityMinTokens) / (clarityMaxTokens - clarityMinTokens)
	lengthScore = math.Min(math.Max(lengthScore, 0), 1)

	stops := 0
	for _, tok := range tokens {
		if _, ok := stopwords[tok]; ok {
			stops++
		}
	}
	stopPenalty := 1 - float64(stops)/float64(n)

	special := 0
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			special++
		}
	}
	total := len([]rune(text))
	if total == 0 {
		total = 1
	}
	specialPenalty := 1 - float64(special)/float64(total)

	return round4(0.5*lengthScore + 0.25*stopPenalty + 0.25*specialPenalty)
}

// RelevanceScore measures how much of the question's vocabulary the answer
// reuses, as an overlap ratio in [0, 1] over the question's distinct tokens.
func RelevanceScore(answer, question string) float64 {
	ans := tokenSet(answer)
	q := tokenSet(question)
	if len(ans) == 0 || len(q) == 0 {
		return 0.0
	}

	overlap := 0
	for tok := range q {
		if _, ok := ans[tok]; ok {
			overlap++
		}
	}
	return round4(float64(overlap) / float64(len(q)))
}

// JaccardSimilarity is set similarity over distinct tokens, in [0, 1].
func JaccardSimilarity(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	return round4(float64(intersection) / float64(union))
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range textproc.Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

func decisionOverall(questionScores []float64, sentimentScore float64) (float64, error) {
	return decision.FinalScore(questionScores, sentimentScore)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
