// Package dashboard derives read-only analytics from a finished interview
// record: aggregate scores, vocabulary summaries and bar-chart series. It
// never writes back to the record.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hireon/hireon/internal/recordstore"
	"github.com/hireon/hireon/internal/sentiment"
	"github.com/hireon/hireon/internal/textproc"
	"go.uber.org/zap"
)

// ErrNoData is returned when the record file is missing or unreadable.
var ErrNoData = errors.New("no interview data")

const topWords = 3

// WordCount is a token with its occurrence count across all answers.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordWeight is a token with its summed behavioral axis weight.
type WordWeight struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}

// BarSeries is chart-ready data: one score per record column, plus the
// accept threshold for the reference line.
type BarSeries struct {
	Labels    []string  `json:"labels"`
	Scores    []float64 `json:"scores"`
	Threshold float64   `json:"threshold"`
}

// QuestionInsight carries per-answer text analytics.
type QuestionInsight struct {
	Label     string  `json:"label"`
	Clarity   float64 `json:"clarity"`
	Relevance float64 `json:"relevance"`
}

// Summary is the full dashboard payload for one candidate.
type Summary struct {
	Identity     string            `json:"identity"`
	Relevance    float64           `json:"relevance_score"`
	Sentiment    float64           `json:"sentiment_score"`
	Overall      float64           `json:"overall_score"`
	MostFrequent []WordCount       `json:"most_frequent_words"`
	MostWeighted []WordWeight      `json:"most_weighted_words"`
	Questions    []QuestionInsight `json:"questions"`
	Bar          BarSeries         `json:"bar_chart"`
}

// Builder reads interview records and produces summaries.
type Builder struct {
	store     *recordstore.Store
	chain     *textproc.Chain
	behavior  *sentiment.Behavioral
	threshold float64
	logger    *zap.Logger
}

// New creates a Builder. The threshold is echoed into bar series as the
// reference line, it does not affect any computed score.
func New(store *recordstore.Store, chain *textproc.Chain, behavior *sentiment.Behavioral, threshold float64, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		store:     store,
		chain:     chain,
		behavior:  behavior,
		threshold: threshold,
		logger:    log,
	}
}

// Build loads the record at path and computes the summary. A candidate id
// fills the identity field when the record has no ID column.
func (b *Builder) Build(ctx context.Context, path, candidateID string) (*Summary, error) {
	record := b.store.Load(path)
	if record.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrNoData, path)
	}

	identity := candidateID
	if col, ok := record.Find("ID"); ok && col.Response != "" {
		identity = col.Response
	}

	questionScores := record.QuestionScores()

	// Relevance always averages over the full question count so partially
	// answered interviews score proportionally lower.
	relevance := sumOf(questionScores) / float64(recordstore.QuestionCount)
	sentimentScore := relevance*2 - 1

	overall := relevance
	if len(questionScores) > 0 {
		v, err := decisionOverall(questionScores, sentimentScore)
		if err != nil {
			return nil, err
		}
		overall = v
	}

	tokens := b.collectTokens(record)

	summary := &Summary{
		Identity:     identity,
		Relevance:    round4(relevance),
		Sentiment:    round4(sentimentScore),
		Overall:      round4(overall),
		MostFrequent: b.mostFrequent(tokens),
		MostWeighted: b.mostWeighted(ctx, tokens),
		Questions:    b.questionInsights(record),
		Bar:          b.barSeries(record),
	}

	b.logger.Debug("dashboard built",
		zap.String("candidate_id", identity),
		zap.Int("columns", len(record.Columns)),
		zap.Float64("overall", summary.Overall),
	)

	return summary, nil
}

func (b *Builder) collectTokens(record *recordstore.Record) []string {
	var tokens []string
	for _, col := range record.Columns {
		if col.Label == "ID" || col.Label == recordstore.LabelFinal {
			continue
		}
		tokens = append(tokens, b.chain.Process(col.Response)...)
	}
	return tokens
}

func (b *Builder) mostFrequent(tokens []string) []WordCount {
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}

	ranked := make([]WordCount, 0, len(counts))
	for word, n := range counts {
		ranked = append(ranked, WordCount{Word: word, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	if len(ranked) > topWords {
		ranked = ranked[:topWords]
	}
	return ranked
}

// mostWeighted ranks distinct tokens by summed behavioral axis weight. Each
// token is scored in isolation, so only lexicon membership matters.
func (b *Builder) mostWeighted(ctx context.Context, tokens []string) []WordWeight {
	seen := make(map[string]struct{})
	var ranked []WordWeight

	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}

		axes, err := b.behavior.ScoreAxes(ctx, []string{tok})
		if err != nil {
			continue
		}
		weight := 0.0
		for _, v := range axes {
			weight += v
		}
		ranked = append(ranked, WordWeight{Word: tok, Weight: round4(weight)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].Word < ranked[j].Word
	})

	if len(ranked) > topWords {
		ranked = ranked[:topWords]
	}
	return ranked
}

func (b *Builder) questionInsights(record *recordstore.Record) []QuestionInsight {
	columns := record.QuestionColumns()
	insights := make([]QuestionInsight, 0, len(columns))
	for _, col := range columns {
		insights = append(insights, QuestionInsight{
			Label:     col.Label,
			Clarity:   ClarityScore(col.Response),
			Relevance: RelevanceScore(col.Response, col.Prompt),
		})
	}
	return insights
}

func (b *Builder) barSeries(record *recordstore.Record) BarSeries {
	series := BarSeries{Threshold: b.threshold}
	for _, col := range record.Columns {
		series.Labels = append(series.Labels, col.Label)
		series.Scores = append(series.Scores, col.Score)
	}
	return series
}

func sumOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}
