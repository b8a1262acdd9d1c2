// Package gemini provides a model-backed sentiment strategy. It is an
// alternate implementation of sentiment.Scorer, not part of the deterministic
// core: selecting it trades reproducibility for model judgement.
package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hireon/hireon/internal/logger"
	"github.com/hireon/hireon/internal/sentiment"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Scorer asks a Gemini model to rate an answer on the canonical axes.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewScorer creates a Gemini-backed axis scorer.
func NewScorer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		logger:    logger.WithScoringFields(log, "gemini", ""),
		maxLogLen: maxLogLength,
	}
}

func (s *Scorer) Name() string { return "gemini" }

// ScoreAxes joins the tokens back into text, sends it to the model and parses
// the JSON axis response. Out-of-range values are clamped to [-1, 1].
func (s *Scorer) ScoreAxes(ctx context.Context, tokens []string) (sentiment.AxisScore, error) {
	text := strings.TrimSpace(strings.Join(tokens, " "))
	if text == "" {
		return sentiment.Neutral(), nil
	}

	prompt := fmt.Sprintf(promptTemplate, text)

	s.logger.Debug("gemini scoring request",
		zap.String("model", s.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini scoring response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	return parseResponse(raw)
}

type axisPayload struct {
	Determination float64 `mapstructure:"determination"`
	Willingness   float64 `mapstructure:"willingness"`
	Reliability   float64 `mapstructure:"reliability"`
	Honesty       float64 `mapstructure:"honesty"`
}

func parseResponse(raw string) (sentiment.AxisScore, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	for _, axis := range sentiment.Axes {
		if _, ok := parsed[axis]; !ok {
			return nil, fmt.Errorf("model response is missing axis %q", axis)
		}
	}

	var decoded axisPayload
	if err := mapstructure.Decode(parsed, &decoded); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}

	score := sentiment.AxisScore{
		sentiment.AxisDetermination: decoded.Determination,
		sentiment.AxisWillingness:   decoded.Willingness,
		sentiment.AxisReliability:   decoded.Reliability,
		sentiment.AxisHonesty:       decoded.Honesty,
	}
	for axis, value := range score {
		if math.IsNaN(value) {
			return nil, fmt.Errorf("model returned NaN for axis %q", axis)
		}
		score[axis] = math.Min(1, math.Max(-1, value))
	}

	return score, nil
}

// extractJSON returns the first top-level JSON object in the text. Models
// occasionally wrap the payload in markdown fences or prose.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return raw[start : end+1]
}
