// Package textproc implements the text preprocessing chain that feeds the
// sentiment scorers. Stages are composable and substitutable: the chain runs
// them sequentially, each stage receiving the previous stage's tokens.
package textproc

import (
	"strings"

	"go.uber.org/zap"
)

// Stage represents a single preprocessing step applied to text.
type Stage interface {
	Name() string
	Process(text string) []string
}

// Chain composes preprocessing stages. The first stage consumes the raw text;
// subsequent stages receive the previous stage's tokens rejoined by spaces,
// so token order is always preserved.
type Chain struct {
	stages []Stage
	logger *zap.Logger
}

// NewChain builds a chain from the provided stages. A chain with no stages
// falls back to plain tokenization.
func NewChain(logger *zap.Logger, stages ...Stage) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(stages) == 0 {
		stages = []Stage{NewTokenizer()}
	}

	return &Chain{stages: stages, logger: logger}
}

// Process runs the text through every stage in order and returns the final
// token sequence. An empty result is valid, never an error.
func (c *Chain) Process(text string) []string {
	var tokens []string

	for i, stage := range c.stages {
		input := text
		if i > 0 {
			input = strings.Join(tokens, " ")
		}

		in := len(tokens)
		tokens = stage.Process(input)

		c.logger.Debug("preprocessing stage",
			zap.String("name", stage.Name()),
			zap.Int("tokens_in", in),
			zap.Int("tokens_out", len(tokens)),
		)
	}

	return tokens
}

// Stages returns the names of the configured stages, mostly for logging.
func (c *Chain) Stages() []string {
	names := make([]string, 0, len(c.stages))
	for _, stage := range c.stages {
		names = append(names, stage.Name())
	}
	return names
}
