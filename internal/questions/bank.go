// Package questions loads the interview question bank. The core treats the
// bank as opaque ordered lists of prompts; only its shape is validated here.
package questions

import (
	"fmt"
	"os"
	"sort"

	"github.com/hireon/hireon/internal/decision"
	"github.com/hireon/hireon/internal/recordstore"
	"gopkg.in/yaml.v3"
)

// LevelingCount is the number of preliminary leveling questions. They gather
// experience context only and are excluded from scoring.
const LevelingCount = 2

// Bank is the full question bank for every position and difficulty tier.
type Bank struct {
	Leveling   []string            `yaml:"leveling"`
	WagePrompt string              `yaml:"wage_prompt"`
	Positions  map[string]Position `yaml:"positions"`
}

// Position holds one job position's wage range and per-tier question lists.
type Position struct {
	Wage   WageRange           `yaml:"wage"`
	Levels map[string][]string `yaml:"levels"`
}

// WageRange describes the budget envelope for a position.
type WageRange struct {
	Min      int `yaml:"min"`
	Max      int `yaml:"max"`
	Standard int `yaml:"standard"`
}

// Load reads and validates a question bank from a YAML file.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question bank %q: %w", path, err)
	}

	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parsing question bank %q: %w", path, err)
	}

	if err := bank.Validate(); err != nil {
		return nil, fmt.Errorf("question bank %q: %w", path, err)
	}

	return &bank, nil
}

// Validate checks the bank's shape: two leveling questions, a wage prompt,
// and exactly the scored question count for every position and tier.
func (b *Bank) Validate() error {
	if len(b.Leveling) != LevelingCount {
		return fmt.Errorf("expected %d leveling questions, got %d", LevelingCount, len(b.Leveling))
	}
	if b.WagePrompt == "" {
		return fmt.Errorf("wage_prompt is required")
	}
	if len(b.Positions) == 0 {
		return fmt.Errorf("at least one position is required")
	}

	tiers := []decision.Difficulty{decision.Beginner, decision.Intermediate, decision.Advanced}
	for name, position := range b.Positions {
		for _, tier := range tiers {
			list, ok := position.Levels[string(tier)]
			if !ok {
				return fmt.Errorf("position %q is missing tier %q", name, tier)
			}
			if len(list) != recordstore.QuestionCount {
				return fmt.Errorf("position %q tier %q: expected %d questions, got %d",
					name, tier, recordstore.QuestionCount, len(list))
			}
		}
		if position.Wage.Standard <= 0 {
			return fmt.Errorf("position %q: standard wage must be positive", name)
		}
	}

	return nil
}

// Position returns the named position.
func (b *Bank) Position(name string) (Position, error) {
	position, ok := b.Positions[name]
	if !ok {
		return Position{}, fmt.Errorf("unknown position %q", name)
	}
	return position, nil
}

// Questions returns the ordered question list for a difficulty tier.
func (p Position) Questions(tier decision.Difficulty) ([]string, error) {
	list, ok := p.Levels[string(tier)]
	if !ok {
		return nil, fmt.Errorf("unknown tier %q", tier)
	}
	return list, nil
}

// Names returns the position names, sorted for stable interactive selection.
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.Positions))
	for name := range b.Positions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
