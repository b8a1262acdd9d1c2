package sentiment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AxisWords holds the positive and negative vocabularies for one axis.
type AxisWords struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// Lexicon maps axis names to their vocabularies.
type Lexicon map[string]AxisWords

// DefaultLexicon returns the built-in behavioral lexicon.
func DefaultLexicon() Lexicon {
	return Lexicon{
		AxisDetermination: {
			Positive: []string{
				"dedicated", "persistent", "determined", "motivated",
				"driven", "resilient", "committed", "persevere", "ambitious",
			},
			Negative: []string{
				"unmotivated", "quit", "apathetic", "indifferent", "disengaged",
			},
		},
		AxisWillingness: {
			Positive: []string{
				"willing", "eager", "enthusiastic", "open", "cooperative",
				"adaptable", "flexible", "proactive",
			},
			Negative: []string{
				"unwilling", "reluctant", "resistant", "hesitant", "avoid", "averse",
			},
		},
		AxisReliability: {
			Positive: []string{
				"punctual", "consistent", "dependable", "responsible",
				"organized", "reliable", "steady", "trustworthy",
			},
			Negative: []string{
				"late", "inconsistent", "unreliable", "irresponsible", "careless", "erratic",
			},
		},
		AxisHonesty: {
			Positive: []string{
				"honest", "transparent", "truthful", "sincere",
				"straightforward", "upfront", "trustworthy",
			},
			Negative: []string{
				"dishonest", "untruthful", "deceptive", "evasive", "misleading", "conceal",
			},
		},
	}
}

// LoadLexicon reads a lexicon override from a YAML file.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon file %q: %w", path, err)
	}

	var lexicon Lexicon
	if err := yaml.Unmarshal(data, &lexicon); err != nil {
		return nil, fmt.Errorf("parsing lexicon file %q: %w", path, err)
	}

	if err := lexicon.Validate(); err != nil {
		return nil, fmt.Errorf("lexicon file %q: %w", path, err)
	}

	return lexicon, nil
}

// Validate checks that every canonical axis has a vocabulary.
func (l Lexicon) Validate() error {
	for _, axis := range Axes {
		words, ok := l[axis]
		if !ok {
			return fmt.Errorf("axis %q is missing", axis)
		}
		if len(words.Positive) == 0 && len(words.Negative) == 0 {
			return fmt.Errorf("axis %q has an empty vocabulary", axis)
		}
	}
	return nil
}

type wordSet map[string]struct{}

type axisVocab struct {
	pos wordSet
	neg wordSet
}

func (l Lexicon) compile() map[string]axisVocab {
	compiled := make(map[string]axisVocab, len(l))

	for axis, words := range l {
		pos := make(wordSet, len(words.Positive))
		for _, w := range words.Positive {
			pos[w] = struct{}{}
		}
		neg := make(wordSet, len(words.Negative))
		for _, w := range words.Negative {
			neg[w] = struct{}{}
		}
		compiled[axis] = axisVocab{pos: pos, neg: neg}
	}

	return compiled
}
