package textproc

import (
	"strings"
	"unicode"
)

type tokenizer struct{}

// NewTokenizer creates the base tokenization stage: lowercase, split on word
// boundaries, drop anything that is not alphanumeric.
func NewTokenizer() Stage {
	return &tokenizer{}
}

func (t *tokenizer) Name() string { return "tokenize" }

func (t *tokenizer) Process(text string) []string {
	return Tokenize(text)
}

// Tokenize lowercases the text and splits it into alphanumeric tokens.
// Punctuation acts as a boundary and never survives into the output.
func Tokenize(text string) []string {
	text = strings.ToLower(text)

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	if tokens == nil {
		return []string{}
	}
	return tokens
}

// NaiveSplit is the degraded fallback used when a stage's linguistic resource
// is unavailable: plain whitespace splitting on the lowercased text.
func NaiveSplit(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	if fields == nil {
		return []string{}
	}
	return fields
}
