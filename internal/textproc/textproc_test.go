package textproc

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("I am VERY dedicated, and punctual!")
	want := []string{"i", "am", "very", "dedicated", "and", "punctual"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "!!! ... ???"} {
		tokens := Tokenize(input)
		if tokens == nil {
			t.Fatalf("expected empty slice for %q, got nil", input)
		}
		if len(tokens) != 0 {
			t.Fatalf("expected no tokens for %q, got %v", input, tokens)
		}
	}
}

func TestNaiveSplit(t *testing.T) {
	tokens := NaiveSplit("Fall Back MODE")
	want := []string{"fall", "back", "mode"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
}

func TestStemWord(t *testing.T) {
	cases := map[string]string{
		"working":    "work",
		"organized":  "organiz",
		"quickly":    "quick",
		"classes":    "class",
		"commitment": "commit",
		"go":         "go",
		"ed":         "ed",
	}

	for word, want := range cases {
		if got := StemWord(word); got != want {
			t.Fatalf("StemWord(%q) = %q, want %q", word, got, want)
		}
	}
}

func TestStemmerPreservesOrder(t *testing.T) {
	tokens := NewStemmer().Process("working late shifts repeatedly")
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %v", tokens)
	}
	if tokens[0] != "work" || tokens[1] != "late" {
		t.Fatalf("token order not preserved: %v", tokens)
	}
}

func TestLemmatizerUsesTable(t *testing.T) {
	tokens := NewLemmatizer().Process("she avoids issues")
	want := []string{"she", "avoid", "issue"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
}

func TestLemmatizerFromMissingFileDegrades(t *testing.T) {
	stage := NewLemmatizerFromFile("does/not/exist.yaml")

	tokens := stage.Process("he avoided the problem")
	want := []string{"he", "avoid", "the", "problem"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("expected built-in table fallback, got %v", tokens)
	}
}

func TestChainComposition(t *testing.T) {
	chain := NewChain(zap.NewNop(), NewTokenizer(), NewLemmatizer())

	tokens := chain.Process("He SUPPORTS the team, always!")
	want := []string{"he", "support", "the", "team", "always"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
}

func TestChainNoStagesFallsBackToTokenizer(t *testing.T) {
	chain := NewChain(nil)

	tokens := chain.Process("plain text")
	want := []string{"plain", "text"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}

	if names := chain.Stages(); len(names) != 1 || names[0] != "tokenize" {
		t.Fatalf("unexpected stages: %v", names)
	}
}
