package textproc

import "strings"

// suffix replacement rules, applied in order; the first match wins.
var stemRules = []struct {
	suffix  string
	replace string
}{
	{"ization", "ize"},
	{"ational", "ate"},
	{"fulness", "ful"},
	{"iveness", "ive"},
	{"ingly", ""},
	{"edly", ""},
	{"ation", "ate"},
	{"ness", ""},
	{"ment", ""},
	{"sses", "ss"},
	{"ies", "i"},
	{"ing", ""},
	{"ed", ""},
	{"ly", ""},
}

const minStemLength = 3

type stemmer struct{}

// NewStemmer creates a lightweight suffix-stripping stemmer stage. It
// re-tokenizes its input internally, which keeps token order intact.
func NewStemmer() Stage {
	return &stemmer{}
}

func (s *stemmer) Name() string { return "stem" }

func (s *stemmer) Process(text string) []string {
	tokens := Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, StemWord(token))
	}
	return out
}

// StemWord strips the first matching suffix rule from the word. Words that
// would shrink below the minimum stem length are left untouched.
func StemWord(word string) string {
	for _, rule := range stemRules {
		if !strings.HasSuffix(word, rule.suffix) {
			continue
		}

		stem := word[:len(word)-len(rule.suffix)] + rule.replace
		if len(stem) < minStemLength {
			return word
		}
		return stem
	}
	return word
}
