package textproc

import (
	"os"

	"gopkg.in/yaml.v3"
)

// defaultLemmas is the built-in lemma table. It only covers forms that matter
// for lexicon matching; unknown words pass through unchanged.
var defaultLemmas = map[string]string{
	"quits":       "quit",
	"quitting":    "quit",
	"perseveres":  "persevere",
	"persevered":  "persevere",
	"persevering": "persevere",
	"avoids":      "avoid",
	"avoided":     "avoid",
	"avoiding":    "avoid",
	"conceals":    "conceal",
	"concealed":   "conceal",
	"concealing":  "conceal",
	"issues":      "issue",
	"improves":    "improve",
	"improved":    "improve",
	"improving":   "improve",
	"supports":    "support",
	"supported":   "support",
	"supporting":  "support",
	"fails":       "fail",
	"failed":      "fail",
	"failing":     "fail",
}

type lemmatizer struct {
	lemmas map[string]string
}

// NewLemmatizer creates a lemmatization stage using the built-in lemma table.
// It re-tokenizes its input internally, which keeps token order intact.
func NewLemmatizer() Stage {
	return &lemmatizer{lemmas: defaultLemmas}
}

// NewLemmatizerFromFile creates a lemmatization stage whose table is loaded
// from a YAML file mapping word forms to lemmas. When the file is missing or
// unparsable the stage degrades to the built-in table rather than failing:
// a broken linguistic resource must never abort an interview.
func NewLemmatizerFromFile(path string) Stage {
	lemmas, err := loadLemmaTable(path)
	if err != nil || len(lemmas) == 0 {
		return &lemmatizer{lemmas: defaultLemmas}
	}
	return &lemmatizer{lemmas: lemmas}
}

func loadLemmaTable(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lemmas := make(map[string]string)
	if err := yaml.Unmarshal(data, &lemmas); err != nil {
		return nil, err
	}
	return lemmas, nil
}

func (l *lemmatizer) Name() string { return "lemmatize" }

func (l *lemmatizer) Process(text string) []string {
	tokens := Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if lemma, ok := l.lemmas[token]; ok {
			out = append(out, lemma)
			continue
		}
		out = append(out, token)
	}
	return out
}
