// Package recordstore implements the columnar, label-keyed interview record.
// A record is one CSV file per candidate: columns ordered by first insertion,
// exactly four rows per column (label, prompt, response, score).
package recordstore

import (
	"strconv"
	"strings"
)

// Fixed row positions of the column schema.
const (
	RowLabel    = 0
	RowPrompt   = 1
	RowResponse = 2
	RowScore    = 3

	// RowCount is the exact number of logical rows in a record file.
	RowCount = 4
)

// Reserved column labels.
const (
	LabelWage  = "Wage_Expectation"
	LabelFinal = "FINAL"
)

// QuestionCount is the number of scored interview questions per session.
const QuestionCount = 16

// AnswerColumn is the atomic persisted unit: one label's full four-field
// record inside the store. Missing values persist as empty string / 0.0,
// never as absent fields.
type AnswerColumn struct {
	Label    string
	Prompt   string
	Response string
	Score    float64
}

// Record is an ordered sequence of AnswerColumns for one candidate.
type Record struct {
	Columns []AnswerColumn
}

// Empty reports whether the record has no columns.
func (r *Record) Empty() bool {
	return r == nil || len(r.Columns) == 0
}

// Labels returns the column labels in insertion order.
func (r *Record) Labels() []string {
	labels := make([]string, 0, len(r.Columns))
	for _, col := range r.Columns {
		labels = append(labels, col.Label)
	}
	return labels
}

// Find returns the column with the given label, if present.
func (r *Record) Find(label string) (AnswerColumn, bool) {
	for _, col := range r.Columns {
		if col.Label == label {
			return col, true
		}
	}
	return AnswerColumn{}, false
}

// Finalized reports whether a FINAL column has been appended. A finalized
// record is logically immutable; all further reads are historical reporting.
func (r *Record) Finalized() bool {
	_, ok := r.Find(LabelFinal)
	return ok
}

// QuestionColumns returns the Q* columns in insertion order, capped at the
// first QuestionCount. Leveling, wage and FINAL columns are excluded.
func (r *Record) QuestionColumns() []AnswerColumn {
	cols := make([]AnswerColumn, 0, QuestionCount)
	for _, col := range r.Columns {
		if !IsQuestionLabel(col.Label) {
			continue
		}
		cols = append(cols, col)
		if len(cols) == QuestionCount {
			break
		}
	}
	return cols
}

// QuestionScores returns the scores of the question columns.
func (r *Record) QuestionScores() []float64 {
	cols := r.QuestionColumns()
	scores := make([]float64, 0, len(cols))
	for _, col := range cols {
		scores = append(scores, col.Score)
	}
	return scores
}

// IsQuestionLabel reports whether the label names a scored question column
// (Q1..Q16 and beyond; anything of the form Q<number>).
func IsQuestionLabel(label string) bool {
	rest, ok := strings.CutPrefix(label, "Q")
	if !ok || rest == "" {
		return false
	}
	_, err := strconv.Atoi(rest)
	return err == nil
}
