package recordstore

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsQuestionLabel(t *testing.T) {
	valid := []string{"Q1", "Q16", "Q99"}
	for _, label := range valid {
		assert.True(t, IsQuestionLabel(label), label)
	}

	invalid := []string{"L1", "L2", "Q", "Qx", LabelWage, LabelFinal, "q1", ""}
	for _, label := range invalid {
		assert.False(t, IsQuestionLabel(label), label)
	}
}

func TestQuestionScoresExcludesNonQuestions(t *testing.T) {
	record := &Record{Columns: []AnswerColumn{
		{Label: "L1", Score: 0.9},
		{Label: "L2", Score: 0.9},
		{Label: "Q1", Score: 0.1},
		{Label: "Q2", Score: 0.2},
		{Label: LabelWage, Score: 0.0},
		{Label: LabelFinal, Score: 0.0},
	}}

	assert.Equal(t, []float64{0.1, 0.2}, record.QuestionScores())
}

func TestQuestionScoresCapped(t *testing.T) {
	record := &Record{}
	for i := 1; i <= QuestionCount+3; i++ {
		record.Columns = append(record.Columns, AnswerColumn{
			Label: fmt.Sprintf("Q%d", i),
			Score: float64(i),
		})
	}

	scores := record.QuestionScores()
	require.Len(t, scores, QuestionCount)
	assert.Equal(t, 1.0, scores[0])
	assert.Equal(t, float64(QuestionCount), scores[QuestionCount-1])
}

func TestFinalized(t *testing.T) {
	record := &Record{Columns: []AnswerColumn{{Label: "Q1"}}}
	assert.False(t, record.Finalized())

	record.Columns = append(record.Columns, AnswerColumn{Label: LabelFinal})
	assert.True(t, record.Finalized())
}

func TestEmptyRecord(t *testing.T) {
	var nilRecord *Record
	assert.True(t, nilRecord.Empty())
	assert.True(t, (&Record{}).Empty())

	record := &Record{Columns: []AnswerColumn{{Label: "Q1"}}}
	assert.False(t, record.Empty())

	_, found := record.Find("missing")
	assert.False(t, found)
}
