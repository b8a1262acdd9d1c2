package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/hireon/hireon/internal/decision"
	"github.com/hireon/hireon/internal/recordstore"
	"github.com/hireon/hireon/internal/sentiment"
	"github.com/hireon/hireon/internal/textproc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubScorer struct {
	score float64
	err   error
}

func (s *stubScorer) Name() string { return "stub" }

func (s *stubScorer) ScoreAxes(_ context.Context, _ []string) (sentiment.AxisScore, error) {
	if s.err != nil {
		return nil, s.err
	}
	axes := make(sentiment.AxisScore, len(sentiment.Axes))
	for _, axis := range sentiment.Axes {
		axes[axis] = s.score
	}
	return axes, nil
}

func newTestSession(t *testing.T, scorer sentiment.Scorer, months int) (*Session, *recordstore.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "candidate.csv")
	store := recordstore.New(zap.NewNop())
	chain := textproc.NewChain(zap.NewNop())

	sess, err := New(Config{
		CandidateID:      "cand-001",
		RecordPath:       path,
		CompanyBudget:    100000,
		MonthsExperience: months,
		Thresholds:       decision.DefaultThresholds(),
	}, chain, scorer, store, zap.NewNop())
	require.NoError(t, err)

	return sess, store, path
}

func answerAll(t *testing.T, sess *Session) {
	t.Helper()

	ctx := context.Background()
	for i := 0; i < levelingCount+recordstore.QuestionCount; i++ {
		_, err := sess.ProcessAnswer(ctx, fmt.Sprintf("prompt %d", i), "I always deliver on my commitments")
		require.NoError(t, err)
	}
}

func TestSessionFullFlow(t *testing.T) {
	sess, store, path := newTestSession(t, &stubScorer{score: 0.8}, 24)

	assert.Equal(t, StateLeveling, sess.State())
	answerAll(t, sess)
	assert.Equal(t, StateWage, sess.State())
	assert.Equal(t, decision.Advanced, sess.Tier())

	result, err := sess.Finalize("What is your expected salary?", 90000)
	require.NoError(t, err)
	assert.Equal(t, StateDone, sess.State())
	assert.Equal(t, decision.Accept, result.Label)
	assert.Zero(t, result.Penalty)

	record := store.Load(path)
	require.True(t, record.Finalized())
	assert.Len(t, record.QuestionScores(), recordstore.QuestionCount)

	wage, ok := record.Find(recordstore.LabelWage)
	require.True(t, ok)
	assert.Equal(t, "90000", wage.Response)

	id, ok := record.Find("ID")
	require.True(t, ok)
	assert.Equal(t, "cand-001", id.Response)
}

func TestSessionLabelSequence(t *testing.T) {
	sess, store, path := newTestSession(t, &stubScorer{score: 0.5}, 6)

	answerAll(t, sess)
	_, err := sess.Finalize("wage?", 40000)
	require.NoError(t, err)

	want := []string{"ID", "L1", "L2"}
	for i := 1; i <= recordstore.QuestionCount; i++ {
		want = append(want, fmt.Sprintf("Q%d", i))
	}
	want = append(want, recordstore.LabelWage, recordstore.LabelFinal)

	assert.Equal(t, want, store.Load(path).Labels())
}

func TestSessionTierFromProfileMonths(t *testing.T) {
	cases := []struct {
		months int
		want   decision.Difficulty
	}{
		{6, decision.Beginner},
		{12, decision.Intermediate},
		{18, decision.Advanced},
	}

	for _, tc := range cases {
		sess, _, _ := newTestSession(t, &stubScorer{score: 0.5}, tc.months)

		ctx := context.Background()
		for i := 0; i < levelingCount; i++ {
			_, err := sess.ProcessAnswer(ctx, "leveling", "answer")
			require.NoError(t, err)
		}

		assert.Equal(t, tc.want, sess.Tier(), "months=%d", tc.months)
		assert.Equal(t, StateQuestions, sess.State())
	}
}

func TestSessionScoringFailureDegradesToNeutral(t *testing.T) {
	sess, store, path := newTestSession(t, &stubScorer{err: errors.New("backend down")}, 12)

	score, err := sess.ProcessAnswer(context.Background(), "tell me about yourself", "an answer")
	require.NoError(t, err)
	assert.Zero(t, score)

	col, ok := store.Load(path).Find("L1")
	require.True(t, ok)
	assert.Zero(t, col.Score)
}

func TestSessionRejectsAnswersAfterQuestions(t *testing.T) {
	sess, _, _ := newTestSession(t, &stubScorer{score: 0.5}, 12)

	answerAll(t, sess)

	_, err := sess.ProcessAnswer(context.Background(), "extra", "answer")
	assert.ErrorIs(t, err, ErrNoMoreAnswers)
}

func TestSessionFinalizeBeforeQuestionsDone(t *testing.T) {
	sess, _, _ := newTestSession(t, &stubScorer{score: 0.5}, 12)

	_, err := sess.Finalize("wage?", 50000)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestSessionFinalizeTwice(t *testing.T) {
	sess, _, _ := newTestSession(t, &stubScorer{score: 0.5}, 12)

	answerAll(t, sess)
	_, err := sess.Finalize("wage?", 50000)
	require.NoError(t, err)

	_, err = sess.Finalize("wage?", 50000)
	assert.ErrorIs(t, err, ErrFinalized)

	_, err = sess.ProcessAnswer(context.Background(), "late", "answer")
	assert.ErrorIs(t, err, ErrFinalized)
}

func TestSessionNegativeWage(t *testing.T) {
	sess, _, _ := newTestSession(t, &stubScorer{score: 0.5}, 12)

	answerAll(t, sess)
	_, err := sess.Finalize("wage?", -1)
	assert.Error(t, err)
}

func TestSessionWagePenaltyApplied(t *testing.T) {
	sess, _, _ := newTestSession(t, &stubScorer{score: 0.9}, 24)

	answerAll(t, sess)

	// 200000 / 100000 exceeds the golden ratio, so the cliff penalty fires.
	result, err := sess.Finalize("wage?", 200000)
	require.NoError(t, err)
	assert.Equal(t, decision.WagePenaltyValue, result.Penalty)
}

func TestSessionQuestionIndex(t *testing.T) {
	sess, _, _ := newTestSession(t, &stubScorer{score: 0.5}, 12)

	assert.Zero(t, sess.QuestionIndex())

	ctx := context.Background()
	for i := 0; i < levelingCount+3; i++ {
		_, err := sess.ProcessAnswer(ctx, "prompt", "answer")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, sess.QuestionIndex())
}

func TestNewRejectsBadConfig(t *testing.T) {
	store := recordstore.New(zap.NewNop())
	chain := textproc.NewChain(zap.NewNop())
	scorer := &stubScorer{score: 0.5}
	path := filepath.Join(t.TempDir(), "c.csv")

	base := Config{
		CandidateID:      "c1",
		RecordPath:       path,
		CompanyBudget:    1000,
		MonthsExperience: 1,
		Thresholds:       decision.DefaultThresholds(),
	}

	missingID := base
	missingID.CandidateID = ""
	_, err := New(missingID, chain, scorer, store, zap.NewNop())
	assert.Error(t, err)

	missingPath := base
	missingPath.RecordPath = ""
	_, err = New(missingPath, chain, scorer, store, zap.NewNop())
	assert.Error(t, err)

	negMonths := base
	negMonths.MonthsExperience = -1
	_, err = New(negMonths, chain, scorer, store, zap.NewNop())
	assert.Error(t, err)

	_, err = New(base, chain, nil, store, zap.NewNop())
	assert.Error(t, err)
}
