// Package session sequences one candidate's interview: two leveling
// questions, sixteen tier questions, wage capture, then finalization. Each
// answer is scored and persisted synchronously before the next is accepted.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/hireon/hireon/internal/decision"
	"github.com/hireon/hireon/internal/logger"
	"github.com/hireon/hireon/internal/recordstore"
	"github.com/hireon/hireon/internal/sentiment"
	"github.com/hireon/hireon/internal/textproc"
	"go.uber.org/zap"
)

// State is the session's position in the interview sequence.
type State string

const (
	StateLeveling  State = "leveling"
	StateQuestions State = "questions"
	StateWage      State = "wage"
	StateDone      State = "done"
)

// Sequencing errors. These indicate caller bugs, not bad candidate input.
var (
	// ErrNoMoreAnswers is returned when an answer arrives after the
	// question phase is complete.
	ErrNoMoreAnswers = errors.New("no more answers expected")
	// ErrNotReady is returned when finalization is requested before every
	// question has been answered.
	ErrNotReady = errors.New("interview is not ready to finalize")
	// ErrFinalized is returned on any write to a finalized session.
	ErrFinalized = errors.New("interview already finalized")
)

// Config carries the per-candidate session parameters. MonthsExperience
// comes from the external profile, never from the leveling answers.
type Config struct {
	CandidateID      string
	RecordPath       string
	CompanyBudget    int
	MonthsExperience int
	Thresholds       decision.Thresholds
}

// Session orchestrates the interview for exactly one candidate. One record
// maps to one session; concurrent sessions for the same candidate must be
// serialized by the caller.
type Session struct {
	cfg    Config
	chain  *textproc.Chain
	scorer sentiment.Scorer
	store  *recordstore.Store
	engine *decision.Engine
	logger *zap.Logger

	state          State
	answered       int
	questionScores []float64
	tier           decision.Difficulty
}

// New creates a session and reserves the candidate's record file with the
// initial identity column.
func New(cfg Config, chain *textproc.Chain, scorer sentiment.Scorer, store *recordstore.Store, log *zap.Logger) (*Session, error) {
	if cfg.CandidateID == "" {
		return nil, fmt.Errorf("candidate id is required")
	}
	if cfg.RecordPath == "" {
		return nil, fmt.Errorf("record path is required")
	}
	if cfg.MonthsExperience < 0 {
		return nil, fmt.Errorf("months of experience must not be negative")
	}
	if scorer == nil {
		return nil, fmt.Errorf("sentiment scorer is required")
	}

	engine, err := decision.New(cfg.CompanyBudget, cfg.Thresholds)
	if err != nil {
		return nil, err
	}

	if err := store.Ensure(cfg.RecordPath, []string{"ID"}); err != nil {
		return nil, fmt.Errorf("preparing record file: %w", err)
	}
	if err := store.AppendColumn(cfg.RecordPath, "ID", "", cfg.CandidateID, "0.0"); err != nil {
		return nil, fmt.Errorf("writing identity column: %w", err)
	}

	return &Session{
		cfg:    cfg,
		chain:  chain,
		scorer: scorer,
		store:  store,
		engine: engine,
		logger: logger.WithScoringFields(log, scorer.Name(), cfg.CandidateID),
		state:  StateLeveling,
	}, nil
}

// State returns the current sequencing state.
func (s *Session) State() State { return s.state }

// Tier returns the difficulty tier. It is decided once, immediately after
// both leveling answers are recorded.
func (s *Session) Tier() decision.Difficulty { return s.tier }

// QuestionIndex returns the zero-based index of the next tier question.
func (s *Session) QuestionIndex() int {
	if s.answered <= levelingCount {
		return 0
	}
	return s.answered - levelingCount
}

// ProcessAnswer scores one answer and appends its column before returning.
// The answer is either fully scored-and-persisted or nothing is recorded.
// Scoring failures degrade to a neutral score: a bad answer must never abort
// the interview.
func (s *Session) ProcessAnswer(ctx context.Context, prompt, answer string) (float64, error) {
	switch s.state {
	case StateLeveling, StateQuestions:
	case StateDone:
		return 0, ErrFinalized
	default:
		return 0, ErrNoMoreAnswers
	}

	score := s.scoreAnswer(ctx, answer)
	label := s.nextLabel()

	err := s.store.AppendColumn(s.cfg.RecordPath, label, prompt, answer, recordstore.FormatScore(score))
	if err != nil {
		return 0, fmt.Errorf("persisting answer %s: %w", label, err)
	}

	s.answered++
	if recordstore.IsQuestionLabel(label) {
		s.questionScores = append(s.questionScores, score)
	}

	s.logger.Info("answer recorded",
		zap.String("label", label),
		zap.Float64("score", score),
	)

	s.advance()
	return score, nil
}

// Finalize appends the wage column, judges the candidate on the collected
// question scores and appends the FINAL summary column.
func (s *Session) Finalize(wagePrompt string, wageExpectation int) (*decision.Result, error) {
	if s.state == StateDone {
		return nil, ErrFinalized
	}
	if s.state != StateWage {
		return nil, fmt.Errorf("%w: state is %s", ErrNotReady, s.state)
	}
	if wageExpectation < 0 {
		return nil, fmt.Errorf("wage expectation must not be negative, got %d", wageExpectation)
	}
	if len(s.questionScores) == 0 {
		return nil, fmt.Errorf("finalizing: %w", decision.ErrEmptyScores)
	}

	err := s.store.AppendColumn(s.cfg.RecordPath, recordstore.LabelWage,
		wagePrompt, strconv.Itoa(wageExpectation), "0.0")
	if err != nil {
		return nil, fmt.Errorf("persisting wage column: %w", err)
	}

	// Only question scores feed the decision; the sentiment input is their
	// mean, leveling and wage never contribute.
	avg := mean(s.questionScores)

	result, err := s.engine.Judge(s.questionScores, avg, s.cfg.MonthsExperience, wageExpectation)
	if err != nil {
		return nil, err
	}

	summary, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding final summary: %w", err)
	}

	err = s.store.AppendColumn(s.cfg.RecordPath, recordstore.LabelFinal,
		"Summary", string(summary), "0.0")
	if err != nil {
		return nil, fmt.Errorf("persisting final column: %w", err)
	}

	s.state = StateDone

	s.logger.Info("interview finalized",
		zap.Float64("final_score", result.FinalScore),
		zap.String("label", string(result.Label)),
		zap.String("difficulty", string(result.Difficulty)),
	)

	return result, nil
}

func (s *Session) scoreAnswer(ctx context.Context, answer string) float64 {
	tokens := s.chain.Process(answer)

	axes, err := s.scorer.ScoreAxes(ctx, tokens)
	if err != nil || !axes.Complete() {
		s.logger.Warn("scoring degraded to neutral", zap.Error(err))
		axes = sentiment.Neutral()
	}

	return axes.Overall()
}

func (s *Session) nextLabel() string {
	if s.answered < levelingCount {
		return fmt.Sprintf("L%d", s.answered+1)
	}
	return fmt.Sprintf("Q%d", s.answered-levelingCount+1)
}

func (s *Session) advance() {
	switch {
	case s.state == StateLeveling && s.answered >= levelingCount:
		s.tier = decision.DetermineDifficulty(s.cfg.MonthsExperience)
		s.state = StateQuestions
		s.logger.Info("tier selected",
			zap.String("difficulty", string(s.tier)),
			zap.Int("months_experience", s.cfg.MonthsExperience),
		)
	case s.state == StateQuestions && len(s.questionScores) >= recordstore.QuestionCount:
		s.state = StateWage
	}
}

const levelingCount = 2

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
