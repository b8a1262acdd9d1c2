package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hireon/hireon/internal/idgen"
	"github.com/hireon/hireon/internal/logger"
	"github.com/hireon/hireon/internal/profile"
	"github.com/hireon/hireon/internal/questions"
	"github.com/hireon/hireon/internal/recordstore"
	"github.com/hireon/hireon/internal/secrets"
	"github.com/hireon/hireon/internal/sentiment"
	"github.com/hireon/hireon/internal/sentiment/gemini"
	"github.com/hireon/hireon/internal/session"
	"github.com/hireon/hireon/internal/textproc"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a scored interview for one candidate",
	Run: func(cmd *cobra.Command, _ []string) {
		interview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().StringP("position", "p", "", "job position to interview for (prompted when unset)")
	interviewCmd.Flags().StringP("candidate-id", "c", "", "reuse a fixed candidate id instead of generating one")

	viper.BindPFlag("position", interviewCmd.Flags().Lookup("position"))
}

// interview is the main command for the cli.
func interview(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hireon interview", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	bank, err := questions.Load(config.BankFile)
	if err != nil {
		logger.Fatal("loading the question bank", zap.Error(err))
	}

	positionName, err := selectPosition(bank)
	if err != nil {
		logger.Fatal("selecting a position", zap.Error(err))
	}

	position, err := bank.Position(positionName)
	if err != nil {
		logger.Fatal("resolving the position", zap.Error(err))
	}

	candidate, err := intakeCandidate(cmd, positionName)
	if err != nil {
		logger.Fatal("collecting candidate details", zap.Error(err))
	}

	chain := buildChain(config.Scoring, logger)

	scorer, err := buildScorer(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the sentiment scorer", zap.Error(err))
	}

	budget := position.Wage.Standard
	if config.Decision != nil && config.Decision.Budget > 0 {
		budget = config.Decision.Budget
	}

	store := recordstore.New(logger)

	sess, err := session.New(session.Config{
		CandidateID:      candidate.ID,
		RecordPath:       filepath.Join(config.ReportsDir, candidate.ID+".csv"),
		CompanyBudget:    budget,
		MonthsExperience: candidate.MonthsExperience,
		Thresholds:       resolveThresholds(config.Decision),
	}, chain, scorer, store, logger)
	if err != nil {
		logger.Fatal("starting the interview session", zap.Error(err))
	}

	logger.Info("interview session started",
		zap.String("candidate_id", candidate.ID),
		zap.String("position", positionName),
		zap.String("scorer", scorer.Name()),
	)

	for _, prompt := range bank.Leveling {
		if err := askAndProcess(ctx, sess, prompt); err != nil {
			logger.Fatal("processing a leveling answer", zap.Error(err))
		}
	}

	tierQuestions, err := position.Questions(sess.Tier())
	if err != nil {
		logger.Fatal("resolving the question tier", zap.Error(err))
	}

	logger.Info("tier questions selected",
		zap.String("difficulty", string(sess.Tier())),
		zap.Int("count", len(tierQuestions)),
	)

	for _, prompt := range tierQuestions {
		if err := askAndProcess(ctx, sess, prompt); err != nil {
			logger.Fatal("processing an answer", zap.Error(err))
		}
	}

	wage, err := askWage(bank.WagePrompt)
	if err != nil {
		logger.Fatal("capturing the wage expectation", zap.Error(err))
	}
	candidate.WageExpectation = wage

	if err := profile.NewFileStore(config.ProfilesDir).Save(candidate); err != nil {
		logger.Fatal("saving the candidate profile", zap.Error(err))
	}

	result, err := sess.Finalize(bank.WagePrompt, wage)
	if err != nil {
		logger.Fatal("finalizing the interview", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Printf("%s\n", pretty)

	logger.Info("interview finished",
		zap.String("candidate_id", candidate.ID),
		zap.String("recommendation", string(result.Label)),
	)
}

func selectPosition(bank *questions.Bank) (string, error) {
	if flagged := strings.TrimSpace(viper.GetString("position")); flagged != "" {
		return flagged, nil
	}

	prompt := promptui.Select{
		Label: "Choose a position and press ENTER",
		Items: bank.Names(),
	}

	_, selected, err := prompt.Run()
	return selected, err
}

func intakeCandidate(cmd *cobra.Command, position string) (*profile.Profile, error) {
	id := strings.TrimSpace(cmd.Flag("candidate-id").Value.String())
	if id == "" {
		id = idgen.NewUUID().Next()
	}

	namePrompt := promptui.Prompt{
		Label: "Candidate name",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("name must not be empty")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, err
	}

	monthsPrompt := promptui.Prompt{
		Label:    "Months of working experience",
		Validate: validateNonNegativeInt,
	}
	monthsRaw, err := monthsPrompt.Run()
	if err != nil {
		return nil, err
	}
	months, _ := strconv.Atoi(strings.TrimSpace(monthsRaw))

	return &profile.Profile{
		ID:               id,
		Name:             strings.TrimSpace(name),
		Position:         position,
		MonthsExperience: months,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

func askAndProcess(ctx context.Context, sess *session.Session, prompt string) error {
	answerPrompt := promptui.Prompt{
		Label: prompt,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("an answer is required")
			}
			return nil
		},
	}

	answer, err := answerPrompt.Run()
	if err != nil {
		return err
	}

	_, err = sess.ProcessAnswer(ctx, prompt, answer)
	return err
}

func askWage(label string) (int, error) {
	wagePrompt := promptui.Prompt{
		Label:    label,
		Validate: validateNonNegativeInt,
	}

	raw, err := wagePrompt.Run()
	if err != nil {
		return 0, err
	}

	wage, _ := strconv.Atoi(strings.TrimSpace(raw))
	return wage, nil
}

func validateNonNegativeInt(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("a whole number is required")
	}
	if n < 0 {
		return fmt.Errorf("the number must not be negative")
	}
	return nil
}

func buildChain(cfg *ScoringConfig, log *zap.Logger) *textproc.Chain {
	stages := []textproc.Stage{textproc.NewTokenizer()}

	if cfg != nil && cfg.UseStem {
		stages = append(stages, textproc.NewStemmer())
	}
	if cfg != nil && cfg.UseLemma {
		if cfg.LemmaFile != "" {
			stages = append(stages, textproc.NewLemmatizerFromFile(cfg.LemmaFile))
		} else {
			stages = append(stages, textproc.NewLemmatizer())
		}
	}

	return textproc.NewChain(log, stages...)
}

func buildScorer(ctx context.Context, config *Config, log *zap.Logger) (sentiment.Scorer, error) {
	strategy := "behavioral"
	if config.Scoring != nil && config.Scoring.Strategy != "" {
		strategy = strings.ToLower(strings.TrimSpace(config.Scoring.Strategy))
	}

	switch strategy {
	case "behavioral":
		if config.Scoring != nil && config.Scoring.LexiconFile != "" {
			lexicon, err := sentiment.LoadLexicon(config.Scoring.LexiconFile)
			if err != nil {
				return nil, err
			}
			return sentiment.NewBehavioralWithLexicon(lexicon)
		}
		return sentiment.NewBehavioral(), nil
	case "rule-based":
		return sentiment.NewRuleBased(), nil
	case "gemini":
		return buildGeminiScorer(ctx, config.AI, log)
	default:
		return nil, fmt.Errorf("unsupported scoring strategy: %s", strategy)
	}
}

func buildGeminiScorer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (sentiment.Scorer, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required for the gemini scoring strategy")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := log.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewScorer(generator, cfg.Gemini.MaxLogLength, log), nil
}
