package cmd

import (
	"errors"
	"log"

	"github.com/hireon/hireon/internal/decision"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "hireon"
)

type Config struct {
	ReportsDir  string          `mapstructure:"reports-dir"`
	ProfilesDir string          `mapstructure:"profiles-dir"`
	BankFile    string          `mapstructure:"bank-file"`
	Scoring     *ScoringConfig  `mapstructure:"scoring"`
	Decision    *DecisionConfig `mapstructure:"decision"`
	AI          *AIConfig       `mapstructure:"ai"`
}

type ScoringConfig struct {
	Strategy    string `mapstructure:"strategy"`
	LexiconFile string `mapstructure:"lexicon-file"`
	UseStem     bool   `mapstructure:"use-stem"`
	UseLemma    bool   `mapstructure:"use-lemma"`
	LemmaFile   string `mapstructure:"lemma-file"`
}

type DecisionConfig struct {
	Budget           int                  `mapstructure:"budget"`
	LegacyThresholds bool                 `mapstructure:"legacy-thresholds"`
	Thresholds       *decision.Thresholds `mapstructure:"thresholds"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hireon is a cli for running scored candidate interviews and reviewing their results",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hireon.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("reports-dir", "reports")
	viper.SetDefault("profiles-dir", "profiles")
	viper.SetDefault("bank-file", "questions.yaml")
	viper.SetDefault("scoring.strategy", "behavioral")
	viper.SetDefault("scoring.use-lemma", true)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// Every setting has a default, so a missing config file is fine unless
	// one was named explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

func resolveThresholds(cfg *DecisionConfig) decision.Thresholds {
	switch {
	case cfg == nil:
		return decision.DefaultThresholds()
	case cfg.Thresholds != nil:
		return *cfg.Thresholds
	case cfg.LegacyThresholds:
		return decision.LegacyThresholds()
	default:
		return decision.DefaultThresholds()
	}
}
