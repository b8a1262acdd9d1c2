package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/hireon/hireon/internal/dashboard"
	"github.com/hireon/hireon/internal/logger"
	"github.com/hireon/hireon/internal/profile"
	"github.com/hireon/hireon/internal/recordstore"
	"github.com/hireon/hireon/internal/sentiment"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var reportCmd = &cobra.Command{
	Use:   "report [candidate-id]",
	Short: "Print the dashboard summary for a finished interview",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		report(args)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func report(args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	candidateID, err := resolveCandidate(args, config.ProfilesDir)
	if err != nil {
		logger.Fatal("selecting a candidate", zap.Error(err))
	}

	chain := buildChain(config.Scoring, logger)
	thresholds := resolveThresholds(config.Decision)

	builder := dashboard.New(
		recordstore.New(logger),
		chain,
		sentiment.NewBehavioral(),
		thresholds.Accept,
		logger,
	)

	path := filepath.Join(config.ReportsDir, candidateID+".csv")

	summary, err := builder.Build(ctx, path, candidateID)
	if err != nil {
		logger.Fatal("building the dashboard", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logger.Fatal("encoding the dashboard", zap.Error(err))
	}

	fmt.Printf("%s\n", pretty)
}

func resolveCandidate(args []string, profilesDir string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}

	ids, err := profile.NewFileStore(profilesDir).List()
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no stored candidate profiles in %q", profilesDir)
	}

	prompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: ids,
	}

	_, selected, err := prompt.Run()
	return selected, err
}
