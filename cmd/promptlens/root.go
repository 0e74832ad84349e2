package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/promptlens/promptlens/internal/projectconfig"
	"github.com/promptlens/promptlens/internal/webapi"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promptlens",
		Short: "promptlens - classification metrics for prompt experiments",
		Long: `promptlens scores intent-classification runs.

It computes confusion matrices, per-class and macro precision, recall, F1,
specificity and one-vs-rest ROC-AUC from (actual, predicted) label pairs,
generates synthetic patient-message datasets and prompt experiments, and
serves them to the dashboard.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	envFile := cmd.PersistentFlags().String("env-file", ".env", "Load environment variables from this file if it exists")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		return projectconfig.LoadDotEnv(*envFile)
	}

	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func execute() error {
	webapi.Version = version
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCommand().ExecuteContext(ctx)
}

// loadProjectConfig reads .promptlens.yaml from the working directory or a
// parent and applies PROMPTLENS_* overrides.
func loadProjectConfig() (*projectconfig.ProjectConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, path, err := projectconfig.LoadWithPath(wd)
	if err != nil {
		return nil, err
	}
	if path != "" {
		slog.Debug("loaded project config", "path", path)
	}
	if err := projectconfig.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}
