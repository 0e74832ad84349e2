package main

import (
	"fmt"
	"time"

	"github.com/promptlens/promptlens/internal/spinner"
	"github.com/promptlens/promptlens/internal/synth"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newGenerateCommand() *cobra.Command {
	var (
		seed        int64
		entries     int
		outputDir   string
		promptsPath string
		gzipEntries bool
		appDataDir  string
		sampleSize  int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic dataset and prompt experiment",
		Long: `Generate a synthetic patient-message dataset and a prompt optimization
experiment over it.

Each prompt iteration simulates classifier predictions and scores them with
the metrics engine. Output is deterministic for a given seed. Flags override
.promptlens.yaml, which overrides the built-in defaults.

Files written to the output directory:
  generated-dataset.json
  generated-dataset-entries-sample.json
  generated-experiment.json
  generation-summary.json
  generated-dataset-entries.json.gz   (with --gzip)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadProjectConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("seed") {
				seed = *cfg.Generate.Seed
			}
			if !flags.Changed("entries") {
				entries = cfg.Generate.Entries
			}
			if !flags.Changed("output-dir") {
				outputDir = cfg.Generate.OutputDir
			}
			if !flags.Changed("prompts") {
				promptsPath = cfg.Generate.Prompts
			}
			if !flags.Changed("gzip") && cfg.Generate.Gzip != nil {
				gzipEntries = *cfg.Generate.Gzip
			}
			if !flags.Changed("app-data-dir") {
				appDataDir = cfg.Generate.AppDataDir
			}
			if !flags.Changed("sample-size") {
				sampleSize = cfg.Generate.SampleSize
			}
			if !flags.Changed("concurrency") {
				concurrency = cfg.Generate.Concurrency
			}
			if entries < 1 {
				return fmt.Errorf("--entries must be at least 1, got %d", entries)
			}

			var prompts []string
			if promptsPath != "" {
				if prompts, err = synth.LoadPrompts(promptsPath); err != nil {
					return err
				}
			}

			start := time.Now()
			stop := spinner.StartIfTerminal(cmd.ErrOrStderr(), "Generating dataset and experiment...")
			res, err := synth.Generate(cmd.Context(), synth.Options{
				Seed:        seed,
				Entries:     entries,
				Prompts:     prompts,
				Concurrency: concurrency,
			})
			stop()
			if err != nil {
				return err
			}
			paths, err := synth.WriteOutputs(outputDir, res, synth.OutputOptions{
				SampleSize: sampleSize,
				Gzip:       gzipEntries,
				AppDataDir: appDataDir,
			})
			if err != nil {
				return err
			}

			p := message.NewPrinter(language.English)
			w := cmd.OutOrStdout()
			sum := res.Summary
			p.Fprintf(w, "Generated %d entries across %d intents (seed %d) in %v\n",
				sum.Dataset.Entries, synth.Intents.Len(), seed, time.Since(start).Round(time.Millisecond))
			p.Fprintf(w, "Experiment: %d iterations, final accuracy %.1f%% (%s, normalized gain %.2f)\n",
				sum.Experiment.Iterations, sum.Experiment.FinalAccuracy*100,
				sum.Experiment.Improvement, sum.Experiment.NormalizedGain)
			p.Fprintf(w, "Run ID: %s\n", sum.RunID)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Files:")
			for _, path := range paths {
				fmt.Fprintf(w, "  %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default from config: 42)")
	cmd.Flags().IntVarP(&entries, "entries", "n", 0, "Number of dataset entries (default from config: 1000)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Output directory (default from config: generated/)")
	cmd.Flags().StringVar(&promptsPath, "prompts", "", "Markdown file of prompts, one per section or paragraph")
	cmd.Flags().BoolVar(&gzipEntries, "gzip", false, "Also write every entry to a gzip-compressed JSON file")
	cmd.Flags().StringVar(&appDataDir, "app-data-dir", "", "Also write datasets.json and experiments.json here")
	cmd.Flags().IntVar(&sampleSize, "sample-size", 0, "Entries in the sample file (default 50)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Prompt iterations evaluated in parallel (default: all)")

	return cmd
}
