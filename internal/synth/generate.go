// Package synth generates the synthetic patient-message dataset and the
// prompt optimization experiment shown on the dashboard.
package synth

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/promptlens/promptlens/internal/models"
	"github.com/promptlens/promptlens/internal/statistics"
)

// runNamespace scopes the run ids derived by Summarize.
var runNamespace = uuid.MustParse("6f1c9a52-3d0b-4c0e-9a7e-2b8f4d1e5c30")

// Options configures Generate.
type Options struct {
	Seed        int64
	Entries     int
	Prompts     []string
	Concurrency int
	// Now stamps the summary. Defaults to time.Now.
	Now func() time.Time
}

// Result is everything one generator run produces.
type Result struct {
	Dataset    models.Dataset
	Entries    []models.DatasetEntry
	Experiment *models.Experiment
	Summary    models.GenerationSummary
}

// Generate builds the dataset, runs the experiment over it and summarises
// both. The same options always produce the same result, apart from the
// summary timestamp.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	n := opts.Entries
	if n == 0 {
		n = DefaultEntries
	}
	if n < 0 {
		return nil, fmt.Errorf("entries must be positive, got %d", n)
	}

	ds, entries := GenerateDataset(rand.New(rand.NewSource(opts.Seed)), n)
	exp, err := GenerateExperiment(ctx, ds, entries, ExperimentOptions{
		Seed:        opts.Seed,
		Prompts:     opts.Prompts,
		Concurrency: opts.Concurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("generating experiment: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	res := &Result{Dataset: ds, Entries: entries, Experiment: exp}
	res.Summary = Summarize(ds, exp, opts.Seed, min(DefaultSampleSize, len(entries)), now().UTC())
	return res, nil
}

// Summarize reports how the experiment's accuracy moved across iterations.
// The run id is derived from the seed and shape of the run, so reruns of the
// same configuration share it.
func Summarize(ds models.Dataset, exp *models.Experiment, seed int64, sampleSize int, at time.Time) models.GenerationSummary {
	var history []models.MetricsOverTime
	if exp.Metrics != nil {
		history = exp.Metrics.MetricsOverTime
	}

	progression := make([]models.MetricsProgression, len(history))
	accuracies := make([]float64, len(history))
	for i, h := range history {
		progression[i] = models.MetricsProgression{
			Iteration: h.Iteration,
			Accuracy:  h.Metrics.Accuracy,
			Precision: h.Metrics.Precision,
			Recall:    h.Metrics.Recall,
			F1Score:   h.Metrics.F1Score,
		}
		accuracies[i] = h.Metrics.Accuracy
	}

	es := models.ExperimentSummary{
		Name:        exp.Name,
		Improvement: "0%",
	}
	if exp.Metrics != nil {
		es.Iterations = exp.Metrics.Iterations
		es.FinalAccuracy = exp.Metrics.Accuracy
	}
	if len(history) > 0 {
		first := history[0].Metrics.Accuracy
		es.Improvement = fmt.Sprintf("%.1f%%", (es.FinalAccuracy-first)*100)
		es.NormalizedGain = statistics.NormalizedGain(first, es.FinalAccuracy)
		ci := statistics.BootstrapCIWithSeed(accuracies, 0.95, max(seed, 0))
		es.AccuracyCI = models.AccuracyCI{Lower: ci.Lower, Upper: ci.Upper, Level: ci.Level}
	}

	key := fmt.Sprintf("%d/%s/%d/%d", seed, ds.Name, ds.Entries, es.Iterations)
	return models.GenerationSummary{
		RunID:       uuid.NewSHA1(runNamespace, []byte(key)).String(),
		Seed:        seed,
		GeneratedAt: at,
		Dataset: models.DatasetSummary{
			Name:       ds.Name,
			Entries:    ds.Entries,
			Columns:    ds.Columns,
			SampleSize: sampleSize,
		},
		Experiment:         es,
		MetricsProgression: progression,
	}
}
