package synth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// Files written by WriteOutputs.
const (
	DatasetFile       = "generated-dataset.json"
	EntriesSampleFile = "generated-dataset-entries-sample.json"
	EntriesGzipFile   = "generated-dataset-entries.json.gz"
	ExperimentFile    = "generated-experiment.json"
	SummaryFile       = "generation-summary.json"

	// AppDatasetsFile and AppExperimentsFile hold catalog arrays in an app
	// data directory.
	AppDatasetsFile    = "datasets.json"
	AppExperimentsFile = "experiments.json"
)

// DefaultSampleSize is how many entries go into the sample file.
const DefaultSampleSize = 50

// OutputOptions configures WriteOutputs.
type OutputOptions struct {
	// SampleSize defaults to DefaultSampleSize.
	SampleSize int

	// Gzip additionally writes every entry to EntriesGzipFile.
	Gzip bool

	// AppDataDir, when set, also receives the dataset and experiment as
	// single-element catalog arrays.
	AppDataDir string
}

// WriteOutputs writes res under dir and returns the paths written, in order.
func WriteOutputs(dir string, res *Result, opts OutputOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	sampleSize := opts.SampleSize
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	sample := res.Entries[:min(sampleSize, len(res.Entries))]

	files := []struct {
		name string
		v    any
	}{
		{DatasetFile, res.Dataset},
		{EntriesSampleFile, sample},
		{ExperimentFile, res.Experiment},
		{SummaryFile, res.Summary},
	}

	var written []string
	for _, f := range files {
		p := filepath.Join(dir, f.name)
		if err := writeJSON(p, f.v); err != nil {
			return written, err
		}
		written = append(written, p)
	}

	if opts.Gzip {
		p := filepath.Join(dir, EntriesGzipFile)
		if err := writeGzipJSON(p, res.Entries); err != nil {
			return written, err
		}
		written = append(written, p)
	}

	if opts.AppDataDir != "" {
		if err := os.MkdirAll(opts.AppDataDir, 0o755); err != nil {
			return written, fmt.Errorf("creating app data directory: %w", err)
		}
		p := filepath.Join(opts.AppDataDir, AppDatasetsFile)
		if err := writeJSON(p, []any{res.Dataset}); err != nil {
			return written, err
		}
		written = append(written, p)

		p = filepath.Join(opts.AppDataDir, AppExperimentsFile)
		if err := writeJSON(p, []any{res.Experiment}); err != nil {
			return written, err
		}
		written = append(written, p)
	}

	return written, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeGzipJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}
	return nil
}
