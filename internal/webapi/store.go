package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/promptlens/promptlens/internal/models"
	"github.com/promptlens/promptlens/internal/synth"
)

//go:generate go tool mockgen -source=store.go -destination=store_mock_test.go -package=webapi

var (
	// ErrDatasetNotFound is returned when an ID does not match any dataset.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrExperimentNotFound is returned when an ID does not match any experiment.
	ErrExperimentNotFound = errors.New("experiment not found")
)

// Store provides read access to datasets and experiments.
type Store interface {
	// ListDatasets returns the datasets matching q, in load order.
	ListDatasets(q ListQuery) ([]models.Dataset, error)
	// GetDataset returns a single dataset.
	GetDataset(id string) (*models.Dataset, error)
	// ListEntries returns up to limit entries of a dataset starting at offset.
	ListEntries(datasetID string, offset, limit int) (*EntriesPage, error)
	// ListExperiments returns the experiments matching q, in load order.
	ListExperiments(q ListQuery) ([]models.Experiment, error)
	// GetExperiment returns a single experiment.
	GetExperiment(id string) (*models.Experiment, error)
}

// FileStore serves the files written by `promptlens generate` from a
// directory: the single generated dataset and experiment, the app-data
// arrays, and the entries (gzip preferred over the sample file).
type FileStore struct {
	dir string

	mu          sync.RWMutex
	datasets    []models.Dataset
	experiments []models.Experiment
	entries     map[string][]models.DatasetEntry
	loaded      bool
}

// NewFileStore creates a FileStore that reads generated files from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:     dir,
		entries: make(map[string][]models.DatasetEntry),
	}
}

// load reads every known file from the configured directory. Missing files
// are skipped; malformed ones fail the load.
func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.datasets = nil
	fs.experiments = nil
	fs.entries = make(map[string][]models.DatasetEntry)

	if fs.dir == "" {
		fs.loaded = true
		return nil
	}

	var generated models.Dataset
	found, err := fs.readJSON(synth.DatasetFile, &generated)
	if err != nil {
		return err
	}
	if found {
		fs.addDataset(generated)
	}

	var appDatasets []models.Dataset
	if _, err := fs.readJSON(synth.AppDatasetsFile, &appDatasets); err != nil {
		return err
	}
	for _, d := range appDatasets {
		fs.addDataset(d)
	}

	var exp models.Experiment
	found, err = fs.readJSON(synth.ExperimentFile, &exp)
	if err != nil {
		return err
	}
	if found {
		fs.addExperiment(exp)
	}

	var appExperiments []models.Experiment
	if _, err := fs.readJSON(synth.AppExperimentsFile, &appExperiments); err != nil {
		return err
	}
	for _, e := range appExperiments {
		fs.addExperiment(e)
	}

	if len(fs.datasets) > 0 {
		entries, err := fs.readEntries()
		if err != nil {
			return err
		}
		if entries != nil {
			fs.entries[fs.datasets[0].ID] = entries
		}
	}

	fs.loaded = true
	return nil
}

func (fs *FileStore) addDataset(d models.Dataset) {
	for _, existing := range fs.datasets {
		if existing.ID == d.ID {
			return
		}
	}
	fs.datasets = append(fs.datasets, d)
}

func (fs *FileStore) addExperiment(e models.Experiment) {
	for _, existing := range fs.experiments {
		if existing.ID == e.ID {
			return
		}
	}
	fs.experiments = append(fs.experiments, e)
}

// readJSON decodes name into v, reporting whether the file existed.
func (fs *FileStore) readJSON(name string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(fs.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parsing %s: %w", name, err)
	}
	return true, nil
}

func (fs *FileStore) readEntries() ([]models.DatasetEntry, error) {
	f, err := os.Open(filepath.Join(fs.dir, synth.EntriesGzipFile))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("opening %s: %w", synth.EntriesGzipFile, err)
		}
		var sample []models.DatasetEntry
		if _, err := fs.readJSON(synth.EntriesSampleFile, &sample); err != nil {
			return nil, err
		}
		return sample, nil
	}
	defer f.Close() //nolint:errcheck

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", synth.EntriesGzipFile, err)
	}
	defer zr.Close() //nolint:errcheck

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", synth.EntriesGzipFile, err)
	}
	var entries []models.DatasetEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", synth.EntriesGzipFile, err)
	}
	return entries, nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh read of the directory.
func (fs *FileStore) Reload() error {
	return fs.load()
}

// ListDatasets returns the datasets matching q.
func (fs *FileStore) ListDatasets(q ListQuery) ([]models.Dataset, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	out := make([]models.Dataset, 0, len(fs.datasets))
	for _, d := range fs.datasets {
		if q.matches(d.Name, d.Description, string(d.Status)) {
			out = append(out, d)
		}
	}
	return out, nil
}

// GetDataset returns a single dataset.
func (fs *FileStore) GetDataset(id string) (*models.Dataset, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	for _, d := range fs.datasets {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, ErrDatasetNotFound
}

// ListEntries returns one page of a dataset's entries. A dataset without
// loaded entries yields an empty page.
func (fs *FileStore) ListEntries(datasetID string, offset, limit int) (*EntriesPage, error) {
	if _, err := fs.GetDataset(datasetID); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	all := fs.entries[datasetID]
	start := min(offset, len(all))
	end := min(start+limit, len(all))
	page := make([]models.DatasetEntry, end-start)
	copy(page, all[start:end])
	return &EntriesPage{
		DatasetID: datasetID,
		Offset:    offset,
		Limit:     limit,
		Total:     len(all),
		Entries:   page,
	}, nil
}

// ListExperiments returns the experiments matching q.
func (fs *FileStore) ListExperiments(q ListQuery) ([]models.Experiment, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	out := make([]models.Experiment, 0, len(fs.experiments))
	for _, e := range fs.experiments {
		if q.matches(e.Name, e.Description, string(e.Status)) {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetExperiment returns a single experiment.
func (fs *FileStore) GetExperiment(id string) (*models.Experiment, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	for _, e := range fs.experiments {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, ErrExperimentNotFound
}

func (q ListQuery) matches(name, description, status string) bool {
	if q.Status != "" && q.Status != "all" && q.Status != status {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), search) ||
		strings.Contains(strings.ToLower(description), search)
}

// Ensure FileStore satisfies Store.
var _ Store = (*FileStore)(nil)
