// Package projectconfig loads .promptlens.yaml project configuration.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/promptlens/promptlens/internal/reporting"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".promptlens.yaml"

// Default values for project configuration.
const (
	DefaultSeed       int64 = 42
	DefaultEntries          = 1000
	DefaultOutputDir        = "generated/"
	DefaultSampleSize       = 50

	DefaultActualColumn    = "actual"
	DefaultPredictedColumn = "predicted"
	DefaultFormat          = "table"
	DefaultConfidenceType  = "proxy"

	DefaultServerPort    = 3000
	DefaultServerDataDir = "generated/"
)

// Environment variables applied by ApplyEnv.
const (
	EnvSeed    = "PROMPTLENS_SEED"
	EnvPort    = "PROMPTLENS_PORT"
	EnvDataDir = "PROMPTLENS_DATA_DIR"
)

// GenerateConfig holds synthetic data generation settings.
type GenerateConfig struct {
	Seed        *int64 `yaml:"seed,omitempty"`
	Entries     int    `yaml:"entries,omitempty"`
	OutputDir   string `yaml:"output_dir,omitempty"`
	SampleSize  int    `yaml:"sample_size,omitempty"`
	Gzip        *bool  `yaml:"gzip,omitempty"`
	AppDataDir  string `yaml:"app_data_dir,omitempty"`
	Prompts     string `yaml:"prompts,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty"`
}

// ConfidenceConfig selects the confidence function used for AUC.
type ConfidenceConfig struct {
	Type   string         `yaml:"type,omitempty"`
	Params map[string]any `yaml:"params,omitempty"`
}

// EvaluateConfig holds `promptlens evaluate` settings.
type EvaluateConfig struct {
	ActualColumn    string               `yaml:"actual_column,omitempty"`
	PredictedColumn string               `yaml:"predicted_column,omitempty"`
	Format          string               `yaml:"format,omitempty"`
	Confidence      ConfidenceConfig     `yaml:"confidence,omitempty"`
	Thresholds      reporting.Thresholds `yaml:"thresholds,omitempty"`
}

// ServerConfig holds dashboard API settings.
type ServerConfig struct {
	Port    int    `yaml:"port,omitempty"`
	DataDir string `yaml:"data_dir,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .promptlens.yaml.
type ProjectConfig struct {
	// Classes is the label universe. Empty means the labels seen in the data.
	Classes  []string       `yaml:"classes,omitempty"`
	Generate GenerateConfig `yaml:"generate,omitempty"`
	Evaluate EvaluateConfig `yaml:"evaluate,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	seed := DefaultSeed
	return &ProjectConfig{
		Generate: GenerateConfig{
			Seed:       &seed,
			Entries:    DefaultEntries,
			OutputDir:  DefaultOutputDir,
			SampleSize: DefaultSampleSize,
			Gzip:       boolPtr(false),
		},
		Evaluate: EvaluateConfig{
			ActualColumn:    DefaultActualColumn,
			PredictedColumn: DefaultPredictedColumn,
			Format:          DefaultFormat,
			Confidence:      ConfidenceConfig{Type: DefaultConfidenceType},
		},
		Server: ServerConfig{
			Port:    DefaultServerPort,
			DataDir: DefaultServerDataDir,
		},
	}
}

// Load finds .promptlens.yaml by walking up from startDir (max 10 levels)
// and merges it onto the defaults. A missing file is not an error.
func Load(startDir string) (*ProjectConfig, error) {
	cfg, _, err := LoadWithPath(startDir)
	return cfg, err
}

// LoadWithPath is Load that also reports which file was used, or "" when
// none was found.
func LoadWithPath(startDir string) (*ProjectConfig, string, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, "", nil
		}
		return nil, "", fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", path, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, path, nil
}

// findConfigFile walks up from dir looking for FileName. It returns
// os.ErrNotExist when there is none and propagates any other I/O error.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if len(src.Classes) > 0 {
		dst.Classes = src.Classes
	}

	// Generate
	if src.Generate.Seed != nil {
		dst.Generate.Seed = src.Generate.Seed
	}
	if src.Generate.Entries != 0 {
		dst.Generate.Entries = src.Generate.Entries
	}
	if src.Generate.OutputDir != "" {
		dst.Generate.OutputDir = src.Generate.OutputDir
	}
	if src.Generate.SampleSize != 0 {
		dst.Generate.SampleSize = src.Generate.SampleSize
	}
	if src.Generate.Gzip != nil {
		dst.Generate.Gzip = src.Generate.Gzip
	}
	if src.Generate.AppDataDir != "" {
		dst.Generate.AppDataDir = src.Generate.AppDataDir
	}
	if src.Generate.Prompts != "" {
		dst.Generate.Prompts = src.Generate.Prompts
	}
	if src.Generate.Concurrency != 0 {
		dst.Generate.Concurrency = src.Generate.Concurrency
	}

	// Evaluate
	if src.Evaluate.ActualColumn != "" {
		dst.Evaluate.ActualColumn = src.Evaluate.ActualColumn
	}
	if src.Evaluate.PredictedColumn != "" {
		dst.Evaluate.PredictedColumn = src.Evaluate.PredictedColumn
	}
	if src.Evaluate.Format != "" {
		dst.Evaluate.Format = src.Evaluate.Format
	}
	if src.Evaluate.Confidence.Type != "" {
		dst.Evaluate.Confidence.Type = src.Evaluate.Confidence.Type
	}
	if src.Evaluate.Confidence.Params != nil {
		dst.Evaluate.Confidence.Params = src.Evaluate.Confidence.Params
	}
	if !src.Evaluate.Thresholds.IsZero() {
		dst.Evaluate.Thresholds = src.Evaluate.Thresholds
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.DataDir != "" {
		dst.Server.DataDir = src.Server.DataDir
	}
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// ignored.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from PROMPTLENS_* variables. lookup is usually
// os.LookupEnv.
func ApplyEnv(cfg *ProjectConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Generate.Seed = &seed
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		cfg.Server.Port = port
	}
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		cfg.Server.DataDir = v
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
