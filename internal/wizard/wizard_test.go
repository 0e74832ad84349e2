package wizard

import (
	"testing"

	"github.com/promptlens/promptlens/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderConfig(t *testing.T) {
	spec := &InitSpec{
		Classes:        []string{"appointment request", `say "hi"`},
		Seed:           7,
		Entries:        500,
		OutputDir:      "out/data",
		ConfidenceType: "jitter",
		Port:           8080,
	}

	out, err := RenderConfig(spec)
	require.NoError(t, err)
	require.Empty(t, validation.ValidateConfigBytes([]byte(out)), out)

	var parsed struct {
		Classes  []string `yaml:"classes"`
		Generate struct {
			Seed      int64  `yaml:"seed"`
			Entries   int    `yaml:"entries"`
			OutputDir string `yaml:"output_dir"`
		} `yaml:"generate"`
		Evaluate struct {
			Confidence struct {
				Type string `yaml:"type"`
			} `yaml:"confidence"`
		} `yaml:"evaluate"`
		Server struct {
			Port    int    `yaml:"port"`
			DataDir string `yaml:"data_dir"`
		} `yaml:"server"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, spec.Classes, parsed.Classes)
	assert.Equal(t, int64(7), parsed.Generate.Seed)
	assert.Equal(t, 500, parsed.Generate.Entries)
	assert.Equal(t, "out/data", parsed.Generate.OutputDir)
	assert.Equal(t, "jitter", parsed.Evaluate.Confidence.Type)
	assert.Equal(t, 8080, parsed.Server.Port)
	assert.Equal(t, "out/data", parsed.Server.DataDir)
}

func TestRenderConfig_NoClasses(t *testing.T) {
	out, err := RenderConfig(&InitSpec{Seed: 1, Entries: 10, OutputDir: "g/", ConfidenceType: "proxy", Port: 3000})
	require.NoError(t, err)
	assert.NotContains(t, out, "classes:")
	require.Empty(t, validation.ValidateConfigBytes([]byte(out)))
}

func TestValidateClasses(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"distinct labels", "a, b, c", false},
		{"duplicate", "a, b, a", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClasses(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPositiveInt(t *testing.T) {
	check := positiveInt("port", 65535)
	assert.NoError(t, check("8080"))
	assert.NoError(t, check(" 1 "))
	assert.Error(t, check("0"))
	assert.Error(t, check("70000"))
	assert.Error(t, check("eighty"))
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "hello", []string{"hello"}},
		{"multiple", "a, b, c", []string{"a", "b", "c"}},
		{"with blanks", "a,, b, ,c", []string{"a", "b", "c"}},
		{"whitespace only", "  ,  ,  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitAndTrim(tt.input))
		})
	}
}
