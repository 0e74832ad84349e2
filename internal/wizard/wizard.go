// Package wizard runs the interactive `promptlens init` form and renders
// the resulting .promptlens.yaml.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"github.com/promptlens/promptlens/internal/classification"
	"golang.org/x/term"
)

// InitSpec holds everything the init wizard collects.
type InitSpec struct {
	Classes        []string
	Seed           int64
	Entries        int
	OutputDir      string
	ConfidenceType string
	Port           int
}

const configTemplate = `# promptlens project configuration
{{- if .Classes }}
classes:
{{- range .Classes }}
  - {{ quote . }}
{{- end }}
{{- end }}
generate:
  seed: {{ .Seed }}
  entries: {{ .Entries }}
  output_dir: {{ quote .OutputDir }}
evaluate:
  confidence:
    type: {{ .ConfidenceType }}
server:
  port: {{ .Port }}
  data_dir: {{ quote .OutputDir }}
`

// RunInitWizard asks for each InitSpec field, pre-filled from defaults.
func RunInitWizard(in io.Reader, out io.Writer, defaults InitSpec) (*InitSpec, error) {
	var (
		classesRaw = strings.Join(defaults.Classes, ", ")
		seedRaw    = strconv.FormatInt(defaults.Seed, 10)
		entriesRaw = strconv.Itoa(defaults.Entries)
		outputDir  = defaults.OutputDir
		confType   = defaults.ConfidenceType
		portRaw    = strconv.Itoa(defaults.Port)
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Classes").
				Description("Comma-separated labels; leave empty to use the labels found in your data").
				Placeholder("appointment request, billing inquiry, complaint").
				Value(&classesRaw).
				Validate(ValidateClasses),
			huh.NewInput().
				Title("Seed").
				Description("Random seed for synthetic data").
				Value(&seedRaw).
				Validate(func(s string) error {
					_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil {
						return fmt.Errorf("seed must be an integer")
					}
					return nil
				}),
			huh.NewInput().
				Title("Entries").
				Description("Number of synthetic messages to generate").
				Value(&entriesRaw).
				Validate(positiveInt("entries", 1<<20)),
			huh.NewInput().
				Title("Output directory").
				Value(&outputDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("output directory is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Confidence function").
				Description("How per-class scores are derived for AUC").
				Options(
					huh.NewOption("proxy (fixed match/mismatch scores)", "proxy"),
					huh.NewOption("jitter (seeded spread on mismatches)", "jitter"),
				).
				Value(&confType),
			huh.NewInput().
				Title("Server port").
				Value(&portRaw).
				Validate(positiveInt("port", 65535)),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Accessible mode for non-TTY input, e.g. piped input.
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	seed, _ := strconv.ParseInt(strings.TrimSpace(seedRaw), 10, 64)
	entries, _ := strconv.Atoi(strings.TrimSpace(entriesRaw))
	port, _ := strconv.Atoi(strings.TrimSpace(portRaw))
	return &InitSpec{
		Classes:        splitAndTrim(classesRaw),
		Seed:           seed,
		Entries:        entries,
		OutputDir:      strings.TrimSpace(outputDir),
		ConfidenceType: confType,
		Port:           port,
	}, nil
}

// ValidateClasses accepts an empty list or one that forms a valid class set.
func ValidateClasses(raw string) error {
	labels := splitAndTrim(raw)
	if len(labels) == 0 {
		return nil
	}
	if _, err := classification.NewClassSet(labels...); err != nil {
		return err
	}
	return nil
}

func positiveInt(field string, limit int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 || n > limit {
			return fmt.Errorf("%s must be a whole number between 1 and %d", field, limit)
		}
		return nil
	}
}

// RenderConfig renders spec as .promptlens.yaml content.
func RenderConfig(spec *InitSpec) (string, error) {
	tmpl, err := template.New("config").
		Funcs(template.FuncMap{"quote": strconv.Quote}).
		Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
