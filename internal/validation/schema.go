// Package validation checks promptlens files against the embedded JSON Schemas.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptlens/promptlens/schemas"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Kind names a file type with a schema.
type Kind string

const (
	KindConfig     Kind = "config"
	KindDataset    Kind = "dataset"
	KindExperiment Kind = "experiment"
)

// defaultPrinter formats schema validation messages.
var defaultPrinter = message.NewPrinter(language.English)

var compiled = map[Kind]*jsonschema.Schema{}

func init() {
	compiled[KindConfig] = mustCompileSchema(schemas.ConfigSchemaJSON, "config.schema.json")
	compiled[KindDataset] = mustCompileSchema(schemas.DatasetSchemaJSON, "dataset.schema.json")
	compiled[KindExperiment] = mustCompileSchema(schemas.ExperimentSchemaJSON, "experiment.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ParseKind accepts "", "auto" and the Kind names.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case "", "auto":
		return "", nil
	case KindConfig, KindDataset, KindExperiment:
		return k, nil
	default:
		return "", fmt.Errorf("unknown file kind %q: must be auto, config, dataset or experiment", s)
	}
}

// ValidateFile validates the file at path. An empty kind is detected from
// the file name and content. It returns the kind used and one message per
// violation; err is reserved for files that cannot be read or classified.
func ValidateFile(path string, kind Kind) (Kind, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if kind == "" {
		if kind, err = DetectKind(path, data); err != nil {
			return "", nil, err
		}
	}
	if kind == KindConfig {
		return kind, ValidateConfigBytes(data), nil
	}
	return kind, validateJSONBytes(compiled[kind], data), nil
}

// DetectKind guesses the kind of a file: YAML files are configs, JSON files
// are datasets when they carry a column schema or column count, and
// experiments when they carry metrics or a model. Arrays are judged by
// their first element.
func DetectKind(path string, data []byte) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindConfig, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("%s: not YAML and not valid JSON: %w", path, err)
	}
	if arr, ok := doc.([]any); ok {
		if len(arr) == 0 {
			return "", fmt.Errorf("%s: empty array, cannot detect kind", path)
		}
		doc = arr[0]
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%s: expected a JSON object or array of objects", path)
	}
	switch {
	case has(obj, "schema") || has(obj, "columns"):
		return KindDataset, nil
	case has(obj, "metrics") || has(obj, "model"):
		return KindExperiment, nil
	}
	return "", fmt.Errorf("%s: cannot tell whether this is a dataset or an experiment; pass --kind", path)
}

func has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

// ValidateConfigBytes validates .promptlens.yaml content.
func ValidateConfigBytes(data []byte) []string {
	return validateYAMLBytes(compiled[KindConfig], data)
}

// ValidateDatasetBytes validates a dataset JSON object or array of them.
func ValidateDatasetBytes(data []byte) []string {
	return validateJSONBytes(compiled[KindDataset], data)
}

// ValidateExperimentBytes validates an experiment JSON object or array of them.
func ValidateExperimentBytes(data []byte) []string {
	return validateJSONBytes(compiled[KindExperiment], data)
}

func validateYAMLBytes(schema *jsonschema.Schema, data []byte) []string {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	if doc == nil {
		// An empty config file means "all defaults".
		doc = map[string]any{}
	}
	return validateAgainstSchema(schema, doc, "")
}

func validateJSONBytes(schema *jsonschema.Schema, data []byte) []string {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}
	}
	arr, ok := doc.([]any)
	if !ok {
		return validateAgainstSchema(schema, doc, "")
	}
	var errs []string
	for i, item := range arr {
		errs = append(errs, validateAgainstSchema(schema, item, fmt.Sprintf("/%d", i))...)
	}
	return errs
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any, prefix string) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, prefix, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, prefix string, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := prefix + "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 && prefix != "" {
			loc = prefix
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, prefix, errs)
	}
}
