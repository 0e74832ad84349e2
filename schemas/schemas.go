// Package schemas embeds the JSON Schemas for promptlens files.
package schemas

import _ "embed"

// ConfigSchemaJSON describes .promptlens.yaml.
//
//go:embed config.schema.json
var ConfigSchemaJSON string

// ExperimentSchemaJSON describes generated-experiment.json.
//
//go:embed experiment.schema.json
var ExperimentSchemaJSON string

// DatasetSchemaJSON describes generated-dataset.json.
//
//go:embed dataset.schema.json
var DatasetSchemaJSON string
