package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/promptlens/promptlens/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_GeneratedFiles(t *testing.T) {
	dir := inTempDir(t)
	res, err := synth.Generate(context.Background(), synth.Options{Seed: 2, Entries: 20})
	require.NoError(t, err)
	_, err = synth.WriteOutputs(dir, res, synth.OutputOptions{AppDataDir: filepath.Join(dir, "app")})
	require.NoError(t, err)

	out, err := runCommand(t, newValidateCommand(),
		filepath.Join(dir, synth.DatasetFile),
		filepath.Join(dir, synth.ExperimentFile),
		filepath.Join(dir, "app", synth.AppExperimentsFile),
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "(dataset)")
	assert.Contains(t, out, "(experiment)")
	assert.NotContains(t, out, "✗")
}

func TestValidateCommand_InvalidConfig(t *testing.T) {
	dir := inTempDir(t)
	good := writeFile(t, dir, "good.yaml", "classes: [a, b]\n")
	bad := writeFile(t, dir, "bad.yaml", "evaluate:\n  format: xml\n")

	out, err := runCommand(t, newValidateCommand(), good, bad)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 files failed validation", err.Error())
	assert.Contains(t, out, "✓ "+good+" (config)")
	assert.Contains(t, out, "✗ "+bad+" (config)")
}

func TestValidateCommand_Kind(t *testing.T) {
	dir := inTempDir(t)
	ambiguous := writeFile(t, dir, "thing.json", `{"id": "1", "name": "x"}`)

	_, err := runCommand(t, newValidateCommand(), ambiguous)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass --kind")

	_, err = runCommand(t, newValidateCommand(), "--kind", "spreadsheet", ambiguous)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown file kind")
}
