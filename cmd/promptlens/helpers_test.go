package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// runCommand executes cmd with args and returns its stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SilenceUsage = true
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// inTempDir switches the test into an empty working directory with no
// PROMPTLENS_* overrides.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PROMPTLENS_SEED", "")
	t.Setenv("PROMPTLENS_PORT", "")
	t.Setenv("PROMPTLENS_DATA_DIR", "")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// predictionsCSV has 6 samples, 4 correct, over classes a, b and c.
const predictionsCSV = `id,actual,predicted
1,a,a
2,a,a
3,a,b
4,b,b
5,b,a
6,c,c
`
