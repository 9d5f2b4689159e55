package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quix-labs/linkfix/internals/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, input string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "links.json")
	out := filepath.Join(dir, "links_cleaned.json")
	require.NoError(t, os.WriteFile(in, []byte(input), 0644))

	config := filepath.Join(dir, "config.yaml")
	content := "input: " + in + "\noutput: " + out + "\nlog_level: disabled\n"
	require.NoError(t, os.WriteFile(config, []byte(content), 0644))
	t.Setenv("CONFIG_FILE", config)
	return dir, out
}

func TestRunPrintsConfirmation(t *testing.T) {
	_, out := writeConfig(t, `[{"Link":"https://testbook.com/TS-ssc-cgl/tests/a1/review"}]`)

	var stdout bytes.Buffer
	require.NoError(t, run(&stdout))
	assert.Equal(t, "✅ Links cleaned and saved to "+out+"\n", stdout.String())
	assert.FileExists(t, out)
}

func TestRunFailureKeepsStdoutEmpty(t *testing.T) {
	_, out := writeConfig(t, `{"Link":"x"}`)

	var stdout bytes.Buffer
	err := run(&stdout)
	assert.ErrorIs(t, err, types.ErrShape)
	assert.Empty(t, stdout.String())
	assert.NoFileExists(t, out)
}

func TestRunMissingConfig(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	var stdout bytes.Buffer
	err := run(&stdout)
	assert.ErrorContains(t, err, "unable to load config")
	assert.Empty(t, stdout.String())
}

func TestReport(t *testing.T) {
	previous := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	var stderr bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	report(&stderr, errors.New("boom"))
	assert.Contains(t, stderr.String(), `"level":"fatal"`)
	assert.Contains(t, stderr.String(), `"error":"boom"`)

	stderr.Reset()
	zerolog.SetGlobalLevel(zerolog.Disabled)
	report(&stderr, errors.New("boom"))
	assert.Equal(t, "linkfix: boom\n", stderr.String())
}
