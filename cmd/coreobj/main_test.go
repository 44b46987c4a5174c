package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgomes/coreobject/internal/config"
	"github.com/mgomes/coreobject/internal/hierarchy"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunCLIHelp(t *testing.T) {
	require.NoError(t, runCLI([]string{"coreobj", "help"}))
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"coreobj", "unknown"})
	assert.ErrorContains(t, err, "invalid command")
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"coreobj"})
	assert.ErrorContains(t, err, "invalid command")
}

func TestRunCommandPrintsInstance(t *testing.T) {
	var out bytes.Buffer
	err := runCommand([]string{"-class", "Horse", "testdata/animals.yaml", "Horsey"}, config.Config{}, discardLogger(), &out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"$class":"Horse","name":"Horsey","sound":"Neighhhhh!","legs":4}`, out.String())
}

func TestRunCommandDefaultsToLastClass(t *testing.T) {
	var out bytes.Buffer
	err := runCommand([]string{"testdata/animals.yaml", "Shetland"}, config.Config{}, discardLogger(), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"$class":"Pony"`)
	assert.Contains(t, out.String(), `"name":"Shetland"`)
}

func TestRunCommandUsesConfiguredClass(t *testing.T) {
	var out bytes.Buffer
	err := runCommand([]string{"testdata/animals.yaml", "Fluffy"}, config.Config{DefaultClass: "Animal"}, discardLogger(), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"$class":"Animal"`)
}

func TestRunCommandErrors(t *testing.T) {
	var out bytes.Buffer
	err := runCommand(nil, config.Config{}, discardLogger(), &out)
	assert.ErrorContains(t, err, "hierarchy path required")

	err = runCommand([]string{"-class", "Zebra", "testdata/animals.yaml"}, config.Config{}, discardLogger(), &out)
	assert.ErrorIs(t, err, hierarchy.ErrUnknownClass)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("classes:\n  - name: A\n    extends: Missing\n"), 0o644))
	err = runCommand([]string{bad}, config.Config{}, discardLogger(), &out)
	assert.ErrorIs(t, err, hierarchy.ErrUnknownClass)
	assert.ErrorContains(t, err, "build bad.yaml")

	err = runCommand([]string{filepath.Join(t.TempDir(), "missing.yaml")}, config.Config{}, discardLogger(), &out)
	assert.ErrorContains(t, err, "open hierarchy")
}

func TestClassesCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, classesCommand([]string{"testdata/animals.yaml"}, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"CoreObject",
		"Animal < CoreObject",
		"Horse < Animal < CoreObject",
		"Pony < Horse < Animal < CoreObject",
	}, lines)

	assert.Error(t, classesCommand(nil, &out))
}

func TestRunBatch(t *testing.T) {
	script := strings.Join([]string{
		"# build a small hierarchy",
		`extend Animal CoreObject init=name sound="..." getName=@name`,
		`extend Horse Animal sound="Neighhhhh!"`,
		"",
		"create fluffy Animal Fluffy",
		"create horsey Horse Horsey",
		"call horsey getName",
		"get fluffy sound",
		"get horsey sound",
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, runBatch(newSession(nil, nil), strings.NewReader(script), &out))
	assert.Equal(t, strings.Join([]string{
		"<Class Animal>",
		"<Class Horse>",
		"<Animal instance>",
		"<Horse instance>",
		`"Horsey"`,
		`"..."`,
		`"Neighhhhh!"`,
	}, "\n")+"\n", out.String())
}

func TestRunBatchStopsAtFirstError(t *testing.T) {
	var out bytes.Buffer
	err := runBatch(newSession(nil, nil), strings.NewReader("create x Missing\nclasses\n"), &out)
	assert.ErrorContains(t, err, "line 1")
	assert.ErrorIs(t, err, hierarchy.ErrUnknownClass)
	assert.Empty(t, out.String())
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := newLogger(config.Config{LogLevel: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	var buf bytes.Buffer
	logger, err := newLogger(config.Config{LogLevel: "debug"}, &buf)
	require.NoError(t, err)
	sess := newSession(nil, logger)
	_, err = sess.eval("extend Thing CoreObject")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "class defined")
}
