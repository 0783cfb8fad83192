package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	verbose, quiet = false, false
	outputFormat, configPath = "", ""
	outPath, hexDump = "", false
	finderType, finderCreator, finderFlags, finderExtendedFlags = "", "", "", ""
	forkResources, forkIcon, forkWebloc = nil, "", ""
	appleDoubleEntries = nil
	sidecarType, sidecarCreator, sidecarFlags, sidecarExtendedFlags = "", "", "", ""
	sidecarIcon, sidecarWebloc = "", ""
	configInitPath, configInitForce = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFinderInfoCommand_RawStdout(t *testing.T) {
	out, err := execute(t, "finderinfo", "--type", "TEXT", "--creator", "ttxt", "--flags", "kIsInvisible", "--out", "-")
	require.NoError(t, err)
	require.Len(t, out, 32)
	assert.Equal(t, "TEXTttxt", out[:8])
	assert.Equal(t, "\x40\x00", out[8:10])
}

func TestAppleDoubleCommand_JSON(t *testing.T) {
	out, err := execute(t, "appledouble", "--entry", "DataFork=hello", "-o", "json")
	require.NoError(t, err)

	var resp struct {
		Kind   string `json:"kind"`
		Length int    `json:"length"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 43, resp.Length)
}

func TestAppleDoubleCommand_InvalidKind(t *testing.T) {
	_, err := execute(t, "appledouble", "--entry", "Bogus=x")
	assert.Error(t, err)
}

func TestSidecarCommand_WritesDerivedName(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "sidecar", filepath.Join(dir, "report.txt"), "--type", "TEXT", "-q")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "._report.txt"))
	require.NoError(t, err)
	require.Len(t, data, 26+12+32)
	assert.Equal(t, "TEXT", string(data[38:42]))
}

func TestSidecarCommand_RejectsSidecarInput(t *testing.T) {
	_, err := execute(t, "sidecar", "._report.txt")
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list", "kinds", "-o", "json")
	require.NoError(t, err)

	var kinds []kindInfo
	require.NoError(t, json.Unmarshal([]byte(out), &kinds))
	require.NotEmpty(t, kinds)
	assert.Equal(t, kindInfo{ID: 1, Name: "DataFork"}, kinds[0])

	out, err = execute(t, "list", "flags")
	require.NoError(t, err)
	assert.Contains(t, out, "kHasCustomIcon")

	_, err = execute(t, "list", "volumes")
	assert.Error(t, err)
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appledouble.yaml")
	_, err := execute(t, "config", "init", "--path", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", "--path", path)
	assert.Error(t, err, "existing file needs --force")

	_, err = execute(t, "config", "init", "--path", path, "--force")
	assert.NoError(t, err)

	out, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "duplicate_entries: reject")
}
