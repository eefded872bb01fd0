package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogsCmd_TailsFile(t *testing.T) {
	// Given: a server log with two entries
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "server.log")
	content := `{"time":"2026-01-02T03:04:05Z","level":"INFO","msg":"search completed","request_id":"ab12cd34"}` + "\n" +
		`{"time":"2026-01-02T03:04:06Z","level":"ERROR","msg":"search failed","request_id":"ef56ab78"}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// When: viewing errors only
	stdout, stderr, err := executeCommand(t, "logs", "--file", path, "--level", "error")

	// Then: only the error entry is printed, without color
	require.NoError(t, err)
	assert.Contains(t, stderr, path)
	assert.Equal(t, "03:04:06.000 ERROR search failed request_id=ef56ab78\n", stdout)
}

func TestLogsCmd_MissingFile(t *testing.T) {
	isolateEnv(t)

	_, _, err := executeCommand(t, "logs")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no log file found")
}

func TestLogsCmd_InvalidFilter(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "server.log")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))

	_, _, err := executeCommand(t, "logs", "--file", path, "--filter", "(")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}
