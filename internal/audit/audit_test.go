package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_RecordWritesLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := New(path)
	require.NoError(t, err)

	logger.Record("User %s created a new account", "alice")
	logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "User alice created a new account")
}

func TestLogger_NopIsSafe(t *testing.T) {
	logger := NewNop()
	logger.Record("ignored %d", 1)
	logger.Sync()
	require.Empty(t, logger.Path())

	// Nil receivers are tolerated too: a failed sink must never fail the
	// operation that produced the event.
	var nilLogger *Logger
	nilLogger.Record("also ignored")
	nilLogger.Sync()
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	jsonPath := filepath.Join(dir, "export", "logs.json")

	require.NoError(t, os.WriteFile(logPath, []byte("line one\nline two\n"), 0o644))

	added, err := ExportJSON(logPath, jsonPath)
	require.NoError(t, err)
	require.Equal(t, 2, added)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	require.JSONEq(t, `[{"log":"line one"},{"log":"line two"}]`, string(data))

	// Re-exporting the same lines adds nothing.
	added, err = ExportJSON(logPath, jsonPath)
	require.NoError(t, err)
	require.Zero(t, added)

	// New lines are appended after the existing entries.
	require.NoError(t, os.WriteFile(logPath, []byte("line one\nline two\nline three\n"), 0o644))
	added, err = ExportJSON(logPath, jsonPath)
	require.NoError(t, err)
	require.Equal(t, 1, added)

	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	require.JSONEq(t, `[{"log":"line one"},{"log":"line two"},{"log":"line three"}]`, string(data))
}

func TestExportJSON_MissingLog(t *testing.T) {
	dir := t.TempDir()

	_, err := ExportJSON(filepath.Join(dir, "missing.log"), filepath.Join(dir, "logs.json"))
	require.ErrorIs(t, err, ErrNoLogs)
}
