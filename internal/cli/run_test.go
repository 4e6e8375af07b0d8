package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tng/internal/store"
)

func execRun(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestRun_Increment(t *testing.T) {
	buf, err := execRun(t, "text", filepath.Join("testdata", "next_integer.tng"), "_111_")
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "halted in state 3")
	assert.Contains(t, output, "tape: 1000_")
}

func TestRun_SliceBackend(t *testing.T) {
	buf, err := execRun(t, "text", "--backend", "slice", filepath.Join("testdata", "next_integer.tng"), "_111_")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "tape: 1000_")
}

func TestRun_InvalidBackend(t *testing.T) {
	_, err := execRun(t, "text", "--backend", "tape-drive", filepath.Join("testdata", "next_integer.tng"), "_1_")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_JSONOutput(t *testing.T) {
	buf, err := execRun(t, "json", filepath.Join("testdata", "next_integer.tng"), "_111_")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var report RunReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, uint64(3), report.State)
	assert.Equal(t, "1000_", report.Tape)
	assert.Equal(t, "accepted", report.Outcome)
}

func TestRun_UndefinedBehaviorFails(t *testing.T) {
	buf, err := execRun(t, "text", filepath.Join("testdata", "undefined.tng"), "___")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "UNDEFINED_BEHAVIOR")
}

func TestRun_InvalidProgramFails(t *testing.T) {
	_, err := execRun(t, "text", filepath.Join("testdata", "invalid.tng"), "_1_")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "MISSING_WRITE")
}

func TestRun_MissingProgramFile(t *testing.T) {
	_, err := execRun(t, "text", filepath.Join("testdata", "no-such.tng"), "_1_")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_InvalidTape(t *testing.T) {
	_, err := execRun(t, "text", filepath.Join("testdata", "next_integer.tng"), "_1x1_")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid tape")
}

func TestRun_JournalsToDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := execRun(t, "text", "--db", dbPath, filepath.Join("testdata", "next_integer.tng"), "_111_")
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "_111_", runs[0].Input)
	assert.Equal(t, "1000_", runs[0].Output)
	assert.Equal(t, uint64(3), runs[0].HaltState)
	assert.Equal(t, store.OutcomeAccepted, runs[0].Outcome)
	assert.Empty(t, runs[0].ErrorCode)
	assert.Len(t, runs[0].ProgramHash, 64)
}

func TestRun_JournalsFailedRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := execRun(t, "text", "--db", dbPath, filepath.Join("testdata", "undefined.tng"), "___")
	require.Error(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, store.OutcomeUndefined, runs[0].Outcome)
	assert.Equal(t, "UNDEFINED_BEHAVIOR", runs[0].ErrorCode)
}
