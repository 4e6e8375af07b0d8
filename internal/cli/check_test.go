package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execCheck(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestCheck_ValidProgram(t *testing.T) {
	buf, err := execCheck(t, "text", filepath.Join("testdata", "next_integer.tng"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ program valid")
	assert.Contains(t, buf.String(), "9 transitions")
}

func TestCheck_ValidProgramJSON(t *testing.T) {
	buf, err := execCheck(t, "json", filepath.Join("testdata", "next_integer.tng"))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result CheckResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.Valid)
	assert.Equal(t, 9, result.Transitions)
	assert.Equal(t, 1, result.FinalStates)
	assert.Equal(t, 0, result.ErrorStates)
}

func TestCheck_InvalidProgramReportsCodeAndLine(t *testing.T) {
	buf, err := execCheck(t, "text", filepath.Join("testdata", "invalid.tng"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "MISSING_WRITE")
}

func TestCheck_InvalidProgramJSON(t *testing.T) {
	buf, err := execCheck(t, "json", filepath.Join("testdata", "invalid.tng"))
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_WRITE", resp.Error.Code)
}

func TestCheck_MissingFile(t *testing.T) {
	_, err := execCheck(t, "text", filepath.Join("testdata", "no-such.tng"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
