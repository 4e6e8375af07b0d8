package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execTest(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestTest_PassingScenarioDir(t *testing.T) {
	buf, err := execTest(t, "text", filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ increment")
	assert.Contains(t, output, "1 scenarios: 1 passed, 0 failed")
}

func TestTest_SingleScenarioFile(t *testing.T) {
	buf, err := execTest(t, "text", filepath.Join("testdata", "scenarios", "increment.yaml"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ increment")
}

func TestTest_FailingScenario(t *testing.T) {
	dir := t.TempDir()
	prog := "+0\n-1\n0,1,1,0,n\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prog.tng"), []byte(prog), 0o644))
	scenario := `name: flipped
program: prog.tng
tape: "_1_"
expect:
  tape: "_1_"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flipped.yaml"), []byte(scenario), 0o644))

	buf, err := execTest(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "✗ flipped")
	assert.Contains(t, output, "expected final tape")
	assert.Contains(t, output, "1 scenarios: 0 passed, 1 failed")
}

func TestTest_JSONSummary(t *testing.T) {
	buf, err := execTest(t, "json", filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var summary TestSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	require.Len(t, summary.Scenarios, 1)
	assert.Equal(t, "increment", summary.Scenarios[0].Name)
	assert.Equal(t, "1000_", summary.Scenarios[0].Tape)
}

func TestTest_MissingPath(t *testing.T) {
	_, err := execTest(t, "text", filepath.Join("testdata", "no-such-dir"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
