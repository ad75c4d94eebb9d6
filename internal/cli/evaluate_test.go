package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluate_Allow(t *testing.T) {
	out, err := execute(t, "evaluate",
		"--context", "robot_control",
		"--readiness", "50", "--entropy", "0.5", "--drift", "0.25",
		"--safety", "1", "--trend", "0.5", "--variance", "4")
	require.NoError(t, err)

	assert.Contains(t, out, `"verdict": "ALLOW"`)
	assert.Contains(t, out, "all metrics within safety bounds")
	assert.Contains(t, out, `"protocol": "CORE9_v1.0"`)
}

func TestEvaluate_JSONFormat(t *testing.T) {
	out, err := execute(t, "--format", "json", "evaluate",
		"--context", "chat",
		"--readiness", "50", "--safety", "1")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestEvaluate_BlockOnZeroSafety(t *testing.T) {
	out, err := execute(t, "evaluate",
		"--context", "robot_control",
		"--readiness", "50", "--safety", "0")
	require.NoError(t, err)
	assert.Contains(t, out, `"verdict": "BLOCK"`)
	assert.Contains(t, out, `"rules": ["failed"]`)
}

func TestEvaluate_HistoryOverride(t *testing.T) {
	out, err := execute(t, "evaluate",
		"--context", "robot_control",
		"--readiness", "20", "--safety", "1", "--trend", "5",
		"--history", "25,23,21,20")
	require.NoError(t, err)

	// The record carries the estimator's trend, not the flag's.
	assert.Contains(t, out, `"trend": -1.667`)
	assert.Contains(t, out, `"verdict": "REVIEW"`)
}

func TestEvaluate_UnknownContext(t *testing.T) {
	_, err := execute(t, "evaluate", "--context", "warehouse", "--readiness", "50")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown context")
}

func TestEvaluate_FallbackDefault(t *testing.T) {
	out, err := execute(t, "evaluate",
		"--context", "warehouse", "--fallback-default",
		"--readiness", "50", "--safety", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"context": "default"`)
}

func TestEvaluate_InvalidMetricsRejected(t *testing.T) {
	_, err := execute(t, "evaluate",
		"--context", "robot_control",
		"--readiness", "-5", "--safety", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestEvaluate_FailClosed(t *testing.T) {
	out, err := execute(t, "evaluate",
		"--context", "robot_control",
		"--readiness", "-5", "--safety", "1",
		"--fail-closed")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	// A BLOCK record is still emitted.
	assert.Contains(t, out, `"verdict": "BLOCK"`)
	assert.Contains(t, out, "fail-closed")
}

func TestEvaluate_PersistsToAuditLog(t *testing.T) {
	db := filepath.Join(t.TempDir(), "decisions.db")

	_, err := execute(t, "evaluate",
		"--context", "robot_control",
		"--readiness", "50", "--safety", "1",
		"--db", db)
	require.NoError(t, err)

	out, err := execute(t, "log", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "ALLOW")
	assert.Contains(t, out, "robot_control")
}

func TestEvaluate_InvalidFormatFlag(t *testing.T) {
	_, err := execute(t, "--format", "xml", "evaluate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
