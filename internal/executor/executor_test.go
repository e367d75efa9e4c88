package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	e := NewShellExecutor()

	result, err := e.Run(context.Background(), "echo hello", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, "", result.Stderr)
	assert.Equal(t, 0, result.ExitCode)
}

func TestRunCapturesStderrAndExitCode(t *testing.T) {
	e := NewShellExecutor()

	result, err := e.Run(context.Background(), "echo oops >&2; exit 3", t.TempDir())
	require.NoError(t, err, "non-zero exit is not a launch failure")
	assert.Equal(t, "oops\n", result.Stderr)
	assert.Equal(t, 3, result.ExitCode)
}

func TestRunUsesWorkingDirectory(t *testing.T) {
	e := NewShellExecutor()
	dir := t.TempDir()

	result, err := e.Run(context.Background(), "pwd", dir)
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, dir)
}

func TestRunInterpretsShellSyntax(t *testing.T) {
	e := NewShellExecutor()

	result, err := e.Run(context.Background(), "printf 'a\\nb\\n' | wc -l", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "2", strings.TrimSpace(result.Stdout))
}

func TestRunLaunchFailure(t *testing.T) {
	e := &ShellExecutor{shell: "/nonexistent/shell"}

	result, err := e.Run(context.Background(), "echo hi", t.TempDir())
	require.Error(t, err)
	assert.Nil(t, result)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "start", cmdErr.Stage)
}

func TestRunWithTimeoutKillsLongCommand(t *testing.T) {
	e := NewShellExecutor()

	start := time.Now()
	result, err := e.RunWithTimeout(context.Background(), "sleep 30", t.TempDir(), 100*time.Millisecond, 100*time.Millisecond)
	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, -1, result.ExitCode)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunWithTimeoutCompletesFastCommand(t *testing.T) {
	e := NewShellExecutor()

	result, err := e.RunWithTimeout(context.Background(), "echo quick", t.TempDir(), 10*time.Second, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "quick\n", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)
}
