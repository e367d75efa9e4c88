package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	var content string
	for _, line := range lines {
		content += line + "\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRecentToolCallsReadsLatestSession(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "session_2026-01-01_10-00-00.log",
		`{"timestamp":"old","event":"tool_call","tool":"execute_bash","success":true}`,
	)
	writeLog(t, dir, "session_2026-01-02_10-00-00.log",
		`{"timestamp":"t1","event":"session_start"}`,
		`{"timestamp":"t2","event":"tool_call","tool":"execute_bash","parameters":{"command":"ls"},"result":"ok","success":true}`,
		`{"timestamp":"t3","event":"conversation","role":"user"}`,
		`{"timestamp":"t4","event":"tool_call","tool":"add_to_allowlist","success":false}`,
	)

	svc := NewService(dir)
	calls, err := svc.RecentToolCalls(0)
	require.NoError(t, err)
	require.Len(t, calls, 2)

	assert.Equal(t, "execute_bash", calls[0].Tool)
	assert.Equal(t, "ls", calls[0].Parameters["command"])
	assert.Equal(t, "ok", calls[0].Result)
	assert.True(t, calls[0].Success)

	assert.Equal(t, "add_to_allowlist", calls[1].Tool)
	assert.False(t, calls[1].Success)
}

func TestRecentToolCallsLimitKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "session_2026-01-02_10-00-00.log",
		`{"timestamp":"t1","event":"tool_call","tool":"first","success":true}`,
		`{"timestamp":"t2","event":"tool_call","tool":"second","success":true}`,
		`{"timestamp":"t3","event":"tool_call","tool":"third","success":true}`,
	)

	calls, err := NewService(dir).RecentToolCalls(2)
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "second", calls[0].Tool)
	assert.Equal(t, "third", calls[1].Tool)
}

func TestRecentToolCallsNoLogs(t *testing.T) {
	calls, err := NewService(t.TempDir()).RecentToolCalls(5)
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestRecentToolCallsSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "session_2026-01-02_10-00-00.log",
		`not json at all`,
		`{"timestamp":"t1","event":"tool_call","tool":"execute_bash","success":true}`,
	)

	calls, err := NewService(dir).RecentToolCalls(10)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "execute_bash", calls[0].Tool)
}
