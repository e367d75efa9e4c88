package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "ask")
	assert.Contains(t, names, "agent")
	assert.Contains(t, names, "history")
}

func TestPolicyFlagsParse(t *testing.T) {
	root := newRootCmd()
	agent, _, err := root.Find([]string{"agent"})
	require.NoError(t, err)

	require.NoError(t, agent.Flags().Parse([]string{"-a", "ls,cat", "-b", "rm", "--auto-allow"}))

	allow, err := agent.Flags().GetStringSlice("allowlist")
	require.NoError(t, err)
	assert.Equal(t, []string{"ls", "cat"}, allow)

	black, err := agent.Flags().GetStringSlice("blacklist")
	require.NoError(t, err)
	assert.Equal(t, []string{"rm"}, black)

	auto, err := agent.Flags().GetBool("auto-allow")
	require.NoError(t, err)
	assert.True(t, auto)
}
