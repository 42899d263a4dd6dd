package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "ask", "stats", "version"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestAskRequiresQuestion(t *testing.T) {
	require.NotNil(t, askCmd.Args)
	assert.Error(t, askCmd.Args(askCmd, nil))
	assert.NoError(t, askCmd.Args(askCmd, []string{"what", "is", "the", "rate"}))
}
