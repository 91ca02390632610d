package server

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()

	addr := cmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "127.0.0.1:9099", addr.DefValue)

	for _, name := range []string{"api-key", "project", "secret", "token-ttl", "bcrypt-cost", "seed", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestNewRootCommand_RejectsArgsAndBadConfig(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())

	cmd = NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--secret", ""})
	assert.EqualError(t, cmd.Execute(), "secret key must not be empty")
}
