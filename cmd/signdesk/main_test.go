// Package main provides tests for the SignDesk CLI.
package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/signdesk/internal/cli"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestVersionCommand(t *testing.T) {
	output := execute(t, "version")
	assert.Contains(t, output, "SignDesk v"+cli.Version)
}

func TestHelpCommand(t *testing.T) {
	output := execute(t, "--help")
	for _, expected := range []string{"serve", "routes", "history", "config", "completion", "version"} {
		assert.Contains(t, output, expected)
	}
}

func TestCompletionCommand(t *testing.T) {
	output := execute(t, "completion", "bash")
	assert.Contains(t, output, "signdesk")
}
