package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHasExpectedSubcommands(t *testing.T) {
	root := Root()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "deploy")
	assert.Contains(t, names, "destroy")
	assert.Contains(t, names, "doctor")
	assert.Contains(t, names, "version")
}

func TestDeployHasConfigFlag(t *testing.T) {
	cmd := Deploy()
	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
}

func TestVersionOutput(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	cmd := Root()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
}
