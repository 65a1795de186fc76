package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileCommand_EmptyDatabase(t *testing.T) {
	t.Setenv("STORAGE_PATH", filepath.Join(t.TempDir(), "tt.db"))
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"reconcile", "--config", ""})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Repaired 0 time entries\n", out.String())
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"reconcile", "--config", filepath.Join(t.TempDir(), "missing.yaml")})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "reconcile"})
}
