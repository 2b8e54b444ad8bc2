package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dungeonsheets/internal/reader"
	"github.com/cory-johannsen/dungeonsheets/internal/testutil"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(os.Stderr)
	return cmd.ExecuteContext(context.Background())
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"editable", "recursive", "fancy-decorations", "debug", "config", "output-dir", "workers"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	require.NoError(t, cmd.Flags().Parse([]string{"--fancy", "-e"}))
	fancy, err := cmd.Flags().GetBool("fancy-decorations")
	require.NoError(t, err)
	assert.True(t, fancy)
}

func TestRootCmd_DirectoryWithoutSheets(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "notes.txt", "x")
	testutil.WriteFile(t, dir, "tool.lua", "print('hi')\n")

	assert.NoError(t, execute(t, "-o", t.TempDir(), dir))
}

func TestRootCmd_ExplicitInvalidFileFails(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "broken.yaml", "name: [unterminated\n")

	err := execute(t, "--debug", "-o", t.TempDir(), path)
	assert.ErrorIs(t, err, reader.ErrInvalidFormat)
}

func TestRootCmd_BadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := testutil.WriteFile(t, dir, "config.yaml", "latex:\n  passes: 9\n")

	err := execute(t, "-c", cfg, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latex.passes")
}
