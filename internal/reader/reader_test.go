package reader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeonsheets/internal/reader"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersionMarker(t *testing.T) {
	assert.True(t, reader.HasVersionMarker([]byte("dungeonsheets_version = \"0.19.0\"\nname = 'x'\n")))
	assert.True(t, reader.HasVersionMarker([]byte("name = 'x'\ndungeonsheets_version = '1.2'  \n")))
	assert.False(t, reader.HasVersionMarker([]byte("  dungeonsheets_version = '1.2'\n")))
	assert.False(t, reader.HasVersionMarker([]byte("dungeonsheets_version = 1.2\n")))
	assert.False(t, reader.HasVersionMarker([]byte("name = 'x'\n")))

	v, ok := reader.Version([]byte("dungeonsheets_version = \"0.15.2\"\n"))
	require.True(t, ok)
	assert.Equal(t, "0.15.2", v)
}

func TestProperty_VersionMarkerRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		version := rapid.StringMatching(`[0-9]{1,2}\.[0-9]{1,2}(\.[0-9]{1,2})?`).Draw(rt, "version")
		quote := rapid.SampledFrom([]string{`"`, `'`}).Draw(rt, "quote")
		data := []byte("name = 'x'\ndungeonsheets_version = " + quote + version + quote + "\n")
		got, ok := reader.Version(data)
		require.True(rt, ok)
		assert.Equal(rt, version, got)
	})
}

func TestReadSheetFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "inara.yaml", `
name: Inara
classes: [Monk]
levels: [1]
dexterity: 16
`)
	props, err := reader.ReadSheetFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Inara", props["name"])
	assert.Equal(t, 16, props["dexterity"])
	assert.Equal(t, []any{"Monk"}, props["classes"])
}

func TestReadSheetFile_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "session.json", `{"sheet_type": "gm", "monsters": ["wolf", "goblin"]}`)
	props, err := reader.ReadSheetFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "gm", props.String("sheet_type"))
	assert.Equal(t, []any{"wolf", "goblin"}, props["monsters"])
}

func TestReadSheetFile_Lua(t *testing.T) {
	path := writeFile(t, t.TempDir(), "inara.lua", `dungeonsheets_version = "0.19.0"
name = "Inara"
classes = {"Monk"}
levels = {1}
`)
	props, err := reader.ReadSheetFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Inara", props["name"])
	assert.Equal(t, []any{1}, props["levels"])
}

func TestReadSheetFile_LuaRecordsMarkerVersion(t *testing.T) {
	path := writeFile(t, t.TempDir(), "elm.lua", `dungeonsheets_version = '0.18'
name = "Elm"
dungeonsheets_version = nil
`)
	props, err := reader.ReadSheetFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "0.18", props[reader.VersionKey])
}

func TestReadSheetFile_LuaWithoutMarkerIsNotExecuted(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "evil.lua", `error("must not run")`)
	_, err := reader.ReadSheetFile(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, reader.ErrInvalidFormat))
	assert.NotContains(t, err.Error(), "must not run")

	var fe *reader.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, path, fe.Path)
}

func TestReadSheetFile_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown extension": writeFile(t, dir, "notes.txt", "hello"),
		"bad yaml":          writeFile(t, dir, "bad.yaml", "name: [unterminated"),
		"bad json":          writeFile(t, dir, "bad.json", "{"),
		"lua runtime error": writeFile(t, dir, "boom.lua", "dungeonsheets_version = \"1.0\"\nerror('boom')\n"),
		"missing":           filepath.Join(dir, "missing.yaml"),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := reader.ReadSheetFile(context.Background(), path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, reader.ErrInvalidFormat))
		})
	}
}

func TestFileHasVersionMarker(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.lua", "dungeonsheets_version = '0.1'\n")
	bad := writeFile(t, dir, "bad.lua", "name = 'x'\n")
	ok, err := reader.FileHasVersionMarker(good)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = reader.FileHasVersionMarker(bad)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKnownExtensions(t *testing.T) {
	assert.Equal(t, []string{".json", ".lua", ".yaml", ".yml"}, reader.KnownExtensions())
	assert.True(t, reader.IsKnown("a/B.YAML"))
	assert.False(t, reader.IsKnown("a/b.py"))
	assert.True(t, reader.IsScript("x.lua"))
	assert.False(t, reader.IsScript("x.yaml"))
}
