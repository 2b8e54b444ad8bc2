package sheets_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/dungeonsheets/internal/game/character"
	"github.com/cory-johannsen/dungeonsheets/internal/latex"
	"github.com/cory-johannsen/dungeonsheets/internal/pdf"
	"github.com/cory-johannsen/dungeonsheets/internal/reader"
	"github.com/cory-johannsen/dungeonsheets/internal/render"
	"github.com/cory-johannsen/dungeonsheets/internal/sheets"
	"github.com/cory-johannsen/dungeonsheets/internal/testutil"
)

type fakeTypesetter struct {
	mu  sync.Mutex
	tex map[string]string
	err error
}

func (f *fakeTypesetter) CreatePDF(_ context.Context, tex, basename string, _ latex.Options) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.tex == nil {
		f.tex = make(map[string]string)
	}
	f.tex[filepath.Base(basename)] = tex
	return basename + ".pdf", os.WriteFile(basename+".pdf", []byte("%PDF"), 0o644)
}

type merge struct {
	srcs []string
	dest string
}

type fakeMerger struct {
	mu     sync.Mutex
	merges []merge
	err    error
}

func (f *fakeMerger) Merge(_ context.Context, srcs []string, dest string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.merges = append(f.merges, merge{srcs, dest})
	return nil
}

type fakeForms struct {
	mu     sync.Mutex
	filled []string
	err    error
}

func (f *fakeForms) Fill(_ context.Context, form string, fields []pdf.Field, dest string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.filled = append(f.filled, form)
	return os.WriteFile(dest, []byte("%PDF"), 0o644)
}

type fixture struct {
	builder *sheets.Builder
	tex     *fakeTypesetter
	merger  *fakeMerger
	forms   *fakeForms
	logs    *observer.ObservedLogs
	in, out string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	deps, err := character.DefaultDeps()
	require.NoError(t, err)
	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		tex:    &fakeTypesetter{},
		merger: &fakeMerger{},
		forms:  &fakeForms{},
		logs:   logs,
		in:     t.TempDir(),
		out:    t.TempDir(),
	}
	f.builder = &sheets.Builder{
		Typesetter: f.tex,
		Merger:     f.merger,
		Forms:      f.forms,
		Reader:     &reader.Reader{},
		Renderer:   render.MustNew(),
		Deps:       deps,
		Logger:     zap.New(core),
	}
	return f
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	return testutil.WriteFile(t, f.in, name, content)
}

func (f *fixture) opts() sheets.Options {
	return sheets.Options{Flatten: true, OutputDir: f.out, Workers: 4}
}

const monkDruid = `
name: Inara
classes: [Monk, Druid]
levels: [1, 1]
subclasses: [Way of the Open Hand]
race: High Elf
magic_items: [cloak of protection]
wild_shapes: [crocodile]
`

const gmSession = `
sheet_type: gm
session_title: Goblin Ambush
monsters: [goblin, wolf, tarrasque]
`

func TestMakeSheet_CharacterSheet(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "inara.yaml", monkDruid)

	require.NoError(t, f.builder.MakeSheet(context.Background(), path, f.opts()))

	assert.Equal(t, []string{pdf.CharacterForm, pdf.SpellForm}, f.forms.filled)
	tex := f.tex.tex["inara_features"]
	for _, want := range []string{
		`\title{Features, Magical Items and Spells}`,
		`\section*{Subclasses}`,
		`\section*{Features}`,
		`\section*{Magic Items}`,
		`\section*{Spells}`,
		`\section*{Known Beasts}`,
		`\end{document}`,
	} {
		assert.Contains(t, tex, want)
	}
	assert.NotContains(t, tex, `\section*{Infusions}`)

	base := filepath.Join(f.out, "inara")
	require.Len(t, f.merger.merges, 1)
	assert.Equal(t, []string{base + "_char.pdf", base + "_spells.pdf", base + "_features.pdf"}, f.merger.merges[0].srcs)
	assert.Equal(t, base+".pdf", f.merger.merges[0].dest)
}

func TestMakeSheet_NonCasterSkipsSpellSheet(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "brute.json", `{"name": "Brute", "class": "Fighter", "level": 2}`)

	require.NoError(t, f.builder.MakeSheet(context.Background(), path, f.opts()))
	assert.Equal(t, []string{pdf.CharacterForm}, f.forms.filled)
	assert.NotContains(t, f.tex.tex["brute_features"], `\section*{Spells}`)
}

func TestMakeSheet_GMSheet(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "session1.yaml", gmSession)

	require.NoError(t, f.builder.MakeSheet(context.Background(), path, f.opts()))

	tex := f.tex.tex["session1"]
	assert.Contains(t, tex, `\title{Goblin Ambush}`)
	assert.Contains(t, tex, `\section*{Goblin}`)
	assert.Contains(t, tex, `\section*{Wolf}`)
	assert.Empty(t, f.forms.filled)
	assert.Empty(t, f.merger.merges)
	assert.Equal(t, 1, f.logs.FilterMessage("unknown monster, skipping").Len())
}

func TestMakeSheet_GMSheetWithoutMonstersTypesetsNothing(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "empty.yaml", "sheet_type: gm\nsession_title: Downtime\n")

	require.NoError(t, f.builder.MakeSheet(context.Background(), path, f.opts()))
	assert.Empty(t, f.tex.tex)
}

func TestMakeSheet_MissingLatexKeepsForms(t *testing.T) {
	f := newFixture(t)
	f.tex.err = latex.ErrNotFound
	path := f.write(t, "inara.yaml", monkDruid)

	require.NoError(t, f.builder.MakeSheet(context.Background(), path, f.opts()))
	require.Len(t, f.merger.merges, 1)
	assert.Len(t, f.merger.merges[0].srcs, 2)
	assert.Equal(t, 1, f.logs.FilterMessage("pdflatex not available, skipping features").Len())
}

func TestMakeSheet_MissingPdftkWarns(t *testing.T) {
	f := newFixture(t)
	f.forms.err = pdf.ErrToolNotFound
	f.merger.err = pdf.ErrToolNotFound
	path := f.write(t, "inara.yaml", monkDruid)

	require.NoError(t, f.builder.MakeSheet(context.Background(), path, f.opts()))
	assert.Equal(t, 2, f.logs.FilterMessage("cannot fill form, skipping").Len())
	assert.Equal(t, 1, f.logs.FilterMessage("pdftk not available, leaving parts unmerged").Len())
	assert.FileExists(t, filepath.Join(f.out, "inara_features.pdf"))
}

func TestMakeSheet_InvalidCharacterIsFormatError(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "broken.yaml", "classes: [Monk]\nlevels: [1, 2]\n")

	err := f.builder.MakeSheet(context.Background(), path, f.opts())
	assert.ErrorIs(t, err, reader.ErrInvalidFormat)
	assert.ErrorIs(t, err, character.ErrInvalidCharacter)
}

func TestMakeSheet_TypesetFailureIsReturned(t *testing.T) {
	f := newFixture(t)
	f.tex.err = errors.New("latex: pdflatex failed")
	path := f.write(t, "inara.yaml", monkDruid)

	err := f.builder.MakeSheet(context.Background(), path, f.opts())
	require.Error(t, err)
	assert.NotErrorIs(t, err, reader.ErrInvalidFormat)
}

const luaHero = `dungeonsheets_version = "0.19.0"
name = "Lua Hero"
classes = {"Rogue"}
levels = {2}
`

func TestDiscover(t *testing.T) {
	f := newFixture(t)
	f.write(t, "a.yaml", monkDruid)
	f.write(t, "b.txt", "notes")
	f.write(t, "c.lua", luaHero)
	f.write(t, "d.lua", "os.exit(1)\n")
	f.write(t, "sub/e.json", `{"class": "Fighter", "level": 1}`)

	flat, err := f.builder.Discover([]string{f.in}, false)
	require.NoError(t, err)
	assert.Equal(t, []sheets.Candidate{
		{Path: filepath.Join(f.in, "a.yaml")},
		{Path: filepath.Join(f.in, "c.lua")},
	}, flat)

	deep, err := f.builder.Discover([]string{f.in}, true)
	require.NoError(t, err)
	require.Len(t, deep, 3)
	assert.Equal(t, filepath.Join(f.in, "sub", "e.json"), deep[2].Path)

	named, err := f.builder.Discover([]string{filepath.Join(f.in, "a.yaml"), filepath.Join(f.in, "d.lua")}, false)
	require.NoError(t, err)
	assert.Equal(t, []sheets.Candidate{{Path: filepath.Join(f.in, "a.yaml"), Explicit: true}}, named)
}

func TestRun_ExplicitInvalidFileFails(t *testing.T) {
	f := newFixture(t)
	bad := f.write(t, "bad.yaml", "classes: [Monk]\nlevels: [0]\n")

	err := f.builder.Run(context.Background(), []sheets.Candidate{{Path: bad, Explicit: true}}, f.opts())
	assert.ErrorIs(t, err, reader.ErrInvalidFormat)
	assert.Equal(t, 1, f.logs.FilterMessage("invalid").Len())
}

func TestRun_ScannedInvalidFileIsSkipped(t *testing.T) {
	f := newFixture(t)
	f.write(t, "bad.yaml", "classes: [Monk]\nlevels: [0]\n")
	f.write(t, "good.yaml", monkDruid)
	f.write(t, "hero.lua", luaHero)

	candidates, err := f.builder.Discover([]string{f.in}, false)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	require.NoError(t, f.builder.Run(context.Background(), candidates, f.opts()))
	assert.Equal(t, 1, f.logs.FilterMessage("invalid").Len())
	assert.Equal(t, 2, f.logs.FilterMessage("done").Len())
	assert.Len(t, f.merger.merges, 2)
}

func TestRun_FailuresAreCombined(t *testing.T) {
	f := newFixture(t)
	f.tex.err = errors.New("boom")
	a := f.write(t, "a.yaml", monkDruid)
	b := f.write(t, "b.yaml", monkDruid)

	for _, debug := range []bool{false, true} {
		opts := f.opts()
		opts.Debug = debug
		err := f.builder.Run(context.Background(), []sheets.Candidate{{Path: a}, {Path: b}}, opts)
		require.Error(t, err)
		assert.Equal(t, 2, strings.Count(err.Error(), "boom"))
	}
	assert.Equal(t, 4, f.logs.FilterMessage("failed").Len())
}

func TestRun_LogsCarryRunID(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "good.yaml", monkDruid)

	require.NoError(t, f.builder.Run(context.Background(), []sheets.Candidate{{Path: path}}, f.opts()))
	done := f.logs.FilterMessage("done").All()
	require.Len(t, done, 1)
	fields := done[0].ContextMap()
	assert.NotEmpty(t, fields["run_id"])
	assert.Equal(t, path, fields["file"])
}

func TestBasename(t *testing.T) {
	assert.Equal(t, "hero", sheets.Basename("chars/hero.yaml", sheets.Options{}))
	assert.Equal(t, filepath.Join("out", "hero"), sheets.Basename("/x/hero.lua", sheets.Options{OutputDir: "out"}))
}
