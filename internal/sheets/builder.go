// Package sheets turns sheet files into PDFs: it reads a file, builds the
// character or session, fills the PDF forms, typesets the extra pages and
// merges the parts.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeonsheets/internal/config"
	"github.com/cory-johannsen/dungeonsheets/internal/game/character"
	"github.com/cory-johannsen/dungeonsheets/internal/game/monster"
	"github.com/cory-johannsen/dungeonsheets/internal/latex"
	"github.com/cory-johannsen/dungeonsheets/internal/pdf"
	"github.com/cory-johannsen/dungeonsheets/internal/reader"
	"github.com/cory-johannsen/dungeonsheets/internal/render"
)

// FeaturesTitle is the title of the typeset extra pages of a character.
const FeaturesTitle = "Features, Magical Items and Spells"

// Typesetter turns LaTeX into a PDF at basename + ".pdf".
type Typesetter interface {
	CreatePDF(ctx context.Context, tex, basename string, opts latex.Options) (string, error)
}

// Merger concatenates PDFs.
type Merger interface {
	Merge(ctx context.Context, srcs []string, dest string, cleanUp bool) error
}

// FormFiller fills a blank PDF form.
type FormFiller interface {
	Fill(ctx context.Context, form string, fields []pdf.Field, dest string, flatten bool) error
}

// SheetReader parses a sheet file into declarative attributes.
type SheetReader interface {
	ReadSheetFile(ctx context.Context, path string) (character.Props, error)
}

// Options controls how sheets are built.
type Options struct {
	// Flatten removes the form fields from the filled sheets.
	Flatten bool
	// FancyDecorations typesets with the dndbook class.
	FancyDecorations bool
	// Debug keeps temporary files and processes files sequentially.
	Debug     bool
	Recursive bool
	// OutputDir receives the PDFs; empty means the working directory.
	OutputDir string
	// Workers bounds concurrent files; values below 1 mean 1.
	Workers int
}

// Builder builds sheets. Every collaborator is an interface so tests can
// run without pdflatex or pdftk.
type Builder struct {
	Typesetter Typesetter
	Merger     Merger
	Forms      FormFiller
	Reader     SheetReader
	Renderer   *render.Renderer
	Deps       character.Deps
	Logger     *zap.Logger
}

// NewBuilder wires a Builder to the real tools named in cfg and the embedded
// catalogs.
//
// Postcondition: returns a ready Builder or the first catalog or template
// load error.
func NewBuilder(cfg config.Config, logger *zap.Logger) (*Builder, error) {
	deps, err := character.DefaultDeps()
	if err != nil {
		return nil, fmt.Errorf("loading catalogs: %w", err)
	}
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}
	return &Builder{
		Typesetter: &latex.Compiler{
			Command:        cfg.Tools.PDFLatex,
			DNDTemplateDir: cfg.Latex.DNDTemplateDir,
			Passes:         cfg.Latex.Passes,
			Timeout:        cfg.Latex.Timeout,
			Logger:         logger,
		},
		Merger:   &pdf.Merger{Command: cfg.Tools.PDFtk, Logger: logger},
		Forms:    &pdf.FormFiller{Command: cfg.Tools.PDFtk, FormsDir: cfg.Forms.Dir},
		Reader:   &reader.Reader{},
		Renderer: renderer,
		Deps:     deps,
		Logger:   logger,
	}, nil
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// Basename returns the output path without extension for the sheet file at
// path: its stem inside opts.OutputDir.
func Basename(path string, opts Options) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(opts.OutputDir, stem)
}

// MakeSheet builds the PDF for the sheet file at path. Files whose
// sheet_type is "gm" become session sheets, everything else a character
// sheet.
//
// Postcondition: returns an error wrapping reader.ErrInvalidFormat when the
// file cannot be read or does not describe a valid character.
func (b *Builder) MakeSheet(ctx context.Context, path string, opts Options) error {
	props, err := b.Reader.ReadSheetFile(ctx, path)
	if err != nil {
		return err
	}
	base := Basename(path, opts)
	if strings.EqualFold(strings.TrimSpace(props.String("sheet_type")), "gm") {
		return b.MakeGMSheet(ctx, base, props, opts)
	}
	c, err := character.Load(props, b.Deps)
	if err != nil {
		return &reader.FormatError{Path: path, Reason: "invalid character", Err: err}
	}
	return b.MakeCharacterSheet(ctx, base, c, opts)
}

type session struct {
	SessionTitle string   `mapstructure:"session_title"`
	Monsters     []string `mapstructure:"monsters"`
}

// MakeGMSheet typesets the session's monsters into basename + ".pdf".
// Unknown monsters are logged and skipped. Nothing is typeset when there
// are no monsters.
func (b *Builder) MakeGMSheet(ctx context.Context, basename string, props character.Props, opts Options) error {
	log := b.logger().With(zap.String("sheet", basename))
	var s session
	if err := mapstructure.WeakDecode(map[string]any(props), &s); err != nil {
		return &reader.FormatError{Path: basename, Reason: "invalid session", Err: err}
	}

	var monsters []*monster.Monster
	for _, name := range s.Monsters {
		m, ok := b.Deps.Monsters.Lookup(name)
		if !ok {
			log.Warn("unknown monster, skipping", zap.String("monster", name))
			continue
		}
		monsters = append(monsters, m)
	}

	preamble, err := b.Renderer.Preamble(s.SessionTitle, opts.FancyDecorations)
	if err != nil {
		return err
	}
	tex := []string{preamble}
	if len(monsters) > 0 {
		section, err := b.Renderer.Monsters(monsters, opts.FancyDecorations)
		if err != nil {
			return err
		}
		tex = append(tex, section)
	}
	postamble, err := b.Renderer.Postamble(opts.FancyDecorations)
	if err != nil {
		return err
	}
	tex = append(tex, postamble)

	if len(tex) <= 2 {
		log.Debug("session has no content to typeset")
		return nil
	}
	_, err = b.Typesetter.CreatePDF(ctx, strings.Join(tex, ""), basename, latex.Options{
		Fancy:         opts.FancyDecorations,
		KeepTempFiles: opts.Debug,
	})
	if errors.Is(err, latex.ErrNotFound) {
		log.Warn("pdflatex not available, skipping", zap.Error(err))
		return nil
	}
	return err
}

// section renders one part of the extra pages when include is true.
type section struct {
	include bool
	render  func(*character.Character, bool) (string, error)
}

// MakeCharacterSheet writes basename + ".pdf" from the filled character
// form, the filled spell form for spellcasters and the typeset extra pages.
//
// Missing tools and forms are logged and the affected part skipped: without
// pdftk the parts are left unmerged.
func (b *Builder) MakeCharacterSheet(ctx context.Context, basename string, c *character.Character, opts Options) error {
	log := b.logger().With(zap.String("sheet", basename), zap.String("character", c.Name))
	var parts []string

	charPDF := basename + "_char.pdf"
	ok, err := b.fillForm(ctx, log, pdf.CharacterForm, pdf.CharacterFields(c), charPDF, opts.Flatten)
	if err != nil {
		return err
	}
	if ok {
		parts = append(parts, charPDF)
	}
	if c.IsSpellcaster() {
		spellPDF := basename + "_spells.pdf"
		ok, err := b.fillForm(ctx, log, pdf.SpellForm, pdf.SpellFields(c), spellPDF, opts.Flatten)
		if err != nil {
			return err
		}
		if ok {
			parts = append(parts, spellPDF)
		}
	}

	tex, err := b.characterTex(c, opts.FancyDecorations)
	if err != nil {
		return err
	}
	if len(tex) > 2 {
		featuresPDF, err := b.Typesetter.CreatePDF(ctx, strings.Join(tex, ""), basename+"_features", latex.Options{
			Fancy:         opts.FancyDecorations,
			KeepTempFiles: opts.Debug,
		})
		switch {
		case errors.Is(err, latex.ErrNotFound):
			log.Warn("pdflatex not available, skipping features", zap.Error(err))
		case err != nil:
			return err
		default:
			parts = append(parts, featuresPDF)
		}
	}

	if len(parts) == 0 {
		return nil
	}
	err = b.Merger.Merge(ctx, parts, basename+".pdf", true)
	if errors.Is(err, pdf.ErrToolNotFound) {
		log.Warn("pdftk not available, leaving parts unmerged", zap.Strings("parts", parts), zap.Error(err))
		return nil
	}
	return err
}

// characterTex renders the preamble, every non-empty section and the
// postamble.
func (b *Builder) characterTex(c *character.Character, fancy bool) ([]string, error) {
	r := b.Renderer
	sections := []section{
		{len(c.Subclasses()) > 0, r.Subclasses},
		{len(c.Features) > 0, r.Features},
		{len(c.MagicItems) > 0, r.MagicItems},
		{c.IsSpellcaster(), r.Spellbook},
		{len(c.Infusions) > 0, r.Infusions},
		{len(c.WildShapes) > 0, r.DruidShapes},
	}

	preamble, err := r.Preamble(FeaturesTitle, fancy)
	if err != nil {
		return nil, err
	}
	tex := []string{preamble}
	for _, s := range sections {
		if !s.include {
			continue
		}
		out, err := s.render(c, fancy)
		if err != nil {
			return nil, err
		}
		tex = append(tex, out)
	}
	postamble, err := r.Postamble(fancy)
	if err != nil {
		return nil, err
	}
	return append(tex, postamble), nil
}

// fillForm fills form into dest. It reports false without error when the
// form or pdftk is unavailable.
func (b *Builder) fillForm(ctx context.Context, log *zap.Logger, form string, fields []pdf.Field, dest string, flatten bool) (bool, error) {
	err := b.Forms.Fill(ctx, form, fields, dest, flatten)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, pdf.ErrFormNotFound), errors.Is(err, pdf.ErrToolNotFound):
		log.Warn("cannot fill form, skipping", zap.String("form", form), zap.Error(err))
		return false, nil
	default:
		return false, err
	}
}
