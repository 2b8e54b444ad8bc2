package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// ErrToolNotFound is returned when the pdftk program cannot be started.
	ErrToolNotFound = errors.New("pdf: pdftk not found")
	// ErrFormNotFound is returned when a blank form PDF is missing.
	ErrFormNotFound = errors.New("pdf: form template not found")
)

// DefaultCommand is the program used when no command is configured.
const DefaultCommand = "pdftk"

// Blank form file names looked up in FormFiller.FormsDir.
const (
	CharacterForm = "blank-character-sheet-default.pdf"
	SpellForm     = "blank-spell-sheet-default.pdf"
)

func run(ctx context.Context, command string, args ...string) error {
	if command == "" {
		command = DefaultCommand
	}
	cmd := exec.CommandContext(ctx, command, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %v", ErrToolNotFound, command, err)
		}
		return fmt.Errorf("pdf: %s %s: %w: %s", command, strings.Join(args, " "), err, strings.TrimSpace(out.String()))
	}
	return nil
}

// Merger concatenates PDF files.
type Merger struct {
	Command string
	Logger  *zap.Logger
}

// Merge writes the concatenation of srcs to dest, overwriting dest.
//
// Precondition: srcs is non-empty.
// Postcondition: on success with cleanUp, every src is removed. On failure
// the sources are left untouched; a missing program yields ErrToolNotFound.
func (m *Merger) Merge(ctx context.Context, srcs []string, dest string, cleanUp bool) error {
	if len(srcs) == 0 {
		return errors.New("pdf: Merge: no source files")
	}
	args := append(append([]string(nil), srcs...), "cat", "output", dest)
	if err := run(ctx, m.Command, args...); err != nil {
		return err
	}
	if !cleanUp {
		return nil
	}
	var err error
	for _, src := range srcs {
		if src != dest {
			err = multierr.Append(err, os.Remove(src))
		}
	}
	if m.Logger != nil {
		m.Logger.Debug("merged pdfs", zap.Strings("sources", srcs), zap.String("dest", dest))
	}
	return err
}

// FormFiller fills the blank character and spell sheet forms.
type FormFiller struct {
	Command  string
	FormsDir string
}

// FormPath returns the location of the named blank form.
func (f *FormFiller) FormPath(form string) string {
	return filepath.Join(f.FormsDir, form)
}

// Fill writes form with fields filled in to dest. When flatten is set the
// output has no editable fields.
//
// Postcondition: returns ErrFormNotFound if the blank form is missing and
// ErrToolNotFound if pdftk cannot be started.
func (f *FormFiller) Fill(ctx context.Context, form string, fields []Field, dest string, flatten bool) error {
	src := f.FormPath(form)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFormNotFound, src, err)
	}
	fdf, err := os.CreateTemp("", "dungeonsheets-*.fdf")
	if err != nil {
		return fmt.Errorf("pdf: creating fdf: %w", err)
	}
	defer os.Remove(fdf.Name())
	if _, err := fdf.Write(FDF(fields)); err != nil {
		fdf.Close()
		return fmt.Errorf("pdf: writing fdf: %w", err)
	}
	if err := fdf.Close(); err != nil {
		return fmt.Errorf("pdf: writing fdf: %w", err)
	}
	args := []string{src, "fill_form", fdf.Name(), "output", dest}
	if flatten {
		args = append(args, "flatten")
	}
	return run(ctx, f.Command, args...)
}
