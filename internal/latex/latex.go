// Package latex typesets LaTeX source into PDF files with an external
// pdflatex-compatible program.
package latex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when the typesetting program cannot be started.
var ErrNotFound = errors.New("latex: typesetting program not found")

// DefaultCommand is the program used when Compiler.Command is empty.
const DefaultCommand = "pdflatex"

const logTailLines = 20

// Options controls a single CreatePDF call.
type Options struct {
	// Fancy adds DNDTemplateDir to TEXINPUTS so the dndbook class resolves.
	Fancy bool
	// KeepTempFiles leaves the working directory (.tex, .log, .aux) in place.
	KeepTempFiles bool
}

// Compiler runs the typesetting program.
type Compiler struct {
	Command        string
	DNDTemplateDir string
	// Passes is the number of times the program runs; values below 1 mean 1.
	Passes int
	// Timeout bounds each run of the program; zero means no limit.
	Timeout time.Duration
	Logger  *zap.Logger
}

func (c *Compiler) command() string {
	if c.Command == "" {
		return DefaultCommand
	}
	return c.Command
}

func (c *Compiler) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// CreatePDF typesets tex and writes basename + ".pdf".
//
// Precondition: basename is a path without extension whose directory exists.
// Postcondition: returns the path of the written PDF; an error wrapping
// ErrNotFound when the program cannot be started; otherwise a wrapped error
// carrying the tail of the LaTeX log when typesetting fails.
func (c *Compiler) CreatePDF(ctx context.Context, tex, basename string, opts Options) (string, error) {
	workDir, err := os.MkdirTemp("", "dungeonsheets-latex-")
	if err != nil {
		return "", fmt.Errorf("latex: creating work dir: %w", err)
	}
	log := c.logger().With(zap.String("basename", basename), zap.String("work_dir", workDir))
	if opts.KeepTempFiles {
		defer log.Debug("keeping latex temporary files")
	} else {
		defer os.RemoveAll(workDir)
	}

	name := filepath.Base(basename)
	texPath := filepath.Join(workDir, name+".tex")
	if err := os.WriteFile(texPath, []byte(tex), 0o644); err != nil {
		return "", fmt.Errorf("latex: writing %s: %w", texPath, err)
	}

	args := []string{
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory=" + workDir,
		texPath,
	}
	passes := max(c.Passes, 1)
	for pass := 1; pass <= passes; pass++ {
		if err := c.run(ctx, workDir, name, args, opts.Fancy, pass, log); err != nil {
			return "", err
		}
	}

	dest := basename + ".pdf"
	if err := moveFile(filepath.Join(workDir, name+".pdf"), dest); err != nil {
		return "", fmt.Errorf("latex: collecting output: %w", err)
	}
	log.Debug("latex pdf written", zap.String("pdf", dest))
	return dest, nil
}

func (c *Compiler) run(ctx context.Context, workDir, name string, args []string, fancy bool, pass int, log *zap.Logger) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, c.command(), args...)
	cmd.Dir = workDir
	cmd.Env = c.environ(fancy)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	log.Debug("running latex", zap.String("command", c.command()), zap.Int("pass", pass))
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %v", ErrNotFound, c.command(), err)
		}
		return fmt.Errorf("latex: %s failed on %s: %w\n%s", c.command(), name, err, logTail(workDir, name, out.Bytes()))
	}
	return nil
}

// environ returns the process environment with TEXINPUTS extended by the
// DND template directory when fancy decorations are requested.
func (c *Compiler) environ(fancy bool) []string {
	env := os.Environ()
	if !fancy || c.DNDTemplateDir == "" {
		return env
	}
	texinputs := filepath.Clean(c.DNDTemplateDir) + "//" + string(os.PathListSeparator) + os.Getenv("TEXINPUTS")
	return append(env, "TEXINPUTS="+texinputs)
}

// logTail returns the last lines of the LaTeX log, falling back to the
// program output when no log was written.
func logTail(workDir, name string, output []byte) string {
	data, err := os.ReadFile(filepath.Join(workDir, name+".log"))
	if err != nil {
		data = output
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > logTailLines {
		lines = lines[len(lines)-logTailLines:]
	}
	return strings.Join(lines, "\n")
}

func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
