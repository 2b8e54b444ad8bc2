package sheets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/dungeonsheets/internal/reader"
)

// Candidate is a file selected for processing.
type Candidate struct {
	Path string
	// Explicit is true when the user named the file rather than a directory
	// containing it.
	Explicit bool
}

// Discover expands paths into the sheet files to process. No paths means
// the working directory. Directories named in paths are always listed;
// their sub-directories only when recursive is set. Files with unknown
// extensions are skipped, as are scripting files that lack the version
// marker. Scripting files are never executed here.
//
// Postcondition: returns the candidates in discovery order and every
// directory listing error.
func (b *Builder) Discover(paths []string, recursive bool) ([]Candidate, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	log := b.logger()
	var (
		found []Candidate
		errs  error
	)
	var walk func(path string, listDir, explicit bool)
	walk = func(path string, listDir, explicit bool) {
		info, statErr := os.Stat(path)
		if statErr == nil && info.IsDir() {
			if !listDir {
				log.Info("unhandled file", zap.String("file", path))
				return
			}
			entries, err := os.ReadDir(path)
			if err != nil {
				errs = multierr.Append(errs, err)
				return
			}
			for _, e := range entries {
				walk(filepath.Join(path, e.Name()), recursive, false)
			}
			return
		}
		if !reader.IsKnown(path) {
			log.Info("unhandled file", zap.String("file", path))
			return
		}
		found = append(found, Candidate{Path: path, Explicit: explicit})
	}
	for _, p := range paths {
		walk(p, true, true)
	}

	selected := found[:0]
	for _, c := range found {
		if reader.IsScript(c.Path) {
			ok, err := reader.FileHasVersionMarker(c.Path)
			if err == nil && !ok {
				log.Debug("skipping script without version marker", zap.String("file", c.Path))
				continue
			}
		}
		selected = append(selected, c)
	}
	return selected, errs
}

// Run builds every candidate. In debug mode files are processed one at a
// time; otherwise up to opts.Workers run concurrently with no ordering
// between files.
//
// A file that is not a valid sheet is reported as "invalid" and only fails
// the run when it was named explicitly. Any other failure is reported as
// "failed" and returned.
//
// Postcondition: returns the combined errors of every failing file.
func (b *Builder) Run(ctx context.Context, candidates []Candidate, opts Options) error {
	log := b.logger().With(zap.String("run_id", uuid.NewString()))
	log.Debug("starting run", zap.Int("files", len(candidates)), zap.Bool("debug", opts.Debug))

	if opts.Debug {
		var errs error
		for _, c := range candidates {
			errs = multierr.Append(errs, b.build(ctx, log, c, opts))
		}
		return errs
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	g.SetLimit(max(opts.Workers, 1))
	for _, c := range candidates {
		c := c
		g.Go(func() error {
			if err := b.build(ctx, log, c, opts); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

func (b *Builder) build(ctx context.Context, log *zap.Logger, c Candidate, opts Options) error {
	log = log.With(zap.String("file", c.Path))
	log.Info("processing")
	err := b.MakeSheet(ctx, c.Path, opts)
	switch {
	case err == nil:
		log.Info("done")
		return nil
	case errors.Is(err, reader.ErrInvalidFormat):
		log.Warn("invalid", zap.Error(err))
		if c.Explicit {
			return err
		}
		return nil
	default:
		log.Error("failed", zap.Error(err))
		return err
	}
}
