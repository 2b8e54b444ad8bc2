// Package main provides makesheets, which turns character and session files
// into PDF sheets.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeonsheets/internal/config"
	"github.com/cory-johannsen/dungeonsheets/internal/observability"
	"github.com/cory-johannsen/dungeonsheets/internal/sheets"
)

type flags struct {
	editable   bool
	recursive  bool
	fancy      bool
	debug      bool
	configPath string
	outputDir  string
	workers    int
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: loading .env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "makesheets [filename...]",
		Short: "Prepare Dungeons and Dragons character sheets as PDFs",
		Long: `makesheets reads character files (.yaml, .yml, .json, or .lua carrying a
dungeonsheets_version line) and game master session files, and writes PDF
sheets. Arguments may be files or directories; no arguments means the
current directory.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	fl := cmd.Flags()
	fl.BoolVarP(&f.editable, "editable", "e", false, "Keep the PDF fields in place once processed")
	fl.BoolVarP(&f.recursive, "recursive", "r", false, "Descend into subfolders looking for character files")
	fl.BoolVarP(&f.fancy, "fancy-decorations", "F", false,
		"Render extra pages using fancy decorations (requires the DND-5e LaTeX template)")
	fl.BoolVarP(&f.debug, "debug", "d", false, "Provide verbose logging for debugging purposes")
	fl.StringVarP(&f.configPath, "config", "c", "", "Path to an optional YAML configuration file")
	fl.StringVarP(&f.outputDir, "output-dir", "o", "", "Directory receiving the PDFs (default: working directory)")
	fl.IntVarP(&f.workers, "workers", "j", 0, "Files processed in parallel (default: one per CPU)")
	fl.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "fancy" {
			name = "fancy-decorations"
		}
		return pflag.NormalizedName(name)
	})
	return cmd
}

func run(cmd *cobra.Command, args []string, f flags) error {
	v := config.New()
	if f.configPath != "" {
		v.SetConfigFile(f.configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	if err := v.BindPFlag("output.dir", cmd.Flags().Lookup("output-dir")); err != nil {
		return err
	}
	if err := v.BindPFlag("batch.workers", cmd.Flags().Lookup("workers")); err != nil {
		return err
	}
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return err
	}

	logCfg := cfg.Logging
	if f.debug {
		logCfg = observability.Debug(logCfg)
	}
	logger, err := observability.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	builder, err := sheets.NewBuilder(cfg, logger)
	if err != nil {
		return err
	}
	candidates, err := builder.Discover(args, f.recursive)
	if err != nil {
		return err
	}
	logger.Debug("discovered sheet files", zap.Int("count", len(candidates)))

	return builder.Run(cmd.Context(), candidates, sheets.Options{
		Flatten:          !f.editable,
		FancyDecorations: f.fancy,
		Debug:            f.debug,
		Recursive:        f.recursive,
		OutputDir:        cfg.Output.Dir,
		Workers:          cfg.Batch.WorkerCount(),
	})
}
