// Package config provides Viper-based configuration loading for makesheets.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g.
// DUNGEONSHEETS_TOOLS_PDFLATEX.
const EnvPrefix = "DUNGEONSHEETS"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ToolsConfig names the external programs.
type ToolsConfig struct {
	PDFLatex string `mapstructure:"pdflatex"`
	PDFtk    string `mapstructure:"pdftk"`
}

// LatexConfig holds typesetting settings.
type LatexConfig struct {
	// DNDTemplateDir holds the dndbook class used for fancy decorations.
	DNDTemplateDir string `mapstructure:"dnd_template_dir"`
	// Passes is how many times pdflatex runs per document.
	Passes int `mapstructure:"passes"`
	// Timeout bounds a single pdflatex run; zero means no limit.
	Timeout time.Duration `mapstructure:"timeout"`
}

// FormsConfig locates the blank fillable PDF forms.
type FormsConfig struct {
	Dir string `mapstructure:"dir"`
}

// OutputConfig controls where finished sheets are written.
type OutputConfig struct {
	// Dir receives the PDFs; empty means the working directory.
	Dir string `mapstructure:"dir"`
}

// BatchConfig controls parallel processing.
type BatchConfig struct {
	// Workers bounds concurrent files; 0 means one per CPU.
	Workers int `mapstructure:"workers"`
}

// WorkerCount resolves Workers, substituting runtime.NumCPU for 0.
//
// Postcondition: Returns a value >= 1.
func (b BatchConfig) WorkerCount() int {
	if b.Workers <= 0 {
		return max(runtime.NumCPU(), 1)
	}
	return b.Workers
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Tools   ToolsConfig   `mapstructure:"tools"`
	Latex   LatexConfig   `mapstructure:"latex"`
	Forms   FormsConfig   `mapstructure:"forms"`
	Output  OutputConfig  `mapstructure:"output"`
	Batch   BatchConfig   `mapstructure:"batch"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTools(c.Tools); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLatex(c.Latex); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Sprintf("batch.workers must be >= 0, got %d", c.Batch.Workers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateTools(t ToolsConfig) error {
	var errs []string
	if t.PDFLatex == "" {
		errs = append(errs, "tools.pdflatex must not be empty")
	}
	if t.PDFtk == "" {
		errs = append(errs, "tools.pdftk must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLatex(l LatexConfig) error {
	var errs []string
	if l.Passes < 1 || l.Passes > 3 {
		errs = append(errs, fmt.Sprintf("latex.passes must be 1-3, got %d", l.Passes))
	}
	if l.Timeout < 0 {
		errs = append(errs, "latex.timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// New returns a Viper instance with defaults and environment overrides
// registered.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path is a YAML configuration file, or empty for defaults
// plus environment only.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("tools.pdflatex", "pdflatex")
	v.SetDefault("tools.pdftk", "pdftk")

	v.SetDefault("latex.dnd_template_dir", "")
	v.SetDefault("latex.passes", 1)
	v.SetDefault("latex.timeout", "2m")

	v.SetDefault("forms.dir", "forms")
	v.SetDefault("output.dir", "")
	v.SetDefault("batch.workers", 0)
}
