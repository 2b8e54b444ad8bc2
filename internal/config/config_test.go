package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Tools: ToolsConfig{
			PDFLatex: "pdflatex",
			PDFtk:    "pdftk",
		},
		Latex: LatexConfig{
			Passes:  1,
			Timeout: 2 * time.Minute,
		},
		Forms: FormsConfig{Dir: "forms"},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "pdflatex", cfg.Tools.PDFLatex)
	assert.Equal(t, "pdftk", cfg.Tools.PDFtk)
	assert.Equal(t, 1, cfg.Latex.Passes)
	assert.Equal(t, 2*time.Minute, cfg.Latex.Timeout)
	assert.Equal(t, "forms", cfg.Forms.Dir)
	assert.Equal(t, 0, cfg.Batch.Workers)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
tools:
  pdflatex: /opt/texlive/bin/pdflatex
latex:
  dnd_template_dir: /opt/dnd-template
  passes: 2
forms:
  dir: /usr/share/dungeonsheets/forms
batch:
  workers: 3
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/opt/texlive/bin/pdflatex", cfg.Tools.PDFLatex)
	assert.Equal(t, "pdftk", cfg.Tools.PDFtk)
	assert.Equal(t, "/opt/dnd-template", cfg.Latex.DNDTemplateDir)
	assert.Equal(t, 2, cfg.Latex.Passes)
	assert.Equal(t, "/usr/share/dungeonsheets/forms", cfg.Forms.Dir)
	assert.Equal(t, 3, cfg.Batch.WorkerCount())
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("DUNGEONSHEETS_TOOLS_PDFTK", "/usr/local/bin/pdftk")
	t.Setenv("DUNGEONSHEETS_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/pdftk", cfg.Tools.PDFtk)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateToolsEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Tools.PDFLatex = ""
	cfg.Tools.PDFtk = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tools.pdflatex")
	assert.Contains(t, err.Error(), "tools.pdftk")
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	cfg.Latex.Passes = 0
	cfg.Batch.Workers = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "latex.passes")
	assert.Contains(t, err.Error(), "batch.workers")
}

func TestWorkerCount_DefaultsToCPUs(t *testing.T) {
	assert.Equal(t, runtime.NumCPU(), BatchConfig{}.WorkerCount())
}

// Property-based tests

func TestPropertyValidPasses(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		passes := rapid.IntRange(1, 3).Draw(t, "passes")
		cfg := validConfig()
		cfg.Latex.Passes = passes
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid passes %d rejected: %v", passes, err)
		}
	})
}

func TestPropertyInvalidPasses(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		passes := rapid.OneOf(
			rapid.IntRange(-100, 0),
			rapid.IntRange(4, 100),
		).Draw(t, "passes")
		cfg := validConfig()
		cfg.Latex.Passes = passes
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid passes %d accepted", passes)
		}
	})
}

func TestPropertyWorkerCountAtLeastOne(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		workers := rapid.IntRange(-10, 64).Draw(t, "workers")
		n := BatchConfig{Workers: workers}.WorkerCount()
		if n < 1 {
			t.Fatalf("WorkerCount() = %d for workers %d", n, workers)
		}
	})
}
