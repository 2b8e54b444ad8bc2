// Package reader parses character and session sheet files into raw
// attribute maps. The file extension selects the format.
package reader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeonsheets/internal/game/character"
	"github.com/cory-johannsen/dungeonsheets/internal/scripting"
)

// ErrInvalidFormat is wrapped by every FormatError.
var ErrInvalidFormat = errors.New("invalid sheet file")

// FormatError reports a file that is not a readable sheet.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Unwrap exposes both ErrInvalidFormat and the underlying cause.
func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidFormat, e.Err}
	}
	return []error{ErrInvalidFormat}
}

// VersionMarker matches the line that identifies a scripting file as a sheet.
var VersionMarker = regexp.MustCompile(`(?m)^dungeonsheets_version = ['"](?P<version>[0-9.]+)['"]\s*$`)

// HasVersionMarker reports whether data contains the version marker line.
func HasVersionMarker(data []byte) bool {
	return VersionMarker.Match(data)
}

// FileHasVersionMarker reads path and reports whether it carries the
// version marker. The file is never executed.
func FileHasVersionMarker(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return HasVersionMarker(data), nil
}

// Version returns the version named by the marker line.
func Version(data []byte) (string, bool) {
	m := VersionMarker.FindSubmatch(data)
	if m == nil {
		return "", false
	}
	return string(m[VersionMarker.SubexpIndex("version")]), true
}

// scriptExt is the extension of scripting sheet files.
const scriptExt = ".lua"

// decoders parse declarative (non-executable) formats.
var decoders = map[string]func(data []byte) (character.Props, error){
	".yaml": parseYAML,
	".yml":  parseYAML,
	".json": parseJSON,
}

// KnownExtensions returns the recognised file extensions in sorted order.
func KnownExtensions() []string {
	exts := []string{scriptExt}
	for ext := range decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// IsKnown reports whether path has a recognised extension.
func IsKnown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := decoders[ext]
	return ok || ext == scriptExt
}

// IsScript reports whether path is an executable scripting file, which must
// carry the version marker before it is run.
func IsScript(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == scriptExt
}

// Reader reads sheet files. InstructionLimit bounds scripting files; zero
// uses the scripting default.
type Reader struct {
	InstructionLimit int
}

// ReadSheetFile reads and parses the file at path.
//
// Postcondition: Returns the attributes, or a *FormatError for unknown
// extensions, unreadable files, scripting files without the version marker
// and parse failures.
func (r *Reader) ReadSheetFile(ctx context.Context, path string) (character.Props, error) {
	if !IsKnown(path) {
		return nil, &FormatError{Path: path, Reason: "unknown file extension"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "cannot read file", Err: err}
	}
	if IsScript(path) {
		return r.parseScript(ctx, path, data)
	}
	props, err := decoders[strings.ToLower(filepath.Ext(path))](data)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "cannot parse file", Err: err}
	}
	if props == nil {
		props = character.Props{}
	}
	return props, nil
}

// ReadSheetFile reads path with a zero-value Reader.
func ReadSheetFile(ctx context.Context, path string) (character.Props, error) {
	var r Reader
	return r.ReadSheetFile(ctx, path)
}

// VersionKey holds the marker version in the attributes of a scripting file.
const VersionKey = "dungeonsheets_version"

func (r *Reader) parseScript(ctx context.Context, path string, data []byte) (character.Props, error) {
	version, ok := Version(data)
	if !ok {
		return nil, &FormatError{Path: path, Reason: "missing dungeonsheets_version marker"}
	}
	g, err := scripting.EvalGlobals(ctx, string(data), filepath.Base(path), r.InstructionLimit)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "cannot evaluate script", Err: err}
	}
	// The marker line is authoritative even if the script reassigns it.
	g[VersionKey] = version
	return character.Props(g), nil
}

func parseYAML(data []byte) (character.Props, error) {
	var props character.Props
	if err := yaml.Unmarshal(data, &props); err != nil {
		return nil, err
	}
	return props, nil
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func parseJSON(data []byte) (character.Props, error) {
	var props character.Props
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, err
	}
	return props, nil
}
