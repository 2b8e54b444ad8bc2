// Package ruleset loads the static rules data (classes, subclasses, races,
// backgrounds and artificer infusions) that character files refer to by name.
package ruleset

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeonsheets/content"
)

// loadFiles parses every YAML file in dir of fsys as one T.
//
// Postcondition: Returns all parsed records (may be empty slice) or a non-nil error.
func loadFiles[T any](fsys fs.FS, dir, kind string) ([]*T, error) {
	files, err := content.YAMLFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(files))
	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var v T
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing %s file %s: %w", kind, path, err)
		}
		out = append(out, &v)
	}
	return out, nil
}

// TraitDef is a named textual rule granted by a race or background.
type TraitDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
