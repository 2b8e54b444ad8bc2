// Package content embeds the rule catalogs (spells, equipment, monsters,
// classes, races, backgrounds and infusions) shipped with the sheet builder.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// FS holds every catalog directory. Files under spells, weapons, armor,
// magic_items and monsters hold a list of entries; files under classes, races,
// backgrounds and infusions hold a single record each.
//
//go:embed spells weapons armor magic_items monsters classes races backgrounds infusions
var FS embed.FS

// YAMLFiles returns the paths of every .yaml or .yml file directly inside dir
// of fsys, in lexical order.
//
// Precondition: fsys must be non-nil.
// Postcondition: Returns the matching paths (may be empty) or a non-nil error.
func YAMLFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, path.Join(dir, name))
		}
	}
	return paths, nil
}
