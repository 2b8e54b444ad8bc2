package ruleset

import "io/fs"

// Infusion is an artificer infusion listed on the features sheet.
type Infusion struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Prerequisite string `yaml:"prerequisite"`
	Item         string `yaml:"item"`
	Description  string `yaml:"description"`

	NeedsImplementation bool `yaml:"-"`
}

// LoadInfusions reads all .yaml files in dir of fsys and parses each as an Infusion.
//
// Postcondition: Returns all parsed infusions (may be empty slice) or a non-nil error.
func LoadInfusions(fsys fs.FS, dir string) ([]*Infusion, error) {
	return loadFiles[Infusion](fsys, dir, "infusion")
}
