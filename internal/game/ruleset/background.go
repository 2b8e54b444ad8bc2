package ruleset

import "io/fs"

// Background defines a character background and the feature it grants.
//
// Precondition: ID and Name must be non-empty after loading.
type Background struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	SkillProficiencies []string `yaml:"skill_proficiencies"`
	Languages          int      `yaml:"languages"`
	Feature            TraitDef `yaml:"feature"`
}

// LoadBackgrounds reads all .yaml files in dir of fsys and parses each as a Background.
//
// Postcondition: Returns all parsed backgrounds (may be empty slice) or a non-nil error.
func LoadBackgrounds(fsys fs.FS, dir string) ([]*Background, error) {
	return loadFiles[Background](fsys, dir, "background")
}
