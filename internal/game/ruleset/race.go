package ruleset

import "io/fs"

// Race defines a playable race.
//
// Precondition: ID and Name must be non-empty after loading.
type Race struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Size           string         `yaml:"size"`
	Speed          int            `yaml:"speed"`
	AbilityBonuses map[string]int `yaml:"ability_bonuses"`
	Languages      []string       `yaml:"languages"`
	// Proficiencies lists weapon, armor or skill proficiencies granted by the race.
	Proficiencies []string   `yaml:"proficiencies"`
	Traits        []TraitDef `yaml:"traits"`
}

// LoadRaces reads all .yaml files in dir of fsys and parses each as a Race.
//
// Postcondition: Returns all parsed races (may be empty slice) or a non-nil error.
func LoadRaces(fsys fs.FS, dir string) ([]*Race, error) {
	return loadFiles[Race](fsys, dir, "race")
}
