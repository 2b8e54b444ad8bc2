package inventory

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeonsheets/content"
)

// MagicItem defines a magic item listed on the character's extra sheets.
type MagicItem struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	Rarity             string `yaml:"rarity"`
	RequiresAttunement bool   `yaml:"requires_attunement"`
	ACBonus            int    `yaml:"ac_bonus"`
	SaveBonus          int    `yaml:"save_bonus"`
	Description        string `yaml:"description"`

	NeedsImplementation bool `yaml:"-"`
}

// Validate checks that the MagicItem satisfies its invariants.
func (m *MagicItem) Validate() error {
	var errs []error
	if m.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if m.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if m.ACBonus < 0 || m.SaveBonus < 0 {
		errs = append(errs, errors.New("bonuses must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("magic item validation failed: %v", errs)
	}
	return nil
}

// LoadMagicItems reads every YAML file in dir of fsys as a list of magic items.
//
// Postcondition: returns all valid items or the first encountered error.
func LoadMagicItems(fsys fs.FS, dir string) ([]*MagicItem, error) {
	files, err := content.YAMLFiles(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("LoadMagicItems: %w", err)
	}
	var items []*MagicItem
	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("LoadMagicItems: cannot read file %q: %w", path, err)
		}
		var batch []*MagicItem
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("LoadMagicItems: cannot parse file %q: %w", path, err)
		}
		for _, m := range batch {
			if err := m.Validate(); err != nil {
				return nil, fmt.Errorf("LoadMagicItems: invalid item in %q: %w", path, err)
			}
		}
		items = append(items, batch...)
	}
	return items, nil
}
