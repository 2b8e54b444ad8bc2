package inventory

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeonsheets/content"
)

// ArmorType classifies armor for the dexterity cap and proficiency rules.
type ArmorType string

const (
	ArmorLight  ArmorType = "light"
	ArmorMedium ArmorType = "medium"
	ArmorHeavy  ArmorType = "heavy"
	ArmorShield ArmorType = "shield"
)

// Armor defines a suit of armor or a shield.
//
// MaxDex of -1 means the full dexterity modifier applies.
type Armor struct {
	ID                  string    `yaml:"id"`
	Name                string    `yaml:"name"`
	Type                ArmorType `yaml:"type"`
	BaseAC              int       `yaml:"base_ac"`
	MaxDex              int       `yaml:"max_dex"`
	Strength            int       `yaml:"strength"`
	StealthDisadvantage bool      `yaml:"stealth_disadvantage"`
}

// IsShield reports whether a is a shield rather than worn armor.
func (a *Armor) IsShield() bool { return a.Type == ArmorShield }

// DexBonus caps dexMod by the armor's MaxDex.
func (a *Armor) DexBonus(dexMod int) int {
	if a.MaxDex >= 0 && dexMod > a.MaxDex {
		return a.MaxDex
	}
	return dexMod
}

// Validate reports an error if the Armor is missing required fields or
// contains illegal values.
func (a *Armor) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	switch a.Type {
	case ArmorLight, ArmorMedium, ArmorHeavy, ArmorShield:
	default:
		errs = append(errs, fmt.Errorf("type %q is not a valid armor type", a.Type))
	}
	if a.BaseAC < 0 {
		errs = append(errs, errors.New("base_ac must be >= 0"))
	}
	if a.MaxDex < -1 {
		errs = append(errs, errors.New("max_dex must be >= -1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("armor %q: %v", a.ID, errs)
	}
	return nil
}

// LoadArmor reads every YAML file in dir of fsys as a list of armor.
//
// Postcondition: returns all valid armor or the first encountered error.
func LoadArmor(fsys fs.FS, dir string) ([]*Armor, error) {
	files, err := content.YAMLFiles(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("LoadArmor: %w", err)
	}
	var armor []*Armor
	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("LoadArmor: cannot read file %q: %w", path, err)
		}
		var batch []*Armor
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("LoadArmor: cannot parse file %q: %w", path, err)
		}
		for _, a := range batch {
			if err := a.Validate(); err != nil {
				return nil, fmt.Errorf("LoadArmor: %w", err)
			}
		}
		armor = append(armor, batch...)
	}
	return armor, nil
}
