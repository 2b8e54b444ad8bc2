// Package inventory provides definitions and loaders for weapons, armor and
// magic items carried by characters.
package inventory

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeonsheets/content"
	"github.com/cory-johannsen/dungeonsheets/internal/game/dice"
)

// Weapon category values.
const (
	CategorySimple  = "simple"
	CategoryMartial = "martial"
)

// Weapon describes a weapon and the bonuses currently applied to it. Feature
// hooks work on clones, so catalog entries are never modified.
type Weapon struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Ranged      bool     `yaml:"ranged"`
	Damage      string   `yaml:"damage"` // dice expression or flat number
	DamageType  string   `yaml:"damage_type"`
	Range       string   `yaml:"range"` // "20/60"; empty = melee reach only
	Properties  []string `yaml:"properties"`
	AttackBonus int      `yaml:"attack_bonus"`
	DamageBonus int      `yaml:"damage_bonus"`

	// ExtraDamage lists additional damage terms such as "2d6" from sneak attack.
	ExtraDamage []string `yaml:"-"`
	// Ability overrides the ability used for attack and damage ("dexterity");
	// empty means the default for the weapon.
	Ability string `yaml:"-"`

	NeedsImplementation bool `yaml:"-"`
}

// HasProperty reports whether the weapon lists prop.
func (w *Weapon) HasProperty(prop string) bool {
	for _, p := range w.Properties {
		if p == prop {
			return true
		}
	}
	return false
}

// IsRanged reports whether the weapon is a ranged weapon.
func (w *Weapon) IsRanged() bool { return w.Ranged }

// IsMelee reports whether the weapon is a melee weapon.
func (w *Weapon) IsMelee() bool { return !w.Ranged }

// IsFinesse reports whether the weapon has the finesse property.
func (w *Weapon) IsFinesse() bool { return w.HasProperty("finesse") }

// IsTwoHanded reports whether the weapon requires two hands.
func (w *Weapon) IsTwoHanded() bool { return w.HasProperty("two-handed") }

// IsLight reports whether the weapon has the light property.
func (w *Weapon) IsLight() bool { return w.HasProperty("light") }

// IsMonkWeapon reports whether monk martial arts applies to the weapon.
func (w *Weapon) IsMonkWeapon() bool { return w.HasProperty("monk") }

// DamageDice parses Damage. Flat damage ("1") yields ok == false.
func (w *Weapon) DamageDice() (dice.Expression, bool) {
	e, err := dice.Parse(w.Damage)
	if err != nil {
		return dice.Expression{}, false
	}
	return e, true
}

// Clone returns a deep copy of w.
func (w *Weapon) Clone() *Weapon {
	cp := *w
	cp.Properties = append([]string(nil), w.Properties...)
	cp.ExtraDamage = append([]string(nil), w.ExtraDamage...)
	return &cp
}

// Validate checks that the Weapon satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (w *Weapon) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if w.Category != CategorySimple && w.Category != CategoryMartial {
		errs = append(errs, fmt.Errorf("Category must be simple or martial, got %q", w.Category))
	}
	if w.Damage == "" {
		errs = append(errs, errors.New("Damage must not be empty"))
	}
	if w.DamageType == "" {
		errs = append(errs, errors.New("DamageType must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// LoadWeapons reads every YAML file in dir of fsys, parses each as a list of
// weapons and validates them.
//
// Postcondition: returns all valid weapons or the first encountered error.
func LoadWeapons(fsys fs.FS, dir string) ([]*Weapon, error) {
	files, err := content.YAMLFiles(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: %w", err)
	}
	var weapons []*Weapon
	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
		}
		var batch []*Weapon
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
		}
		for _, w := range batch {
			if err := w.Validate(); err != nil {
				return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
			}
		}
		weapons = append(weapons, batch...)
	}
	return weapons, nil
}
