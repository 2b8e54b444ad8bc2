package ruleset

import (
	"fmt"
	"io/fs"

	"github.com/cory-johannsen/dungeonsheets/internal/game/feature"
)

// Spellcaster progression values for Class.Spellcaster.
const (
	CasterNone = "none"
	CasterFull = "full"
	CasterHalf = "half"
	// CasterThird is only valid on subclasses, e.g. Arcane Trickster.
	CasterThird = "third"
	// CasterArtificer is a half caster that rounds its caster level up.
	CasterArtificer = "artificer"
)

// LevelFeature grants either a feature kind or a selector at a class level.
// Exactly one of Feature and Selector is set.
type LevelFeature struct {
	Level    int          `yaml:"level"`
	Feature  feature.Kind `yaml:"feature"`
	Selector string       `yaml:"selector"`
}

// Subclass is a class specialisation chosen by the player. Its mechanical
// features arrive through the class selectors; the record itself is shown on
// the features sheet.
type Subclass struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Source      string `yaml:"source"`
	Description string `yaml:"description"`
	// Spellcaster and SpellcastingAbility make a subclass of a non-casting
	// class cast spells.
	Spellcaster         string `yaml:"spellcaster"`
	SpellcastingAbility string `yaml:"spellcasting_ability"`

	NeedsImplementation bool `yaml:"-"`
}

// IsSpellcaster reports whether the subclass grants spellcasting.
func (s *Subclass) IsSpellcaster() bool {
	return s.Spellcaster != "" && s.Spellcaster != CasterNone
}

// Class defines a playable character class.
//
// Precondition: ID, Name and HitDie must be set after loading.
type Class struct {
	ID                  string         `yaml:"id"`
	Name                string         `yaml:"name"`
	HitDie              int            `yaml:"hit_die"`
	PrimaryAbility      string         `yaml:"primary_ability"`
	SavingThrows        []string       `yaml:"saving_throws"`
	SpellcastingAbility string         `yaml:"spellcasting_ability"`
	Spellcaster         string         `yaml:"spellcaster"`
	WeaponProficiencies []string       `yaml:"weapon_proficiencies"`
	ArmorProficiencies  []string       `yaml:"armor_proficiencies"`
	Features            []LevelFeature `yaml:"features"`
	Subclasses          []Subclass     `yaml:"subclasses"`
}

// FeaturesAt returns the level features granted at or below level, in
// declaration order.
func (c *Class) FeaturesAt(level int) []LevelFeature {
	var out []LevelFeature
	for _, lf := range c.Features {
		if lf.Level <= level {
			out = append(out, lf)
		}
	}
	return out
}

// IsSpellcaster reports whether the class casts spells.
func (c *Class) IsSpellcaster() bool {
	return c.Spellcaster != "" && c.Spellcaster != CasterNone
}

// CasterLevel returns this class's contribution to the multiclass caster
// level at the given class level.
func (c *Class) CasterLevel(level int) int {
	return CasterLevel(c.Spellcaster, level)
}

// CasterLevel converts a class level into multiclass caster levels for the
// given progression.
func CasterLevel(progression string, level int) int {
	switch progression {
	case CasterFull:
		return level
	case CasterHalf:
		return level / 2
	case CasterArtificer:
		return (level + 1) / 2
	case CasterThird:
		return level / 3
	default:
		return 0
	}
}

// Validate checks the class record and, when cat is non-nil, that every
// feature kind and selector it references exists in cat.
func (c *Class) Validate(cat *feature.Catalog) error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("class: id and name must not be empty")
	}
	switch c.HitDie {
	case 6, 8, 10, 12:
	default:
		return fmt.Errorf("class %q: hit_die %d is not one of 6, 8, 10, 12", c.ID, c.HitDie)
	}
	if !knownProgression(c.Spellcaster) || c.Spellcaster == CasterThird {
		return fmt.Errorf("class %q: unknown spellcaster progression %q", c.ID, c.Spellcaster)
	}
	if c.IsSpellcaster() && c.SpellcastingAbility == "" {
		return fmt.Errorf("class %q: spellcasters need a spellcasting_ability", c.ID)
	}
	for _, sc := range c.Subclasses {
		if !knownProgression(sc.Spellcaster) {
			return fmt.Errorf("class %q: subclass %q: unknown spellcaster progression %q", c.ID, sc.ID, sc.Spellcaster)
		}
		if sc.IsSpellcaster() && sc.SpellcastingAbility == "" {
			return fmt.Errorf("class %q: subclass %q: spellcasters need a spellcasting_ability", c.ID, sc.ID)
		}
	}
	for _, lf := range c.Features {
		if lf.Level < 1 || lf.Level > 20 {
			return fmt.Errorf("class %q: feature level %d out of range", c.ID, lf.Level)
		}
		if (lf.Feature == "") == (lf.Selector == "") {
			return fmt.Errorf("class %q: level %d entry needs exactly one of feature or selector", c.ID, lf.Level)
		}
		if cat == nil {
			continue
		}
		if lf.Feature != "" {
			if _, ok := cat.Definition(lf.Feature); !ok {
				return fmt.Errorf("class %q: unknown feature %q", c.ID, lf.Feature)
			}
		} else if _, ok := cat.Selector(lf.Selector); !ok {
			return fmt.Errorf("class %q: unknown selector %q", c.ID, lf.Selector)
		}
	}
	return nil
}

func knownProgression(p string) bool {
	switch p {
	case "", CasterNone, CasterFull, CasterHalf, CasterArtificer, CasterThird:
		return true
	}
	return false
}

// LoadClasses reads all .yaml files in dir of fsys and parses each as a Class.
//
// Postcondition: Returns all parsed classes (may be empty slice) or a non-nil error.
func LoadClasses(fsys fs.FS, dir string) ([]*Class, error) {
	return loadFiles[Class](fsys, dir, "class")
}
