package character

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/cory-johannsen/dungeonsheets/internal/game/feature"
	"github.com/cory-johannsen/dungeonsheets/internal/game/inventory"
	"github.com/cory-johannsen/dungeonsheets/internal/game/monster"
	"github.com/cory-johannsen/dungeonsheets/internal/game/names"
	"github.com/cory-johannsen/dungeonsheets/internal/game/ruleset"
	"github.com/cory-johannsen/dungeonsheets/internal/game/spell"
)

// ErrInvalidCharacter is wrapped by every error Load returns for attributes
// that do not describe a valid character.
var ErrInvalidCharacter = errors.New("invalid character")

// Props holds the raw declarative attributes read from a sheet file.
type Props map[string]any

// String returns the string value of key, or "".
func (p Props) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Deps bundles the read-only catalogs a character is resolved against.
type Deps struct {
	Rules     *ruleset.Registry
	Features  *feature.Catalog
	Equipment *inventory.Registry
	Spells    *spell.Catalog
	Monsters  *monster.Registry
}

// DefaultDeps loads every embedded catalog.
//
// Postcondition: Returns fully populated Deps or the first load error.
func DefaultDeps() (Deps, error) {
	rules, err := ruleset.DefaultRegistry()
	if err != nil {
		return Deps{}, err
	}
	equipment, err := inventory.DefaultRegistry()
	if err != nil {
		return Deps{}, err
	}
	monsters, err := monster.DefaultRegistry()
	if err != nil {
		return Deps{}, err
	}
	return Deps{
		Rules:     rules,
		Features:  feature.Default(),
		Equipment: equipment,
		Spells:    spell.Default(),
		Monsters:  monsters,
	}, nil
}

// record is the typed form of Props.
type record struct {
	Name                 string   `mapstructure:"name"`
	PlayerName           string   `mapstructure:"player_name"`
	Alignment            string   `mapstructure:"alignment"`
	XP                   int      `mapstructure:"xp"`
	Race                 string   `mapstructure:"race"`
	Background           string   `mapstructure:"background"`
	Class                string   `mapstructure:"class"`
	Level                int      `mapstructure:"level"`
	Classes              []string `mapstructure:"classes"`
	Levels               []int    `mapstructure:"levels"`
	Subclasses           []string `mapstructure:"subclasses"`
	FeatureChoices       []string `mapstructure:"feature_choices"`
	Features             []string `mapstructure:"features"`
	SkillProficiencies   []string `mapstructure:"skill_proficiencies"`
	SkillExpertise       []string `mapstructure:"skill_expertise"`
	Weapons              []string `mapstructure:"weapons"`
	Armor                string   `mapstructure:"armor"`
	Shield               string   `mapstructure:"shield"`
	MagicItems           []string `mapstructure:"magic_items"`
	Spells               []string `mapstructure:"spells"`
	SpellsPrepared       []string `mapstructure:"spells_prepared"`
	WildShapes           []string `mapstructure:"wild_shapes"`
	Infusions            []string `mapstructure:"infusions"`
	HPMax                int      `mapstructure:"hp_max"`
	Speed                int      `mapstructure:"speed"`
	Languages            string   `mapstructure:"languages"`
	Equipment            string   `mapstructure:"equipment"`
	PersonalityTraits    string   `mapstructure:"personality_traits"`
	Ideals               string   `mapstructure:"ideals"`
	Bonds                string   `mapstructure:"bonds"`
	Flaws                string   `mapstructure:"flaws"`
	FeaturesAndTraits    string   `mapstructure:"features_and_traits"`
	DungeonsheetsVersion string   `mapstructure:"dungeonsheets_version"`

	AbilityScores `mapstructure:",squash"`
	Currency      `mapstructure:",squash"`
}

func decode(props Props) (*record, error) {
	rec := &record{
		AbilityScores: AbilityScores{10, 10, 10, 10, 10, 10},
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           rec,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(map[string]any(props)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
	}
	if len(rec.Classes) == 0 && rec.Class != "" {
		rec.Classes = []string{rec.Class}
		rec.Levels = []int{max(rec.Level, 1)}
	}
	return rec, nil
}

// Load builds a Character from props, resolving every named rule, item and
// spell through deps. Unknown names never fail: they become placeholders
// flagged as needing implementation.
//
// Precondition: every field of deps must be non-nil.
// Postcondition: Returns a Character or an error wrapping ErrInvalidCharacter
// when there are no classes, classes and levels differ in length, a level is
// outside 1..20, or an ability score is outside 1..30.
func Load(props Props, deps Deps) (*Character, error) {
	rec, err := decode(props)
	if err != nil {
		return nil, err
	}
	if len(rec.Classes) == 0 {
		return nil, fmt.Errorf("%w: no classes given", ErrInvalidCharacter)
	}
	if len(rec.Classes) != len(rec.Levels) {
		return nil, fmt.Errorf("%w: %d classes but %d levels", ErrInvalidCharacter, len(rec.Classes), len(rec.Levels))
	}
	if err := rec.AbilityScores.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
	}

	c := &Character{
		Name:              rec.Name,
		PlayerName:        rec.PlayerName,
		Alignment:         rec.Alignment,
		XP:                rec.XP,
		Abilities:         rec.AbilityScores,
		Currency:          rec.Currency,
		Languages:         rec.Languages,
		Equipment:         rec.Equipment,
		PersonalityTraits: rec.PersonalityTraits,
		Ideals:            rec.Ideals,
		Bonds:             rec.Bonds,
		Flaws:             rec.Flaws,
		FeaturesAndTraits: rec.FeaturesAndTraits,
		SkillExpertise:    keys(rec.SkillExpertise),
		hpMax:             rec.HPMax,
		speed:             rec.Speed,
	}

	for i, name := range rec.Classes {
		level := rec.Levels[i]
		if level < 1 || level > 20 {
			return nil, fmt.Errorf("%w: %s level %d must be between 1 and 20", ErrInvalidCharacter, name, level)
		}
		class, ok := deps.Rules.Class(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown class %q", ErrInvalidCharacter, name)
		}
		cl := ClassLevel{Class: class, Level: level}
		if i < len(rec.Subclasses) && strings.TrimSpace(rec.Subclasses[i]) != "" {
			cl.Subclass, _ = deps.Rules.Subclass(class.ID, rec.Subclasses[i])
		}
		c.Classes = append(c.Classes, cl)
	}

	if rec.Race != "" {
		if race, ok := deps.Rules.Race(rec.Race); ok {
			c.Race = race
		} else {
			c.RaceName = names.Title(rec.Race)
		}
	}
	if rec.Background != "" {
		if bg, ok := deps.Rules.Background(rec.Background); ok {
			c.Background = bg
		} else {
			c.BackgroundName = names.Title(rec.Background)
		}
	}

	c.SkillProficiencies = keys(rec.SkillProficiencies)
	if c.Background != nil {
		c.SkillProficiencies = append(c.SkillProficiencies, keys(c.Background.SkillProficiencies)...)
	}

	c.buildFeatures(rec, deps.Features)
	c.buildEquipment(rec, deps.Equipment)
	c.buildSpells(rec, deps.Spells)

	for _, name := range rec.WildShapes {
		if m, ok := deps.Monsters.Lookup(name); ok {
			c.WildShapes = append(c.WildShapes, m)
		} else {
			c.WildShapes = append(c.WildShapes, &monster.Monster{
				ID:                  names.Key(name),
				Name:                names.Title(name),
				NeedsImplementation: true,
			})
		}
	}
	for _, name := range rec.Infusions {
		inf, _ := deps.Rules.Infusion(name)
		c.Infusions = append(c.Infusions, inf)
	}
	return c, nil
}

func keys(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, names.Key(s))
	}
	return out
}

func (c *Character) buildFeatures(rec *record, cat *feature.Catalog) {
	var choices []string
	choices = append(choices, rec.FeatureChoices...)
	for _, s := range rec.Subclasses {
		if s != "" {
			choices = append(choices, s)
		}
	}

	var set feature.Set
	for _, cl := range c.Classes {
		for _, lf := range cl.Class.FeaturesAt(cl.Level) {
			if lf.Feature != "" {
				if def, ok := cat.Definition(lf.Feature); ok {
					set.Add(feature.New(def, c))
				}
				continue
			}
			if sel, ok := cat.Selector(lf.Selector); ok {
				set.Add(feature.Resolve(sel, c, choices))
			}
		}
	}
	if c.Race != nil {
		for _, t := range c.Race.Traits {
			set.Add(feature.Trait(t.Name, c.Race.Name, t.Description))
		}
	}
	if c.Background != nil && c.Background.Feature.Name != "" {
		set.Add(feature.Trait(c.Background.Feature.Name, c.Background.Name, c.Background.Feature.Description))
	}
	for _, name := range rec.Features {
		set.Add(cat.Lookup(name, c))
	}
	c.Features = set.Items()
}

func (c *Character) buildEquipment(rec *record, reg *inventory.Registry) {
	for _, name := range rec.Weapons {
		w, _ := reg.Weapon(name)
		c.Weapons = append(c.Weapons, w)
	}
	if rec.Armor != "" {
		if a, ok := reg.Armor(rec.Armor); ok && !a.IsShield() {
			c.Armor = a
		}
	}
	if rec.Shield != "" {
		if s, ok := reg.Armor(rec.Shield); ok && s.IsShield() {
			c.Shield = s
		}
	}
	for _, name := range rec.MagicItems {
		m, _ := reg.MagicItem(name)
		c.MagicItems = append(c.MagicItems, m)
	}
}

func (c *Character) buildSpells(rec *record, cat *spell.Catalog) {
	seen := make(map[string]bool)
	add := func(s *spell.Spell) {
		key := names.Key(s.Name)
		if seen[key] {
			return
		}
		seen[key] = true
		c.Spells = append(c.Spells, s)
	}
	c.prepared = make(map[string]bool)
	for _, name := range rec.Spells {
		add(cat.New(name))
	}
	for _, name := range rec.SpellsPrepared {
		s := cat.New(name)
		c.prepared[names.Key(s.Name)] = true
		add(s)
	}
	for _, f := range c.Features {
		for _, s := range f.SpellsKnown {
			add(s)
		}
		for _, s := range f.SpellsPrepared {
			c.prepared[names.Key(s.Name)] = true
			add(s)
		}
	}
}
