// Package monster provides stat block definitions for game-master session
// sheets and druid wild shapes.
package monster

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeonsheets/content"
	"github.com/cory-johannsen/dungeonsheets/internal/game/dice"
	"github.com/cory-johannsen/dungeonsheets/internal/game/names"
)

// Abilities holds the six core ability scores of a stat block.
type Abilities struct {
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Constitution int `yaml:"constitution"`
	Intelligence int `yaml:"intelligence"`
	Wisdom       int `yaml:"wisdom"`
	Charisma     int `yaml:"charisma"`
}

// Modifier returns floor((score-10)/2).
func Modifier(score int) int {
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// Monster is a creature stat block loaded from YAML.
type Monster struct {
	ID              string    `yaml:"id"`
	Name            string    `yaml:"name"`
	Size            string    `yaml:"size"`
	Type            string    `yaml:"type"`
	Alignment       string    `yaml:"alignment"`
	ArmorClass      int       `yaml:"armor_class"`
	HitPoints       int       `yaml:"hit_points"`
	HitDice         string    `yaml:"hit_dice"`
	Speed           int       `yaml:"speed"`
	SwimSpeed       int       `yaml:"swim_speed"`
	FlySpeed        int       `yaml:"fly_speed"`
	ClimbSpeed      int       `yaml:"climb_speed"`
	Abilities       Abilities `yaml:"abilities"`
	Skills          string    `yaml:"skills"`
	Senses          string    `yaml:"senses"`
	Languages       string    `yaml:"languages"`
	ChallengeRating float64   `yaml:"challenge_rating"`
	Description     string    `yaml:"description"`

	NeedsImplementation bool `yaml:"-"`
}

// SpeedString renders all movement modes, e.g. "30 ft., swim 30 ft.".
func (m *Monster) SpeedString() string {
	parts := []string{fmt.Sprintf("%d ft.", m.Speed)}
	if m.ClimbSpeed > 0 {
		parts = append(parts, fmt.Sprintf("climb %d ft.", m.ClimbSpeed))
	}
	if m.FlySpeed > 0 {
		parts = append(parts, fmt.Sprintf("fly %d ft.", m.FlySpeed))
	}
	if m.SwimSpeed > 0 {
		parts = append(parts, fmt.Sprintf("swim %d ft.", m.SwimSpeed))
	}
	return strings.Join(parts, ", ")
}

// ChallengeString renders the challenge rating with fractions ("1/4", "2").
func (m *Monster) ChallengeString() string {
	switch m.ChallengeRating {
	case 0.125:
		return "1/8"
	case 0.25:
		return "1/4"
	case 0.5:
		return "1/2"
	}
	return fmt.Sprintf("%g", m.ChallengeRating)
}

// Validate checks that the stat block satisfies basic invariants.
//
// Precondition: m must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, ArmorClass >= 1,
// HitPoints >= 1, HitDice parses, and every ability score is within 1..30.
func (m *Monster) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("monster: id must not be empty")
	}
	if m.Name == "" {
		return fmt.Errorf("monster %q: name must not be empty", m.ID)
	}
	if m.ArmorClass < 1 {
		return fmt.Errorf("monster %q: armor_class must be >= 1", m.ID)
	}
	if m.HitPoints < 1 {
		return fmt.Errorf("monster %q: hit_points must be >= 1", m.ID)
	}
	if m.HitDice != "" {
		if _, err := dice.Parse(m.HitDice); err != nil {
			return fmt.Errorf("monster %q: hit_dice %q: %w", m.ID, m.HitDice, err)
		}
	}
	a := m.Abilities
	for _, s := range []int{a.Strength, a.Dexterity, a.Constitution, a.Intelligence, a.Wisdom, a.Charisma} {
		if s < 1 || s > 30 {
			return fmt.Errorf("monster %q: ability scores must be within 1..30", m.ID)
		}
	}
	if m.ChallengeRating < 0 {
		return fmt.Errorf("monster %q: challenge_rating must be >= 0", m.ID)
	}
	return nil
}

// LoadFromBytes parses a list of stat blocks from raw YAML bytes.
//
// Postcondition: Returns validated monsters, or an error on the first failure.
func LoadFromBytes(data []byte) ([]*Monster, error) {
	var batch []*Monster
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parsing monster YAML: %w", err)
	}
	for _, m := range batch {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return batch, nil
}

// Load reads all YAML files in dir of fsys.
//
// Postcondition: Returns all monsters or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func Load(fsys fs.FS, dir string) ([]*Monster, error) {
	files, err := content.YAMLFiles(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading monster dir %q: %w", dir, err)
	}
	var out []*Monster
	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		batch, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		out = append(out, batch...)
	}
	return out, nil
}

// Registry indexes monsters by names.Key of ID and name.
type Registry struct {
	byKey map[string]*Monster
	order []*Monster
}

// NewRegistry builds a Registry over monsters.
//
// Postcondition: returns an error if two monsters share an ID.
func NewRegistry(monsters []*Monster) (*Registry, error) {
	r := &Registry{byKey: make(map[string]*Monster, 2*len(monsters))}
	for _, m := range monsters {
		id := names.Key(m.ID)
		if _, dup := r.byKey[id]; dup {
			return nil, fmt.Errorf("monster %q: duplicate id", m.ID)
		}
		r.byKey[id] = m
		r.byKey[names.Key(m.Name)] = m
		r.order = append(r.order, m)
	}
	return r, nil
}

// LoadRegistry loads the monsters directory of fsys.
func LoadRegistry(fsys fs.FS) (*Registry, error) {
	ms, err := Load(fsys, "monsters")
	if err != nil {
		return nil, err
	}
	return NewRegistry(ms)
}

// DefaultRegistry loads the embedded monster catalog.
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(content.FS)
}

// Lookup returns the named monster, or nil and false.
func (r *Registry) Lookup(name string) (*Monster, bool) {
	m, ok := r.byKey[names.Key(name)]
	return m, ok
}

// All returns every monster in load order.
func (r *Registry) All() []*Monster {
	return append([]*Monster(nil), r.order...)
}
