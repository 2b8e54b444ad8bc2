// Package spell defines spells and the spell catalog used by features and
// spellbooks.
package spell

import (
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeonsheets/content"
	"github.com/cory-johannsen/dungeonsheets/internal/game/names"
)

// Spell is a single spell as printed in a spellbook.
type Spell struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Level         int      `yaml:"level"`
	School        string   `yaml:"school"`
	CastingTime   string   `yaml:"casting_time"`
	Range         string   `yaml:"range"`
	Components    []string `yaml:"components"`
	Materials     string   `yaml:"materials"`
	Duration      string   `yaml:"duration"`
	Ritual        bool     `yaml:"ritual"`
	Concentration bool     `yaml:"concentration"`
	Classes       []string `yaml:"classes"`
	Description   string   `yaml:"description"`

	// NeedsImplementation marks a spell that is not in the catalog.
	NeedsImplementation bool `yaml:"-"`
}

// Constructor builds a fresh spell instance. Features declare their bundled
// spells as constructors and materialize them when the feature is built.
type Constructor func() *Spell

var levelLabels = []string{"Cantrip", "1st", "2nd", "3rd", "4th", "5th", "6th", "7th", "8th", "9th"}

// LevelLabel returns "Cantrip" for level 0 spells and the ordinal otherwise.
func (s *Spell) LevelLabel() string {
	if s.Level >= 0 && s.Level < len(levelLabels) {
		return levelLabels[s.Level]
	}
	return fmt.Sprintf("%dth", s.Level)
}

// IsCantrip reports whether the spell is level 0.
func (s *Spell) IsCantrip() bool {
	return s.Level == 0
}

// Validate checks that the spell has an ID, a name and a level in 0..9.
func (s *Spell) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("spell: id must not be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("spell %q: name must not be empty", s.ID)
	}
	if s.Level < 0 || s.Level > 9 {
		return fmt.Errorf("spell %q: level must be 0-9, got %d", s.ID, s.Level)
	}
	return nil
}

// Catalog indexes spells by names.Key of both their ID and display name.
type Catalog struct {
	spells map[string]*Spell
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{spells: make(map[string]*Spell)}
}

// Register adds s to the catalog.
//
// Precondition: s must be non-nil and valid.
// Postcondition: Lookup(s.ID) and Lookup(s.Name) return s; returns an error if
// the ID is already registered.
func (c *Catalog) Register(s *Spell) error {
	if err := s.Validate(); err != nil {
		return err
	}
	key := names.Key(s.ID)
	if _, exists := c.spells[key]; exists {
		return fmt.Errorf("spell: id %q already registered", s.ID)
	}
	c.spells[key] = s
	c.spells[names.Key(s.Name)] = s
	return nil
}

// Lookup returns the catalog entry for name (ID or display name, any case).
func (c *Catalog) Lookup(name string) (*Spell, bool) {
	s, ok := c.spells[names.Key(name)]
	return s, ok
}

// New returns a fresh copy of the named spell. Unknown names yield a
// placeholder titled from the name and flagged NeedsImplementation.
func (c *Catalog) New(name string) *Spell {
	if s, ok := c.Lookup(name); ok {
		cp := *s
		cp.Components = append([]string(nil), s.Components...)
		cp.Classes = append([]string(nil), s.Classes...)
		return &cp
	}
	return &Spell{
		ID:                  names.Key(name),
		Name:                names.Title(name),
		NeedsImplementation: true,
	}
}

// Len returns the number of distinct spells registered.
func (c *Catalog) Len() int {
	seen := make(map[*Spell]struct{}, len(c.spells))
	for _, s := range c.spells {
		seen[s] = struct{}{}
	}
	return len(seen)
}

// Load parses every YAML file in dir of fsys as a list of spells.
//
// Postcondition: Returns all parsed spells (may be empty) or a non-nil error.
func Load(fsys fs.FS, dir string) ([]*Spell, error) {
	files, err := content.YAMLFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	var spells []*Spell
	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var batch []*Spell
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("parsing spell file %s: %w", path, err)
		}
		spells = append(spells, batch...)
	}
	return spells, nil
}

// LoadCatalog loads dir of fsys and registers every spell.
func LoadCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	spells, err := Load(fsys, dir)
	if err != nil {
		return nil, err
	}
	c := NewCatalog()
	for _, s := range spells {
		if err := c.Register(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded content. It panics if
// the embedded catalog is malformed, which is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := LoadCatalog(content.FS, "spells")
		if err != nil {
			panic(fmt.Sprintf("spell: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Ref returns a Constructor that builds the named spell from the default
// catalog each time it is invoked.
func Ref(name string) Constructor {
	return func() *Spell {
		return Default().New(name)
	}
}
