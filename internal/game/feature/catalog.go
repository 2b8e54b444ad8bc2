package feature

import (
	"fmt"
	"sync"

	"github.com/cory-johannsen/dungeonsheets/internal/game/names"
	"github.com/cory-johannsen/dungeonsheets/internal/game/spell"
)

// Catalog indexes feature definitions by kind and by name, and selectors by
// ID and name. A Catalog is read-only once built.
type Catalog struct {
	defs      map[Kind]*Definition
	byName    map[string]*Definition
	selectors map[string]*SelectorDefinition
}

// NewCatalog builds a Catalog from defs and sels. The option definitions of
// every selector are indexed as well.
//
// Postcondition: returns an error if two different definitions share a kind
// or two selectors share an ID.
func NewCatalog(defs []*Definition, sels []*SelectorDefinition) (*Catalog, error) {
	c := &Catalog{
		defs:      make(map[Kind]*Definition),
		byName:    make(map[string]*Definition),
		selectors: make(map[string]*SelectorDefinition),
	}
	for _, d := range defs {
		if err := c.addDefinition(d); err != nil {
			return nil, err
		}
	}
	for _, s := range sels {
		id := names.Key(s.ID)
		if _, dup := c.selectors[id]; dup {
			return nil, fmt.Errorf("feature catalog: duplicate selector %q", s.ID)
		}
		c.selectors[id] = s
		c.selectors[names.Key(s.Name)] = s
		for _, opt := range s.Options {
			if err := c.addDefinition(opt); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Catalog) addDefinition(d *Definition) error {
	if existing, ok := c.defs[d.Kind]; ok {
		if existing == d {
			return nil
		}
		return fmt.Errorf("feature catalog: duplicate kind %q", d.Kind)
	}
	c.defs[d.Kind] = d
	// Names are not unique across sources ("Unarmored Defense"); the first
	// registered definition answers name lookups.
	if _, ok := c.byName[names.Key(d.Name)]; !ok {
		c.byName[names.Key(d.Name)] = d
	}
	return nil
}

// Definition returns the definition of kind.
func (c *Catalog) Definition(kind Kind) (*Definition, bool) {
	d, ok := c.defs[kind]
	return d, ok
}

// Selector returns the selector with the given ID or name.
func (c *Catalog) Selector(id string) (*SelectorDefinition, bool) {
	s, ok := c.selectors[names.Key(id)]
	return s, ok
}

// ByName returns the definition whose name matches name case-insensitively.
func (c *Catalog) ByName(name string) (*Definition, bool) {
	d, ok := c.byName[names.Key(name)]
	return d, ok
}

// Lookup builds the feature called name for owner. Unknown names yield an ad
// hoc feature from Create carrying the name in title case.
func (c *Catalog) Lookup(name string, owner Owner) *Feature {
	if d, ok := c.ByName(name); ok {
		return New(d, owner)
	}
	f := Create(map[string]any{"name": names.Title(name)})
	f.Owner = owner
	return f
}

// Len returns the number of distinct feature kinds.
func (c *Catalog) Len() int { return len(c.defs) }

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog of class features.
//
// Postcondition: panics if the built-in definitions are inconsistent.
func Default() *Catalog {
	defaultOnce.Do(func() {
		var defs []*Definition
		var sels []*SelectorDefinition
		for _, class := range []func() ([]*Definition, []*SelectorDefinition){
			monk, fighter, rogue, cleric, druid, wizard, artificer,
		} {
			d, s := class()
			defs = append(defs, d...)
			sels = append(sels, s...)
		}
		c, err := NewCatalog(defs, sels)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func spells(ids ...string) []spell.Constructor {
	out := make([]spell.Constructor, 0, len(ids))
	for _, id := range ids {
		out = append(out, spell.Ref(id))
	}
	return out
}
