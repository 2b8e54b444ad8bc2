package inventory

import (
	"fmt"
	"io/fs"

	"github.com/cory-johannsen/dungeonsheets/content"
	"github.com/cory-johannsen/dungeonsheets/internal/game/names"
)

// Registry holds all loaded weapon, armor and magic item definitions indexed
// by names.Key of their ID and display name.
type Registry struct {
	weapons    map[string]*Weapon
	armor      map[string]*Armor
	magicItems map[string]*MagicItem
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		weapons:    make(map[string]*Weapon),
		armor:      make(map[string]*Armor),
		magicItems: make(map[string]*MagicItem),
	}
}

// RegisterWeapon adds w to the registry.
//
// Precondition: w must not be nil.
// Postcondition: Weapon(w.ID) returns a clone of w; returns error if w.ID is
// already registered.
func (r *Registry) RegisterWeapon(w *Weapon) error {
	key := names.Key(w.ID)
	if _, exists := r.weapons[key]; exists {
		return fmt.Errorf("inventory: Registry.RegisterWeapon: weapon ID %q already registered", w.ID)
	}
	r.weapons[key] = w
	r.weapons[names.Key(w.Name)] = w
	return nil
}

// RegisterArmor adds a to the registry.
//
// Precondition: a must not be nil.
// Postcondition: Armor(a.ID) returns a; returns error if a.ID is already registered.
func (r *Registry) RegisterArmor(a *Armor) error {
	key := names.Key(a.ID)
	if _, exists := r.armor[key]; exists {
		return fmt.Errorf("inventory: Registry.RegisterArmor: armor ID %q already registered", a.ID)
	}
	r.armor[key] = a
	r.armor[names.Key(a.Name)] = a
	return nil
}

// RegisterMagicItem adds m to the registry.
//
// Precondition: m must not be nil.
// Postcondition: MagicItem(m.ID) returns m; returns error if m.ID is already registered.
func (r *Registry) RegisterMagicItem(m *MagicItem) error {
	key := names.Key(m.ID)
	if _, exists := r.magicItems[key]; exists {
		return fmt.Errorf("inventory: Registry.RegisterMagicItem: magic item ID %q already registered", m.ID)
	}
	r.magicItems[key] = m
	r.magicItems[names.Key(m.Name)] = m
	return nil
}

// Weapon returns a clone of the named weapon and true, or a placeholder
// simple melee weapon dealing 1d4 and false when the name is unknown.
func (r *Registry) Weapon(name string) (*Weapon, bool) {
	if w, ok := r.weapons[names.Key(name)]; ok {
		return w.Clone(), true
	}
	return &Weapon{
		ID:                  names.Key(name),
		Name:                names.Title(name),
		Category:            CategorySimple,
		Damage:              "1d4",
		DamageType:          "bludgeoning",
		NeedsImplementation: true,
	}, false
}

// Armor returns the named armor, or nil and false if not found.
func (r *Registry) Armor(name string) (*Armor, bool) {
	a, ok := r.armor[names.Key(name)]
	return a, ok
}

// MagicItem returns a copy of the named magic item and true, or a placeholder
// flagged NeedsImplementation and false.
func (r *Registry) MagicItem(name string) (*MagicItem, bool) {
	if m, ok := r.magicItems[names.Key(name)]; ok {
		cp := *m
		return &cp, true
	}
	return &MagicItem{
		ID:                  names.Key(name),
		Name:                names.Title(name),
		NeedsImplementation: true,
	}, false
}

// LoadRegistry loads the weapons, armor and magic_items directories of fsys
// into a new Registry.
//
// Postcondition: Returns a populated Registry or the first load error.
func LoadRegistry(fsys fs.FS) (*Registry, error) {
	r := NewRegistry()
	weapons, err := LoadWeapons(fsys, "weapons")
	if err != nil {
		return nil, err
	}
	for _, w := range weapons {
		if err := r.RegisterWeapon(w); err != nil {
			return nil, err
		}
	}
	armor, err := LoadArmor(fsys, "armor")
	if err != nil {
		return nil, err
	}
	for _, a := range armor {
		if err := r.RegisterArmor(a); err != nil {
			return nil, err
		}
	}
	items, err := LoadMagicItems(fsys, "magic_items")
	if err != nil {
		return nil, err
	}
	for _, m := range items {
		if err := r.RegisterMagicItem(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry loads the embedded equipment catalogs.
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(content.FS)
}
