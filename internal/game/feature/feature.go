// Package feature models named character traits and abilities granted by a
// race, class or background, the selectors that resolve a player's choice to
// one concrete feature, and the weapon hooks through which features modify
// attacks.
package feature

import (
	"fmt"

	"github.com/cory-johannsen/dungeonsheets/internal/game/inventory"
	"github.com/cory-johannsen/dungeonsheets/internal/game/spell"
)

// Kind tags the concrete kind of a feature. Kinds with mechanical effects
// carry a WeaponFunc in their Definition.
type Kind string

const (
	// KindUnimplemented marks placeholders and ad hoc features whose rules are
	// not modelled.
	KindUnimplemented Kind = "unimplemented"
	// KindTrait marks a purely textual race or background trait.
	KindTrait Kind = "trait"
)

// Owner is the lookup-only view a feature has of the character it belongs
// to. A feature never owns its Owner.
type Owner interface {
	// ClassLevel returns the owner's level in the class keyed by class
	// ("monk"), or 0.
	ClassLevel(class string) int
	// Modifier returns the ability modifier for the named ability ("dexterity").
	Modifier(ability string) int
	ProficiencyBonus() int
}

// Options carries the situational keyword arguments given to weapon hooks,
// e.g. {"sneak_attack": true}.
type Options map[string]any

// Bool reports whether key is set to boolean true.
func (o Options) Bool(key string) bool {
	v, ok := o[key].(bool)
	return ok && v
}

// WeaponFunc adjusts a weapon for a feature. Implementations must not modify
// w; they return w unchanged or a modified clone.
type WeaponFunc func(f *Feature, w *inventory.Weapon, opts Options) *inventory.Weapon

// Definition is the static description of one feature kind.
type Definition struct {
	Kind                Kind
	Name                string
	Source              string
	Description         string
	SpellsKnown         []spell.Constructor
	SpellsPrepared      []spell.Constructor
	NeedsImplementation bool
	WeaponFunc          WeaponFunc
}

// Feature is a live feature bound to an owner.
type Feature struct {
	Kind                Kind
	Name                string
	Source              string
	Description         string
	Owner               Owner
	SpellsKnown         []*spell.Spell
	SpellsPrepared      []*spell.Spell
	NeedsImplementation bool
	// Attributes holds the raw parameters of features built with Create.
	Attributes map[string]any

	weaponFunc WeaponFunc
}

// New builds a feature of the kind described by def for owner.
//
// Precondition: def must not be nil. owner may be nil.
// Postcondition: every spell constructor in def has been invoked exactly once;
// len(f.SpellsKnown) == len(def.SpellsKnown) and likewise for prepared spells.
func New(def *Definition, owner Owner) *Feature {
	return &Feature{
		Kind:                def.Kind,
		Name:                def.Name,
		Source:              def.Source,
		Description:         def.Description,
		Owner:               owner,
		SpellsKnown:         materialize(def.SpellsKnown),
		SpellsPrepared:      materialize(def.SpellsPrepared),
		NeedsImplementation: def.NeedsImplementation,
		weaponFunc:          def.WeaponFunc,
	}
}

func materialize(ctors []spell.Constructor) []*spell.Spell {
	if len(ctors) == 0 {
		return nil
	}
	out := make([]*spell.Spell, 0, len(ctors))
	for _, ctor := range ctors {
		out = append(out, ctor())
	}
	return out
}

// Weapon applies the feature's weapon hook to w.
//
// Postcondition: returns w itself when the feature has no hook or the hook
// does not apply; otherwise a modified clone. Callers must use the result.
func (f *Feature) Weapon(w *inventory.Weapon, opts Options) *inventory.Weapon {
	if f.weaponFunc == nil {
		return w
	}
	return f.weaponFunc(f, w, opts)
}

// Equal reports whether f and other share the same name and source. Every
// other attribute is ignored.
func (f *Feature) Equal(other *Feature) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Name == other.Name && f.Source == other.Source
}

// constantHash is shared by every feature; see Hash.
const constantHash uint64 = 0

// Hash returns the same value for every feature. Hash-keyed containers see
// every feature collide and must fall back to Equal, which is what Set does.
func (f *Feature) Hash() uint64 {
	return constantHash
}

func (f *Feature) String() string {
	return f.Name
}

// GoString quotes the name the way debug listings show features.
func (f *Feature) GoString() string {
	return fmt.Sprintf("%q", f.Name)
}

// Trait builds an implemented textual feature, such as a racial trait.
func Trait(name, source, description string) *Feature {
	return &Feature{
		Kind:        KindTrait,
		Name:        name,
		Source:      source,
		Description: description,
	}
}

// Create builds an ad hoc feature from an attribute mapping, for features
// that have no catalog entry yet. Recognised keys are "name", "source" and
// "description"; every key is retained in Attributes.
//
// Postcondition: the result has Kind KindUnimplemented and
// NeedsImplementation set, and Name defaults to "Generic Feature".
func Create(attrs map[string]any) *Feature {
	f := &Feature{
		Kind:                KindUnimplemented,
		Name:                "Generic Feature",
		NeedsImplementation: true,
		Attributes:          make(map[string]any, len(attrs)),
	}
	for k, v := range attrs {
		f.Attributes[k] = v
	}
	if s, ok := attrs["name"].(string); ok && s != "" {
		f.Name = s
	}
	if s, ok := attrs["source"].(string); ok {
		f.Source = s
	}
	if s, ok := attrs["description"].(string); ok {
		f.Description = s
	}
	return f
}
