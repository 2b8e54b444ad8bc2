package feature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeonsheets/internal/game/feature"
	"github.com/cory-johannsen/dungeonsheets/internal/game/inventory"
	"github.com/cory-johannsen/dungeonsheets/internal/game/spell"
)

type fakeOwner struct {
	levels map[string]int
	mods   map[string]int
}

func (o *fakeOwner) ClassLevel(class string) int { return o.levels[class] }
func (o *fakeOwner) Modifier(ability string) int { return o.mods[ability] }
func (o *fakeOwner) ProficiencyBonus() int       { return 2 }

func TestFeature_EqualIgnoresOtherAttributes(t *testing.T) {
	a := &feature.Feature{Name: "Ki", Source: "Monk", Description: "one", NeedsImplementation: true}
	b := &feature.Feature{Name: "Ki", Source: "Monk", Description: "two", Kind: feature.KindKi}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(&feature.Feature{Name: "Ki", Source: "Elf"}))
	assert.False(t, a.Equal(&feature.Feature{Name: "ki", Source: "Monk"}))
}

func TestProperty_Feature_EqualByNameAndSource(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.String().Draw(rt, "name")
		source := rapid.String().Draw(rt, "source")
		a := &feature.Feature{Name: name, Source: source, Description: rapid.String().Draw(rt, "da")}
		b := &feature.Feature{Name: name, Source: source, NeedsImplementation: rapid.Bool().Draw(rt, "ni")}
		assert.True(rt, a.Equal(b))
		assert.True(rt, b.Equal(a))
		assert.Equal(rt, a.Hash(), b.Hash())
	})
}

func TestFeature_HashIsConstant(t *testing.T) {
	a := feature.Trait("Darkvision", "Elf", "")
	b := feature.Trait("Lucky", "Halfling", "")
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(b))
}

func TestNew_MaterializesSpells(t *testing.T) {
	calls := 0
	ctor := func() *spell.Spell {
		calls++
		return &spell.Spell{Name: "Bless"}
	}
	def := &feature.Definition{
		Kind:           "test",
		Name:           "Test",
		SpellsKnown:    []spell.Constructor{ctor, ctor},
		SpellsPrepared: []spell.Constructor{ctor},
	}
	f := feature.New(def, nil)
	assert.Len(t, f.SpellsKnown, 2)
	assert.Len(t, f.SpellsPrepared, 1)
	assert.Equal(t, 3, calls)
	assert.NotSame(t, f.SpellsKnown[0], f.SpellsKnown[1])
}

func TestProperty_New_SpellCountMatchesDefinition(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		nKnown := rapid.IntRange(0, 6).Draw(rt, "known")
		nPrepared := rapid.IntRange(0, 6).Draw(rt, "prepared")
		ctor := func() *spell.Spell { return &spell.Spell{} }
		def := &feature.Definition{Kind: "x", Name: "X"}
		for i := 0; i < nKnown; i++ {
			def.SpellsKnown = append(def.SpellsKnown, ctor)
		}
		for i := 0; i < nPrepared; i++ {
			def.SpellsPrepared = append(def.SpellsPrepared, ctor)
		}
		f := feature.New(def, nil)
		assert.Len(rt, f.SpellsKnown, nKnown)
		assert.Len(rt, f.SpellsPrepared, nPrepared)
	})
}

func TestNew_BindsOwnerByReference(t *testing.T) {
	owner := &fakeOwner{}
	f := feature.New(&feature.Definition{Kind: "x", Name: "X"}, owner)
	assert.Same(t, owner, f.Owner)
}

func TestWeapon_DefaultIsIdentity(t *testing.T) {
	w := &inventory.Weapon{Name: "Club", Damage: "1d4"}
	f := feature.Trait("Darkvision", "Elf", "")
	assert.Same(t, w, f.Weapon(w, nil))
}

func TestCreate_AdHocFeature(t *testing.T) {
	f := feature.Create(map[string]any{"name": "Lucky", "source": "Halfling", "uses": 3})
	assert.Equal(t, "Lucky", f.Name)
	assert.Equal(t, "Halfling", f.Source)
	assert.Equal(t, feature.KindUnimplemented, f.Kind)
	assert.True(t, f.NeedsImplementation)
	assert.Equal(t, 3, f.Attributes["uses"])
}

func TestCreate_DefaultName(t *testing.T) {
	f := feature.Create(nil)
	assert.Equal(t, "Generic Feature", f.Name)
	assert.True(t, f.NeedsImplementation)
}

func TestSet_DeduplicatesByNameAndSource(t *testing.T) {
	var s feature.Set
	require.True(t, s.Add(feature.Trait("Darkvision", "Elf", "a")))
	assert.False(t, s.Add(feature.Trait("Darkvision", "Elf", "b")))
	assert.True(t, s.Add(feature.Trait("Darkvision", "Dwarf", "c")))
	assert.Equal(t, 2, s.Len())
	items := s.Items()
	assert.Equal(t, "a", items[0].Description)
	assert.Equal(t, "Dwarf", items[1].Source)
}
