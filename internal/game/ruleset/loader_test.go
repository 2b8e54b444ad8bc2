package ruleset_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dungeonsheets/internal/game/feature"
	"github.com/cory-johannsen/dungeonsheets/internal/game/ruleset"
)

func TestLoadRaces_ParsesYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"races/wood_elf.yaml": {Data: []byte(`
id: wood_elf
name: Wood Elf
size: Medium
speed: 35
ability_bonuses:
  dexterity: 2
  wisdom: 1
traits:
  - name: Mask of the Wild
    description: You can attempt to hide when lightly obscured by foliage.
`)},
	}
	races, err := ruleset.LoadRaces(fsys, "races")
	require.NoError(t, err)
	require.Len(t, races, 1)
	r := races[0]
	assert.Equal(t, "Wood Elf", r.Name)
	assert.Equal(t, 35, r.Speed)
	assert.Equal(t, 2, r.AbilityBonuses["dexterity"])
	require.Len(t, r.Traits, 1)
	assert.Equal(t, "Mask of the Wild", r.Traits[0].Name)
}

func TestLoadClasses_InvalidYAML(t *testing.T) {
	fsys := fstest.MapFS{"classes/bad.yaml": {Data: []byte("id: [unterminated")}}
	_, err := ruleset.LoadClasses(fsys, "classes")
	assert.Error(t, err)
}

func TestLoadClasses_MissingDir(t *testing.T) {
	_, err := ruleset.LoadClasses(fstest.MapFS{}, "classes")
	assert.Error(t, err)
}

func TestClass_Validate(t *testing.T) {
	cat := feature.Default()
	good := &ruleset.Class{
		ID: "monk", Name: "Monk", HitDie: 8,
		Features: []ruleset.LevelFeature{
			{Level: 1, Feature: feature.KindMartialArts},
			{Level: 3, Selector: feature.SelectorMonasticTradition},
		},
	}
	assert.NoError(t, good.Validate(cat))

	unknown := *good
	unknown.Features = []ruleset.LevelFeature{{Level: 1, Feature: "kung_fu"}}
	assert.Error(t, unknown.Validate(cat))
	assert.NoError(t, unknown.Validate(nil))

	both := *good
	both.Features = []ruleset.LevelFeature{{Level: 1, Feature: feature.KindKi, Selector: feature.SelectorMonasticTradition}}
	assert.Error(t, both.Validate(cat))

	badDie := *good
	badDie.HitDie = 7
	assert.Error(t, badDie.Validate(cat))

	caster := *good
	caster.Spellcaster = ruleset.CasterFull
	assert.Error(t, caster.Validate(cat), "full caster without ability")
}

func TestClass_Validate_ThirdCasterOnlyOnSubclasses(t *testing.T) {
	rogue := &ruleset.Class{
		ID: "rogue", Name: "Rogue", HitDie: 8,
		Subclasses: []ruleset.Subclass{{
			ID: "arcane_trickster", Name: "Arcane Trickster",
			Spellcaster: ruleset.CasterThird, SpellcastingAbility: "intelligence",
		}},
	}
	assert.NoError(t, rogue.Validate(nil))

	noAbility := *rogue
	noAbility.Subclasses = []ruleset.Subclass{{ID: "x", Name: "X", Spellcaster: ruleset.CasterThird}}
	assert.Error(t, noAbility.Validate(nil))

	unknown := *rogue
	unknown.Subclasses = []ruleset.Subclass{{ID: "x", Name: "X", Spellcaster: "pact", SpellcastingAbility: "charisma"}}
	assert.Error(t, unknown.Validate(nil))

	thirdClass := *rogue
	thirdClass.Spellcaster = ruleset.CasterThird
	thirdClass.SpellcastingAbility = "intelligence"
	assert.Error(t, thirdClass.Validate(nil))
}

func TestClass_CasterLevel(t *testing.T) {
	full := &ruleset.Class{Spellcaster: ruleset.CasterFull}
	half := &ruleset.Class{Spellcaster: ruleset.CasterHalf}
	art := &ruleset.Class{Spellcaster: ruleset.CasterArtificer}
	none := &ruleset.Class{Spellcaster: ruleset.CasterNone}
	assert.Equal(t, 5, full.CasterLevel(5))
	assert.Equal(t, 2, half.CasterLevel(5))
	assert.Equal(t, 3, art.CasterLevel(5))
	assert.Equal(t, 1, art.CasterLevel(1))
	assert.Equal(t, 0, none.CasterLevel(5))
	assert.Equal(t, 1, ruleset.CasterLevel(ruleset.CasterThird, 3))
	assert.Equal(t, 0, ruleset.CasterLevel(ruleset.CasterThird, 2))
	assert.Equal(t, 6, ruleset.CasterLevel(ruleset.CasterThird, 20))
	assert.False(t, none.IsSpellcaster())
	assert.True(t, art.IsSpellcaster())
}

func TestClass_FeaturesAt(t *testing.T) {
	c := &ruleset.Class{Features: []ruleset.LevelFeature{
		{Level: 1, Feature: "a"}, {Level: 2, Feature: "b"}, {Level: 3, Selector: "c"},
	}}
	assert.Len(t, c.FeaturesAt(1), 1)
	assert.Len(t, c.FeaturesAt(3), 3)
	assert.Empty(t, c.FeaturesAt(0))
}
