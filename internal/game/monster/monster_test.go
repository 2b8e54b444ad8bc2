package monster_test

import (
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeonsheets/internal/game/monster"
)

const wolfYAML = `
- id: wolf
  name: Wolf
  size: Medium
  type: beast
  armor_class: 13
  hit_points: 11
  hit_dice: 2d8+2
  speed: 40
  abilities: {strength: 12, dexterity: 15, constitution: 12, intelligence: 3, wisdom: 12, charisma: 6}
  challenge_rating: 0.25
`

func TestLoadFromBytes_Valid(t *testing.T) {
	ms, err := monster.LoadFromBytes([]byte(wolfYAML))
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, "Wolf", ms[0].Name)
	assert.Equal(t, "1/4", ms[0].ChallengeString())
	assert.Equal(t, "40 ft.", ms[0].SpeedString())
}

func TestLoadFromBytes_RejectsBadHitDice(t *testing.T) {
	_, err := monster.LoadFromBytes([]byte(`
- id: blob
  name: Blob
  armor_class: 5
  hit_points: 3
  hit_dice: lots
  abilities: {strength: 1, dexterity: 1, constitution: 1, intelligence: 1, wisdom: 1, charisma: 1}
`))
	assert.Error(t, err)
}

func TestLoadFromBytes_RejectsMissingAbilities(t *testing.T) {
	_, err := monster.LoadFromBytes([]byte("- {id: x, name: X, armor_class: 10, hit_points: 1}\n"))
	assert.Error(t, err)
}

func TestDefaultRegistry_ContainsBeasts(t *testing.T) {
	r, err := monster.DefaultRegistry()
	require.NoError(t, err)

	eagle, ok := r.Lookup("Giant Eagle")
	require.True(t, ok)
	assert.Equal(t, 80, eagle.FlySpeed)

	croc, ok := r.Lookup("crocodile")
	require.True(t, ok)
	assert.Contains(t, croc.SpeedString(), "swim 30 ft.")

	_, ok = r.Lookup("tarrasque")
	assert.False(t, ok)
}

func TestNewRegistry_DuplicateID(t *testing.T) {
	fsys := fstest.MapFS{
		"monsters/a.yaml": {Data: []byte(wolfYAML)},
		"monsters/b.yaml": {Data: []byte(wolfYAML)},
	}
	_, err := monster.LoadRegistry(fsys)
	assert.Error(t, err)
}

func TestProperty_Modifier(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		score := rapid.IntRange(1, 30).Draw(rt, "score")
		mod := monster.Modifier(score)
		assert.LessOrEqual(rt, 2*mod+10, score, fmt.Sprintf("score %d", score))
		assert.Greater(rt, 2*mod+12, score)
	})
}
