package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeonsheets/internal/game/names"
)

func TestKey(t *testing.T) {
	cases := map[string]string{
		"Way of the Open Hand":   "way_of_the_open_hand",
		"  giant   eagle ":       "giant_eagle",
		"cloak-of-protection":    "cloak_of_protection",
		"Thieves' Cant":          "thieves_cant",
		"great_weapon__fighting": "great_weapon_fighting",
		"":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, names.Key(in), "Key(%q)", in)
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Giant Eagle", names.Title("giant_eagle"))
	assert.Equal(t, "Mage Hand", names.Title("mage hand"))
}

func TestProperty_KeyIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringMatching(`[A-Za-z '_-]{0,30}`).Draw(rt, "s")
		k := names.Key(s)
		assert.Equal(rt, k, names.Key(k))
	})
}

func TestProperty_KeyCaseInsensitive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringMatching(`[a-z ]{1,30}`).Draw(rt, "s")
		assert.Equal(rt, names.Key(s), names.Key(names.Title(s)))
	})
}
