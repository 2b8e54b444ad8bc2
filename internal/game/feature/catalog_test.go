package feature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dungeonsheets/internal/game/feature"
)

func TestDefault_Consistent(t *testing.T) {
	c := feature.Default()
	require.NotNil(t, c)
	assert.Greater(t, c.Len(), 30)

	for _, id := range []string{
		feature.SelectorMonasticTradition,
		feature.SelectorFightingStyle,
		feature.SelectorMartialArchetype,
		feature.SelectorRoguishArchetype,
		feature.SelectorDivineDomain,
		feature.SelectorDruidCircle,
		feature.SelectorArcaneTradition,
		feature.SelectorArtificerSpecialist,
	} {
		_, ok := c.Selector(id)
		assert.True(t, ok, id)
	}
}

func TestCatalog_ByNameIsCaseInsensitive(t *testing.T) {
	d, ok := feature.Default().ByName("martial arts")
	require.True(t, ok)
	assert.Equal(t, feature.KindMartialArts, d.Kind)

	d, ok = feature.Default().ByName("Thieves' Cant")
	require.True(t, ok)
	assert.Equal(t, feature.KindThievesCant, d.Kind)
}

func TestCatalog_LookupUnknownCreatesPlaceholder(t *testing.T) {
	owner := &fakeOwner{}
	f := feature.Default().Lookup("tavern brawler", owner)
	assert.Equal(t, "Tavern Brawler", f.Name)
	assert.True(t, f.NeedsImplementation)
	assert.Equal(t, feature.KindUnimplemented, f.Kind)
	assert.Same(t, owner, f.Owner)
}

func TestCatalog_LookupKnown(t *testing.T) {
	f := feature.Default().Lookup("Second Wind", nil)
	assert.Equal(t, feature.KindSecondWind, f.Kind)
	assert.Equal(t, "Fighter", f.Source)
	assert.False(t, f.NeedsImplementation)
}

func TestNewCatalog_DuplicateKind(t *testing.T) {
	a := &feature.Definition{Kind: "a", Name: "A"}
	b := &feature.Definition{Kind: "a", Name: "B"}
	_, err := feature.NewCatalog([]*feature.Definition{a, b}, nil)
	assert.Error(t, err)
}

func TestNewCatalog_DuplicateSelector(t *testing.T) {
	s := &feature.SelectorDefinition{ID: "x", Name: "X"}
	_, err := feature.NewCatalog(nil, []*feature.SelectorDefinition{s, s})
	assert.Error(t, err)
}
