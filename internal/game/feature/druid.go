package feature

// Druid feature kinds.
const (
	KindDruidic         Kind = "druidic"
	KindWildShape       Kind = "wild_shape"
	KindNaturalRecovery Kind = "natural_recovery"
	KindCombatWildShape Kind = "combat_wild_shape"
)

// SelectorDruidCircle resolves the druid subclass.
const SelectorDruidCircle = "druid_circle"

func druid() ([]*Definition, []*SelectorDefinition) {
	const src = "Druid"
	defs := []*Definition{
		{
			Kind:        KindDruidic,
			Name:        "Druidic",
			Source:      src,
			Description: `You know Druidic, the secret language of druids. You can speak the language and use it to leave hidden messages.`,
		},
		{
			Kind:   KindWildShape,
			Name:   "Wild Shape",
			Source: src,
			Description: `Starting at 2nd level, you can use your action to magically assume the
shape of a beast that you have seen before. You can use this feature twice,
regaining expended uses after a short or long rest. Known beasts are listed
under ` + "``wild_shapes``" + `.`,
		},
	}
	land := &Definition{
		Kind:        KindNaturalRecovery,
		Name:        "Natural Recovery",
		Source:      src,
		Description: `Starting at 2nd level, you can regain some of your magical energy by sitting in meditation and communing with nature during a short rest.`,
	}
	moon := &Definition{
		Kind:        KindCombatWildShape,
		Name:        "Combat Wild Shape",
		Source:      src,
		Description: `When you choose this circle at 2nd level, you gain the ability to use Wild Shape on your turn as a bonus action, rather than as an action.`,
	}
	circle := &SelectorDefinition{
		ID:          SelectorDruidCircle,
		Name:        "Druid Circle",
		Source:      src,
		Description: `At 2nd level, you choose to identify with a circle of druids.`,
		Options: map[string]*Definition{
			"circle of the land": land,
			"land":               land,
			"circle of the moon": moon,
			"moon":               moon,
		},
	}
	return defs, []*SelectorDefinition{circle}
}
