package feature

// Artificer feature kinds.
const (
	KindMagicalTinkering  Kind = "magical_tinkering"
	KindInfuseItem        Kind = "infuse_item"
	KindAlchemistSpells   Kind = "alchemist_spells"
	KindArtilleristSpells Kind = "artillerist_spells"
)

// SelectorArtificerSpecialist resolves the artificer subclass.
const SelectorArtificerSpecialist = "artificer_specialist"

func artificer() ([]*Definition, []*SelectorDefinition) {
	const src = "Artificer"
	defs := []*Definition{
		{
			Kind:        KindMagicalTinkering,
			Name:        "Magical Tinkering",
			Source:      src,
			Description: `At 1st level, you learn how to invest a spark of magic into mundane objects. To use this ability, you must have thieves' tools or artisan's tools in hand.`,
		},
		{
			Kind:        KindInfuseItem,
			Name:        "Infuse Item",
			Source:      src,
			Description: `At 2nd level, you gain the ability to imbue mundane items with certain magical infusions. Known infusions are listed under ` + "``infusions``" + `.`,
		},
	}
	alchemist := &Definition{
		Kind:           KindAlchemistSpells,
		Name:           "Alchemist Spells",
		Source:         src,
		Description:    `Starting at 3rd level, you always have certain spells prepared after you reach particular levels in this class.`,
		SpellsPrepared: spells("healing_word"),
	}
	artillerist := &Definition{
		Kind:           KindArtilleristSpells,
		Name:           "Artillerist Spells",
		Source:         src,
		Description:    `Starting at 3rd level, you always have certain spells prepared after you reach particular levels in this class.`,
		SpellsPrepared: spells("shield", "thunderwave"),
	}
	specialist := &SelectorDefinition{
		ID:          SelectorArtificerSpecialist,
		Name:        "Artificer Specialist",
		Source:      src,
		Description: `At 3rd level, you choose the type of specialist you are.`,
		Options: map[string]*Definition{
			"alchemist":   alchemist,
			"artillerist": artillerist,
		},
	}
	return defs, []*SelectorDefinition{specialist}
}
