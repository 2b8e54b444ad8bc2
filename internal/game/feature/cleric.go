package feature

// Cleric feature kinds.
const (
	KindChannelDivinity Kind = "channel_divinity"
	KindDivineStrike    Kind = "divine_strike"
	KindDiscipleOfLife  Kind = "disciple_of_life"
	KindWardingFlare    Kind = "warding_flare"
)

// SelectorDivineDomain resolves the cleric subclass.
const SelectorDivineDomain = "divine_domain"

func cleric() ([]*Definition, []*SelectorDefinition) {
	const src = "Cleric"
	defs := []*Definition{
		{
			Kind:        KindChannelDivinity,
			Name:        "Channel Divinity",
			Source:      src,
			Description: `At 2nd level, you gain the ability to channel divine energy directly from your deity, using that energy to fuel magical effects. You start with **Turn Undead**.`,
		},
		{
			Kind:        KindDivineStrike,
			Name:        "Divine Strike",
			Source:      src,
			Description: `At 8th level, you gain the ability to infuse your weapon strikes with divine energy. Once on each of your turns when you hit a creature with a weapon attack, you can cause the attack to deal an extra 1d8 damage. When you reach 14th level, the extra damage increases to 2d8.`,
			WeaponFunc:  divineStrikeWeapon,
		},
	}
	life := &Definition{
		Kind:           KindDiscipleOfLife,
		Name:           "Disciple of Life",
		Source:         src,
		Description:    `Starting at 1st level, your healing spells are more effective. Whenever you use a spell of 1st level or higher to restore hit points to a creature, the creature regains additional hit points equal to 2 + the spell's level.`,
		SpellsPrepared: spells("bless", "cure_wounds"),
	}
	light := &Definition{
		Kind:           KindWardingFlare,
		Name:           "Warding Flare",
		Source:         src,
		Description:    `Also at 1st level, you can interpose divine light between yourself and an attacking enemy, imposing disadvantage on the attack roll.`,
		SpellsPrepared: spells("burning_hands", "faerie_fire"),
	}
	domain := &SelectorDefinition{
		ID:          SelectorDivineDomain,
		Name:        "Divine Domain",
		Source:      src,
		Description: `Choose one domain related to your deity. Your choice grants you domain spells and other features when you choose it at 1st level.`,
		Options: map[string]*Definition{
			"life domain":  life,
			"life":         life,
			"light domain": light,
			"light":        light,
		},
	}
	return defs, []*SelectorDefinition{domain}
}
