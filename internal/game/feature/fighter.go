package feature

// Fighter feature kinds.
const (
	KindArchery             Kind = "archery"
	KindDefense             Kind = "defense"
	KindDueling             Kind = "dueling"
	KindGreatWeaponFighting Kind = "great_weapon_fighting"
	KindProtection          Kind = "protection"
	KindTwoWeaponFighting   Kind = "two_weapon_fighting"
	KindSecondWind          Kind = "second_wind"
	KindActionSurge         Kind = "action_surge"
	KindImprovedCritical    Kind = "improved_critical"
	KindCombatSuperiority   Kind = "combat_superiority"
)

// Selector IDs.
const (
	SelectorFightingStyle    = "fighting_style"
	SelectorMartialArchetype = "martial_archetype"
)

func fighter() ([]*Definition, []*SelectorDefinition) {
	const src = "Fighter"
	defs := []*Definition{
		{
			Kind:        KindSecondWind,
			Name:        "Second Wind",
			Source:      src,
			Description: `On your turn, you can use a bonus action to regain hit points equal to 1d10 + your fighter level. Once you use this feature, you must finish a short or long rest before you can use it again.`,
		},
		{
			Kind:        KindActionSurge,
			Name:        "Action Surge",
			Source:      src,
			Description: `Starting at 2nd level, you can push yourself beyond your normal limits for a moment. On your turn, you can take one additional action. Once you use this feature, you must finish a short or long rest before you can use it again.`,
		},
	}

	archery := &Definition{
		Kind:        KindArchery,
		Name:        "Fighting Style (Archery)",
		Source:      src,
		Description: `You gain a +2 bonus to attack rolls you make with ranged weapons.`,
		WeaponFunc:  archeryWeapon,
	}
	defense := &Definition{
		Kind:        KindDefense,
		Name:        "Fighting Style (Defense)",
		Source:      src,
		Description: `While you are wearing armor, you gain a +1 bonus to AC.`,
	}
	dueling := &Definition{
		Kind:        KindDueling,
		Name:        "Fighting Style (Dueling)",
		Source:      src,
		Description: `When you are wielding a melee weapon in one hand and no other weapons, you gain a +2 bonus to damage rolls with that weapon.`,
		WeaponFunc:  duelingWeapon,
	}
	greatWeapon := &Definition{
		Kind:                KindGreatWeaponFighting,
		Name:                "Fighting Style (Great Weapon Fighting)",
		Source:              src,
		Description:         `When you roll a 1 or 2 on a damage die for an attack you make with a melee weapon that you are wielding with two hands, you can reroll the die and must use the new roll.`,
		NeedsImplementation: true,
	}
	protection := &Definition{
		Kind:        KindProtection,
		Name:        "Fighting Style (Protection)",
		Source:      src,
		Description: `When a creature you can see attacks a target other than you that is within 5 feet of you, you can use your reaction to impose disadvantage on the attack roll. You must be wielding a shield.`,
	}
	twoWeapon := &Definition{
		Kind:                KindTwoWeaponFighting,
		Name:                "Fighting Style (Two-Weapon Fighting)",
		Source:              src,
		Description:         `When you engage in two-weapon fighting, you can add your ability modifier to the damage of the second attack.`,
		NeedsImplementation: true,
	}
	style := &SelectorDefinition{
		ID:          SelectorFightingStyle,
		Name:        "Fighting Style",
		Source:      src,
		Description: `You adopt a particular style of fighting as your specialty. Choose one of the fighting styles using ` + "``feature_choices``" + `.`,
		Options: map[string]*Definition{
			"archery":               archery,
			"defense":               defense,
			"dueling":               dueling,
			"great weapon fighting": greatWeapon,
			"great-weapon fighting": greatWeapon,
			"protection":            protection,
			"two-weapon fighting":   twoWeapon,
			"two weapon fighting":   twoWeapon,
		},
	}

	critical := &Definition{
		Kind:        KindImprovedCritical,
		Name:        "Improved Critical",
		Source:      src,
		Description: `Beginning when you choose this archetype at 3rd level, your weapon attacks score a critical hit on a roll of 19 or 20.`,
	}
	superiority := &Definition{
		Kind:                KindCombatSuperiority,
		Name:                "Combat Superiority",
		Source:              src,
		Description:         `When you choose this archetype at 3rd level, you learn maneuvers that are fueled by special dice called superiority dice.`,
		NeedsImplementation: true,
	}
	archetype := &SelectorDefinition{
		ID:          SelectorMartialArchetype,
		Name:        "Martial Archetype",
		Source:      src,
		Description: `At 3rd level, you choose an archetype that you strive to emulate in your combat styles and techniques.`,
		Options: map[string]*Definition{
			"champion":      critical,
			"battle master": superiority,
		},
	}
	return defs, []*SelectorDefinition{style, archetype}
}
