package feature

// Rogue feature kinds.
const (
	KindExpertise           Kind = "expertise"
	KindSneakAttack         Kind = "sneak_attack"
	KindThievesCant         Kind = "thieves_cant"
	KindCunningAction       Kind = "cunning_action"
	KindFastHands           Kind = "fast_hands"
	KindMageHandLegerdemain Kind = "mage_hand_legerdemain"
)

// SelectorRoguishArchetype resolves the rogue subclass.
const SelectorRoguishArchetype = "roguish_archetype"

func rogue() ([]*Definition, []*SelectorDefinition) {
	const src = "Rogue"
	defs := []*Definition{
		{
			Kind:        KindExpertise,
			Name:        "Expertise",
			Source:      src,
			Description: `At 1st level, choose two of your skill proficiencies. Your proficiency bonus is doubled for any ability check you make that uses either of the chosen proficiencies. List them under ` + "``skill_expertise``" + `.`,
		},
		{
			Kind:   KindSneakAttack,
			Name:   "Sneak Attack",
			Source: src,
			Description: `Beginning at 1st level, you know how to strike subtly and exploit a foe's
distraction. Once per turn, you can deal an extra 1d6 damage to one
creature you hit with an attack if you have advantage on the attack roll.
The attack must use a finesse or a ranged weapon. The extra damage
increases as you gain levels in this class.`,
			WeaponFunc: sneakAttackWeapon,
		},
		{
			Kind:        KindThievesCant,
			Name:        "Thieves' Cant",
			Source:      src,
			Description: `During your rogue training you learned thieves' cant, a secret mix of dialect, jargon, and code that allows you to hide messages in seemingly normal conversation.`,
		},
		{
			Kind:        KindCunningAction,
			Name:        "Cunning Action",
			Source:      src,
			Description: `Starting at 2nd level, you can take a bonus action on each of your turns in combat. This action can be used only to take the Dash, Disengage, or Hide action.`,
		},
	}
	fastHands := &Definition{
		Kind:        KindFastHands,
		Name:        "Fast Hands",
		Source:      src,
		Description: `Starting at 3rd level, you can use the bonus action granted by your Cunning Action to make a Dexterity (Sleight of Hand) check, use your thieves' tools, or take the Use an Object action.`,
	}
	legerdemain := &Definition{
		Kind:        KindMageHandLegerdemain,
		Name:        "Mage Hand Legerdemain",
		Source:      src,
		Description: `Starting at 3rd level, when you cast *mage hand*, you can make the spectral hand invisible.`,
		SpellsKnown: spells("mage_hand"),
	}
	archetype := &SelectorDefinition{
		ID:          SelectorRoguishArchetype,
		Name:        "Roguish Archetype",
		Source:      src,
		Description: `At 3rd level, you choose an archetype that you emulate in the exercise of your rogue abilities.`,
		Options: map[string]*Definition{
			"thief":            fastHands,
			"arcane trickster": legerdemain,
		},
	}
	return defs, []*SelectorDefinition{archetype}
}
