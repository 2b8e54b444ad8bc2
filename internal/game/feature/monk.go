package feature

// Monk feature kinds.
const (
	KindMonkUnarmoredDefense  Kind = "monk_unarmored_defense"
	KindMartialArts           Kind = "martial_arts"
	KindKi                    Kind = "ki"
	KindUnarmoredMovement     Kind = "unarmored_movement"
	KindDeflectMissiles       Kind = "deflect_missiles"
	KindOpenHandTechnique     Kind = "open_hand_technique"
	KindShadowArts            Kind = "shadow_arts"
	KindDiscipleOfTheElements Kind = "disciple_of_the_elements"
)

// SelectorMonasticTradition resolves the monk subclass.
const SelectorMonasticTradition = "monastic_tradition"

// UnarmoredMovementBonus returns the speed bonus in feet at the given monk level.
func UnarmoredMovementBonus(monkLevel int) int {
	if monkLevel < 2 {
		return 0
	}
	return 10 + 5*((monkLevel-2)/4)
}

func monk() ([]*Definition, []*SelectorDefinition) {
	const src = "Monk"
	defs := []*Definition{
		{
			Kind:   KindMonkUnarmoredDefense,
			Name:   "Unarmored Defense",
			Source: src,
			Description: `Beginning at 1st level, while you are wearing no armor and not wielding a
shield, your AC equals 10 + your Dexterity modifier + your Wisdom modifier.`,
		},
		{
			Kind:   KindMartialArts,
			Name:   "Martial Arts",
			Source: src,
			Description: `At 1st level, your practice of martial arts gives you mastery of combat
styles that use unarmed strikes and monk weapons.

- You can use Dexterity instead of Strength for the attack and damage rolls
  of your unarmed strikes and monk weapons.
- You can roll a d4 in place of the normal damage of your unarmed strike or
  monk weapon. This die changes as you gain monk levels.
- When you use the Attack action with an unarmed strike or a monk weapon on
  your turn, you can make one unarmed strike as a bonus action.`,
			WeaponFunc: martialArtsWeapon,
		},
		{
			Kind:   KindKi,
			Name:   "Ki",
			Source: src,
			Description: `Starting at 2nd level, your training allows you to harness the mystic
energy of ki. You have a number of ki points equal to your monk level.
You can spend them on **Flurry of Blows**, **Patient Defense** and
**Step of the Wind**. Spent points return after a short or long rest.`,
		},
		{
			Kind:   KindUnarmoredMovement,
			Name:   "Unarmored Movement",
			Source: src,
			Description: `Starting at 2nd level, your speed increases by 10 feet while you are not
wearing armor or wielding a shield. This bonus increases as you gain monk
levels.`,
		},
		{
			Kind:   KindDeflectMissiles,
			Name:   "Deflect Missiles",
			Source: src,
			Description: `Starting at 3rd level, you can use your reaction to deflect or catch the
missile when you are hit by a ranged weapon attack. The damage you take is
reduced by 1d10 + your Dexterity modifier + your monk level.`,
			NeedsImplementation: true,
		},
	}
	tradition := &SelectorDefinition{
		ID:     SelectorMonasticTradition,
		Name:   "Monastic Tradition",
		Source: src,
		Description: `When you reach 3rd level, you commit yourself to a monastic tradition.
Select one using the ` + "``feature_choices``" + ` or ` + "``subclasses``" + ` entries.`,
		Options: map[string]*Definition{},
	}
	openHand := &Definition{
		Kind:   KindOpenHandTechnique,
		Name:   "Open Hand Technique",
		Source: src,
		Description: `Starting when you choose this tradition at 3rd level, whenever you hit a
creature with one of the attacks granted by your Flurry of Blows you can
impose one of the following effects on that target:

- It must succeed on a Dexterity saving throw or be knocked prone.
- It must make a Strength saving throw. If it fails, you can push it up to
  15 feet away from you.
- It can't take reactions until the end of your next turn.`,
	}
	shadow := &Definition{
		Kind:   KindShadowArts,
		Name:   "Shadow Arts",
		Source: src,
		Description: `Starting when you choose this tradition at 3rd level, you can use your ki
to duplicate the effects of certain spells. As an action, you can spend 2
ki points to cast *darkness*, *darkvision*, *pass without trace* or
*silence*, without providing material components.`,
		SpellsKnown: spells("darkness", "darkvision", "pass_without_trace", "silence"),
	}
	elements := &Definition{
		Kind:   KindDiscipleOfTheElements,
		Name:   "Disciple of the Elements",
		Source: src,
		Description: `When you choose this tradition at 3rd level, you learn magical disciplines
that harness the power of the four elements.`,
		NeedsImplementation: true,
	}
	tradition.Options["way of the open hand"] = openHand
	tradition.Options["open hand"] = openHand
	tradition.Options["way of shadow"] = shadow
	tradition.Options["shadow"] = shadow
	tradition.Options["way of the four elements"] = elements
	tradition.Options["four elements"] = elements
	return defs, []*SelectorDefinition{tradition}
}
