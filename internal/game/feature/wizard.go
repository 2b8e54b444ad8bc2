package feature

// Wizard feature kinds.
const (
	KindArcaneRecovery Kind = "arcane_recovery"
	KindSculptSpells   Kind = "sculpt_spells"
	KindArcaneWard     Kind = "arcane_ward"
)

// SelectorArcaneTradition resolves the wizard subclass.
const SelectorArcaneTradition = "arcane_tradition"

func wizard() ([]*Definition, []*SelectorDefinition) {
	const src = "Wizard"
	defs := []*Definition{
		{
			Kind:        KindArcaneRecovery,
			Name:        "Arcane Recovery",
			Source:      src,
			Description: `Once per day when you finish a short rest, you can choose expended spell slots to recover. The spell slots can have a combined level that is equal to or less than half your wizard level (rounded up).`,
		},
	}
	evocation := &Definition{
		Kind:        KindSculptSpells,
		Name:        "Sculpt Spells",
		Source:      src,
		Description: `Beginning at 2nd level, you can create pockets of relative safety within the effects of your evocation spells.`,
	}
	abjuration := &Definition{
		Kind:                KindArcaneWard,
		Name:                "Arcane Ward",
		Source:              src,
		Description:         `Starting at 2nd level, you can weave magic around yourself for protection. When you cast an abjuration spell of 1st level or higher, you can create a magical ward on yourself.`,
		NeedsImplementation: true,
	}
	tradition := &SelectorDefinition{
		ID:          SelectorArcaneTradition,
		Name:        "Arcane Tradition",
		Source:      src,
		Description: `When you reach 2nd level, you choose an arcane tradition, shaping your practice of magic through one of eight schools.`,
		Options: map[string]*Definition{
			"school of evocation":  evocation,
			"evocation":            evocation,
			"school of abjuration": abjuration,
			"abjuration":           abjuration,
		},
	}
	return defs, []*SelectorDefinition{tradition}
}
