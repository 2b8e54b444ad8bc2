package feature

import (
	"fmt"

	"github.com/cory-johannsen/dungeonsheets/internal/game/dice"
	"github.com/cory-johannsen/dungeonsheets/internal/game/inventory"
)

// MartialArtsDie returns the sides of the martial arts die at the given monk level.
func MartialArtsDie(monkLevel int) int {
	switch {
	case monkLevel >= 17:
		return 10
	case monkLevel >= 11:
		return 8
	case monkLevel >= 5:
		return 6
	default:
		return 4
	}
}

// martialArtsWeapon upgrades monk weapons to the martial arts die and lets
// them use dexterity when it is the better ability.
func martialArtsWeapon(f *Feature, w *inventory.Weapon, _ Options) *inventory.Weapon {
	if f.Owner == nil || !w.IsMonkWeapon() {
		return w
	}
	level := f.Owner.ClassLevel("monk")
	if level < 1 {
		return w
	}
	out := w.Clone()
	die := dice.New(1, MartialArtsDie(level))
	if cur, ok := w.DamageDice(); !ok || cur.Average() < die.Average() {
		out.Damage = die.String()
	}
	if f.Owner.Modifier("dexterity") > f.Owner.Modifier("strength") {
		out.Ability = "dexterity"
	}
	return out
}

func archeryWeapon(_ *Feature, w *inventory.Weapon, _ Options) *inventory.Weapon {
	if !w.IsRanged() {
		return w
	}
	out := w.Clone()
	out.AttackBonus += 2
	return out
}

func duelingWeapon(_ *Feature, w *inventory.Weapon, _ Options) *inventory.Weapon {
	if !w.IsMelee() || w.IsTwoHanded() {
		return w
	}
	out := w.Clone()
	out.DamageBonus += 2
	return out
}

// SneakAttackDice returns the number of sneak attack d6s at the given rogue level.
func SneakAttackDice(rogueLevel int) int {
	return (rogueLevel + 1) / 2
}

// sneakAttackWeapon adds sneak attack dice when opts["sneak_attack"] is set
// and the weapon is finesse or ranged.
func sneakAttackWeapon(f *Feature, w *inventory.Weapon, opts Options) *inventory.Weapon {
	if f.Owner == nil || !opts.Bool("sneak_attack") || !(w.IsFinesse() || w.IsRanged()) {
		return w
	}
	n := SneakAttackDice(f.Owner.ClassLevel("rogue"))
	if n < 1 {
		return w
	}
	out := w.Clone()
	out.ExtraDamage = append(out.ExtraDamage, dice.New(n, 6).String())
	return out
}

// divineStrikeWeapon adds radiant damage when opts["divine_strike"] is set.
func divineStrikeWeapon(f *Feature, w *inventory.Weapon, opts Options) *inventory.Weapon {
	if f.Owner == nil || !opts.Bool("divine_strike") {
		return w
	}
	level := f.Owner.ClassLevel("cleric")
	var n int
	switch {
	case level >= 14:
		n = 2
	case level >= 8:
		n = 1
	default:
		return w
	}
	out := w.Clone()
	out.ExtraDamage = append(out.ExtraDamage, fmt.Sprintf("%s radiant", dice.New(n, 8)))
	return out
}
