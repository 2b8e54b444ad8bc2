package character

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/cory-johannsen/dungeonsheets/internal/game/dice"
	"github.com/cory-johannsen/dungeonsheets/internal/game/feature"
	"github.com/cory-johannsen/dungeonsheets/internal/game/inventory"
	"github.com/cory-johannsen/dungeonsheets/internal/game/monster"
	"github.com/cory-johannsen/dungeonsheets/internal/game/names"
	"github.com/cory-johannsen/dungeonsheets/internal/game/ruleset"
	"github.com/cory-johannsen/dungeonsheets/internal/game/spell"
)

// ClassLevel is one entry of a (multi)class character.
type ClassLevel struct {
	Class    *ruleset.Class
	Level    int
	Subclass *ruleset.Subclass // nil when none was chosen
}

// Character is a player character with every named rule resolved.
// Features hold a lookup reference back to the Character through the
// feature.Owner interface.
type Character struct {
	Name       string
	PlayerName string
	Alignment  string
	XP         int

	Race           *ruleset.Race
	RaceName       string // set when Race is not in the catalog
	Background     *ruleset.Background
	BackgroundName string // set when Background is not in the catalog

	Abilities AbilityScores
	Currency  Currency
	Classes   []ClassLevel
	Features  []*feature.Feature

	Weapons    []*inventory.Weapon
	Armor      *inventory.Armor
	Shield     *inventory.Armor
	MagicItems []*inventory.MagicItem

	Spells     []*spell.Spell
	WildShapes []*monster.Monster
	Infusions  []*ruleset.Infusion

	SkillProficiencies []string
	SkillExpertise     []string

	Languages         string
	Equipment         string
	PersonalityTraits string
	Ideals            string
	Bonds             string
	Flaws             string
	FeaturesAndTraits string

	hpMax    int
	speed    int
	prepared map[string]bool
}

var _ feature.Owner = (*Character)(nil)

// Level returns the total character level.
func (c *Character) Level() int {
	total := 0
	for _, cl := range c.Classes {
		total += cl.Level
	}
	return total
}

// ClassLevel returns the level in the named class, or 0.
func (c *Character) ClassLevel(class string) int {
	key := names.Key(class)
	for _, cl := range c.Classes {
		if names.Key(cl.Class.ID) == key || names.Key(cl.Class.Name) == key {
			return cl.Level
		}
	}
	return 0
}

// ClassLevels renders the classes as "Monk 1 / Druid 1".
func (c *Character) ClassLevels() string {
	parts := make([]string, 0, len(c.Classes))
	for _, cl := range c.Classes {
		parts = append(parts, fmt.Sprintf("%s %d", cl.Class.Name, cl.Level))
	}
	return strings.Join(parts, " / ")
}

// RaceLabel returns the race's display name.
func (c *Character) RaceLabel() string {
	if c.Race != nil {
		return c.Race.Name
	}
	return c.RaceName
}

// BackgroundLabel returns the background's display name.
func (c *Character) BackgroundLabel() string {
	if c.Background != nil {
		return c.Background.Name
	}
	return c.BackgroundName
}

// Subclasses returns the chosen subclasses in class order.
func (c *Character) Subclasses() []*ruleset.Subclass {
	var out []*ruleset.Subclass
	for _, cl := range c.Classes {
		if cl.Subclass != nil {
			out = append(out, cl.Subclass)
		}
	}
	return out
}

// ProficiencyBonus returns 2 + (level-1)/4.
func (c *Character) ProficiencyBonus() int {
	return 2 + (c.Level()-1)/4
}

// Modifier returns the modifier of the named ability; unknown names give 0.
func (c *Character) Modifier(ability string) int {
	s, ok := c.Abilities.Score(ability)
	if !ok {
		return 0
	}
	return Modifier(s)
}

// HasFeature reports whether the character has a feature of kind.
func (c *Character) HasFeature(kind feature.Kind) bool {
	for _, f := range c.Features {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// IsSavingThrowProficient reports whether the first class grants proficiency
// in saves of ability.
func (c *Character) IsSavingThrowProficient(ability string) bool {
	if len(c.Classes) == 0 {
		return false
	}
	return slices.Contains(c.Classes[0].Class.SavingThrows, strings.ToLower(ability))
}

// SavingThrow returns the saving throw bonus for ability, including magic
// item save bonuses.
func (c *Character) SavingThrow(ability string) int {
	bonus := c.Modifier(ability)
	if c.IsSavingThrowProficient(ability) {
		bonus += c.ProficiencyBonus()
	}
	for _, m := range c.MagicItems {
		bonus += m.SaveBonus
	}
	return bonus
}

// IsSkillProficient reports whether the character is proficient in skill.
func (c *Character) IsSkillProficient(skill string) bool {
	return slices.Contains(c.SkillProficiencies, names.Key(skill))
}

// Skill returns the bonus for skill. Expertise doubles the proficiency bonus.
// Unknown skills give 0.
func (c *Character) Skill(skill string) int {
	key := names.Key(skill)
	ability, ok := Skills[key]
	if !ok {
		return 0
	}
	bonus := c.Modifier(ability)
	if c.IsSkillProficient(key) {
		bonus += c.ProficiencyBonus()
		if slices.Contains(c.SkillExpertise, key) {
			bonus += c.ProficiencyBonus()
		}
	}
	return bonus
}

// Initiative returns the dexterity modifier.
func (c *Character) Initiative() int {
	return c.Modifier(Dexterity)
}

// PassivePerception returns 10 + the perception skill bonus.
func (c *Character) PassivePerception() int {
	return 10 + c.Skill("perception")
}

// ArmorClass computes AC from armor, shield, unarmored defense, the Defense
// fighting style and magic item bonuses.
func (c *Character) ArmorClass() int {
	dex := c.Modifier(Dexterity)
	var ac int
	switch {
	case c.Armor != nil:
		ac = c.Armor.BaseAC + c.Armor.DexBonus(dex)
	case c.Shield == nil && c.HasFeature(feature.KindMonkUnarmoredDefense):
		ac = 10 + dex + c.Modifier(Wisdom)
	default:
		ac = 10 + dex
	}
	if c.Shield != nil {
		ac += c.Shield.BaseAC
	}
	if c.Armor != nil && c.HasFeature(feature.KindDefense) {
		ac++
	}
	for _, m := range c.MagicItems {
		ac += m.ACBonus
	}
	return ac
}

// Speed returns the walking speed in feet.
func (c *Character) Speed() int {
	speed := c.speed
	if speed == 0 {
		speed = 30
		if c.Race != nil && c.Race.Speed > 0 {
			speed = c.Race.Speed
		}
	}
	if c.Armor == nil && c.Shield == nil && c.HasFeature(feature.KindUnarmoredMovement) {
		speed += feature.UnarmoredMovementBonus(c.ClassLevel("monk"))
	}
	return speed
}

// HPMax returns the explicit hp_max, or the maximum of the first hit die
// plus the average of every later one, each adjusted by the constitution
// modifier with a minimum of 1 per level.
func (c *Character) HPMax() int {
	if c.hpMax > 0 {
		return c.hpMax
	}
	con := c.Modifier(Constitution)
	total := 0
	first := true
	for _, cl := range c.Classes {
		for i := 0; i < cl.Level; i++ {
			die := dice.New(1, cl.Class.HitDie)
			roll := die.Max()/2 + 1
			if first {
				roll = die.Max()
				first = false
			}
			total += max(roll+con, 1)
		}
	}
	return total
}

// HitDice renders the hit dice pool, e.g. "1d8 + 1d10".
func (c *Character) HitDice() string {
	parts := make([]string, 0, len(c.Classes))
	for _, cl := range c.Classes {
		parts = append(parts, dice.New(cl.Level, cl.Class.HitDie).String())
	}
	return strings.Join(parts, " + ")
}

// casting returns the spellcasting progression and ability of one class
// entry. A casting class takes precedence over its subclass.
func (cl ClassLevel) casting() (progression, ability string) {
	if cl.Class.IsSpellcaster() {
		return cl.Class.Spellcaster, cl.Class.SpellcastingAbility
	}
	if cl.Subclass != nil && cl.Subclass.IsSpellcaster() {
		return cl.Subclass.Spellcaster, cl.Subclass.SpellcastingAbility
	}
	return "", ""
}

func (cl ClassLevel) isSpellcaster() bool {
	p, _ := cl.casting()
	return p != ""
}

// IsSpellcaster reports whether any class or subclass casts spells or any
// feature grants spells.
func (c *Character) IsSpellcaster() bool {
	for _, cl := range c.Classes {
		if cl.isSpellcaster() {
			return true
		}
	}
	return len(c.Spells) > 0
}

// SpellcastingAbility returns the ability of the first spellcasting class or
// subclass, or "".
func (c *Character) SpellcastingAbility() string {
	for _, cl := range c.Classes {
		if _, ability := cl.casting(); ability != "" {
			return ability
		}
	}
	return ""
}

// SpellcastingClass returns the name of the first spellcasting class, or "".
func (c *Character) SpellcastingClass() string {
	for _, cl := range c.Classes {
		if cl.isSpellcaster() {
			return cl.Class.Name
		}
	}
	return ""
}

// SpellSaveDC returns 8 + proficiency + spellcasting modifier.
func (c *Character) SpellSaveDC() int {
	return 8 + c.SpellAttackBonus()
}

// SpellAttackBonus returns proficiency + spellcasting modifier.
func (c *Character) SpellAttackBonus() int {
	return c.ProficiencyBonus() + c.Modifier(c.SpellcastingAbility())
}

// CasterLevel returns the combined multiclass caster level.
func (c *Character) CasterLevel() int {
	total := 0
	for _, cl := range c.Classes {
		p, _ := cl.casting()
		total += ruleset.CasterLevel(p, cl.Level)
	}
	return total
}

// slotTable is indexed by caster level then spell level, both from 1.
var slotTable = [21][10]int{
	1:  {0, 2},
	2:  {0, 3},
	3:  {0, 4, 2},
	4:  {0, 4, 3},
	5:  {0, 4, 3, 2},
	6:  {0, 4, 3, 3},
	7:  {0, 4, 3, 3, 1},
	8:  {0, 4, 3, 3, 2},
	9:  {0, 4, 3, 3, 3, 1},
	10: {0, 4, 3, 3, 3, 2},
	11: {0, 4, 3, 3, 3, 2, 1},
	12: {0, 4, 3, 3, 3, 2, 1},
	13: {0, 4, 3, 3, 3, 2, 1, 1},
	14: {0, 4, 3, 3, 3, 2, 1, 1},
	15: {0, 4, 3, 3, 3, 2, 1, 1, 1},
	16: {0, 4, 3, 3, 3, 2, 1, 1, 1},
	17: {0, 4, 3, 3, 3, 2, 1, 1, 1, 1},
	18: {0, 4, 3, 3, 3, 3, 1, 1, 1, 1},
	19: {0, 4, 3, 3, 3, 3, 2, 1, 1, 1},
	20: {0, 4, 3, 3, 3, 3, 2, 2, 1, 1},
}

// SpellSlots returns the number of slots of spellLevel (1..9).
func (c *Character) SpellSlots(spellLevel int) int {
	cl := min(c.CasterLevel(), 20)
	if cl < 1 || spellLevel < 1 || spellLevel > 9 {
		return 0
	}
	return slotTable[cl][spellLevel]
}

// IsPrepared reports whether s is always or explicitly prepared.
func (c *Character) IsPrepared(s *spell.Spell) bool {
	return c.prepared[names.Key(s.Name)]
}

// SpellsByLevel returns the spells sorted by level then name.
func (c *Character) SpellsByLevel() []*spell.Spell {
	out := append([]*spell.Spell(nil), c.Spells...)
	slices.SortStableFunc(out, func(a, b *spell.Spell) int {
		if a.Level != b.Level {
			return cmp.Compare(a.Level, b.Level)
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// IsWeaponProficient reports whether any class or the race grants
// proficiency with w.
func (c *Character) IsWeaponProficient(w *inventory.Weapon) bool {
	if w.ID == "unarmed_strike" {
		return true
	}
	var profs []string
	for _, cl := range c.Classes {
		profs = append(profs, cl.Class.WeaponProficiencies...)
	}
	if c.Race != nil {
		profs = append(profs, c.Race.Proficiencies...)
	}
	id, name := names.Key(w.ID), names.Key(w.Name)
	for _, p := range profs {
		key := names.Key(p)
		switch key {
		case w.Category + "_weapons":
			return true
		case id, name, id + "s", name + "s":
			return true
		}
	}
	return false
}

// Attacks applies every feature's weapon hook, in feature order, to each
// weapon and returns the resulting attack lines. opts carries situational
// switches such as {"sneak_attack": true}.
func (c *Character) Attacks(opts feature.Options) []Attack {
	attacks := make([]Attack, 0, len(c.Weapons))
	for _, base := range c.Weapons {
		w := base
		for _, f := range c.Features {
			w = f.Weapon(w, opts)
		}
		mod := c.weaponModifier(w)
		bonus := mod + w.AttackBonus
		if c.IsWeaponProficient(w) {
			bonus += c.ProficiencyBonus()
		}
		attacks = append(attacks, Attack{
			Name:       w.Name,
			Bonus:      bonus,
			Damage:     damageString(w, mod+w.DamageBonus),
			DamageType: w.DamageType,
		})
	}
	return attacks
}

func (c *Character) weaponModifier(w *inventory.Weapon) int {
	str, dex := c.Modifier(Strength), c.Modifier(Dexterity)
	switch {
	case w.Ability != "":
		return c.Modifier(w.Ability)
	case w.IsFinesse():
		return max(str, dex)
	case w.IsRanged():
		return dex
	default:
		return str
	}
}

func damageString(w *inventory.Weapon, mod int) string {
	var base string
	if e, ok := w.DamageDice(); ok {
		base = e.WithModifier(e.Modifier + mod).String()
	} else {
		var flat int
		if _, err := fmt.Sscanf(w.Damage, "%d", &flat); err != nil {
			flat = 0
		}
		base = fmt.Sprintf("%d", max(flat+mod, 0))
	}
	return strings.Join(append([]string{base}, w.ExtraDamage...), " + ")
}
