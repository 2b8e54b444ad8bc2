package pdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/dungeonsheets/internal/game/character"
)

var abilityFields = []struct {
	ability, score, mod, save, saveCheck string
}{
	{character.Strength, "STR", "STRmod", "ST Strength", "Check Box 11"},
	{character.Dexterity, "DEX", "DEXmod ", "ST Dexterity", "Check Box 18"},
	{character.Constitution, "CON", "CONmod", "ST Constitution", "Check Box 19"},
	{character.Intelligence, "INT", "INTmod", "ST Intelligence", "Check Box 20"},
	{character.Wisdom, "WIS", "WISmod", "ST Wisdom", "Check Box 21"},
	{character.Charisma, "CHA", "CHamod", "ST Charisma", "Check Box 22"},
}

// The trailing spaces are part of the field names in the blank form.
var skillFields = []struct {
	skill, field, check string
}{
	{"acrobatics", "Acrobatics", "Check Box 23"},
	{"animal_handling", "Animal", "Check Box 24"},
	{"arcana", "Arcana", "Check Box 25"},
	{"athletics", "Athletics", "Check Box 26"},
	{"deception", "Deception ", "Check Box 27"},
	{"history", "History ", "Check Box 28"},
	{"insight", "Insight", "Check Box 29"},
	{"intimidation", "Intimidation", "Check Box 30"},
	{"investigation", "Investigation ", "Check Box 31"},
	{"medicine", "Medicine", "Check Box 32"},
	{"nature", "Nature", "Check Box 33"},
	{"perception", "Perception ", "Check Box 34"},
	{"performance", "Performance", "Check Box 35"},
	{"persuasion", "Persuasion", "Check Box 36"},
	{"religion", "Religion", "Check Box 37"},
	{"sleight_of_hand", "SleightofHand", "Check Box 38"},
	{"stealth", "Stealth ", "Check Box 39"},
	{"survival", "Survival", "Check Box 40"},
}

var weaponFields = [][3]string{
	{"Wpn Name", "Wpn1 AtkBonus", "Wpn1 Damage"},
	{"Wpn Name 2", "Wpn2 AtkBonus ", "Wpn2 Damage "},
	{"Wpn Name 3", "Wpn3 AtkBonus  ", "Wpn3 Damage "},
}

// CharacterFields maps c onto the fields of the blank character sheet.
func CharacterFields(c *character.Character) []Field {
	fields := []Field{
		Text("CharacterName", c.Name),
		Text("ClassLevel", c.ClassLevels()),
		Text("Background", c.BackgroundLabel()),
		Text("PlayerName", c.PlayerName),
		Text("Race ", c.RaceLabel()),
		Text("Alignment", c.Alignment),
		Text("XP", strconv.Itoa(c.XP)),
		Text("ProfBonus", character.ModStr(c.ProficiencyBonus())),
		Text("AC", strconv.Itoa(c.ArmorClass())),
		Text("Initiative", character.ModStr(c.Initiative())),
		Text("Speed", strconv.Itoa(c.Speed())),
		Text("HPMax", strconv.Itoa(c.HPMax())),
		Text("HDTotal", strconv.Itoa(c.Level())),
		Text("HD", c.HitDice()),
		Text("Passive", strconv.Itoa(c.PassivePerception())),
		Text("CP", strconv.Itoa(c.Currency.CP)),
		Text("SP", strconv.Itoa(c.Currency.SP)),
		Text("EP", strconv.Itoa(c.Currency.EP)),
		Text("GP", strconv.Itoa(c.Currency.GP)),
		Text("PP", strconv.Itoa(c.Currency.PP)),
		Text("ProficienciesLang", c.Languages),
		Text("Equipment", c.Equipment),
		Text("PersonalityTraits ", c.PersonalityTraits),
		Text("Ideals", c.Ideals),
		Text("Bonds", c.Bonds),
		Text("Flaws", c.Flaws),
		Text("Features and Traits", featuresAndTraits(c)),
	}
	for _, a := range abilityFields {
		score, _ := c.Abilities.Score(a.ability)
		fields = append(fields,
			Text(a.score, strconv.Itoa(score)),
			Text(a.mod, character.ModStr(c.Modifier(a.ability))),
			Text(a.save, character.ModStr(c.SavingThrow(a.ability))),
			Check(a.saveCheck, c.IsSavingThrowProficient(a.ability)),
		)
	}
	for _, s := range skillFields {
		fields = append(fields,
			Text(s.field, character.ModStr(c.Skill(s.skill))),
			Check(s.check, c.IsSkillProficient(s.skill)),
		)
	}
	for i, atk := range c.Attacks(nil) {
		if i >= len(weaponFields) {
			break
		}
		damage := atk.Damage
		if atk.DamageType != "" {
			damage += " " + atk.DamageType
		}
		fields = append(fields,
			Text(weaponFields[i][0], atk.Name),
			Text(weaponFields[i][1], character.ModStr(atk.Bonus)),
			Text(weaponFields[i][2], damage),
		)
	}
	return fields
}

// featuresAndTraits is the free text box: the explicit text when given,
// otherwise the feature names.
func featuresAndTraits(c *character.Character) string {
	if c.FeaturesAndTraits != "" {
		return c.FeaturesAndTraits
	}
	featureNames := make([]string, 0, len(c.Features))
	for _, f := range c.Features {
		featureNames = append(featureNames, f.Name)
	}
	return strings.Join(featureNames, "\n")
}

// SpellFields maps c onto the fields of the blank spell sheet. Spells are
// listed per level as "Spells <level>-<n>" with a matching
// "Prepared <level>-<n>" checkbox.
func SpellFields(c *character.Character) []Field {
	fields := []Field{
		Text("Spellcasting Class 2", c.SpellcastingClass()),
		Text("SpellcastingAbility 2", strings.ToUpper(abbrev(c.SpellcastingAbility()))),
		Text("SpellSaveDC  2", strconv.Itoa(c.SpellSaveDC())),
		Text("SpellAtkBonus 2", character.ModStr(c.SpellAttackBonus())),
	}
	for level := 1; level <= 9; level++ {
		if slots := c.SpellSlots(level); slots > 0 {
			fields = append(fields, Text(fmt.Sprintf("SlotsTotal %d", level), strconv.Itoa(slots)))
		}
	}
	counts := make(map[int]int)
	for _, s := range c.SpellsByLevel() {
		counts[s.Level]++
		n := counts[s.Level]
		fields = append(fields, Text(fmt.Sprintf("Spells %d-%d", s.Level, n), s.Name))
		if s.Level > 0 {
			fields = append(fields, Check(fmt.Sprintf("Prepared %d-%d", s.Level, n), c.IsPrepared(s)))
		}
	}
	return fields
}

func abbrev(ability string) string {
	if len(ability) < 3 {
		return ability
	}
	return ability[:3]
}
