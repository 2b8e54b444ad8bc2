// Package character defines the character data model built from a sheet
// file's declarative attributes, and the statistics derived from it.
package character

import (
	"fmt"
	"strings"
)

// Ability names as used in character files and by features.
const (
	Strength     = "strength"
	Dexterity    = "dexterity"
	Constitution = "constitution"
	Intelligence = "intelligence"
	Wisdom       = "wisdom"
	Charisma     = "charisma"
)

// Abilities lists the ability names in sheet order.
var Abilities = []string{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

// AbilityScores holds the six ability score values for a character.
type AbilityScores struct {
	Strength     int `mapstructure:"strength"`
	Dexterity    int `mapstructure:"dexterity"`
	Constitution int `mapstructure:"constitution"`
	Intelligence int `mapstructure:"intelligence"`
	Wisdom       int `mapstructure:"wisdom"`
	Charisma     int `mapstructure:"charisma"`
}

// Score returns the score of the named ability.
//
// Postcondition: Returns 0 and false for unknown ability names.
func (a AbilityScores) Score(ability string) (int, bool) {
	switch strings.ToLower(ability) {
	case Strength:
		return a.Strength, true
	case Dexterity:
		return a.Dexterity, true
	case Constitution:
		return a.Constitution, true
	case Intelligence:
		return a.Intelligence, true
	case Wisdom:
		return a.Wisdom, true
	case Charisma:
		return a.Charisma, true
	}
	return 0, false
}

// Validate checks that every score lies in 1..30.
func (a AbilityScores) Validate() error {
	for _, name := range Abilities {
		s, _ := a.Score(name)
		if s < 1 || s > 30 {
			return fmt.Errorf("%s score %d must be between 1 and 30", name, s)
		}
	}
	return nil
}

// Modifier returns the ability modifier floor((score - 10) / 2).
func Modifier(score int) int {
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// ModStr formats a modifier with an explicit sign: "+2", "-1", "+0".
func ModStr(mod int) string {
	return fmt.Sprintf("%+d", mod)
}

// Skills maps every skill to the ability it uses.
var Skills = map[string]string{
	"acrobatics":      Dexterity,
	"animal_handling": Wisdom,
	"arcana":          Intelligence,
	"athletics":       Strength,
	"deception":       Charisma,
	"history":         Intelligence,
	"insight":         Wisdom,
	"intimidation":    Charisma,
	"investigation":   Intelligence,
	"medicine":        Wisdom,
	"nature":          Intelligence,
	"perception":      Wisdom,
	"performance":     Charisma,
	"persuasion":      Charisma,
	"religion":        Intelligence,
	"sleight_of_hand": Dexterity,
	"stealth":         Dexterity,
	"survival":        Wisdom,
}

// Currency holds coin counts.
type Currency struct {
	CP int `mapstructure:"cp"`
	SP int `mapstructure:"sp"`
	EP int `mapstructure:"ep"`
	GP int `mapstructure:"gp"`
	PP int `mapstructure:"pp"`
}

// Attack is one line of the attacks table.
type Attack struct {
	Name       string
	Bonus      int
	Damage     string
	DamageType string
}
