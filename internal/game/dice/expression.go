// Package dice parses the dice notation used for weapon damage, hit dice and
// feature bonuses on character and monster sheets. Sheets only print dice;
// nothing here rolls them.
package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Expression is a count of equal dice plus a flat modifier, e.g. "2d6+3".
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

var notation = regexp.MustCompile(`^(\d*)d(\d+)(?:([+-])(\d+))?$`)

// Parse reads "NdS", "NdS+M" or "NdS-M". A missing N means one die and
// surrounding spaces and letter case are ignored.
//
// Postcondition: Count >= 1 and Sides >= 2, or a non-nil error.
func Parse(expr string) (Expression, error) {
	m := notation.FindStringSubmatch(strings.ToLower(strings.TrimSpace(expr)))
	if m == nil {
		return Expression{}, fmt.Errorf("dice: %q is not NdS[+/-M] notation", expr)
	}
	e := Expression{Count: 1}
	if m[1] != "" {
		e.Count, _ = strconv.Atoi(m[1])
	}
	e.Sides, _ = strconv.Atoi(m[2])
	if m[4] != "" {
		e.Modifier, _ = strconv.Atoi(m[4])
		if m[3] == "-" {
			e.Modifier = -e.Modifier
		}
	}
	if e.Count < 1 {
		return Expression{}, fmt.Errorf("dice: %q needs at least one die", expr)
	}
	if e.Sides < 2 {
		return Expression{}, fmt.Errorf("dice: %q needs dice with two or more sides", expr)
	}
	return e, nil
}

// New returns the expression count d sides with no modifier.
//
// Precondition: count >= 1 and sides >= 2.
func New(count, sides int) Expression {
	if count < 1 || sides < 2 {
		panic(fmt.Sprintf("dice: New(%d, %d) precondition violated", count, sides))
	}
	return Expression{Count: count, Sides: sides}
}

func (e Expression) String() string {
	if e.Modifier == 0 {
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
	return fmt.Sprintf("%dd%d%+d", e.Count, e.Sides, e.Modifier)
}

// WithModifier returns a copy of e with the flat modifier replaced by mod.
func (e Expression) WithModifier(mod int) Expression {
	e.Modifier = mod
	return e
}

// Average returns the rounded-down average total, as printed in stat blocks
// ("26 (4d10+4)").
func (e Expression) Average() int {
	return e.Count*(e.Sides+1)/2 + e.Modifier
}

// Max returns the highest total the expression can produce.
func (e Expression) Max() int {
	return e.Count*e.Sides + e.Modifier
}
