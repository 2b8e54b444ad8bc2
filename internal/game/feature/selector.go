package feature

import "strings"

// SelectorDefinition describes a feature that resolves to one of several
// concrete features depending on the player's choices. Options is keyed by
// the lower-cased option name.
type SelectorDefinition struct {
	ID          string
	Name        string
	Source      string
	Description string
	Options     map[string]*Definition
}

// Resolve picks the concrete feature sel stands for.
//
// choices are examined in order and the first one whose lower-cased form is
// a key of sel.Options is built for owner, with its Source replaced by
// sel.Source. Resolve never fails: when no choice matches, the result is a
// placeholder carrying the selector's name, source and description with
// NeedsImplementation set.
//
// Precondition: sel must not be nil.
func Resolve(sel *SelectorDefinition, owner Owner, choices []string) *Feature {
	for _, choice := range choices {
		def, ok := sel.Options[strings.ToLower(strings.TrimSpace(choice))]
		if !ok {
			continue
		}
		f := New(def, owner)
		f.Source = sel.Source
		return f
	}
	return &Feature{
		Kind:                KindUnimplemented,
		Name:                sel.Name,
		Source:              sel.Source,
		Description:         sel.Description,
		Owner:               owner,
		NeedsImplementation: true,
	}
}
