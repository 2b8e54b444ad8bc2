package feature

// Set is an insertion-ordered collection of features without duplicates.
// Membership is decided by Equal with a linear scan, since Hash is constant.
// It is intended for the handful of features a single character has.
type Set struct {
	items []*Feature
}

// Add inserts f unless an equal feature is already present.
//
// Postcondition: returns true iff f was inserted.
func (s *Set) Add(f *Feature) bool {
	if s.Contains(f) {
		return false
	}
	s.items = append(s.items, f)
	return true
}

// Contains reports whether a feature equal to f is in the set.
func (s *Set) Contains(f *Feature) bool {
	for _, it := range s.items {
		if it.Equal(f) {
			return true
		}
	}
	return false
}

// Len returns the number of features in the set.
func (s *Set) Len() int { return len(s.items) }

// Items returns the features in insertion order.
func (s *Set) Items() []*Feature {
	return append([]*Feature(nil), s.items...)
}
