// SPDX-License-Identifier: MPL-2.0

package validate

// NameSet is a membership-only set of package names. It has no ordering
// semantics; duplicate names collapse on insert.
type NameSet map[string]struct{}

// NewNameSet builds a set from the given names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	s.Insert(names...)
	return s
}

// Insert adds names to the set.
func (s NameSet) Insert(names ...string) {
	for _, name := range names {
		s[name] = struct{}{}
	}
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of distinct names.
func (s NameSet) Len() int {
	return len(s)
}
