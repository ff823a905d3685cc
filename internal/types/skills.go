//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"sort"
)

// SkillSet is a de-duplicated set of canonical skill names.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from names.
func NewSkillSet(names ...string) SkillSet {
	s := make(SkillSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts a name; empty names are ignored.
func (s SkillSet) Add(name string) {
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Contains reports whether name is in the set.
func (s SkillSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of skills.
func (s SkillSet) Len() int {
	return len(s)
}

// Sorted returns the names in lexical order. The result is never nil.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of names into the set.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewSkillSet(names...)
	return nil
}
