package docmodel

import (
	"fmt"

	"golang.org/x/text/cases"
)

// EnumSet describes an enumeration: a name and its ordered members. A
// member's ordinal is its position.
type EnumSet struct {
	name    string
	members []string
	byName  map[string]int // case-folded name -> ordinal
}

// NewEnumSet declares an enumeration. Member names must be unique ignoring
// case.
func NewEnumSet(name string, members ...string) (*EnumSet, error) {
	s := &EnumSet{name: name, members: append([]string(nil), members...), byName: make(map[string]int, len(members))}
	fold := cases.Fold()
	for i, m := range members {
		k := fold.String(m)
		if _, dup := s.byName[k]; dup {
			return nil, fmt.Errorf("enum %s: duplicate member %q", name, m)
		}
		s.byName[k] = i
	}
	return s, nil
}

// MustEnumSet is NewEnumSet for package-level declarations.
func MustEnumSet(name string, members ...string) *EnumSet {
	s, err := NewEnumSet(name, members...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *EnumSet) Name() string { return s.name }

// Members returns the member names in ordinal order.
func (s *EnumSet) Members() []string { return append([]string(nil), s.members...) }

// At returns the member with the given ordinal.
func (s *EnumSet) At(ordinal int) (Enum, bool) {
	if ordinal < 0 || ordinal >= len(s.members) {
		return Enum{}, false
	}
	return Enum{set: s, ordinal: ordinal}, true
}

// Lookup finds a member by name, ignoring case.
func (s *EnumSet) Lookup(name string) (Enum, bool) {
	i, ok := s.byName[cases.Fold().String(name)]
	if !ok {
		return Enum{}, false
	}
	return Enum{set: s, ordinal: i}, true
}

// MustLookup is Lookup for names known to exist.
func (s *EnumSet) MustLookup(name string) Enum {
	e, ok := s.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("enum %s has no member %q", s.name, name))
	}
	return e
}

// Enum is one member of an EnumSet. The zero Enum belongs to no set.
type Enum struct {
	set     *EnumSet
	ordinal int
}

func (e Enum) Set() *EnumSet { return e.set }
func (e Enum) Ordinal() int  { return e.ordinal }

// Name returns the member name, or "" for the zero Enum.
func (e Enum) Name() string {
	if e.set == nil {
		return ""
	}
	return e.set.members[e.ordinal]
}

func (e Enum) String() string { return e.Name() }

// Equal reports whether both tags are the same member of the same set.
func (e Enum) Equal(o Enum) bool { return e.set == o.set && e.ordinal == o.ordinal }
