package heredity

import (
	"fmt"
	"strings"
)

// Trait is the observed evidence for one person: whether they were seen to
// exhibit the trait, seen not to, or were never observed.
type Trait int8

const (
	TraitUnknown Trait = iota
	TraitAbsent
	TraitPresent
)

func (t Trait) String() string {
	switch t {
	case TraitUnknown:
		return "Unknown"
	case TraitAbsent:
		return "Absent"
	case TraitPresent:
		return "Present"

	default:
		return "Illegal selection"
	}
}

// Known is true when the trait was observed either way.
func (t Trait) Known() bool {
	return t == TraitAbsent || t == TraitPresent
}

// Matches reports whether a world in which the person has (or lacks) the trait
// agrees with this observation. Unknown observations match everything.
func (t Trait) Matches(hasTrait bool) bool {
	switch t {
	case TraitPresent:
		return hasTrait
	case TraitAbsent:
		return !hasTrait
	}
	return true
}

// ParseTrait reads the pedigree file convention: "1" means the trait was
// observed, "0" means it was observed to be absent, and a blank cell means
// nothing is known.
func ParseTrait(value string) (Trait, error) {
	switch strings.TrimSpace(value) {
	case "":
		return TraitUnknown, nil
	case "1":
		return TraitPresent, nil
	case "0":
		return TraitAbsent, nil
	}

	return TraitUnknown, fmt.Errorf("trait value %q is not one of \"1\", \"0\" or blank", value)
}
