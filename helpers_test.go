package heredity

import (
	"math"
	"testing"
)

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func mustPedigree(t *testing.T, persons ...Person) *Pedigree {
	t.Helper()
	p, err := NewPedigreeFromPersons(persons)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// family0 is three people: James (observed with the trait), Lily (observed
// without) and their son Harry (unobserved).
func family0(t *testing.T) *Pedigree {
	return mustPedigree(t,
		Person{Name: "Harry", Mother: "Lily", Father: "James"},
		Person{Name: "James", Trait: TraitPresent},
		Person{Name: "Lily", Trait: TraitAbsent},
	)
}

func checkDistribution(t *testing.T, label string, got Distribution, gene [NGeneCounts]float64, traitTrue, tolerance float64) {
	t.Helper()
	for g := range gene {
		if !approxEqual(got.Gene[g], gene[g], tolerance) {
			t.Errorf("%s gene %d: Got %.6f, expected %.6f", label, g, got.Gene[g], gene[g])
		}
	}
	if !approxEqual(got.TraitWeight(true), traitTrue, tolerance) {
		t.Errorf("%s trait: Got %.6f, expected %.6f", label, got.TraitWeight(true), traitTrue)
	}
	if !approxEqual(got.TraitWeight(false), 1-traitTrue, tolerance) {
		t.Errorf("%s no trait: Got %.6f, expected %.6f", label, got.TraitWeight(false), 1-traitTrue)
	}
}
