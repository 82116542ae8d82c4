package heredity

import (
	"fmt"
	"testing"
)

func worldKey(w *World) string {
	return fmt.Sprint(w.Genes, w.HasTrait)
}

func TestEnumerateEmptyPedigree(t *testing.T) {
	p := mustPedigree(t)

	n := 0
	NewEnumerator(p).Each(func(w *World) bool {
		n++
		if len(w.Genes) != 0 || len(w.HasTrait) != 0 {
			t.Errorf("Got a non-empty world %+v", w)
		}
		if got := JointProbability(p, w, DefaultModel()); got != 1 {
			t.Errorf("Got joint probability %v, expected 1", got)
		}
		return true
	})

	if n != 1 {
		t.Errorf("Got %d worlds, expected 1", n)
	}
}

func TestEnumerateVisitsEveryWorldOnce(t *testing.T) {
	cases := []struct {
		name     string
		persons  []Person
		expected int
	}{
		{"one unknown", []Person{{Name: "A"}}, 2 * 3},
		{"two unknown", []Person{{Name: "A"}, {Name: "B"}}, 4 * 9},
		{"family0", []Person{
			{Name: "Harry", Mother: "Lily", Father: "James"},
			{Name: "James", Trait: TraitPresent},
			{Name: "Lily", Trait: TraitAbsent},
		}, 2 * 27},
		{"all observed", []Person{
			{Name: "A", Trait: TraitPresent},
			{Name: "B", Trait: TraitAbsent},
			{Name: "C", Trait: TraitAbsent},
			{Name: "D", Trait: TraitPresent},
		}, 81},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := mustPedigree(t, c.persons...)
			seen := make(map[string]bool)

			NewEnumerator(p).Each(func(w *World) bool {
				if !w.Valid(p) {
					t.Errorf("World %v contradicts the evidence", worldKey(w))
				}
				for _, g := range w.Genes {
					if !g.Valid() {
						t.Errorf("World %v has an illegal gene count", worldKey(w))
					}
				}
				key := worldKey(w)
				if seen[key] {
					t.Errorf("World %v was visited twice", key)
				}
				seen[key] = true
				return true
			})

			if len(seen) != c.expected {
				t.Errorf("Got %d worlds, expected %d", len(seen), c.expected)
			}
		})
	}
}

func TestEnumerateStopsEarly(t *testing.T) {
	p := mustPedigree(t, Person{Name: "A"}, Person{Name: "B"})

	n := 0
	finished := NewEnumerator(p).Each(func(w *World) bool {
		n++
		return n < 5
	})

	if finished {
		t.Errorf("Each reported completion after being stopped")
	}
	if n != 5 {
		t.Errorf("Got %d worlds, expected 5", n)
	}
}

func TestTraitMasksRespectEvidence(t *testing.T) {
	p := mustPedigree(t,
		Person{Name: "A", Trait: TraitPresent},
		Person{Name: "B"},
		Person{Name: "C", Trait: TraitAbsent},
	)
	e := NewEnumerator(p)

	var masks []uint64
	e.EachTraitMask(func(mask uint64) bool {
		masks = append(masks, mask)
		return true
	})

	expected := []uint64{0b001, 0b011}
	if fmt.Sprint(masks) != fmt.Sprint(expected) {
		t.Errorf("Got %v, expected %v", masks, expected)
	}

	n := 0
	e.EachWithTraitMask(0b100, func(w *World) bool {
		n++
		return true
	})
	if n != 0 {
		t.Errorf("Got %d worlds for an inconsistent mask, expected 0", n)
	}

	e.EachWithTraitMask(0b011, func(w *World) bool {
		n++
		if !w.HasTrait[0] || !w.HasTrait[1] || w.HasTrait[2] {
			t.Errorf("Got traits %v for mask 0b011", w.HasTrait)
		}
		return true
	})
	if n != 27 {
		t.Errorf("Got %d worlds for one mask, expected 27", n)
	}
}
