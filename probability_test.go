package heredity

import (
	"math"
	"testing"
)

func TestTransmissionProbability(t *testing.T) {
	m := DefaultModel()
	cases := map[GeneCount]float64{
		NoCopies:  0.01,
		OneCopy:   0.5,
		TwoCopies: 0.99,
	}
	for genes, expected := range cases {
		if got := m.TransmissionProbability(genes); !approxEqual(got, expected, 1e-12) {
			t.Errorf("%s copies: Got %v, expected %v", genes, got, expected)
		}
	}
}

func TestInheritedGeneProbabilitySumsToOne(t *testing.T) {
	m := DefaultModel()
	for mother := NoCopies; mother <= TwoCopies; mother++ {
		for father := NoCopies; father <= TwoCopies; father++ {
			total := 0.0
			for child := NoCopies; child <= TwoCopies; child++ {
				total += m.InheritedGeneProbability(mother, father, child)
			}
			if !approxEqual(total, 1, 1e-12) {
				t.Errorf("Parents %s/%s: Got total %v, expected 1", mother, father, total)
			}
		}
	}

	// Two non-carriers only pass the variant on by mutation.
	got := [NGeneCounts]float64{
		m.InheritedGeneProbability(NoCopies, NoCopies, NoCopies),
		m.InheritedGeneProbability(NoCopies, NoCopies, OneCopy),
		m.InheritedGeneProbability(NoCopies, NoCopies, TwoCopies),
	}
	expected := [NGeneCounts]float64{0.9801, 0.0198, 0.0001}
	for g := range got {
		if !approxEqual(got[g], expected[g], 1e-12) {
			t.Errorf("Child %d copies: Got %v, expected %v", g, got[g], expected[g])
		}
	}
}

func TestJointProbabilityFamily(t *testing.T) {
	p := family0(t)
	m := DefaultModel()

	// Harry: one copy, no trait. James: two copies, trait. Lily: none, no trait.
	w := &World{
		Genes:    []GeneCount{OneCopy, TwoCopies, NoCopies},
		HasTrait: []bool{false, true, false},
	}

	harry := (0.99*0.99 + 0.01*0.01) * 0.44
	james := 0.01 * 0.65
	lily := 0.96 * 0.99
	expected := harry * james * lily

	if got := JointProbability(p, w, m); !approxEqual(got, expected, 1e-15) {
		t.Errorf("Got %v, expected %v", got, expected)
	}
	if got := LogJointProbability(p, w, m); !approxEqual(got, math.Log(expected), 1e-12) {
		t.Errorf("Got log %v, expected %v", got, math.Log(expected))
	}
}

func TestJointProbabilityImpossibleWorld(t *testing.T) {
	p := mustPedigree(t, Person{Name: "A"})
	m := DefaultModel()
	m.FounderGenePrior = [NGeneCounts]float64{1, 0, 0}

	w := &World{Genes: []GeneCount{TwoCopies}, HasTrait: []bool{true}}
	if got := JointProbability(p, w, m); got != 0 {
		t.Errorf("Got %v, expected 0", got)
	}
	if got := LogJointProbability(p, w, m); !math.IsInf(got, -1) {
		t.Errorf("Got %v, expected -Inf", got)
	}
}

func TestJointProbabilitiesSumToOneWithoutEvidence(t *testing.T) {
	p := mustPedigree(t,
		Person{Name: "child", Mother: "mom", Father: "dad"},
		Person{Name: "dad"},
		Person{Name: "mom"},
	)
	m := DefaultModel()

	total := 0.0
	NewEnumerator(p).Each(func(w *World) bool {
		total += JointProbability(p, w, m)
		return true
	})

	if !approxEqual(total, 1, 1e-12) {
		t.Errorf("Got total %v, expected 1", total)
	}
}
