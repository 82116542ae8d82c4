package heredity

import (
	"errors"
	"math/rand"
	"testing"
)

type scoredWorld struct {
	world       World
	probability float64
}

func scoreAll(p *Pedigree, m Model) []scoredWorld {
	var out []scoredWorld
	NewEnumerator(p).Each(func(w *World) bool {
		out = append(out, scoredWorld{
			world: World{
				Genes:    append([]GeneCount(nil), w.Genes...),
				HasTrait: append([]bool(nil), w.HasTrait...),
			},
			probability: JointProbability(p, w, m),
		})
		return true
	})
	return out
}

func TestAccumulatorRespectsEvidence(t *testing.T) {
	p := family0(t)
	acc := NewAccumulator(p)
	for _, sw := range scoreAll(p, DefaultModel()) {
		acc.Add(&sw.world, sw.probability)
	}

	james, _ := p.Index("James")
	lily, _ := p.Index("Lily")

	if got := acc.Dists[james].TraitWeight(false); got != 0 {
		t.Errorf("James was observed with the trait, but Got weight %v for no trait", got)
	}
	if got := acc.Dists[lily].TraitWeight(true); got != 0 {
		t.Errorf("Lily was observed without the trait, but Got weight %v for the trait", got)
	}
}

func TestAccumulatorOrderDoesNotMatter(t *testing.T) {
	p := family0(t)
	worlds := scoreAll(p, DefaultModel())

	inOrder := NewAccumulator(p)
	for _, sw := range worlds {
		inOrder.Add(&sw.world, sw.probability)
	}
	if err := inOrder.Normalize(); err != nil {
		t.Fatal(err)
	}

	// Shuffle, then fold into three partial accumulators and merge them.
	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(len(worlds), func(i, j int) { worlds[i], worlds[j] = worlds[j], worlds[i] })

	partials := []*Accumulator{NewAccumulator(p), NewAccumulator(p), NewAccumulator(p)}
	for i, sw := range worlds {
		partials[i%len(partials)].Add(&sw.world, sw.probability)
	}
	merged := partials[2]
	merged.Merge(partials[0])
	merged.Merge(partials[1])
	if err := merged.Normalize(); err != nil {
		t.Fatal(err)
	}

	for i := range inOrder.Dists {
		checkDistribution(t, p.Person(i).Name, merged.Dists[i], inOrder.Dists[i].Gene, inOrder.Dists[i].TraitWeight(true), 1e-12)
	}
}

func TestNormalize(t *testing.T) {
	p := mustPedigree(t, Person{Name: "A"})
	acc := NewAccumulator(p)
	acc.Dists[0] = Distribution{
		Gene:  [NGeneCounts]float64{2, 1, 1},
		Trait: [2]float64{3, 1},
	}

	if err := acc.Normalize(); err != nil {
		t.Fatal(err)
	}
	checkDistribution(t, "A", acc.Dists[0], [NGeneCounts]float64{0.5, 0.25, 0.25}, 0.25, 1e-12)

	if err := acc.Normalize(); !errors.Is(err, ErrAlreadyNormalized) {
		t.Errorf("Got %v, expected ErrAlreadyNormalized", err)
	}
}

func TestNormalizeZeroWeights(t *testing.T) {
	p := mustPedigree(t, Person{Name: "A"}, Person{Name: "B"})
	acc := NewAccumulator(p)
	acc.Dists[0] = Distribution{Gene: [NGeneCounts]float64{1, 0, 0}, Trait: [2]float64{1, 0}}
	acc.Dists[1] = Distribution{Gene: [NGeneCounts]float64{1, 0, 0}}

	err := acc.Normalize()
	var nerr *NormalizationError
	if !errors.As(err, &nerr) {
		t.Fatalf("Got %v, expected a NormalizationError", err)
	}
	if nerr.Person != "B" || nerr.Field != "trait" {
		t.Errorf("Got %+v, expected person B field trait", nerr)
	}

	// A failed normalization leaves the weights alone.
	if acc.Dists[0].Gene[0] != 1 {
		t.Errorf("Got %v, expected untouched weights", acc.Dists[0].Gene)
	}
}
