package heredity

// Distribution is one person's weights over gene counts (indexed by
// GeneCount) and over trait presence (index 0 is absent, 1 is present).
// It holds raw totals during accumulation and probabilities afterwards.
type Distribution struct {
	Gene  [NGeneCounts]float64
	Trait [2]float64
}

func traitIndex(hasTrait bool) int {
	if hasTrait {
		return 1
	}
	return 0
}

// TraitWeight returns the weight for the trait being present or absent.
func (d Distribution) TraitWeight(hasTrait bool) float64 {
	return d.Trait[traitIndex(hasTrait)]
}

// GeneWeight returns the weight for genes copies.
func (d Distribution) GeneWeight(genes GeneCount) float64 {
	return d.Gene[genes]
}

// Accumulator folds scored worlds into per-person distributions. Add and
// Merge commute, so worlds can be folded in any order and partial
// accumulators built by separate workers can be merged at the end.
type Accumulator struct {
	Dists []Distribution

	ped        *Pedigree
	normalized bool
}

func NewAccumulator(p *Pedigree) *Accumulator {
	return &Accumulator{
		Dists: make([]Distribution, p.Len()),
		ped:   p,
	}
}

// Add credits probability to every person's gene and trait buckets as
// assigned in w.
func (a *Accumulator) Add(w *World, probability float64) {
	for i := range a.Dists {
		a.Dists[i].Gene[w.Genes[i]] += probability
		a.Dists[i].Trait[traitIndex(w.HasTrait[i])] += probability
	}
}

// Merge adds other's totals into a. Both must cover the same pedigree.
func (a *Accumulator) Merge(other *Accumulator) {
	for i := range a.Dists {
		for g := range a.Dists[i].Gene {
			a.Dists[i].Gene[g] += other.Dists[i].Gene[g]
		}
		for t := range a.Dists[i].Trait {
			a.Dists[i].Trait[t] += other.Dists[i].Trait[t]
		}
	}
}

// Normalize scales every person's gene and trait weights to sum to one. It
// returns a *NormalizationError for the first person whose weights sum to
// zero and leaves the accumulator untouched in that case.
func (a *Accumulator) Normalize() error {
	if a.normalized {
		return ErrAlreadyNormalized
	}

	for i, d := range a.Dists {
		name := a.ped.Person(i).Name
		if sum(d.Gene[:]) == 0 {
			return &NormalizationError{Person: name, Field: "gene"}
		}
		if sum(d.Trait[:]) == 0 {
			return &NormalizationError{Person: name, Field: "trait"}
		}
	}

	for i := range a.Dists {
		scale(a.Dists[i].Gene[:])
		scale(a.Dists[i].Trait[:])
	}
	a.normalized = true

	return nil
}

func sum(weights []float64) float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	return total
}

func scale(weights []float64) {
	total := sum(weights)
	for i := range weights {
		weights[i] /= total
	}
}
