package heredity

// World is one complete assignment of gene count and trait presence to every
// person in a pedigree, indexed the same way as the pedigree.
type World struct {
	Genes    []GeneCount
	HasTrait []bool
}

func newWorld(n int) *World {
	return &World{
		Genes:    make([]GeneCount, n),
		HasTrait: make([]bool, n),
	}
}

// Valid reports whether every observed trait in p agrees with w.
func (w *World) Valid(p *Pedigree) bool {
	for i, person := range p.persons {
		if !person.Trait.Matches(w.HasTrait[i]) {
			return false
		}
	}
	return true
}

// Enumerator produces every world consistent with a pedigree's evidence. Each
// subset of people is a bitmask over pedigree indices: a trait mask picks who
// has the trait, and a pair of disjoint masks picks who carries one and two
// copies of the variant. Everyone else carries none.
//
// An Enumerator is read-only after construction and may be shared by
// goroutines; each call to Each or EachWithTraitMask uses its own World.
type Enumerator struct {
	ped  *Pedigree
	full uint64
}

func NewEnumerator(p *Pedigree) *Enumerator {
	return &Enumerator{
		ped:  p,
		full: uint64(1)<<uint(p.Len()) - 1,
	}
}

// Consistent reports whether a trait mask agrees with every observation.
func (e *Enumerator) Consistent(traitMask uint64) bool {
	return traitMask&e.ped.presentMask == e.ped.presentMask &&
		traitMask&e.ped.absentMask == 0
}

// EachTraitMask calls fn with every trait mask consistent with the evidence,
// stopping early if fn returns false. The return value is false if stopped.
func (e *Enumerator) EachTraitMask(fn func(traitMask uint64) bool) bool {
	for t := uint64(0); ; t++ {
		if e.Consistent(t) && !fn(t) {
			return false
		}
		if t == e.full {
			return true
		}
	}
}

// Each calls fn with every valid world, stopping early if fn returns false.
// The *World is reused between calls and must not be retained by fn.
func (e *Enumerator) Each(fn func(w *World) bool) bool {
	w := newWorld(e.ped.Len())
	return e.EachTraitMask(func(traitMask uint64) bool {
		return e.eachGenes(w, traitMask, fn)
	})
}

// EachWithTraitMask calls fn with every gene assignment under one trait mask.
// Inconsistent masks produce no worlds.
func (e *Enumerator) EachWithTraitMask(traitMask uint64, fn func(w *World) bool) bool {
	if !e.Consistent(traitMask & e.full) {
		return true
	}
	return e.eachGenes(newWorld(e.ped.Len()), traitMask&e.full, fn)
}

func (e *Enumerator) eachGenes(w *World, traitMask uint64, fn func(w *World) bool) bool {
	for i := range w.HasTrait {
		w.HasTrait[i] = traitMask&(1<<uint(i)) != 0
	}

	for one := uint64(0); ; one++ {
		// Two-copy candidates come only from people not already holding one
		// copy. Walk every submask of the complement, including the empty one.
		rest := e.full &^ one
		for two := rest; ; two = (two - 1) & rest {
			e.fillGenes(w, one, two)
			if !fn(w) {
				return false
			}
			if two == 0 {
				break
			}
		}
		if one == e.full {
			return true
		}
	}
}

func (e *Enumerator) fillGenes(w *World, one, two uint64) {
	for i := range w.Genes {
		bit := uint64(1) << uint(i)
		switch {
		case one&bit != 0:
			w.Genes[i] = OneCopy
		case two&bit != 0:
			w.Genes[i] = TwoCopies
		default:
			w.Genes[i] = NoCopies
		}
	}
}
