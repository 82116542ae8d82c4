package heredity

import "math"

// TransmissionProbability is the chance that a parent carrying genes copies
// passes the variant allele to a child, allowing for mutation in transit.
func (m Model) TransmissionProbability(genes GeneCount) float64 {
	switch genes {
	case TwoCopies:
		return 1 - m.MutationRate
	case OneCopy:
		return 0.5
	}
	return m.MutationRate
}

// InheritedGeneProbability is P(child genes | mother genes, father genes).
// Each parent independently contributes one allele.
func (m Model) InheritedGeneProbability(mother, father, child GeneCount) float64 {
	pm := m.TransmissionProbability(mother)
	pf := m.TransmissionProbability(father)

	switch child {
	case NoCopies:
		return (1 - pf) * (1 - pm)
	case OneCopy:
		return pf*(1-pm) + (1-pf)*pm
	}
	return pf * pm
}

// PersonProbability is the factor person i contributes to the joint
// probability of w: their gene probability (from the founder prior or from
// their parents' genes in the same world) times the probability of their
// trait given their genes.
func PersonProbability(p *Pedigree, w *World, m Model, i int) float64 {
	genes := w.Genes[i]

	var geneProb float64
	if mother, father, ok := p.Parents(i); ok {
		geneProb = m.InheritedGeneProbability(w.Genes[mother], w.Genes[father], genes)
	} else {
		geneProb = m.FounderGenePrior[genes]
	}

	return geneProb * m.TraitProbability(genes, w.HasTrait[i])
}

// JointProbability is the probability of the whole world w under m: the
// product of every person's factor. It is pure and never fails for a world
// built over p.
func JointProbability(p *Pedigree, w *World, m Model) float64 {
	joint := 1.0
	for i := 0; i < p.Len(); i++ {
		joint *= PersonProbability(p, w, m, i)
		if joint == 0 {
			return 0
		}
	}
	return joint
}

// LogJointProbability is the natural log of JointProbability, summed factor
// by factor so that large pedigrees do not underflow. Impossible worlds
// return -Inf.
func LogJointProbability(p *Pedigree, w *World, m Model) float64 {
	logJoint := 0.0
	for i := 0; i < p.Len(); i++ {
		factor := PersonProbability(p, w, m, i)
		if factor == 0 {
			return math.Inf(-1)
		}
		logJoint += math.Log(factor)
	}
	return logJoint
}
