package heredity

import (
	"fmt"
	"math"

	"github.com/caarlos0/env/v11"
	"github.com/carbocation/pfx"
)

// Model holds the fixed constants of the inheritance and trait model. The
// zero value is not useful; start from DefaultModel.
type Model struct {
	// FounderGenePrior is P(genes) for people with no recorded parents.
	FounderGenePrior [NGeneCounts]float64

	// TraitEmission is P(trait present | genes). The trait is absent with the
	// complementary probability.
	TraitEmission [NGeneCounts]float64

	// MutationRate is the chance that an allele flips type on its way from
	// parent to child.
	MutationRate float64
}

// DefaultModel returns the standard constants:
//
//	founder prior      0: 0.96, 1: 0.03, 2: 0.01
//	trait emission     0: 0.01, 1: 0.56, 2: 0.65
//	mutation rate      0.01
func DefaultModel() Model {
	return Model{
		FounderGenePrior: [NGeneCounts]float64{0.96, 0.03, 0.01},
		TraitEmission:    [NGeneCounts]float64{0.01, 0.56, 0.65},
		MutationRate:     0.01,
	}
}

// Validate checks that every constant is a probability and that the founder
// prior sums to one.
func (m Model) Validate() error {
	sum := 0.0
	for g := 0; g < NGeneCounts; g++ {
		if !isProbability(m.FounderGenePrior[g]) {
			return fmt.Errorf("founder prior for %d copies is %v; expected a value in [0,1]", g, m.FounderGenePrior[g])
		}
		if !isProbability(m.TraitEmission[g]) {
			return fmt.Errorf("trait emission for %d copies is %v; expected a value in [0,1]", g, m.TraitEmission[g])
		}
		sum += m.FounderGenePrior[g]
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("founder prior sums to %v; expected 1", sum)
	}
	if !isProbability(m.MutationRate) {
		return fmt.Errorf("mutation rate is %v; expected a value in [0,1]", m.MutationRate)
	}
	return nil
}

func isProbability(v float64) bool {
	return v >= 0 && v <= 1
}

// TraitProbability is P(trait = hasTrait | genes).
func (m Model) TraitProbability(genes GeneCount, hasTrait bool) float64 {
	if hasTrait {
		return m.TraitEmission[genes]
	}
	return 1 - m.TraitEmission[genes]
}

// modelEnv mirrors Model for environment parsing. Unset variables leave the
// defaults alone.
type modelEnv struct {
	FounderGenePrior []float64 `env:"HEREDITY_FOUNDER_PRIOR" envSeparator:","`
	TraitEmission    []float64 `env:"HEREDITY_TRAIT_EMISSION" envSeparator:","`
	MutationRate     *float64  `env:"HEREDITY_MUTATION_RATE"`
}

// ModelFromEnv starts from DefaultModel and applies any of
// HEREDITY_FOUNDER_PRIOR, HEREDITY_TRAIT_EMISSION (each three comma-separated
// values, ordered 0, 1, 2 copies) and HEREDITY_MUTATION_RATE.
func ModelFromEnv() (Model, error) {
	return modelFromEnvironment(nil)
}

// modelFromEnvironment reads from environ, or from the process environment
// when environ is nil.
func modelFromEnvironment(environ map[string]string) (Model, error) {
	m := DefaultModel()

	var raw modelEnv
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environ}); err != nil {
		return m, pfx.Err(err)
	}

	if raw.FounderGenePrior != nil {
		if len(raw.FounderGenePrior) != NGeneCounts {
			return m, pfx.Err(fmt.Errorf("HEREDITY_FOUNDER_PRIOR has %d values; expected %d", len(raw.FounderGenePrior), NGeneCounts))
		}
		copy(m.FounderGenePrior[:], raw.FounderGenePrior)
	}
	if raw.TraitEmission != nil {
		if len(raw.TraitEmission) != NGeneCounts {
			return m, pfx.Err(fmt.Errorf("HEREDITY_TRAIT_EMISSION has %d values; expected %d", len(raw.TraitEmission), NGeneCounts))
		}
		copy(m.TraitEmission[:], raw.TraitEmission)
	}
	if raw.MutationRate != nil {
		m.MutationRate = *raw.MutationRate
	}

	if err := m.Validate(); err != nil {
		return m, pfx.Err(err)
	}
	return m, nil
}
