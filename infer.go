package heredity

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/carbocation/pfx"
	"github.com/op/go-logging"
	"golang.org/x/sync/errgroup"
)

var log = logging.MustGetLogger("heredity")

// Result carries the normalized posterior for every person in a pedigree.
type Result struct {
	Pedigree     *Pedigree
	Model        Model
	Dists        []Distribution
	WorldsScored uint64
}

// Posterior looks up one person's distributions by name.
func (r *Result) Posterior(name string) (Distribution, bool) {
	i, ok := r.Pedigree.Index(name)
	if !ok {
		return Distribution{}, false
	}
	return r.Dists[i], true
}

// Infer computes exact posteriors by visiting every world consistent with the
// evidence on a single goroutine. Cost grows as 2^u * 3^n for n people of
// whom u have unknown traits; bounding pedigree size is the caller's job.
func Infer(p *Pedigree, m Model) (*Result, error) {
	if err := m.Validate(); err != nil {
		inferenceFailures.WithLabelValues("model").Inc()
		return nil, pfx.Err(err)
	}
	start := time.Now()
	logStart(p, 1)

	acc := NewAccumulator(p)
	var scored uint64
	NewEnumerator(p).Each(func(w *World) bool {
		acc.Add(w, JointProbability(p, w, m))
		scored++
		return true
	})

	res, err := finish(p, m, acc, scored)
	inferenceDuration.WithLabelValues("serial").Observe(time.Since(start).Seconds())
	return res, err
}

// InferParallel shards the consistent trait assignments across workers. Each
// worker folds its worlds into a private Accumulator; the partial totals are
// merged once every worker has returned. workers < 1 means one per CPU.
// Cancelling ctx stops the hand-out of new trait assignments.
func InferParallel(ctx context.Context, p *Pedigree, m Model, workers int) (*Result, error) {
	if err := m.Validate(); err != nil {
		inferenceFailures.WithLabelValues("model").Inc()
		return nil, pfx.Err(err)
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	start := time.Now()
	logStart(p, workers)

	enum := NewEnumerator(p)
	masks := make(chan uint64)
	partials := make([]*Accumulator, workers)
	counts := make([]uint64, workers)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(masks)
		var err error
		enum.EachTraitMask(func(mask uint64) bool {
			if err = ctx.Err(); err != nil {
				return false
			}
			select {
			case masks <- mask:
				return true
			case <-ctx.Done():
				err = ctx.Err()
				return false
			}
		})
		return err
	})

	for i := 0; i < workers; i++ {
		i := i
		partials[i] = NewAccumulator(p)
		g.Go(func() error {
			acc := partials[i]
			for mask := range masks {
				enum.EachWithTraitMask(mask, func(w *World) bool {
					acc.Add(w, JointProbability(p, w, m))
					counts[i]++
					return true
				})
			}
			log.Debugf("worker %d scored %d worlds", i, counts[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		inferenceFailures.WithLabelValues("cancelled").Inc()
		return nil, pfx.Err(err)
	}

	acc := partials[0]
	scored := counts[0]
	for i := 1; i < workers; i++ {
		acc.Merge(partials[i])
		scored += counts[i]
	}

	res, err := finish(p, m, acc, scored)
	inferenceDuration.WithLabelValues("parallel").Observe(time.Since(start).Seconds())
	return res, err
}

func logStart(p *Pedigree, workers int) {
	pedigreeSize.Observe(float64(p.Len()))
	log.Debugf("enumerating %d persons: %d trait assignments consistent with evidence, %d workers",
		p.Len(), uint64(1)<<uint(p.NUnobserved()), workers)
}

func finish(p *Pedigree, m Model, acc *Accumulator, scored uint64) (*Result, error) {
	worldsScored.Add(float64(scored))
	log.Debugf("scored %d worlds", scored)

	if err := acc.Normalize(); err != nil {
		inferenceFailures.WithLabelValues("normalization").Inc()
		var nerr *NormalizationError
		if errors.As(err, &nerr) {
			log.Warningf("no world consistent with the evidence has nonzero probability for %s", nerr.Person)
		}
		return nil, err
	}

	return &Result{
		Pedigree:     p,
		Model:        m,
		Dists:        acc.Dists,
		WorldsScored: scored,
	}, nil
}
