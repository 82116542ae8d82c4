package heredity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	worldsScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heredity_worlds_scored_total",
		Help: "Worlds consistent with the evidence whose joint probability was computed",
	})

	inferenceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "heredity_inference_duration_seconds",
		Help:    "Wall time of one complete inference",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
	}, []string{"mode"})

	inferenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heredity_inference_failures_total",
		Help: "Inferences that ended in an error, by reason",
	}, []string{"reason"})

	pedigreeSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "heredity_pedigree_persons",
		Help:    "Number of persons in each inferred pedigree",
		Buckets: prometheus.LinearBuckets(1, 2, 10),
	})
)
