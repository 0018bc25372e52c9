package fintrack

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fintrack_client",
			Name:      "record_mutations_total",
			Help:      "Successful record mutations by collection and operation.",
		},
		[]string{"collection", "op"},
	)

	mutationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fintrack_client",
			Name:      "record_mutation_failures_total",
			Help:      "Record mutations rejected by the store or the transport.",
		},
		[]string{"collection", "op"},
	)
)
