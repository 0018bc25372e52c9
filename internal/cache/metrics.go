package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	invalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fintrack_client",
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Cache entries marked stale after a successful mutation.",
		},
		[]string{"collection"},
	)

	refetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fintrack_client",
			Subsystem: "cache",
			Name:      "refetch_total",
			Help:      "Background refetch attempts by outcome.",
		},
		[]string{"collection", "outcome"},
	)
)
