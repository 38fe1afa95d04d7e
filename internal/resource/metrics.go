package resource

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentroom_resource_cache_hits_total",
			Help: "Fetches answered from the in-memory cache",
		},
		[]string{"resource"},
	)

	storeHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentroom_resource_store_hits_total",
			Help: "Fetches answered from the second-level store",
		},
		[]string{"resource"},
	)

	loads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentroom_resource_loads_total",
			Help: "Underlying loads issued to the platform",
		},
		[]string{"resource"},
	)

	loadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentroom_resource_load_errors_total",
			Help: "Underlying loads that failed",
		},
		[]string{"resource"},
	)

	sharedFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentroom_resource_shared_fetches_total",
			Help: "Fetches that joined an in-flight load for the same key",
		},
		[]string{"resource"},
	)

	staleDiscards = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentroom_resource_stale_discards_total",
			Help: "Results dropped because their slot moved to a newer key",
		},
		[]string{"resource"},
	)

	invalidatedLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentroom_resource_invalidated_loads_total",
			Help: "Loads whose result was dropped because the key was invalidated meanwhile",
		},
		[]string{"resource"},
	)
)
