package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsTotal counts shard rows seen while merging, by merged result kind and outcome.
	RowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shardmerge_rows_total",
			Help: "Total number of shard rows processed by merged results",
		},
		[]string{"kind", "outcome"},
	)
	// MergesTotal counts merged result constructions by kind and status.
	MergesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shardmerge_merges_total",
			Help: "Total number of merged results built",
		},
		[]string{"kind", "status"},
	)
	// MergeDuration is the time from broadcast to merged cursor.
	MergeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shardmerge_merge_duration_seconds",
			Help:    "Latency of broadcasting and merging a SHOW statement in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)
