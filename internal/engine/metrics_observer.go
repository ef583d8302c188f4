package engine

import (
	"github.com/leengari/shardmerge/internal/metrics"
)

// MetricsObserver feeds the Prometheus collectors from lifecycle events
type MetricsObserver struct{}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent implements the Observer interface
func (mo *MetricsObserver) OnEvent(event Event) {
	if d, ok := decisionOf(event); ok {
		metrics.RowsTotal.WithLabelValues(d.Kind, string(d.Outcome)).Inc()
		return
	}

	if event.Type != EventMergeEnd {
		return
	}
	summary, ok := event.Data.(MergeSummary)
	if !ok || summary.Kind == "" {
		return
	}
	status := "ok"
	if summary.Err != nil {
		status = "error"
	}
	metrics.MergesTotal.WithLabelValues(summary.Kind, status).Inc()
	metrics.MergeDuration.WithLabelValues(summary.Kind).Observe(summary.Elapsed.Seconds())
}
