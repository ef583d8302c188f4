package engine

import (
	"time"

	"github.com/leengari/shardmerge/internal/merger/show"
)

// EventType represents different lifecycle phases of a merged SHOW statement
type EventType string

const (
	EventParseStart  EventType = "parse_start"
	EventParseEnd    EventType = "parse_end"
	EventMergeStart  EventType = "merge_start"
	EventRowDecision EventType = "row_decision"
	EventMergeEnd    EventType = "merge_end"
)

// Event represents a lifecycle event in statement execution
type Event struct {
	Type      EventType   // Type of event
	MergeID   string      // Merge ID for tracing
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (SQL, show.Decision, MergeSummary)
}

// MergeSummary is the Data of an EventMergeEnd event
type MergeSummary struct {
	Kind    string
	Rows    int
	Elapsed time.Duration
	Err     error
}

// Observer interface for event subscribers
// Observers receive events at major execution phases
type Observer interface {
	OnEvent(event Event)
}

// decisionOf extracts the row decision carried by an EventRowDecision event
func decisionOf(event Event) (show.Decision, bool) {
	d, ok := event.Data.(show.Decision)
	return d, ok
}
