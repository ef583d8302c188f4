package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/shardmerge/internal/executor"
	"github.com/leengari/shardmerge/internal/merger/show"
	"github.com/leengari/shardmerge/internal/parser"
)

// Engine is the main entry point: it parses SHOW statements, broadcasts
// them to every shard and merges the answers
type Engine struct {
	env       executor.Env
	observers []Observer // Observers for lifecycle events
}

// New creates a new Engine instance
func New(env executor.Env) *Engine {
	return &Engine{
		env:       env,
		observers: make([]Observer, 0),
	}
}

// Execute processes a SQL string and returns the merged result
func (e *Engine) Execute(ctx context.Context, sql string) (*executor.Result, error) {
	mergeID := uuid.New().String()

	// 1. Parse
	e.notify(Event{Type: EventParseStart, MergeID: mergeID, Data: sql})
	stmt, err := parser.ParseString(sql)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	kind, err := executor.Kind(stmt)
	if err != nil {
		return nil, err
	}
	e.notify(Event{Type: EventParseEnd, MergeID: mergeID, Data: stmt.String()})

	// 2. Broadcast and merge
	start := time.Now()
	e.notify(Event{Type: EventMergeStart, MergeID: mergeID, Data: kind})

	env := e.env
	if len(e.observers) > 0 {
		env.OnDecision = func(d show.Decision) {
			e.notify(Event{Type: EventRowDecision, MergeID: mergeID, Data: d})
		}
	}
	result, err := executor.Execute(ctx, stmt, env)

	summary := MergeSummary{Kind: kind, Elapsed: time.Since(start), Err: err}
	if result != nil {
		summary.Rows = len(result.Rows)
	}
	e.notify(Event{Type: EventMergeEnd, MergeID: mergeID, Data: summary})

	if err != nil {
		return nil, fmt.Errorf("execution error: %w", err)
	}
	return result, nil
}

// ListTables returns the logic tables known to the catalog
func (e *Engine) ListTables() ([]string, error) {
	if e.env.Catalog == nil {
		return nil, fmt.Errorf("no catalog configured")
	}
	return e.env.Catalog.Tables(), nil
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
