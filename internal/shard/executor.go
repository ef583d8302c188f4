package shard

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// DataSource is one shard reachable through database/sql
type DataSource struct {
	Name string
	DB   *sql.DB
}

// StatementFunc returns the SQL to run on one data source.
// An empty string skips the data source.
type StatementFunc func(dataSource string) (query string, args []interface{})

// Executor broadcasts a statement to every data source in parallel and
// buffers each shard's rows so they can be merged afterwards
type Executor struct {
	sources []DataSource
	pool    *ants.Pool
	logger  *slog.Logger
}

// NewExecutor creates an executor backed by a worker pool of the given size
func NewExecutor(sources []DataSource, workers int, logger *slog.Logger) (*Executor, error) {
	if workers <= 0 {
		workers = len(sources)
	}
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	return &Executor{
		sources: sources,
		pool:    pool,
		logger:  logger,
	}, nil
}

// DataSourceNames returns the shard names in execution order
func (e *Executor) DataSourceNames() []string {
	names := make([]string, len(e.sources))
	for i, ds := range e.sources {
		names[i] = ds.Name
	}
	return names
}

// Query runs the statement on every data source and returns the buffered
// results in data source order. If any shard fails the first failure in
// data source order is returned and no results are.
func (e *Executor) Query(ctx context.Context, stmt StatementFunc) ([]*MemoryResult, error) {
	results := make([]*MemoryResult, len(e.sources))
	errs := make([]error, len(e.sources))

	var wg sync.WaitGroup
	for i, ds := range e.sources {
		query, args := stmt(ds.Name)
		if query == "" {
			continue
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			start := time.Now()
			results[i], errs[i] = e.queryOne(ctx, ds, query, args)
			e.logger.Debug("shard query finished",
				slog.String("data_source", ds.Name),
				slog.Duration("elapsed", time.Since(start)),
				slog.Any("error", errs[i]),
			)
		}
		if err := e.pool.Submit(task); err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("failed to schedule query on %s: %w", ds.Name, err)
		}
	}
	wg.Wait()

	var out []*MemoryResult
	for i, err := range errs {
		if err != nil {
			return nil, err
		}
		if results[i] != nil {
			out = append(out, results[i])
		}
	}
	return out, nil
}

func (e *Executor) queryOne(ctx context.Context, ds DataSource, query string, args []interface{}) (*MemoryResult, error) {
	rows, err := ds.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query on %s failed: %w", ds.Name, err)
	}
	defer rows.Close()

	sr, err := NewSQLResult(rows)
	if err != nil {
		return nil, fmt.Errorf("query on %s failed: %w", ds.Name, err)
	}
	mr, err := Buffer(sr)
	if err != nil {
		return nil, fmt.Errorf("reading results from %s failed: %w", ds.Name, err)
	}
	return mr, nil
}

// Close releases the worker pool. It does not close the data sources.
func (e *Executor) Close() {
	e.pool.Release()
}
