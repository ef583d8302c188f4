package engine

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/leengari/shardmerge/internal/executor"
	"github.com/leengari/shardmerge/internal/merger/show"
	"github.com/leengari/shardmerge/internal/metadata"
	"github.com/leengari/shardmerge/internal/shard"
	"github.com/leengari/shardmerge/internal/testutil"
)

type cannedShards struct {
	results []*shard.MemoryResult
	err     error
}

func (c *cannedShards) Query(context.Context, shard.StatementFunc) ([]*shard.MemoryResult, error) {
	return c.results, c.err
}

func newTestEngine(t *testing.T, shards executor.Broadcaster) *Engine {
	t.Helper()
	return New(executor.Env{
		Schema:  "sharding_db",
		Rule:    testutil.OrderRule(t),
		Catalog: metadata.New("t_order", "t_order_item", "t_config"),
		Shards:  shards,
		Dialect: shard.SQLite,
	})
}

func TestExecuteEmitsLifecycle(t *testing.T) {
	shards := &cannedShards{results: []*shard.MemoryResult{
		testutil.StatusResult(t, "t_order_0", "t_config"),
		testutil.StatusResult(t, "t_order_1", "t_unknown"),
	}}
	eng := newTestEngine(t, shards)
	observer := &MockObserver{}
	eng.AddObserver(observer)

	res, err := eng.Execute(context.Background(), "SHOW TABLE STATUS")
	testutil.AssertNoError(t, err, "execute")
	testutil.AssertRowCount(t, len(res.Rows), 2, "table status")

	want := []EventType{
		EventParseStart, EventParseEnd, EventMergeStart,
		EventRowDecision, EventRowDecision, EventRowDecision, EventRowDecision,
		EventMergeEnd,
	}
	if got := observer.types(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Unexpected event sequence:\n got  %v\n want %v", got, want)
	}

	mergeID := observer.Events[0].MergeID
	if mergeID == "" {
		t.Fatal("Expected a merge ID")
	}
	for _, e := range observer.Events {
		if e.MergeID != mergeID {
			t.Errorf("Event %s carries merge ID %q, want %q", e.Type, e.MergeID, mergeID)
		}
	}

	d, ok := observer.Events[3].Data.(show.Decision)
	if !ok || d.Outcome != show.OutcomeRenamed || d.LogicTable != "t_order" {
		t.Errorf("Unexpected first decision %+v", observer.Events[3].Data)
	}

	summary, ok := observer.Events[len(observer.Events)-1].Data.(MergeSummary)
	if !ok {
		t.Fatalf("Expected MergeSummary, got %T", observer.Events[len(observer.Events)-1].Data)
	}
	if summary.Kind != show.KindTableStatus || summary.Rows != 2 || summary.Err != nil {
		t.Errorf("Unexpected summary %+v", summary)
	}
}

func TestExecuteMergeIDsDiffer(t *testing.T) {
	shards := &cannedShards{}
	eng := newTestEngine(t, shards)
	observer := &MockObserver{}
	eng.AddObserver(observer)

	for i := 0; i < 2; i++ {
		if _, err := eng.Execute(context.Background(), "SHOW TABLES"); err != nil {
			t.Fatalf("execute %d: %v", i, err)
		}
	}

	var ids []string
	for _, e := range observer.Events {
		if e.Type == EventParseStart {
			ids = append(ids, e.MergeID)
		}
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Errorf("Expected two distinct merge IDs, got %v", ids)
	}
}

func TestExecuteParseError(t *testing.T) {
	eng := newTestEngine(t, &cannedShards{})
	observer := &MockObserver{}
	eng.AddObserver(observer)

	_, err := eng.Execute(context.Background(), "SELECT * FROM t_order")
	testutil.AssertError(t, err, "non-SHOW statement")
	if !strings.HasPrefix(err.Error(), "parse error") {
		t.Errorf("Expected parse error, got %v", err)
	}
	if got := observer.types(); !reflect.DeepEqual(got, []EventType{EventParseStart}) {
		t.Errorf("Unexpected events on parse failure: %v", got)
	}
}

func TestExecuteMergeFailure(t *testing.T) {
	cause := errors.New("connection reset")
	eng := newTestEngine(t, &cannedShards{err: cause})
	observer := &MockObserver{}
	eng.AddObserver(observer)

	_, err := eng.Execute(context.Background(), "SHOW TABLE STATUS")
	if !errors.Is(err, cause) {
		t.Fatalf("Expected error wrapping %v, got %v", cause, err)
	}
	if !strings.HasPrefix(err.Error(), "execution error") {
		t.Errorf("Expected execution error prefix, got %v", err)
	}

	last := observer.Events[len(observer.Events)-1]
	summary, ok := last.Data.(MergeSummary)
	if last.Type != EventMergeEnd || !ok || summary.Err == nil {
		t.Errorf("Expected merge_end with error, got %+v", last)
	}
}

func TestExecuteWithoutObserversSkipsDecisions(t *testing.T) {
	shards := &cannedShards{results: []*shard.MemoryResult{testutil.StatusResult(t, "t_order_0")}}
	eng := newTestEngine(t, shards)

	res, err := eng.Execute(context.Background(), "SHOW TABLE STATUS")
	testutil.AssertNoError(t, err, "execute")
	if res.Rows[0][0] != "t_order" {
		t.Errorf("Expected renamed row, got %v", res.Rows[0][0])
	}
}

func TestListTables(t *testing.T) {
	eng := newTestEngine(t, &cannedShards{})

	tables, err := eng.ListTables()
	testutil.AssertNoError(t, err, "list tables")
	if !reflect.DeepEqual(tables, []string{"t_config", "t_order", "t_order_item"}) {
		t.Errorf("Unexpected tables %v", tables)
	}

	_, err = New(executor.Env{}).ListTables()
	testutil.AssertError(t, err, "no catalog")
}
