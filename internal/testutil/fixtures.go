package testutil

import (
	"fmt"
	"testing"

	"github.com/leengari/shardmerge/internal/merger/result"
	"github.com/leengari/shardmerge/internal/rule"
	"github.com/leengari/shardmerge/internal/shard"
)

// StatusColumns is the SHOW TABLE STATUS column layout returned by a shard
var StatusColumns = []string{
	"Name", "Engine", "Version", "Row_format", "Rows", "Avg_row_length",
	"Data_length", "Max_data_length", "Data_free", "Auto_increment",
	"Create_time", "Update_time", "Check_time", "Collation", "Checksum",
	"Create_options", "Comment",
}

// StatusRow builds a SHOW TABLE STATUS row for a physical table. The Rows
// cell carries tag so tests can tell which shard a survivor came from.
func StatusRow(name string, tag int64) []interface{} {
	return []interface{}{
		name, "InnoDB", int64(10), "Dynamic", tag, int64(16384),
		int64(16384), int64(0), int64(0), nil,
		"2018-01-01 00:00:00", nil, nil, "utf8mb4_general_ci", nil,
		"", fmt.Sprintf("comment of %s", name),
	}
}

// StatusResult builds one shard's SHOW TABLE STATUS cursor. Rows are tagged
// with their position inside the shard.
func StatusResult(t *testing.T, names ...string) *shard.MemoryResult {
	t.Helper()
	rows := make([][]interface{}, len(names))
	for i, n := range names {
		rows[i] = StatusRow(n, int64(i))
	}
	mr, err := shard.NewMemoryResult(StatusColumns, rows)
	if err != nil {
		t.Fatalf("building status result: %v", err)
	}
	return mr
}

// Results converts shard cursors to the interface mergers consume
func Results(results ...*shard.MemoryResult) []result.QueryResult {
	out := make([]result.QueryResult, len(results))
	for i, r := range results {
		out[i] = r
	}
	return out
}

// OrderRule shards t_order over ds_0/ds_1 as t_order_0/t_order_1 and
// t_order_item the same way
func OrderRule(t *testing.T) *rule.ShardingRule {
	t.Helper()
	sr, err := rule.NewShardingRule(rule.Config{
		DataSources: []string{"ds_0", "ds_1"},
		Tables: []rule.TableRuleConfig{
			{LogicTable: "t_order", ActualDataNodes: "ds_${0..1}.t_order_${0..1}"},
			{LogicTable: "t_order_item", ActualDataNodes: "ds_${0..1}.t_order_item_${0..1}"},
		},
	})
	if err != nil {
		t.Fatalf("building sharding rule: %v", err)
	}
	return sr
}

// EmptyRule returns a sharding rule with no table rules
func EmptyRule(t *testing.T) *rule.ShardingRule {
	t.Helper()
	sr, err := rule.NewShardingRule(rule.Config{})
	if err != nil {
		t.Fatalf("building empty sharding rule: %v", err)
	}
	return sr
}

// FailingResult is a QueryResult whose reads fail after a number of good rows
type FailingResult struct {
	*shard.MemoryResult
	FailNextAfter int // Next fails once this many rows were returned (-1 never)
	FailValueAt   int // Value fails on this 1-based row (0 never)
	returned      int
}

func (f *FailingResult) Next() (bool, error) {
	if f.FailNextAfter >= 0 && f.returned >= f.FailNextAfter {
		return false, fmt.Errorf("connection reset by shard")
	}
	ok, err := f.MemoryResult.Next()
	if ok {
		f.returned++
	}
	return ok, err
}

func (f *FailingResult) Value(columnIndex int) (interface{}, error) {
	if f.FailValueAt > 0 && f.returned == f.FailValueAt {
		return nil, fmt.Errorf("read timeout on column %d", columnIndex)
	}
	return f.MemoryResult.Value(columnIndex)
}
