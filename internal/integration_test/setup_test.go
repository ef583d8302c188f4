package integration

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/leengari/shardmerge/internal/engine"
	"github.com/leengari/shardmerge/internal/executor"
	"github.com/leengari/shardmerge/internal/metadata"
	"github.com/leengari/shardmerge/internal/rule"
	"github.com/leengari/shardmerge/internal/shard"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []engine.Event
}

func (m *MockObserver) OnEvent(event engine.Event) {
	m.Events = append(m.Events, event)
}

// shardDDL lays out t_order and t_order_item over two data sources, two
// fragments each, plus an unsharded t_config on ds_0 and a stray table on ds_1
var shardDDL = map[string][]string{
	"ds_0": {
		"CREATE TABLE t_order_0 (order_id INTEGER PRIMARY KEY, user_id INTEGER)",
		"CREATE TABLE t_order_1 (order_id INTEGER PRIMARY KEY, user_id INTEGER)",
		"CREATE TABLE t_order_item_0 (item_id INTEGER PRIMARY KEY, order_id INTEGER)",
		"CREATE TABLE t_order_item_1 (item_id INTEGER PRIMARY KEY, order_id INTEGER)",
		"CREATE TABLE t_config (k TEXT PRIMARY KEY, v TEXT)",
	},
	"ds_1": {
		"CREATE TABLE t_order_0 (order_id INTEGER PRIMARY KEY, user_id INTEGER)",
		"CREATE TABLE t_order_1 (order_id INTEGER PRIMARY KEY, user_id INTEGER)",
		"CREATE TABLE t_order_item_0 (item_id INTEGER PRIMARY KEY, order_id INTEGER)",
		"CREATE TABLE t_order_item_1 (item_id INTEGER PRIMARY KEY, order_id INTEGER)",
		"CREATE TABLE tmp_migration (id INTEGER)",
	},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestEnv opens fresh sqlite shards in a temp dir and assembles the
// execution environment around them
func setupTestEnv(t *testing.T) executor.Env {
	t.Helper()
	dir := t.TempDir()
	dsns := make(map[string]string, len(shardDDL))
	for name := range shardDDL {
		dsns[name] = "file:" + filepath.Join(dir, name+".db")
	}

	sources, err := shard.OpenSQLite(dsns, discardLogger())
	if err != nil {
		t.Fatalf("Failed to open shards: %v", err)
	}
	t.Cleanup(func() { shard.CloseAll(sources) })

	for _, ds := range sources {
		for _, stmt := range shardDDL[ds.Name] {
			if _, err := ds.DB.Exec(stmt); err != nil {
				t.Fatalf("%s: %s: %v", ds.Name, stmt, err)
			}
		}
	}

	exec, err := shard.NewExecutor(sources, 4, discardLogger())
	if err != nil {
		t.Fatalf("Failed to create executor: %v", err)
	}
	t.Cleanup(exec.Close)

	sr, err := rule.NewShardingRule(rule.Config{
		DataSources: []string{"ds_0", "ds_1"},
		Tables: []rule.TableRuleConfig{
			{LogicTable: "t_order", ActualDataNodes: "ds_${0..1}.t_order_${0..1}"},
			{LogicTable: "t_order_item", ActualDataNodes: "ds_${0..1}.t_order_item_${0..1}"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to build sharding rule: %v", err)
	}

	catalog := metadata.New(sr.LogicTables()...)
	catalog.Put("t_config")

	return executor.Env{
		Schema:  "sharding_db",
		Rule:    sr,
		Catalog: catalog,
		Shards:  exec,
		Dialect: shard.SQLite,
	}
}
