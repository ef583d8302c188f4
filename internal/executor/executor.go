package executor

import (
	"context"
	"fmt"

	"github.com/leengari/shardmerge/internal/merger/result"
	"github.com/leengari/shardmerge/internal/merger/show"
	"github.com/leengari/shardmerge/internal/metadata"
	"github.com/leengari/shardmerge/internal/parser/ast"
	"github.com/leengari/shardmerge/internal/rule"
	"github.com/leengari/shardmerge/internal/shard"
)

// Broadcaster runs one statement on every shard and returns the buffered
// per-shard results in shard order
type Broadcaster interface {
	Query(ctx context.Context, stmt shard.StatementFunc) ([]*shard.MemoryResult, error)
}

// Env is everything a SHOW statement needs to be broadcast and merged
type Env struct {
	Schema  string
	Rule    *rule.ShardingRule
	Catalog *metadata.TableMetaData
	Shards  Broadcaster
	Dialect shard.Dialect
	// OnDecision, when set, observes how every shard row was merged
	OnDecision func(show.Decision)
}

// Kind returns the merged result kind a statement produces
func Kind(stmt ast.Statement) (string, error) {
	switch stmt.(type) {
	case *ast.ShowTableStatusStatement:
		return show.KindTableStatus, nil
	case *ast.ShowTablesStatement:
		return show.KindTables, nil
	case *ast.ShowCreateTableStatement:
		return show.KindCreateTable, nil
	default:
		return "", fmt.Errorf("unsupported statement type: %T", stmt)
	}
}

// Execute broadcasts stmt to every shard and merges the answers into one result
func Execute(ctx context.Context, stmt ast.Statement, env Env) (*Result, error) {
	merged, err := Merge(ctx, stmt, env)
	if err != nil {
		return nil, err
	}
	return Drain(merged)
}

// Merge broadcasts stmt and returns the merged cursor without draining it
func Merge(ctx context.Context, stmt ast.Statement, env Env) (result.MergedResult, error) {
	var opts []show.Option
	if env.OnDecision != nil {
		opts = append(opts, show.WithDecisionHook(env.OnDecision))
	}

	switch s := stmt.(type) {
	case *ast.ShowTableStatusStatement:
		results, err := broadcast(ctx, env, env.Dialect.TableStatus)
		if err != nil {
			return nil, err
		}
		merged, err := show.NewTableStatusMergedResult(env.Rule, results, env.Catalog, opts...)
		if err != nil {
			return nil, err
		}
		return merged, nil

	case *ast.ShowTablesStatement:
		schema := env.Schema
		if s.Schema != nil {
			schema = s.Schema.Value
		}
		results, err := broadcast(ctx, env, env.Dialect.Tables)
		if err != nil {
			return nil, err
		}
		merged, err := show.NewTablesMergedResult(schema, env.Rule, results, env.Catalog, opts...)
		if err != nil {
			return nil, err
		}
		return merged, nil

	case *ast.ShowCreateTableStatement:
		if env.Dialect.CreateTable == nil {
			return nil, fmt.Errorf("dialect %q cannot answer this statement", env.Dialect.Name)
		}
		tablesFor := actualTablesFor(env.Rule, s.TableName.Value)
		results, err := broadcast(ctx, env, env.Dialect.CreateTable(tablesFor))
		if err != nil {
			return nil, err
		}
		merged, err := show.NewCreateTableMergedResult(env.Rule, results, env.Catalog, opts...)
		if err != nil {
			return nil, err
		}
		if merged.Len() == 0 {
			return nil, fmt.Errorf("table not found: %s", s.TableName.Value)
		}
		return merged, nil

	default:
		return nil, fmt.Errorf("unsupported statement type: %T", stmt)
	}
}

func broadcast(ctx context.Context, env Env, stmt shard.StatementFunc) ([]result.QueryResult, error) {
	if stmt == nil {
		return nil, fmt.Errorf("dialect %q cannot answer this statement", env.Dialect.Name)
	}
	buffered, err := env.Shards.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("broadcast failed: %w", err)
	}
	results := make([]result.QueryResult, len(buffered))
	for i, mr := range buffered {
		results[i] = mr
	}
	return results, nil
}

// actualTablesFor lists the physical tables backing a logic table on each
// data source. Unsharded tables are looked up under their own name.
func actualTablesFor(sr *rule.ShardingRule, logicTable string) func(string) []string {
	tr, found := sr.FindTableRule(logicTable)
	return func(dataSource string) []string {
		if !found {
			return []string{logicTable}
		}
		return tr.ActualTables(dataSource)
	}
}
