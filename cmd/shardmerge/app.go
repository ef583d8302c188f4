package main

import (
	"fmt"
	"log/slog"

	"github.com/leengari/shardmerge/internal/config"
	"github.com/leengari/shardmerge/internal/engine"
	"github.com/leengari/shardmerge/internal/executor"
	"github.com/leengari/shardmerge/internal/metadata"
	"github.com/leengari/shardmerge/internal/rule"
	"github.com/leengari/shardmerge/internal/shard"
	"github.com/leengari/shardmerge/internal/storage"
)

// app holds everything opened at startup so it can be closed on shutdown
type app struct {
	env      executor.Env
	sources  []shard.DataSource
	executor *shard.Executor
	logger   *slog.Logger
}

func bootstrap(cfg *config.Config, logger *slog.Logger) (*app, error) {
	// 1. Sharding rule (empty rule = unsharded)
	sr, err := rule.NewShardingRule(rule.Config{})
	if err != nil {
		return nil, err
	}
	if cfg.RuleFile != "" {
		sr, err = rule.LoadRuleFile(cfg.RuleFile, logger)
		if err != nil {
			return nil, err
		}
	}

	// 2. Catalog: every logic table of the rule plus the catalog directory
	catalog := metadata.New(sr.LogicTables()...)
	if cfg.CatalogDir != "" {
		loaded, err := storage.LoadCatalog(cfg.CatalogDir, logger)
		if err != nil {
			return nil, err
		}
		for _, t := range loaded.Tables() {
			catalog.Put(t)
		}
	}

	// 3. Shards
	if len(cfg.DataSources) == 0 {
		return nil, fmt.Errorf("no data sources configured")
	}
	sources, err := shard.OpenSQLite(cfg.DataSources, logger)
	if err != nil {
		return nil, err
	}
	exec, err := shard.NewExecutor(sources, cfg.Workers, logger)
	if err != nil {
		shard.CloseAll(sources)
		return nil, err
	}

	return &app{
		env: executor.Env{
			Schema:  cfg.Schema,
			Rule:    sr,
			Catalog: catalog,
			Shards:  exec,
			Dialect: shard.SQLite,
		},
		sources:  sources,
		executor: exec,
		logger:   logger,
	}, nil
}

// newEngine creates an engine with the logging and metrics observers attached
func (a *app) newEngine() *engine.Engine {
	eng := engine.New(a.env)
	eng.AddObserver(engine.NewLoggingObserver(a.logger))
	eng.AddObserver(engine.NewMetricsObserver())
	return eng
}

func (a *app) Close() {
	a.executor.Close()
	shard.CloseAll(a.sources)
}
