package rule

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

// LoadRuleFile reads a sharding configuration file (YAML, JSON or TOML,
// chosen by extension) and builds the sharding rule from it
func LoadRuleFile(path string, logger *slog.Logger) (*ShardingRule, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rule file: %w", err)
	}

	sr, err := NewShardingRule(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid rule file %s: %w", path, err)
	}

	logger.Info("sharding rule loaded",
		slog.String("path", path),
		slog.Int("table_rules", len(sr.tableRules)),
		slog.Any("data_sources", sr.DataSourceNames()),
	)

	return sr, nil
}
