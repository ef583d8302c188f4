package rule

import (
	"fmt"
	"sort"
	"strings"
)

// TableRuleConfig is the configuration of one sharded logic table
type TableRuleConfig struct {
	LogicTable      string `mapstructure:"logic_table" json:"logic_table"`
	ActualDataNodes string `mapstructure:"actual_data_nodes" json:"actual_data_nodes"`
}

// Config is the sharding configuration as read from a rule file
type Config struct {
	DataSources []string          `mapstructure:"data_sources" json:"data_sources"`
	Tables      []TableRuleConfig `mapstructure:"tables" json:"tables"`
}

// ShardingRule answers which logic table owns a physical table.
// It is built once and only read afterwards.
type ShardingRule struct {
	dataSources []string
	tableRules  []*TableRule
}

// NewShardingRule validates the configuration and builds every table rule.
// A configuration without tables is valid and describes an unsharded setup.
func NewShardingRule(cfg Config) (*ShardingRule, error) {
	sr := &ShardingRule{
		dataSources: append([]string(nil), cfg.DataSources...),
	}

	seen := make(map[string]bool, len(cfg.Tables))
	for _, tc := range cfg.Tables {
		tr, err := NewTableRule(tc.LogicTable, tc.ActualDataNodes, cfg.DataSources)
		if err != nil {
			return nil, err
		}
		if seen[tr.LogicTable()] {
			return nil, fmt.Errorf("duplicate table rule for logic table %s", tr.LogicTable())
		}
		seen[tr.LogicTable()] = true
		sr.tableRules = append(sr.tableRules, tr)
	}
	return sr, nil
}

// FindTableRuleByActualTable returns the rule owning the physical table name, if any.
// When several rules list the same physical name the first configured one wins.
func (sr *ShardingRule) FindTableRuleByActualTable(actualTable string) (*TableRule, bool) {
	for _, tr := range sr.tableRules {
		if tr.HasActualTable(actualTable) {
			return tr, true
		}
	}
	return nil, false
}

// FindTableRule returns the rule for a logic table name
func (sr *ShardingRule) FindTableRule(logicTable string) (*TableRule, bool) {
	for _, tr := range sr.tableRules {
		if strings.EqualFold(tr.LogicTable(), logicTable) {
			return tr, true
		}
	}
	return nil, false
}

// HasTableRules reports whether any sharding is configured
func (sr *ShardingRule) HasTableRules() bool {
	return len(sr.tableRules) > 0
}

// TableRules returns the configured rules in configuration order
func (sr *ShardingRule) TableRules() []*TableRule {
	out := make([]*TableRule, len(sr.tableRules))
	copy(out, sr.tableRules)
	return out
}

// LogicTables returns the sorted logic table names
func (sr *ShardingRule) LogicTables() []string {
	names := make([]string, 0, len(sr.tableRules))
	for _, tr := range sr.tableRules {
		names = append(names, tr.LogicTable())
	}
	sort.Strings(names)
	return names
}

// DataSourceNames returns the configured data sources, followed by any data
// source that only appears in a table rule's data nodes
func (sr *ShardingRule) DataSourceNames() []string {
	names := append([]string(nil), sr.dataSources...)
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	for _, tr := range sr.tableRules {
		for _, node := range tr.actualDataNodes {
			if !known[node.DataSource] {
				known[node.DataSource] = true
				names = append(names, node.DataSource)
			}
		}
	}
	return names
}
