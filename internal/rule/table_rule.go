package rule

import (
	"fmt"
	"strings"
)

// TableRule maps one logic table onto the physical tables that hold its fragments
type TableRule struct {
	logicTable      string
	actualDataNodes []DataNode
}

// NewTableRule builds a rule from a logic table name and an inline data node
// expression such as "ds_${0..1}.t_order_${0..1}". An empty expression means
// the logic table is stored under its own name in every listed data source.
func NewTableRule(logicTable, actualDataNodes string, dataSources []string) (*TableRule, error) {
	logicTable = strings.ToLower(strings.TrimSpace(logicTable))
	if logicTable == "" {
		return nil, fmt.Errorf("table rule: logic table is required")
	}

	tr := &TableRule{logicTable: logicTable}

	if strings.TrimSpace(actualDataNodes) == "" {
		if len(dataSources) == 0 {
			return nil, fmt.Errorf("table rule %s: no data nodes and no data sources", logicTable)
		}
		for _, ds := range dataSources {
			tr.actualDataNodes = append(tr.actualDataNodes, DataNode{DataSource: ds, Table: logicTable})
		}
		return tr, nil
	}

	expanded, err := ExpandInline(actualDataNodes)
	if err != nil {
		return nil, fmt.Errorf("table rule %s: %w", logicTable, err)
	}
	for _, s := range expanded {
		node, err := ParseDataNode(s)
		if err != nil {
			return nil, fmt.Errorf("table rule %s: %w", logicTable, err)
		}
		tr.actualDataNodes = append(tr.actualDataNodes, node)
	}
	return tr, nil
}

// LogicTable returns the user-visible table name
func (tr *TableRule) LogicTable() string {
	return tr.logicTable
}

// ActualDataNodes returns the physical fragments in configuration order
func (tr *TableRule) ActualDataNodes() []DataNode {
	out := make([]DataNode, len(tr.actualDataNodes))
	copy(out, tr.actualDataNodes)
	return out
}

// HasActualTable reports whether any fragment uses the physical table name.
// Comparison ignores case, as physical identifiers do on most shards.
func (tr *TableRule) HasActualTable(actualTable string) bool {
	for _, node := range tr.actualDataNodes {
		if strings.EqualFold(node.Table, actualTable) {
			return true
		}
	}
	return false
}

// ActualTables returns the physical tables of this rule held by one data source
func (tr *TableRule) ActualTables(dataSource string) []string {
	var tables []string
	for _, node := range tr.actualDataNodes {
		if node.DataSource == dataSource {
			tables = append(tables, node.Table)
		}
	}
	return tables
}
