package show

import (
	"fmt"

	"github.com/leengari/shardmerge/internal/merger/result"
	"github.com/leengari/shardmerge/internal/rule"
)

// RuleLookup resolves physical table names to the table rule that owns them
type RuleLookup interface {
	FindTableRuleByActualTable(actualTable string) (*rule.TableRule, bool)
	HasTableRules() bool
}

// TableCatalog knows which logic tables exist
type TableCatalog interface {
	ContainsTable(name string) bool
}

// Outcome is what the merge did with one shard row
type Outcome string

const (
	OutcomePassthrough      Outcome = "passthrough"       // no sharding configured, row kept as is
	OutcomeKept             Outcome = "kept"              // unruled but known logic table, first sighting
	OutcomeRenamed          Outcome = "renamed"           // ruled fragment, first sighting, renamed to logic table
	OutcomeDroppedDuplicate Outcome = "dropped_duplicate" // table name already emitted
	OutcomeDroppedUnknown   Outcome = "dropped_unknown"   // unruled and not a known logic table
)

// Decision describes how one shard row was handled
type Decision struct {
	Kind        string
	Shard       int
	Row         int
	ActualTable string
	LogicTable  string
	Outcome     Outcome
}

// Kept reports whether the row made it into the merged result
func (d Decision) Kept() bool {
	switch d.Outcome {
	case OutcomePassthrough, OutcomeKept, OutcomeRenamed:
		return true
	}
	return false
}

type options struct {
	onDecision func(Decision)
}

// Option configures how a merged result is built
type Option func(*options)

// WithDecisionHook registers a callback invoked for every shard row, in merge order
func WithDecisionHook(fn func(Decision)) Option {
	return func(o *options) {
		o.onDecision = fn
	}
}

// tableNameFilter applies the rename and first-wins dedup policy shared by
// every SHOW-style merged result whose first column is a table name
type tableNameFilter struct {
	rule    RuleLookup
	catalog TableCatalog
	seen    map[string]struct{}
}

func newTableNameFilter(r RuleLookup, catalog TableCatalog) *tableNameFilter {
	return &tableNameFilter{
		rule:    r,
		catalog: catalog,
		seen:    make(map[string]struct{}),
	}
}

// decide returns the logic table name for a physical name and what to do with the row
func (f *tableNameFilter) decide(actualTable string) (string, Outcome) {
	tr, found := f.rule.FindTableRuleByActualTable(actualTable)
	if !found {
		if !f.rule.HasTableRules() {
			return actualTable, OutcomePassthrough
		}
		if !f.catalog.ContainsTable(actualTable) {
			return actualTable, OutcomeDroppedUnknown
		}
		if f.markSeen(actualTable) {
			return actualTable, OutcomeKept
		}
		return actualTable, OutcomeDroppedDuplicate
	}

	logicTable := tr.LogicTable()
	if f.markSeen(logicTable) {
		return logicTable, OutcomeRenamed
	}
	return logicTable, OutcomeDroppedDuplicate
}

// markSeen records name and reports whether it was new
func (f *tableNameFilter) markSeen(name string) bool {
	if _, ok := f.seen[name]; ok {
		return false
	}
	f.seen[name] = struct{}{}
	return true
}

// rewriteFunc adjusts a surviving row whose table name was resolved through a rule
type rewriteFunc func(row *result.MemoryRow, actualTable, logicTable string) error

// renameFirstColumn puts the logic table name into column 1
func renameFirstColumn(row *result.MemoryRow, _, logicTable string) error {
	return row.SetCell(1, logicTable)
}

// mergeRows drains every cursor in order and returns the surviving rows in
// first-encountered order
func mergeRows(kind string, r RuleLookup, catalog TableCatalog, results []result.QueryResult, rewrite rewriteFunc, opts []Option) ([]*result.MemoryRow, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	filter := newTableNameFilter(r, catalog)
	var rows []*result.MemoryRow

	for shard, qr := range results {
		for rowNum := 0; ; rowNum++ {
			ok, err := qr.Next()
			if err != nil {
				return nil, result.NewSourceReadError(kind, shard, rowNum, err)
			}
			if !ok {
				break
			}

			row, err := result.NewMemoryRow(qr)
			if err != nil {
				return nil, result.NewSourceReadError(kind, shard, rowNum, err)
			}

			cell, err := row.Cell(1)
			if err != nil {
				return nil, result.NewSourceReadError(kind, shard, rowNum, err)
			}
			actualTable, err := identifier(cell)
			if err != nil {
				return nil, result.NewSourceReadError(kind, shard, rowNum, err)
			}

			logicTable, outcome := filter.decide(actualTable)
			if outcome == OutcomeRenamed {
				if err := rewrite(row, actualTable, logicTable); err != nil {
					return nil, result.NewSourceReadError(kind, shard, rowNum, err)
				}
			}

			d := Decision{
				Kind:        kind,
				Shard:       shard,
				Row:         rowNum,
				ActualTable: actualTable,
				LogicTable:  logicTable,
				Outcome:     outcome,
			}
			if d.Kept() {
				rows = append(rows, row)
			}
			if o.onDecision != nil {
				o.onDecision(d)
			}
		}
	}
	return rows, nil
}

// identifier turns a table name cell into a string. Drivers hand text back
// either as string or as []byte.
func identifier(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", fmt.Errorf("table name column is NULL")
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return fmt.Sprint(val), nil
	}
}
