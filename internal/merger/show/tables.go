package show

import (
	"github.com/leengari/shardmerge/internal/merger/result"
)

// KindTables identifies SHOW TABLES merged results
const KindTables = "show_tables"

// TablesMergedResult merges SHOW TABLES output. Its only label is
// "Tables_in_<schema>", so the label table is built per schema.
type TablesMergedResult struct {
	*result.MemoryMergedResult
}

// NewTablesMergedResult applies the same rename and dedup policy as
// NewTableStatusMergedResult to a one-column table listing
func NewTablesMergedResult(schema string, r RuleLookup, results []result.QueryResult, catalog TableCatalog, opts ...Option) (*TablesMergedResult, error) {
	rows, err := mergeRows(KindTables, r, catalog, results, renameFirstColumn, opts)
	if err != nil {
		return nil, err
	}
	labels := result.NewLabelIndex("Tables_in_" + schema)
	return &TablesMergedResult{
		MemoryMergedResult: result.NewMemoryMergedResult(labels, rows),
	}, nil
}
