package show

import (
	"github.com/leengari/shardmerge/internal/merger/result"
)

// KindTableStatus identifies SHOW TABLE STATUS merged results
const KindTableStatus = "show_table_status"

// tableStatusLabels is the SHOW TABLE STATUS column layout clients expect
var tableStatusLabels = result.NewLabelIndex(
	"Name",
	"Engine",
	"Version",
	"Row_format",
	"Rows",
	"Avg_row_length",
	"Data_length",
	"Max_data_length",
	"Data_free",
	"Auto_increment",
	"Create_time",
	"Update_time",
	"Check_time",
	"Collation",
	"Checksum",
	"Create_options",
	"Comment",
)

// TableStatusLabels returns the SHOW TABLE STATUS labels in column order
func TableStatusLabels() []string {
	return tableStatusLabels.Labels()
}

// TableStatusMergedResult merges SHOW TABLE STATUS output from every shard
// into one row per logic table
type TableStatusMergedResult struct {
	*result.MemoryMergedResult
}

// NewTableStatusMergedResult drains results in order. Physical fragment
// names are replaced by their logic table name and only the first row seen
// for each logic table is kept. Without any table rule every row passes
// through unchanged.
func NewTableStatusMergedResult(r RuleLookup, results []result.QueryResult, catalog TableCatalog, opts ...Option) (*TableStatusMergedResult, error) {
	rows, err := mergeRows(KindTableStatus, r, catalog, results, renameFirstColumn, opts)
	if err != nil {
		return nil, err
	}
	return &TableStatusMergedResult{
		MemoryMergedResult: result.NewMemoryMergedResult(tableStatusLabels, rows),
	}, nil
}
