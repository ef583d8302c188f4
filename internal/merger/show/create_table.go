package show

import (
	"fmt"
	"strings"

	"github.com/leengari/shardmerge/internal/merger/result"
)

// KindCreateTable identifies SHOW CREATE TABLE merged results
const KindCreateTable = "show_create_table"

var createTableLabels = result.NewLabelIndex("Table", "Create Table")

// CreateTableMergedResult merges SHOW CREATE TABLE output. Besides column 1
// the DDL text in column 2 names the physical table and is rewritten too.
type CreateTableMergedResult struct {
	*result.MemoryMergedResult
}

// NewCreateTableMergedResult keeps one DDL row per logic table
func NewCreateTableMergedResult(r RuleLookup, results []result.QueryResult, catalog TableCatalog, opts ...Option) (*CreateTableMergedResult, error) {
	rows, err := mergeRows(KindCreateTable, r, catalog, results, renameCreateTable, opts)
	if err != nil {
		return nil, err
	}
	return &CreateTableMergedResult{
		MemoryMergedResult: result.NewMemoryMergedResult(createTableLabels, rows),
	}, nil
}

func renameCreateTable(row *result.MemoryRow, actualTable, logicTable string) error {
	if err := row.SetCell(1, logicTable); err != nil {
		return err
	}
	if row.ColumnCount() < 2 {
		return nil
	}
	cell, err := row.Cell(2)
	if err != nil {
		return err
	}
	ddl, err := identifier(cell)
	if err != nil {
		return fmt.Errorf("create table column: %w", err)
	}
	return row.SetCell(2, strings.Replace(ddl, actualTable, logicTable, 1))
}
