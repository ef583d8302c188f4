package shard

import (
	"fmt"
)

// MemoryResult is a QueryResult over rows already held in memory
type MemoryResult struct {
	columns []string
	rows    [][]interface{}
	pos     int // 1-based position of the current row, 0 before the first Next
}

// NewMemoryResult creates a cursor positioned before the first row.
// Every row must have len(columns) cells.
func NewMemoryResult(columns []string, rows [][]interface{}) (*MemoryResult, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(columns))
		}
	}
	return &MemoryResult{
		columns: append([]string(nil), columns...),
		rows:    rows,
	}, nil
}

// Next advances to the next row
func (m *MemoryResult) Next() (bool, error) {
	if m.pos >= len(m.rows) {
		m.pos = len(m.rows) + 1
		return false, nil
	}
	m.pos++
	return true, nil
}

// ColumnCount returns the number of columns
func (m *MemoryResult) ColumnCount() int {
	return len(m.columns)
}

// Columns returns the column names reported by the shard
func (m *MemoryResult) Columns() []string {
	return append([]string(nil), m.columns...)
}

// Value returns a cell of the current row by 1-based index
func (m *MemoryResult) Value(columnIndex int) (interface{}, error) {
	if m.pos < 1 || m.pos > len(m.rows) {
		return nil, fmt.Errorf("no current row")
	}
	if columnIndex < 1 || columnIndex > len(m.columns) {
		return nil, fmt.Errorf("column index %d out of range 1..%d", columnIndex, len(m.columns))
	}
	return m.rows[m.pos-1][columnIndex-1], nil
}

// Len returns the number of buffered rows
func (m *MemoryResult) Len() int {
	return len(m.rows)
}
