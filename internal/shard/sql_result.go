package shard

import (
	"database/sql"
	"fmt"
)

// SQLResult adapts *sql.Rows to a QueryResult. Each row is scanned once
// when Next moves onto it.
type SQLResult struct {
	rows    *sql.Rows
	columns []string
	current []interface{}
}

// NewSQLResult wraps rows; the caller keeps ownership and must close them
func NewSQLResult(rows *sql.Rows) (*SQLResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	return &SQLResult{rows: rows, columns: columns}, nil
}

// Next advances and scans the next row
func (r *SQLResult) Next() (bool, error) {
	r.current = nil
	if !r.rows.Next() {
		return false, r.rows.Err()
	}

	values := make([]interface{}, len(r.columns))
	ptrs := make([]interface{}, len(r.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		return false, fmt.Errorf("failed to scan row: %w", err)
	}

	// Drivers may reuse []byte buffers between rows
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = string(b)
		}
	}
	r.current = values
	return true, nil
}

// ColumnCount returns the number of result columns
func (r *SQLResult) ColumnCount() int {
	return len(r.columns)
}

// Columns returns the result column names
func (r *SQLResult) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Value returns a cell of the current row by 1-based index
func (r *SQLResult) Value(columnIndex int) (interface{}, error) {
	if r.current == nil {
		return nil, fmt.Errorf("no current row")
	}
	if columnIndex < 1 || columnIndex > len(r.columns) {
		return nil, fmt.Errorf("column index %d out of range 1..%d", columnIndex, len(r.columns))
	}
	return r.current[columnIndex-1], nil
}

// Buffer drains the remaining rows into a MemoryResult
func Buffer(qr *SQLResult) (*MemoryResult, error) {
	var rows [][]interface{}
	for {
		ok, err := qr.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		rows = append(rows, qr.current)
	}
	return NewMemoryResult(qr.columns, rows)
}
