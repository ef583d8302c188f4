package result

import (
	"encoding/json"
	"fmt"
)

// MemoryRow is an in-memory snapshot of one shard row.
// Cells are addressed by 1-based column index.
type MemoryRow struct {
	cells []interface{}
}

// NewMemoryRow copies every cell of the row the cursor is positioned on.
// The returned row does not change when the cursor advances.
func NewMemoryRow(qr QueryResult) (*MemoryRow, error) {
	count := qr.ColumnCount()
	cells := make([]interface{}, count)
	for i := 1; i <= count; i++ {
		v, err := qr.Value(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read column %d: %w", i, err)
		}
		cells[i-1] = v
	}
	return &MemoryRow{cells: cells}, nil
}

// NewMemoryRowFromValues builds a row from already materialized values
func NewMemoryRowFromValues(values ...interface{}) *MemoryRow {
	cells := make([]interface{}, len(values))
	copy(cells, values)
	return &MemoryRow{cells: cells}
}

// ColumnCount returns the fixed number of cells in the row
func (r *MemoryRow) ColumnCount() int {
	return len(r.cells)
}

// Cell returns the value at the 1-based column index
func (r *MemoryRow) Cell(columnIndex int) (interface{}, error) {
	if columnIndex < 1 || columnIndex > len(r.cells) {
		return nil, newIndexOutOfRange(columnIndex, len(r.cells))
	}
	return r.cells[columnIndex-1], nil
}

// SetCell overwrites the value at the 1-based column index
func (r *MemoryRow) SetCell(columnIndex int, value interface{}) error {
	if columnIndex < 1 || columnIndex > len(r.cells) {
		return newIndexOutOfRange(columnIndex, len(r.cells))
	}
	r.cells[columnIndex-1] = value
	return nil
}

// Values returns a copy of all cells in column order
func (r *MemoryRow) Values() []interface{} {
	out := make([]interface{}, len(r.cells))
	copy(out, r.cells)
	return out
}

// MarshalJSON encodes the row as a JSON array of its cells
func (r *MemoryRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.cells)
}

// String returns a string representation for debugging
func (r *MemoryRow) String() string {
	return fmt.Sprintf("MemoryRow%v", r.cells)
}
