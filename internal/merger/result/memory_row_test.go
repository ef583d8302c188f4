package result

import (
	"errors"
	"fmt"
	"testing"
)

// sliceResult is a minimal QueryResult over in-memory rows
type sliceResult struct {
	rows    [][]interface{}
	pos     int
	failCol int // Value fails for this column when > 0
}

func (s *sliceResult) Next() (bool, error) {
	if s.pos >= len(s.rows) {
		return false, nil
	}
	s.pos++
	return true, nil
}

func (s *sliceResult) ColumnCount() int {
	if len(s.rows) == 0 {
		return 0
	}
	return len(s.rows[0])
}

func (s *sliceResult) Value(columnIndex int) (interface{}, error) {
	if columnIndex == s.failCol {
		return nil, fmt.Errorf("shard went away")
	}
	return s.rows[s.pos-1][columnIndex-1], nil
}

func TestNewMemoryRowSnapshot(t *testing.T) {
	src := &sliceResult{rows: [][]interface{}{
		{"t_order_0", "InnoDB", int64(3)},
		{"t_order_1", "MyISAM", int64(5)},
	}}

	src.Next()
	row, err := NewMemoryRow(src)
	if err != nil {
		t.Fatalf("NewMemoryRow failed: %v", err)
	}

	// Advancing the source must not change the snapshot
	src.Next()

	if row.ColumnCount() != 3 {
		t.Fatalf("Expected 3 columns, got %d", row.ColumnCount())
	}
	want := []interface{}{"t_order_0", "InnoDB", int64(3)}
	for i, w := range want {
		got, err := row.Cell(i + 1)
		if err != nil {
			t.Fatalf("Cell(%d) failed: %v", i+1, err)
		}
		if got != w {
			t.Errorf("Cell(%d): expected %v, got %v", i+1, w, got)
		}
	}
}

func TestMemoryRowSetCell(t *testing.T) {
	row := NewMemoryRowFromValues("t_order_0", "InnoDB")

	if err := row.SetCell(1, "t_order"); err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}
	got, _ := row.Cell(1)
	if got != "t_order" {
		t.Errorf("Expected rewritten cell t_order, got %v", got)
	}
	other, _ := row.Cell(2)
	if other != "InnoDB" {
		t.Errorf("Expected untouched cell InnoDB, got %v", other)
	}
}

func TestMemoryRowOutOfRange(t *testing.T) {
	row := NewMemoryRowFromValues("a", "b")

	for _, idx := range []int{0, -1, 3} {
		_, err := row.Cell(idx)
		var ce *CursorError
		if !errors.As(err, &ce) || ce.Kind != KindIndexOutOfRange {
			t.Errorf("Cell(%d): expected index_out_of_range, got %v", idx, err)
		}
		if err := row.SetCell(idx, "x"); err == nil {
			t.Errorf("SetCell(%d): expected error, got nil", idx)
		}
	}
}

func TestNewMemoryRowReadFailure(t *testing.T) {
	src := &sliceResult{rows: [][]interface{}{{"a", "b"}}, failCol: 2}
	src.Next()

	if _, err := NewMemoryRow(src); err == nil {
		t.Fatal("Expected read failure to propagate, got nil")
	}
}

func TestMemoryRowValuesIsCopy(t *testing.T) {
	row := NewMemoryRowFromValues("a", "b")
	values := row.Values()
	values[0] = "changed"

	got, _ := row.Cell(1)
	if got != "a" {
		t.Errorf("Values() must return a copy, row now holds %v", got)
	}
}

func TestMemoryRowMarshalJSON(t *testing.T) {
	row := NewMemoryRowFromValues("t_order", nil, int64(7))
	data, err := row.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(data) != `["t_order",null,7]` {
		t.Errorf("Unexpected JSON: %s", data)
	}
}
