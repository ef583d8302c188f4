package result

// MergedResult is the single logical cursor handed to callers in place of
// the per-shard cursors.
type MergedResult interface {
	Next() bool
	Value(columnIndex int) (interface{}, error)
	ValueByLabel(label string) (interface{}, error)
	Labels() []string
}

type cursorState int

const (
	stateNotStarted cursorState = iota
	statePositioned
	stateExhausted
)

// MemoryMergedResult is a forward-only cursor over rows that were fully
// materialized while the merged result was built. Every SHOW-style merged
// result embeds it and supplies its own label table and row filtering.
type MemoryMergedResult struct {
	labels  *LabelIndex
	rows    []*MemoryRow
	next    int // index into rows of the row the next call to Next hands out
	current *MemoryRow
	state   cursorState
}

// NewMemoryMergedResult creates a cursor over rows. When rows is not empty
// the first row is already current, so cells can be read before the first
// Next; that first Next still reports the first row.
func NewMemoryMergedResult(labels *LabelIndex, rows []*MemoryRow) *MemoryMergedResult {
	m := &MemoryMergedResult{
		labels: labels,
		rows:   rows,
		state:  stateNotStarted,
	}
	if len(rows) > 0 {
		m.current = rows[0]
	}
	return m
}

// Next moves to the next row. Once it returns false it keeps returning false.
func (m *MemoryMergedResult) Next() bool {
	if m.state == stateExhausted {
		return false
	}
	if m.next < len(m.rows) {
		m.current = m.rows[m.next]
		m.next++
		m.state = statePositioned
		return true
	}
	m.current = nil
	m.state = stateExhausted
	return false
}

// Value reads a cell of the current row by 1-based column index
func (m *MemoryMergedResult) Value(columnIndex int) (interface{}, error) {
	if m.current == nil {
		return nil, &CursorError{Kind: KindNotPositioned, Index: columnIndex}
	}
	if columnIndex < 1 || columnIndex > m.labels.Len() {
		return nil, newIndexOutOfRange(columnIndex, m.labels.Len())
	}
	return m.current.Cell(columnIndex)
}

// ValueByLabel reads a cell of the current row by its case-sensitive label
func (m *MemoryMergedResult) ValueByLabel(label string) (interface{}, error) {
	idx, ok := m.labels.Index(label)
	if !ok {
		return nil, newUnknownLabel(label)
	}
	if m.current == nil {
		return nil, &CursorError{Kind: KindNotPositioned, Label: label}
	}
	return m.current.Cell(idx)
}

// Labels returns the column labels in index order
func (m *MemoryMergedResult) Labels() []string {
	return m.labels.Labels()
}

// Len is the number of rows that survived the merge
func (m *MemoryMergedResult) Len() int {
	return len(m.rows)
}
