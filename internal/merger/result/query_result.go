package result

// QueryResult is a forward-only cursor over the rows one shard returned.
// Column indexes are 1-based. Implementations are owned by whoever opened
// them; mergers only drain them.
type QueryResult interface {
	// Next advances to the next row, reporting false once the cursor is exhausted
	Next() (bool, error)
	// ColumnCount is the number of columns every row of this cursor carries
	ColumnCount() int
	// Value reads a cell of the currently positioned row
	Value(columnIndex int) (interface{}, error)
}
