package result

import (
	"fmt"
	"strings"
)

// Cursor misuse kinds
const (
	KindNotPositioned   = "not_positioned"
	KindUnknownLabel    = "unknown_label"
	KindIndexOutOfRange = "index_out_of_range"
)

// CursorError reports a programming-contract violation against a merged
// cursor or a materialized row (reading with no current row, an unknown
// label, or an index outside the row).
type CursorError struct {
	Kind   string // one of the Kind* constants
	Label  string // requested label (empty when reading by index)
	Index  int    // requested 1-based index (0 when reading by label)
	Bounds int    // number of addressable columns (0 if unknown)
}

func (e *CursorError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("merged cursor misuse (%s)", e.Kind))

	if e.Label != "" {
		parts = append(parts, fmt.Sprintf("label=%q", e.Label))
	}

	if e.Index != 0 {
		parts = append(parts, fmt.Sprintf("index=%d", e.Index))
	}

	if e.Bounds > 0 {
		parts = append(parts, fmt.Sprintf("valid range 1..%d", e.Bounds))
	}

	return strings.Join(parts, " - ")
}

// MergeError is returned when building a merged result fails because a
// shard cursor could not be read. The whole metadata query fails with it.
type MergeError struct {
	Kind   string // merged result kind, e.g. "show_table_status"
	Shard  int    // 0-based position of the failing cursor (-1 if unknown)
	Row    int    // 0-based row within that cursor (-1 if unknown)
	Reason string
	Err    error
}

func (e *MergeError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("merge %s failed", e.Kind))

	if e.Shard >= 0 {
		parts = append(parts, fmt.Sprintf("shard %d", e.Shard))
	}

	if e.Row >= 0 {
		parts = append(parts, fmt.Sprintf("row %d", e.Row))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, " - ")
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

func newIndexOutOfRange(index, bounds int) *CursorError {
	return &CursorError{
		Kind:   KindIndexOutOfRange,
		Index:  index,
		Bounds: bounds,
	}
}

func newUnknownLabel(label string) *CursorError {
	return &CursorError{
		Kind:  KindUnknownLabel,
		Label: label,
	}
}

// NewSourceReadError wraps a failure reading a shard cursor
func NewSourceReadError(kind string, shard, row int, err error) *MergeError {
	return &MergeError{
		Kind:   kind,
		Shard:  shard,
		Row:    row,
		Reason: "source read failure",
		Err:    err,
	}
}
