package executor

import (
	"fmt"

	"github.com/leengari/shardmerge/internal/merger/result"
)

// Result is the materialized outcome of a merged SHOW statement
type Result struct {
	Columns []string        `json:"columns,omitempty"`
	Rows    [][]interface{} `json:"rows,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Drain reads every remaining row of a merged result through its label
// table. The merged result is exhausted afterwards.
func Drain(merged result.MergedResult) (*Result, error) {
	labels := merged.Labels()
	res := &Result{Columns: labels}

	for merged.Next() {
		row := make([]interface{}, len(labels))
		for i := range labels {
			v, err := merged.Value(i + 1)
			if err != nil {
				return nil, fmt.Errorf("failed to read column %s: %w", labels[i], err)
			}
			row[i] = v
		}
		res.Rows = append(res.Rows, row)
	}

	res.Message = fmt.Sprintf("Returned %d rows", len(res.Rows))
	return res, nil
}
