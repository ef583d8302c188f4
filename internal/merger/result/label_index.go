package result

// LabelIndex maps a column label to its 1-based column index.
// Lookups are case-sensitive. A LabelIndex is built once per merged result
// kind and never mutated afterwards, so it is safe to share.
type LabelIndex struct {
	labels  []string
	indexes map[string]int
}

// NewLabelIndex assigns indexes 1..n to the labels in the given order.
// It panics on a duplicate label since tables are package-level constants.
func NewLabelIndex(labels ...string) *LabelIndex {
	li := &LabelIndex{
		labels:  make([]string, len(labels)),
		indexes: make(map[string]int, len(labels)),
	}
	copy(li.labels, labels)
	for i, label := range labels {
		if _, exists := li.indexes[label]; exists {
			panic("result: duplicate label " + label)
		}
		li.indexes[label] = i + 1
	}
	return li
}

// Index resolves a label to its 1-based column index
func (li *LabelIndex) Index(label string) (int, bool) {
	idx, ok := li.indexes[label]
	return idx, ok
}

// Label returns the label at the 1-based column index
func (li *LabelIndex) Label(columnIndex int) (string, bool) {
	if columnIndex < 1 || columnIndex > len(li.labels) {
		return "", false
	}
	return li.labels[columnIndex-1], true
}

// Labels returns the labels in column order
func (li *LabelIndex) Labels() []string {
	out := make([]string, len(li.labels))
	copy(out, li.labels)
	return out
}

// Len is the number of labelled columns
func (li *LabelIndex) Len() int {
	return len(li.labels)
}
