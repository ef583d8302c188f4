package rule

import (
	"fmt"
	"strings"
)

// DataNode is one physical table living in one data source (shard)
type DataNode struct {
	DataSource string
	Table      string
}

// ParseDataNode parses "<data_source>.<table>"
func ParseDataNode(s string) (DataNode, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return DataNode{}, fmt.Errorf("invalid data node %q: expected <data_source>.<table>", s)
	}
	return DataNode{DataSource: parts[0], Table: parts[1]}, nil
}

func (n DataNode) String() string {
	return n.DataSource + "." + n.Table
}
