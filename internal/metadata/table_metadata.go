package metadata

import (
	"sort"
	"strings"
	"sync"
)

// TableMetaData is the set of logic tables known to exist.
// It is safe for concurrent use.
type TableMetaData struct {
	mu     sync.RWMutex
	tables map[string]struct{}
}

// New creates a catalog holding the given logic tables
func New(tables ...string) *TableMetaData {
	md := &TableMetaData{
		tables: make(map[string]struct{}, len(tables)),
	}
	for _, t := range tables {
		md.tables[t] = struct{}{}
	}
	return md
}

// ContainsTable reports whether a logic table with exactly this name exists
func (md *TableMetaData) ContainsTable(name string) bool {
	md.mu.RLock()
	defer md.mu.RUnlock()
	_, ok := md.tables[name]
	return ok
}

// Put registers a logic table
func (md *TableMetaData) Put(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	md.mu.Lock()
	defer md.mu.Unlock()
	md.tables[name] = struct{}{}
}

// Remove unregisters a logic table
func (md *TableMetaData) Remove(name string) {
	md.mu.Lock()
	defer md.mu.Unlock()
	delete(md.tables, name)
}

// Tables returns the known logic tables sorted by name
func (md *TableMetaData) Tables() []string {
	md.mu.RLock()
	defer md.mu.RUnlock()
	names := make([]string, 0, len(md.tables))
	for t := range md.tables {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of known logic tables
func (md *TableMetaData) Len() int {
	md.mu.RLock()
	defer md.mu.RUnlock()
	return len(md.tables)
}
