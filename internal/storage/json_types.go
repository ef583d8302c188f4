package storage

// CatalogMeta is the on-disk description of the logic tables of one schema
type CatalogMeta struct {
	Name    string   `json:"name"`
	Version int      `json:"version"`
	Tables  []string `json:"tables,omitempty"`
}

// TableMeta describes one logic table stored in its own directory
type TableMeta struct {
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
}
