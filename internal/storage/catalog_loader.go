package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/shardmerge/internal/metadata"
)

// LoadCatalog reads the logic tables of a schema from dir. Tables come from
// the "tables" list of dir/meta.json and from every subdirectory holding a
// table meta.json of its own.
func LoadCatalog(dir string, logger *slog.Logger) (*metadata.TableMetaData, error) {
	metaPath := filepath.Join(dir, "meta.json")

	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog meta: %w", err)
	}

	var meta CatalogMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse catalog meta: %w", err)
	}

	catalog := metadata.New(meta.Tables...)

	// Read all entries in the catalog directory
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		table, err := loadTableMeta(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to load table %s: %w", entry.Name(), err)
		}
		catalog.Put(table.Name)
	}

	logger.Info("Catalog loaded successfully",
		slog.String("name", meta.Name),
		slog.String("path", dir),
		slog.Int("table_count", catalog.Len()),
	)

	return catalog, nil
}

func loadTableMeta(path string) (*TableMeta, error) {
	metaBytes, err := os.ReadFile(filepath.Join(path, "meta.json"))
	if err != nil {
		return nil, err
	}

	var meta TableMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, err
	}
	if meta.Name == "" {
		meta.Name = filepath.Base(path)
	}
	return &meta, nil
}

// SaveCatalog writes dir/meta.json for the given catalog using a temp file
// and an atomic rename
func SaveCatalog(dir, name string, catalog *metadata.TableMetaData) error {
	meta := CatalogMeta{
		Name:    name,
		Version: 1,
		Tables:  catalog.Tables(),
	}

	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog meta: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	path := filepath.Join(dir, "meta.json")
	tmpPath := path + ".tmp"

	// Write to temp
	if err := os.WriteFile(tmpPath, metaBytes, 0644); err != nil {
		return fmt.Errorf("failed to write temp catalog meta: %w", err)
	}

	// Atomic replace
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp catalog meta: %w", err)
	}
	return nil
}
