package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/leengari/shardmerge/internal/logging"
	"github.com/leengari/shardmerge/internal/metadata"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "meta.json"), `{"name": "sharding_db", "version": 1, "tables": ["t_config", "t_order"]}`)
	writeFile(t, filepath.Join(dir, "t_user", "meta.json"), `{"name": "t_user"}`)
	writeFile(t, filepath.Join(dir, "t_audit", "meta.json"), `{}`)

	catalog, err := LoadCatalog(dir, logging.Discard())
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	want := []string{"t_audit", "t_config", "t_order", "t_user"}
	if got := catalog.Tables(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected tables %v, got %v", want, got)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	t.Run("missing meta", func(t *testing.T) {
		if _, err := LoadCatalog(t.TempDir(), logging.Discard()); err == nil {
			t.Error("Expected error for missing meta.json, got nil")
		}
	})

	t.Run("bad json", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "meta.json"), `{"name":`)
		if _, err := LoadCatalog(dir, logging.Discard()); err == nil {
			t.Error("Expected error for malformed meta.json, got nil")
		}
	})

	t.Run("table dir without meta", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "meta.json"), `{"name": "db"}`)
		if err := os.MkdirAll(filepath.Join(dir, "t_orphan"), 0755); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadCatalog(dir, logging.Discard()); err == nil {
			t.Error("Expected error for table directory without meta.json, got nil")
		}
	})
}

func TestSaveCatalogRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog")
	catalog := metadata.New("t_order", "t_config")

	if err := SaveCatalog(dir, "sharding_db", catalog); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "meta.json.tmp")); !os.IsNotExist(err) {
		t.Errorf("Expected temp file to be renamed away, stat err = %v", err)
	}

	loaded, err := LoadCatalog(dir, logging.Discard())
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if !loaded.ContainsTable("t_order") || !loaded.ContainsTable("t_config") || loaded.Len() != 2 {
		t.Errorf("Unexpected catalog after round trip: %v", loaded.Tables())
	}
}
