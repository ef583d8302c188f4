package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/leengari/shardmerge/internal/config"
	"github.com/leengari/shardmerge/internal/logging"
	"github.com/leengari/shardmerge/internal/metadata"
	"github.com/leengari/shardmerge/internal/storage"
)

func TestBootstrap(t *testing.T) {
	dir := t.TempDir()

	ruleFile := filepath.Join(dir, "rules.yaml")
	rules := `data_sources: [ds_0, ds_1]
tables:
  - logic_table: t_order
    actual_data_nodes: ds_${0..1}.t_order_${0..1}
`
	if err := os.WriteFile(ruleFile, []byte(rules), 0644); err != nil {
		t.Fatalf("Failed to write rule file: %v", err)
	}

	catalogDir := filepath.Join(dir, "catalog")
	if err := os.MkdirAll(catalogDir, 0755); err != nil {
		t.Fatalf("Failed to create catalog dir: %v", err)
	}
	if err := storage.SaveCatalog(catalogDir, "sharding_db", metadata.New("t_config")); err != nil {
		t.Fatalf("Failed to save catalog: %v", err)
	}

	cfg := &config.Config{
		Schema:     "sharding_db",
		RuleFile:   ruleFile,
		CatalogDir: catalogDir,
		DataSources: map[string]string{
			"ds_0": "file:" + filepath.Join(dir, "ds_0.db"),
			"ds_1": "file:" + filepath.Join(dir, "ds_1.db"),
		},
		Workers: 2,
	}

	a, err := bootstrap(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	defer a.Close()

	if got := a.env.Catalog.Tables(); !reflect.DeepEqual(got, []string{"t_config", "t_order"}) {
		t.Errorf("Unexpected catalog %v", got)
	}

	for _, ds := range a.sources {
		if _, err := ds.DB.Exec("CREATE TABLE t_order_0 (id INTEGER)"); err != nil {
			t.Fatalf("%s: %v", ds.Name, err)
		}
	}

	res, err := a.newEngine().Execute(context.Background(), "SHOW TABLES")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0][0] != "t_order" {
		t.Errorf("Unexpected rows %v", res.Rows)
	}
}

func TestBootstrapRequiresDataSources(t *testing.T) {
	if _, err := bootstrap(&config.Config{Workers: 1}, logging.Discard()); err == nil {
		t.Error("Expected error without data sources, got nil")
	}
}
