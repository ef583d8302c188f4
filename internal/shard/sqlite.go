package shard

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens one sqlite database per entry of dsns (data source name -> DSN).
// Data sources are returned sorted by name so shard order is stable.
func OpenSQLite(dsns map[string]string, logger *slog.Logger) ([]DataSource, error) {
	names := make([]string, 0, len(dsns))
	for name := range dsns {
		names = append(names, name)
	}
	sort.Strings(names)

	sources := make([]DataSource, 0, len(names))
	for _, name := range names {
		db, err := sql.Open("sqlite", dsns[name])
		if err != nil {
			CloseAll(sources)
			return nil, fmt.Errorf("open data source %s: %w", name, err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			CloseAll(sources)
			return nil, fmt.Errorf("ping data source %s: %w", name, err)
		}
		sources = append(sources, DataSource{Name: name, DB: db})
		logger.Info("data source opened", slog.String("name", name))
	}
	return sources, nil
}

// CloseAll closes every data source
func CloseAll(sources []DataSource) {
	for _, ds := range sources {
		ds.DB.Close()
	}
}

// sqlite keeps no MySQL-style status, so the columns it cannot fill are NULL
const sqliteTableStatusQuery = `SELECT
	name AS "Name",
	'sqlite' AS "Engine",
	10 AS "Version",
	'Dynamic' AS "Row_format",
	NULL AS "Rows",
	NULL AS "Avg_row_length",
	NULL AS "Data_length",
	NULL AS "Max_data_length",
	NULL AS "Data_free",
	NULL AS "Auto_increment",
	NULL AS "Create_time",
	NULL AS "Update_time",
	NULL AS "Check_time",
	'BINARY' AS "Collation",
	NULL AS "Checksum",
	'' AS "Create_options",
	'' AS "Comment"
FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`

const sqliteTablesQuery = `SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`

// SQLiteTableStatus emulates SHOW TABLE STATUS on every shard
func SQLiteTableStatus(string) (string, []interface{}) {
	return sqliteTableStatusQuery, nil
}

// SQLiteTables emulates SHOW TABLES on every shard
func SQLiteTables(string) (string, []interface{}) {
	return sqliteTablesQuery, nil
}

// SQLiteCreateTable emulates SHOW CREATE TABLE. tablesFor lists the physical
// tables to describe on a data source; shards holding none are skipped.
func SQLiteCreateTable(tablesFor func(dataSource string) []string) StatementFunc {
	return func(dataSource string) (string, []interface{}) {
		tables := tablesFor(dataSource)
		if len(tables) == 0 {
			return "", nil
		}
		args := make([]interface{}, len(tables))
		for i, t := range tables {
			args[i] = t
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(tables)), ", ")
		query := `SELECT name AS "Table", sql AS "Create Table" FROM sqlite_master ` +
			"WHERE type = 'table' AND name IN (" + placeholders + ") ORDER BY name"
		return query, args
	}
}

// Dialect turns SHOW statements into the per-shard SQL a backend understands
type Dialect struct {
	Name        string
	TableStatus StatementFunc
	Tables      StatementFunc
	CreateTable func(tablesFor func(dataSource string) []string) StatementFunc
}

// SQLite answers SHOW statements from sqlite_master
var SQLite = Dialect{
	Name:        "sqlite",
	TableStatus: SQLiteTableStatus,
	Tables:      SQLiteTables,
	CreateTable: SQLiteCreateTable,
}
