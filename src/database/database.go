package database

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/models"
	_ "modernc.org/sqlite"
)

// DB is the process-wide handle, set once by InitDB.
var DB *sql.DB

var (
	initOnce sync.Once
	initErr  error
)

// collectionTables maps each broker onto the table holding its raw documents.
var collectionTables = map[models.Source]string{
	models.SourceBroker1: "broker1_documents",
	models.SourceBroker2: "broker2_documents",
}

const schema = `
CREATE TABLE IF NOT EXISTS broker1_documents (
	id TEXT PRIMARY KEY,
	document TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS broker2_documents (
	id TEXT PRIMARY KEY,
	document TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitDB opens the database at databasePath and stores it in DB. Later calls
// return the result of the first one.
func InitDB(databasePath string) error {
	initOnce.Do(func() {
		DB, initErr = Open(databasePath)
	})
	return initErr
}

// Open opens a SQLite database and ensures the document tables exist.
func Open(databasePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database at %s: %w", databasePath, err)
	}

	logger.L.Info("Checking database schema", "databasePath", databasePath)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	for source, table := range collectionTables {
		migrateDocumentTable(db, source, table)
	}
	logger.L.Info("Database tables ensured/created.")
	return db, nil
}

// migrateDocumentTable adds columns introduced after the first release.
func migrateDocumentTable(db *sql.DB, source models.Source, table string) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		logger.L.Error("Error querying table schema", "table", table, "error", err)
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk, notnullVal int
		var name, dataType string
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			logger.L.Error("Error scanning column info", "table", table, "error", err)
			return
		}
		columnExists[name] = true
	}
	if err := rows.Err(); err != nil {
		logger.L.Error("Error iterating over column info", "table", table, "error", err)
		return
	}

	if !columnExists["updated_at"] {
		if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN updated_at TIMESTAMP", table)); err != nil {
			logger.L.Error("Error adding updated_at column", "table", table, "error", err)
			return
		}
		logger.L.Info("Added updated_at column", "table", table, "source", source)
	}
}
