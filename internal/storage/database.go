package storage

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// Foreign keys are enabled on every pooled connection through the DSN.
func New(path string) (*sql.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the sources and passages tables. It is idempotent.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			id TEXT PRIMARY KEY,
			rel_path TEXT NOT NULL UNIQUE,
			doc_type TEXT NOT NULL,
			hash TEXT NOT NULL,
			indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS passages (
			id TEXT PRIMARY KEY,
			source_id TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			doc_type TEXT NOT NULL,
			priority INTEGER NOT NULL,
			part TEXT NOT NULL DEFAULT '',
			part_title TEXT NOT NULL DEFAULT '',
			chapter TEXT NOT NULL DEFAULT '',
			chapter_title TEXT NOT NULL DEFAULT '',
			section TEXT NOT NULL DEFAULT '',
			subsection TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			text_hash TEXT NOT NULL,
			FOREIGN KEY (source_id) REFERENCES sources(id) ON DELETE CASCADE,
			UNIQUE (doc_type, text_hash)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_passages_source ON passages(source_id);`,
		`CREATE INDEX IF NOT EXISTS idx_passages_doc_type ON passages(doc_type);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
