package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. One table per collection: items,
// categories, date_overrides (keyed by date string), forgotten_records
// (keyed by date string), settings.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    category   TEXT NOT NULL DEFAULT 'other',
    priority   TEXT NOT NULL DEFAULT 'normal' CHECK (priority IN ('must', 'important', 'normal')),
    code       TEXT,
    memo       TEXT,
    days       TEXT NOT NULL DEFAULT '[]',
    checked    INTEGER NOT NULL DEFAULT 0,
    photo      BLOB,
    photo_mime TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(name);

CREATE TABLE IF NOT EXISTS date_overrides (
    date       TEXT PRIMARY KEY,
    removed    TEXT NOT NULL DEFAULT '[]',
    added      TEXT NOT NULL DEFAULT '[]',
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS forgotten_records (
    date       TEXT PRIMARY KEY,
    item_ids   TEXT NOT NULL DEFAULT '[]',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at the
// end; existing collections' keys and indexes must never change (schema
// evolution is append-only).
var migrations = []string{
	// Migration 1: lookup index for barcode scans.
	`CREATE INDEX IF NOT EXISTS idx_items_code
	     ON items(code) WHERE code IS NOT NULL AND code != ''`,
}

// EnsureSchema creates all tables and indexes if they don't already exist,
// then applies migrations.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
