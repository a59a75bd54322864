// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// dbType is "sqlite" or "postgres"; the two dialects differ only in the
// auto-increment column syntax.
func CreateSchema(db *sql.DB, dbType string) error {
	schema := schemaPostgres
	if dbType == "sqlite" {
		schema = schemaSQLite
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The dashboards -> sources foreign key is deliberately NOT ON DELETE
// CASCADE: a source still referenced by a dashboard must refuse deletion
// (the store checks first; the constraint backstops the race).
// ON UPDATE CASCADE carries referencing rows through a source rename.

const schemaPostgres = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Sources (names are unique per owner, not globally)
CREATE TABLE IF NOT EXISTS sources (
    name TEXT NOT NULL,
    created_by BIGINT NOT NULL REFERENCES users(id),
    route TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (name, created_by)
);

-- Subroutes (a value set owned by a source)
CREATE TABLE IF NOT EXISTS subroutes (
    path TEXT NOT NULL,
    source_name TEXT NOT NULL,
    source_created_by BIGINT NOT NULL,
    PRIMARY KEY (path, source_name, source_created_by),
    FOREIGN KEY (source_name, source_created_by)
        REFERENCES sources(name, created_by)
        ON UPDATE CASCADE ON DELETE CASCADE
);

-- Dashboards
CREATE TABLE IF NOT EXISTS dashboards (
    id BIGSERIAL PRIMARY KEY,
    created_by BIGINT NOT NULL REFERENCES users(id),
    name TEXT NOT NULL,
    description TEXT,
    source_name TEXT NOT NULL,
    source_created_by BIGINT NOT NULL,
    configuration TEXT,
    created_at TIMESTAMP NOT NULL,
    FOREIGN KEY (source_name, source_created_by)
        REFERENCES sources(name, created_by)
        ON UPDATE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sources_created_by ON sources(created_by);
CREATE INDEX IF NOT EXISTS idx_subroutes_source ON subroutes(source_name, source_created_by);
CREATE INDEX IF NOT EXISTS idx_dashboards_created_by ON dashboards(created_by);
CREATE INDEX IF NOT EXISTS idx_dashboards_source ON dashboards(source_name, source_created_by);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS sources (
    name TEXT NOT NULL,
    created_by INTEGER NOT NULL REFERENCES users(id),
    route TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (name, created_by)
);

CREATE TABLE IF NOT EXISTS subroutes (
    path TEXT NOT NULL,
    source_name TEXT NOT NULL,
    source_created_by INTEGER NOT NULL,
    PRIMARY KEY (path, source_name, source_created_by),
    FOREIGN KEY (source_name, source_created_by)
        REFERENCES sources(name, created_by)
        ON UPDATE CASCADE ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS dashboards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_by INTEGER NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    source_name TEXT NOT NULL,
    source_created_by INTEGER NOT NULL,
    configuration TEXT,
    created_at TIMESTAMP NOT NULL,
    FOREIGN KEY (created_by) REFERENCES users(id),
    FOREIGN KEY (source_name, source_created_by)
        REFERENCES sources(name, created_by)
        ON UPDATE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sources_created_by ON sources(created_by);
CREATE INDEX IF NOT EXISTS idx_subroutes_source ON subroutes(source_name, source_created_by);
CREATE INDEX IF NOT EXISTS idx_dashboards_created_by ON dashboards(created_by);
CREATE INDEX IF NOT EXISTS idx_dashboards_source ON dashboards(source_name, source_created_by);
`
