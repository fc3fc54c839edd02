package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/jthorne/go-travel-site/internal/dbx"
)

// schemaVersion tags the local store's namespace. A file carrying a
// different version is from a stale build and is discarded rather than
// migrated in place.
const schemaVersion = 2

const schemaDDL = `
CREATE TABLE IF NOT EXISTS packages (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	slug          TEXT NOT NULL,
	summary       TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	location      TEXT NOT NULL DEFAULT '',
	duration_days INTEGER NOT NULL DEFAULT 0,
	price_cents   INTEGER NOT NULL DEFAULT 0,
	image_url     TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT 'draft',
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS testimonials (
	id         TEXT PRIMARY KEY,
	author     TEXT NOT NULL,
	location   TEXT NOT NULL DEFAULT '',
	quote      TEXT NOT NULL,
	rating     INTEGER NOT NULL DEFAULT 5,
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// Open opens (or creates) the catalog database at dsn and ensures the
// schema namespace matches the current version.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog store: %w", err)
	}
	// SQLite handles one writer at a time; keep the pool at one connection
	// so writes never contend.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ensureSchema runs in one transaction so a crash mid-setup cannot leave a
// half-dropped store behind: either the old file survives untouched or the
// new schema lands with its version stamp.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	return dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
		var version int
		if err := tx.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		if version != 0 && version != schemaVersion {
			log.Warn().Int("found", version).Int("want", schemaVersion).
				Msg("stale catalog schema, discarding local data")
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS packages; DROP TABLE IF EXISTS testimonials;`); err != nil {
				return fmt.Errorf("failed to drop stale schema: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, schemaDDL); err != nil {
			return fmt.Errorf("failed to create catalog schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	})
}
