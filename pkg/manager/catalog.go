package manager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"verity-hq/verity/pkg/contract/ast"
)

// Catalog persists an index of each validated contract set: which files were
// active, their kind, and the datasource they bind to. It survives restarts,
// so the last known-good set can be inspected without re-parsing.
//
// The catalog uses the pure-Go SQLite driver so the binary stays portable.
type Catalog struct {
	db *sql.DB
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS catalog_entries (
    version TEXT NOT NULL,
    path TEXT NOT NULL,
    kind TEXT NOT NULL,
    datasource TEXT,
    recorded_at INTEGER NOT NULL,
    PRIMARY KEY (version, path)
);

CREATE INDEX IF NOT EXISTS idx_catalog_version ON catalog_entries(version);
`

// CatalogEntry is one file in a recorded contract set.
type CatalogEntry struct {
	Version    string
	Path       string
	Kind       string
	Datasource string
	RecordedAt time.Time
}

// NewCatalog opens (or creates) a catalog database at the given path.
func NewCatalog(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// modernc sqlite supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Record stores the file set under the given registry version. Recording the
// same version twice replaces the previous snapshot.
func (c *Catalog) Record(ctx context.Context, version string, files []*ast.File) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_entries WHERE version = ?", version); err != nil {
		return fmt.Errorf("failed to clear catalog version: %w", err)
	}

	now := time.Now().Unix()
	for _, f := range files {
		var datasource interface{}
		switch f.Kind() {
		case ast.FileKindContract:
			if ds, ok := f.Datasource(); ok {
				datasource = ds.Value
			}
		case ast.FileKindDatasource:
			if name, ok := f.Name(); ok {
				datasource = name.Value
			}
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO catalog_entries (version, path, kind, datasource, recorded_at) VALUES (?, ?, ?, ?, ?)",
			version, f.Path, string(f.Kind()), datasource, now,
		)
		if err != nil {
			return fmt.Errorf("failed to record catalog entry for %q: %w", f.Path, err)
		}
	}

	return tx.Commit()
}

// Entries returns the recorded file set for a version, sorted by path.
func (c *Catalog) Entries(ctx context.Context, version string) ([]CatalogEntry, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT version, path, kind, datasource, recorded_at FROM catalog_entries WHERE version = ? ORDER BY path",
		version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		var datasource sql.NullString
		var recordedAt int64
		if err := rows.Scan(&e.Version, &e.Path, &e.Kind, &datasource, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		if datasource.Valid {
			e.Datasource = datasource.String
		}
		e.RecordedAt = time.Unix(recordedAt, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// LatestVersion returns the most recently recorded version, or "" when the
// catalog is empty.
func (c *Catalog) LatestVersion(ctx context.Context) (string, error) {
	var version string
	err := c.db.QueryRowContext(ctx,
		"SELECT version FROM catalog_entries ORDER BY recorded_at DESC, version LIMIT 1",
	).Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query latest catalog version: %w", err)
	}
	return version, nil
}

// Close releases the catalog database.
func (c *Catalog) Close() error {
	return c.db.Close()
}
