// Package sqlite is a local object store backed by a single SQLite file.
// It keeps only the latest body per key.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"ynabviz/internal/blob"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

type Store struct {
	db *sql.DB
}

var (
	_ blob.ObjectWriter = (*Store)(nil)
	_ blob.ObjectReader = (*Store)(nil)
)

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// uploads fan out concurrently; serialize writers on one connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := upgradeSchema(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// upgradeSchema applies the embedded objects table migrations. The migrator
// opens and closes its own handle on the file.
func upgradeSchema(dbPath string) error {
	src, err := iofs.New(schemaFS, "migrations")
	if err != nil {
		return fmt.Errorf("load schema migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("open schema migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("upgrade objects schema: %w", err)
	}
	if version, dirty, err := m.Version(); err == nil {
		slog.Debug("SQLite object schema ready", "path", dbPath, "version", version, "dirty", dirty)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put implements blob.ObjectWriter
func (s *Store) Put(ctx context.Context, obj blob.Object) error {
	if obj.Key == "" {
		return errors.New("put: empty key")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO objects (key, body, content_type, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			content_type = excluded.content_type,
			updated_at = excluded.updated_at`,
		obj.Key, obj.Body, obj.ContentType)
	if err != nil {
		return fmt.Errorf("put object %s: %w", obj.Key, err)
	}

	slog.DebugContext(ctx, "Object saved to SQLite", "key", obj.Key, "size", len(obj.Body))
	return nil
}

// Get implements blob.ObjectReader
func (s *Store) Get(ctx context.Context, key string) (blob.Object, error) {
	obj := blob.Object{Key: key}
	err := s.db.QueryRowContext(ctx,
		`SELECT body, content_type FROM objects WHERE key = ?`, key).
		Scan(&obj.Body, &obj.ContentType)
	if errors.Is(err, sql.ErrNoRows) {
		return blob.Object{}, fmt.Errorf("%s: %w", key, blob.ErrNotFound)
	}
	if err != nil {
		return blob.Object{}, fmt.Errorf("get object %s: %w", key, err)
	}
	return obj, nil
}

// Count returns the number of stored objects.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM objects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count objects: %w", err)
	}
	return n, nil
}
