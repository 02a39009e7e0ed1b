package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cmis-go/internal/cmis"
	"cmis-go/internal/database/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements cmis.TypeStore using SQLite. Type definitions are
// stored as JSON documents; every change is appended to type_changes.
type SQLiteStore struct {
	db    *sql.DB
	path  string
	clock cmis.Clock
}

// NewSQLiteStore opens the store at path. path can be a file path or
// ":memory:". A nil clock uses the real time.
func NewSQLiteStore(path string, clock cmis.Clock) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = cmis.RealClock{}
	}
	return &SQLiteStore{db: db, path: path, clock: clock}, nil
}

// OpenConnection opens and configures a SQLite database connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every new connection to :memory: is a fresh database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) LoadTypeDefinitions(ctx context.Context) ([]*cmis.TypeDefinition, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT definition FROM type_definitions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading type definitions: %w", err)
	}
	defer rows.Close()

	var types []*cmis.TypeDefinition
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning type definition: %w", err)
		}
		td, err := cmis.UnmarshalTypeDefinition([]byte(data))
		if err != nil {
			return nil, err
		}
		types = append(types, td)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading type definitions: %w", err)
	}
	return types, nil
}

func (s *SQLiteStore) SaveTypeDefinition(ctx context.Context, td *cmis.TypeDefinition) error {
	data, err := cmis.MarshalTypeDefinition(td)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM type_definitions WHERE type_id = ?)", td.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking type %s: %w", td.ID, err)
	}

	now := s.clock.Now().UTC()
	kind := cmis.TypeChangeCreated
	if exists {
		kind = cmis.TypeChangeUpdated
		_, err = tx.ExecContext(ctx,
			"UPDATE type_definitions SET base_type_id = ?, parent_type_id = ?, definition = ?, updated_at = ? WHERE type_id = ?",
			string(td.BaseTypeID), td.ParentTypeID, string(data), now, td.ID)
	} else {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO type_definitions (type_id, base_type_id, parent_type_id, definition, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			td.ID, string(td.BaseTypeID), td.ParentTypeID, string(data), now, now)
	}
	if err != nil {
		return fmt.Errorf("saving type %s: %w", td.ID, err)
	}

	if err := insertChange(ctx, tx, td.ID, kind, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing type %s: %w", td.ID, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteTypeDefinition(ctx context.Context, typeID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM type_definitions WHERE type_id = ?", typeID)
	if err != nil {
		return fmt.Errorf("deleting type %s: %w", typeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting type %s: %w", typeID, err)
	}
	if n == 0 {
		return nil
	}

	if err := insertChange(ctx, tx, typeID, cmis.TypeChangeDeleted, s.clock.Now().UTC()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing deletion of %s: %w", typeID, err)
	}
	return nil
}

func insertChange(ctx context.Context, tx *sql.Tx, typeID string, kind cmis.TypeChangeKind, at time.Time) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO type_changes (type_id, kind, changed_at) VALUES (?, ?, ?)",
		typeID, string(kind), at)
	if err != nil {
		return fmt.Errorf("recording change of %s: %w", typeID, err)
	}
	return nil
}

func (s *SQLiteStore) ListTypeChanges(ctx context.Context, limit int) ([]*cmis.TypeChange, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, type_id, kind, changed_at FROM type_changes ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("listing type changes: %w", err)
	}
	defer rows.Close()

	var changes []*cmis.TypeChange
	for rows.Next() {
		var c cmis.TypeChange
		var kind string
		if err := rows.Scan(&c.ID, &c.TypeID, &kind, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scanning type change: %w", err)
		}
		c.Kind = cmis.TypeChangeKind(kind)
		changes = append(changes, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing type changes: %w", err)
	}
	return changes, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteStore) Path() string {
	return s.path
}

// MigrateUp brings the schema to the latest version.
func (s *SQLiteStore) MigrateUp() error {
	return migrations.MigrateUp(s.db)
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var _ cmis.TypeStore = (*SQLiteStore)(nil)
