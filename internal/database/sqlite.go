package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"study-go/internal/database/migrations"
	"study-go/internal/database/sqlc"
	"study-go/internal/study"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Operation statuses.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusError   = "error"
)

// SQLiteStore implements study.Store on a single key/value table and keeps
// the operation log alongside it.
type SQLiteStore struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

var (
	_ study.Store   = (*SQLiteStore)(nil)
	_ study.Updater = (*SQLiteStore)(nil)
)

// NewSQLiteStore opens the database at path and applies pending migrations.
// path can be a file path or ":memory:".
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}

	return &SQLiteStore{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}, nil
}

// OpenConnection opens and configures a SQLite connection.
// Exported for tools and tests that need the same settings.
func OpenConnection(path string) (*sql.DB, error) {
	// Transactions take the write lock when they begin, so a read-modify-write
	// in Update cannot interleave with another process.
	dsn := path
	if !strings.Contains(path, "?") {
		dsn += "?_txlock=immediate"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Key/value operations

func (s *SQLiteStore) Get(key string) ([]byte, bool, error) {
	value, err := s.queries.GetEntry(context.Background(), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Put(key string, value []byte) error {
	err := s.queries.UpsertEntry(context.Background(), sqlc.UpsertEntryParams{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Update reads key, passes the value to fn and stores the result in one
// transaction. An error from fn rolls back and is returned unwrapped.
func (s *SQLiteStore) Update(key string, fn func(value []byte, ok bool) ([]byte, error)) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning update of %s: %w", key, err)
	}
	defer tx.Rollback()

	q := s.queries.WithTx(tx)
	value, err := q.GetEntry(ctx, key)
	ok := true
	if errors.Is(err, sql.ErrNoRows) {
		ok = false
	} else if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}

	next, err := fn(value, ok)
	if err != nil {
		return err
	}

	err = q.UpsertEntry(ctx, sqlc.UpsertEntryParams{
		Key:       key,
		Value:     next,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", key, err)
	}
	return nil
}

// Entries returns every stored entry ordered by key.
func (s *SQLiteStore) Entries() ([]sqlc.Entry, error) {
	entries, err := s.queries.ListEntries(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// Operation log

func (s *SQLiteStore) CreateOperation(operation, parameters string) (int64, error) {
	id, err := s.queries.InsertOperation(context.Background(), sqlc.InsertOperationParams{
		StartedAt:  time.Now().UTC(),
		Operation:  operation,
		Parameters: parameters,
	})
	if err != nil {
		return 0, fmt.Errorf("creating operation: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) FinishOperation(id int64, status string) error {
	err := s.queries.UpdateOperationFinished(context.Background(), sqlc.UpdateOperationFinishedParams{
		FinishedAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
		Status:     status,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

// ListOperations returns up to limit operations, newest first.
func (s *SQLiteStore) ListOperations(limit int) ([]sqlc.Operation, error) {
	ops, err := s.queries.GetOperations(context.Background(), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}

// MaxOperationID is the version of the local database: the ID of the last
// recorded operation, or 0.
func (s *SQLiteStore) MaxOperationID() (int64, error) {
	id, err := s.queries.GetMaxOperationID(context.Background())
	if err != nil {
		return 0, fmt.Errorf("getting max operation ID: %w", err)
	}
	return id, nil
}

// Lifecycle

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) CheckMigrations() error {
	return migrations.Check(s.db)
}

// BackupTo writes a complete copy of the database to destPath using VACUUM INTO.
// destPath must not exist.
func (s *SQLiteStore) BackupTo(destPath string) error {
	if _, err := s.db.Exec("VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
