package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	// Registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("opened state database", slog.String("path", path))
	return nil
}

// OpenWithDB wraps an existing connection. Used by tests.
func (s *SQLiteStore) OpenWithDB(db *sql.DB) {
	s.db = db
	s.path = ""
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Path returns the database path passed to Open.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) conn() (*sql.DB, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	return s.db, nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// OpenAndMigrate opens path and applies all migrations.
func OpenAndMigrate(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	s := NewSQLiteStore(logger)
	if err := s.Open(path); err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
