package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Open creates and opens the SQLite database at path, then runs migrations.
// Transactions start with BEGIN IMMEDIATE so reference-ID allocation is
// serialized across processes sharing the file.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates all necessary tables
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE COLLATE NOCASE,
		password_hash TEXT NOT NULL,
		username TEXT NOT NULL UNIQUE COLLATE NOCASE,
		role TEXT NOT NULL DEFAULT 'RECRUITER',
		report_to TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CHECK(role IN ('ADMIN', 'TL', 'RECRUITER'))
	);

	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS client_openings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_name TEXT NOT NULL COLLATE NOCASE,
		position TEXT NOT NULL COLLATE NOCASE,
		sr_days INTEGER NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		map_link TEXT NOT NULL DEFAULT '',
		contact_person TEXT NOT NULL DEFAULT '',
		UNIQUE(client_name, position),
		CHECK(sr_days >= 0)
	);

	CREATE TABLE IF NOT EXISTS candidates (
		reference_id TEXT PRIMARY KEY,
		shortlisted_date TEXT NOT NULL,
		candidate_name TEXT NOT NULL,
		contact_number TEXT NOT NULL,
		client_name TEXT NOT NULL,
		position TEXT NOT NULL,
		interview_date TEXT,
		status TEXT NOT NULL DEFAULT 'Shortlisted',
		hr_name TEXT NOT NULL,
		joining_date TEXT,
		sr_date TEXT,
		feedback TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CHECK(status IN ('Shortlisted', 'Interviewed', 'Selected', 'Hold', 'Rejected',
			'Onboarded', 'Left', 'Not Joined', 'Project Success'))
	);

	CREATE INDEX IF NOT EXISTS idx_candidates_hr_name ON candidates(hr_name);
	CREATE INDEX IF NOT EXISTS idx_candidates_status ON candidates(status);
	CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
	`

	_, err := db.Exec(schema)
	return err
}

// Store is the record store backing the tracker
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle
func (s *Store) DB() *sql.DB {
	return s.db
}
