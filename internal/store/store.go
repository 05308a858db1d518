// Package store keeps the last build of every session in SQLite so a
// session code can be resumed after it was closed or the server restarted.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
	"github.com/DoyleJ11/lol-damage-calculator/internal/wire"
)

var ErrNotFound = errors.New("build not found")

const schema = `CREATE TABLE IF NOT EXISTS builds (
	code       TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveBuild stores in under code, replacing any earlier build.
func (s *Store) SaveBuild(ctx context.Context, code string, in *model.InputGame) error {
	if code == "" {
		return fmt.Errorf("code is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (code, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		code, wire.EncodeInputGame(in), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save build %s: %w", code, err)
	}
	return nil
}

func (s *Store) LoadBuild(ctx context.Context, code string) (*model.InputGame, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM builds WHERE code = ?`, code).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load build %s: %w", code, err)
	}
	in, err := wire.DecodeInputGame(payload)
	if err != nil {
		return nil, fmt.Errorf("load build %s: %w", code, err)
	}
	return in, nil
}
