// Package sqlite persists progression and the local leaderboard in a SQLite file
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/lixenwraith/sisyphus/sim"
	"github.com/lixenwraith/sisyphus/store/sqlite/migrations"
)

// ErrNoSnapshot is returned by LoadProgression before the first save
var ErrNoSnapshot = errors.New("no progression snapshot")

// progressionRow is the single row holding the save
const progressionRow = 1

// Entry is one leaderboard row
type Entry struct {
	Username  string
	Height    float64
	Level     int
	UpdatedAt time.Time
}

// Store is the SQLite handle shared by progression and leaderboard access
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies embedded migrations
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the handle; safe on nil
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save implements sim.Store; lock contention with the leaderboard writer is retried
func (s *Store) Save(ps sim.ProgressionSnapshot) error {
	return retryBusy(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		return s.SaveProgression(ctx, ps)
	})
}

// Load implements sim.Store, returning nil, nil when nothing was saved
func (s *Store) Load() (*sim.ProgressionSnapshot, error) {
	ps, err := s.LoadProgression(context.Background())
	if errors.Is(err, ErrNoSnapshot) {
		return nil, nil
	}
	return ps, err
}

// SaveProgression overwrites the stored snapshot
func (s *Store) SaveProgression(ctx context.Context, ps sim.ProgressionSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	data, err := ps.Encode()
	if err != nil {
		return fmt.Errorf("encode progression: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO progression (id, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		progressionRow, string(data), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save progression: %w", err)
	}
	return nil
}

// LoadProgression reads the stored snapshot
// Unreadable fields come back nil so the simulation falls back to defaults per field
func (s *Store) LoadProgression(ctx context.Context) (*sim.ProgressionSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM progression WHERE id = ?", progressionRow).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load progression: %w", err)
	}
	ps := sim.DecodeProgression([]byte(data))
	return &ps, nil
}

// Record stores height for username when it beats that user's stored height
// Reports whether the row changed
func (s *Store) Record(ctx context.Context, username string, height float64, level int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.db == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return false, fmt.Errorf("username is required")
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO leaderboard (username, height, level, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(username) DO UPDATE SET
    height = excluded.height,
    level = excluded.level,
    updated_at = excluded.updated_at
WHERE excluded.height > leaderboard.height`,
		username, height, level, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return false, fmt.Errorf("record leaderboard: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record leaderboard rows: %w", err)
	}
	return n > 0, nil
}

// Top returns up to n entries ordered by height, highest first
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT username, height, level, updated_at FROM leaderboard
ORDER BY height DESC, updated_at ASC
LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, n)
	for rows.Next() {
		var (
			e       Entry
			updated int64
		)
		if err := rows.Scan(&e.Username, &e.Height, &e.Level, &updated); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		e.UpdatedAt = time.UnixMilli(updated).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return entries, nil
}

// retryBusy runs fn again with linear backoff while it fails on lock contention
func retryBusy(fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !isBusy(err) || attempt >= busyRetries {
			return err
		}
		time.Sleep(busyBackoff * time.Duration(attempt+1))
	}
}

// isBusy reports a lock contention error worth retrying
func isBusy(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
			return true
		}
	}
	return false
}

var _ sim.Store = (*Store)(nil)
