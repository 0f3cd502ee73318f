// Package history records completed split runs in an SQLite database so a
// book can be recognized across runs even after it is renamed or moved.
//
// Uses the pure Go driver (modernc.org/sqlite), so history works without CGO.
package history

import (
	"context"
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"

	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
)

// Run is one completed split.
type Run struct {
	ID          string
	BookTitle   string
	BookPath    string
	Fingerprint string // BLAKE3 hash of the normalized text
	SpeedWPM    float64
	Minutes     float64
	TotalWords  int
	Portions    int
	ForcedCuts  int
	StartDate   time.Time
	CreatedAt   time.Time
}

// Fingerprint hashes the normalized book text. Identical text always maps to
// the same fingerprint regardless of source file name or container format.
func Fingerprint(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Store is an open history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user history location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", kerrors.NewIO("locate config dir", "", err)
	}
	return filepath.Join(dir, "speedread", "history.db"), nil
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	book_title   TEXT NOT NULL,
	book_path    TEXT NOT NULL,
	fingerprint  TEXT NOT NULL,
	speed_wpm    REAL NOT NULL,
	minutes      REAL NOT NULL,
	total_words  INTEGER NOT NULL,
	portions     INTEGER NOT NULL,
	forced_cuts  INTEGER NOT NULL,
	start_date   TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON runs(fingerprint);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, kerrors.NewIO("create", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, kerrors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, kerrors.NewIO("migrate", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run. A missing ID or CreatedAt is filled in.
func (s *Store) Record(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, book_title, book_path, fingerprint, speed_wpm,
			minutes, total_words, portions, forced_cuts, start_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.BookTitle, r.BookPath, r.Fingerprint, r.SpeedWPM,
		r.Minutes, r.TotalWords, r.Portions, r.ForcedCuts,
		r.StartDate.UTC().Format(time.RFC3339),
		r.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return Run{}, kerrors.Wrap(err, "record run")
	}
	return r, nil
}

// List returns the most recent runs, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, book_title, book_path, fingerprint, speed_wpm, minutes,
		total_words, portions, forced_cuts, start_date, created_at
		FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, kerrors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var start, created string
		if err := rows.Scan(&r.ID, &r.BookTitle, &r.BookPath, &r.Fingerprint,
			&r.SpeedWPM, &r.Minutes, &r.TotalWords, &r.Portions, &r.ForcedCuts,
			&start, &created); err != nil {
			return nil, kerrors.Wrap(err, "scan run")
		}
		r.StartDate, _ = time.Parse(time.RFC3339, start)
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LastForBook returns the most recent run for a fingerprint, or sql.ErrNoRows
// wrapped when the book has never been split.
func (s *Store) LastForBook(ctx context.Context, fingerprint string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, book_title, book_path, fingerprint, speed_wpm, minutes,
			total_words, portions, forced_cuts, start_date, created_at
		FROM runs WHERE fingerprint = ? ORDER BY created_at DESC LIMIT 1`,
		fingerprint)
	var r Run
	var start, created string
	if err := row.Scan(&r.ID, &r.BookTitle, &r.BookPath, &r.Fingerprint,
		&r.SpeedWPM, &r.Minutes, &r.TotalWords, &r.Portions, &r.ForcedCuts,
		&start, &created); err != nil {
		return Run{}, kerrors.Wrap(err, "last run for book")
	}
	r.StartDate, _ = time.Parse(time.RFC3339, start)
	r.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return r, nil
}
