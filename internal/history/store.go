package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Clip is one recorded render.
type Clip struct {
	ID        int64
	Input     string
	Title     string
	Start     time.Duration
	End       time.Duration
	Format    string
	Output    string
	CreatedAt time.Time
}

// Store manages clip history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS clips (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    input TEXT NOT NULL,
    title TEXT NOT NULL,
    start_ms INTEGER NOT NULL,
    end_ms INTEGER NOT NULL,
    format TEXT NOT NULL,
    output TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_clips_created_at ON clips(created_at);
`

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a rendered clip and returns its assigned id.
func (s *Store) Record(ctx context.Context, clip Clip) (int64, error) {
	createdAt := clip.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO clips (input, title, start_ms, end_ms, format, output, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		clip.Input,
		clip.Title,
		clip.Start.Milliseconds(),
		clip.End.Milliseconds(),
		clip.Format,
		clip.Output,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("history: insert clip: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: last insert id: %w", err)
	}
	return id, nil
}

// List returns the most recent clips, newest first. A limit of zero
// or less means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Clip, error) {
	query := `SELECT id, input, title, start_ms, end_ms, format, output, created_at
              FROM clips ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query clips: %w", err)
	}
	defer rows.Close()

	var clips []Clip
	for rows.Next() {
		var (
			clip             Clip
			startMS, endMS   int64
			createdAtLiteral string
		)
		if err := rows.Scan(&clip.ID, &clip.Input, &clip.Title, &startMS, &endMS, &clip.Format, &clip.Output, &createdAtLiteral); err != nil {
			return nil, fmt.Errorf("history: scan clip: %w", err)
		}
		clip.Start = time.Duration(startMS) * time.Millisecond
		clip.End = time.Duration(endMS) * time.Millisecond
		createdAt, err := time.Parse(time.RFC3339Nano, createdAtLiteral)
		if err != nil {
			return nil, fmt.Errorf("history: parse created_at: %w", err)
		}
		clip.CreatedAt = createdAt
		clips = append(clips, clip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate clips: %w", err)
	}
	return clips, nil
}
