// Package archive persists generated lessons: one JSON file per date under a
// data directory, mirrored into a sqlite table that powers stats and
// backfill. Same-day reruns overwrite the same dated record.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no lesson exists for a date.
var ErrNotFound = errors.New("no lesson archived for date")

// Store wraps the sqlite connection holding archived lessons.
type Store struct {
	*sql.DB
}

// NewStore opens (creating if needed) the lesson archive database.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := sqlDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Store{DB: sqlDB}, nil
}

// Migrate creates the archive schema.
func (s *Store) Migrate(ctx context.Context) error {
	slog.Info("running archive migrations")

	_, err := s.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS lessons (
			date TEXT PRIMARY KEY,
			theme TEXT NOT NULL,
			vocabulary_count INTEGER NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create lessons table: %w", err)
	}

	return nil
}

// SaveLesson upserts the lesson row for a date.
func (s *Store) SaveLesson(ctx context.Context, date, theme string, vocabularyCount int, contentJSON string) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO lessons (date, theme, vocabulary_count, content)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			theme = excluded.theme,
			vocabulary_count = excluded.vocabulary_count,
			content = excluded.content,
			created_at = CURRENT_TIMESTAMP
	`, date, theme, vocabularyCount, contentJSON)
	if err != nil {
		return fmt.Errorf("save lesson: %w", err)
	}
	return nil
}

// LessonJSON returns the archived content for a date.
func (s *Store) LessonJSON(ctx context.Context, date string) (string, error) {
	var content string
	err := s.QueryRowContext(ctx,
		"SELECT content FROM lessons WHERE date = ?", date,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query lesson: %w", err)
	}
	return content, nil
}

// HasLesson reports whether a lesson exists for a date.
func (s *Store) HasLesson(ctx context.Context, date string) (bool, error) {
	var one int
	err := s.QueryRowContext(ctx,
		"SELECT 1 FROM lessons WHERE date = ?", date,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query lesson: %w", err)
	}
	return true, nil
}

// MostRecent returns the latest archived date and its content.
func (s *Store) MostRecent(ctx context.Context) (date, content string, err error) {
	err = s.QueryRowContext(ctx,
		"SELECT date, content FROM lessons ORDER BY date DESC LIMIT 1",
	).Scan(&date, &content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("query most recent lesson: %w", err)
	}
	return date, content, nil
}

// Stats summarizes the archive.
type Stats struct {
	Total      int
	FirstDate  string
	LastDate   string
	ThemeCount map[string]int
}

// Stats returns archive statistics.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ThemeCount: make(map[string]int)}

	err := s.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MIN(date), ''), COALESCE(MAX(date), '')
		FROM lessons
	`).Scan(&stats.Total, &stats.FirstDate, &stats.LastDate)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}

	rows, err := s.QueryContext(ctx,
		"SELECT theme, COUNT(*) FROM lessons GROUP BY theme ORDER BY theme",
	)
	if err != nil {
		return nil, fmt.Errorf("query themes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var theme string
		var count int
		if err := rows.Scan(&theme, &count); err != nil {
			return nil, fmt.Errorf("scan theme row: %w", err)
		}
		stats.ThemeCount[theme] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate theme rows: %w", err)
	}

	return stats, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}
