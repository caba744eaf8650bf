// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists per-user libraries of books and movies in SQLite.
// The recommendation engine reads entries through Store.Entries; the CLI adds,
// removes and lists them and keeps their cached genres fresh.
package library

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/pkg/types"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const dbFile = "library.db"

// Store is the SQLite-backed library.
type Store struct {
	db *sql.DB
}

// Open opens or creates dataDir/library.db and applies pending migrations.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores entry in the user's library. It reports false when the entry
// was already present; duplicates are not an error.
func (s *Store) Add(ctx context.Context, entry types.LibraryEntry) (bool, error) {
	if entry.ExternalID == "" {
		return false, fmt.Errorf("library entry has no external id")
	}
	if entry.Kind != types.KindBook && entry.Kind != types.KindMovie {
		return false, fmt.Errorf("unknown kind %q", entry.Kind)
	}

	genres, err := encodeGenres(entry.Genres)
	if err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO library_entries (user_id, kind, external_id, title, genres, added_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.UserID, string(entry.Kind), entry.ExternalID, entry.Title, genres,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("inserting %s %s: %w", entry.Kind, entry.ExternalID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting %s %s: %w", entry.Kind, entry.ExternalID, err)
	}
	return n > 0, nil
}

// Remove deletes one entry. It reports whether anything was removed.
func (s *Store) Remove(ctx context.Context, userID int64, kind types.Kind, externalID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM library_entries WHERE user_id = ? AND kind = ? AND external_id = ?`,
		userID, string(kind), externalID,
	)
	if err != nil {
		return false, fmt.Errorf("deleting %s %s: %w", kind, externalID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting %s %s: %w", kind, externalID, err)
	}
	return n > 0, nil
}

// Entries returns the user's entries of one kind in the order they were added.
func (s *Store) Entries(ctx context.Context, userID int64, kind types.Kind) ([]types.LibraryEntry, error) {
	return s.query(ctx,
		`SELECT user_id, kind, external_id, title, genres FROM library_entries
		 WHERE user_id = ? AND kind = ? ORDER BY id`,
		userID, string(kind),
	)
}

// MissingGenres returns entries of kind, across all users, whose genres
// were never resolved.
func (s *Store) MissingGenres(ctx context.Context, kind types.Kind) ([]types.LibraryEntry, error) {
	return s.query(ctx,
		`SELECT user_id, kind, external_id, title, genres FROM library_entries
		 WHERE kind = ? AND (genres IS NULL OR genres = '' OR genres = '[]') ORDER BY id`,
		string(kind),
	)
}

// SetGenres stores genres on every entry of kind with externalID and returns
// the number of rows updated.
func (s *Store) SetGenres(ctx context.Context, kind types.Kind, externalID string, genres []string) (int64, error) {
	encoded, err := encodeGenres(genres)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE library_entries SET genres = ? WHERE kind = ? AND external_id = ?`,
		encoded, string(kind), externalID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating genres of %s %s: %w", kind, externalID, err)
	}
	return res.RowsAffected()
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.LibraryEntry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var entries []types.LibraryEntry
	for rows.Next() {
		var (
			e      types.LibraryEntry
			kind   string
			genres sql.NullString
		)
		if err := rows.Scan(&e.UserID, &kind, &e.ExternalID, &e.Title, &genres); err != nil {
			return nil, fmt.Errorf("scanning library entry: %w", err)
		}
		e.Kind = types.Kind(kind)
		if genres.Valid && genres.String != "" {
			if err := json.Unmarshal([]byte(genres.String), &e.Genres); err != nil {
				return nil, fmt.Errorf("decoding genres of %s: %w", e.ExternalID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// encodeGenres returns NULL for no genres so MissingGenres can find the row.
func encodeGenres(genres []string) (any, error) {
	if len(genres) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return nil, fmt.Errorf("encoding genres: %w", err)
	}
	return string(data), nil
}

// gooseLogger routes migration output through the debug logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	logging.Debug().Str("component", "migrations").Msgf(format, v...)
}

func (gooseLogger) Fatalf(format string, v ...any) {
	logging.Error().Str("component", "migrations").Msgf(format, v...)
	os.Exit(1)
}
