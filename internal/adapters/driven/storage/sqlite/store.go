package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/newsroom/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.PlayerCache = (*Store)(nil)

// Store is a SQLite-backed player dictionary cache.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the cache database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: player cache path", domain.ErrNotConfigured)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the cached dictionary for sport and when it was fetched.
func (s *Store) Load(ctx context.Context, sport string) (map[string]domain.RawPlayer, time.Time, error) {
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT fetched_at FROM player_fetches WHERE sport = ?", sport,
	).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, domain.ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying fetch time: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, full_name, first_name, last_name, team, position, fantasy_positions
		FROM players WHERE sport = ?`, sport)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	players := make(map[string]domain.RawPlayer)
	for rows.Next() {
		var (
			id        string
			p         domain.RawPlayer
			positions string
		)
		if err := rows.Scan(&id, &p.FullName, &p.FirstName, &p.LastName, &p.Team, &p.Position, &positions); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning player: %w", err)
		}
		if err := json.Unmarshal([]byte(positions), &p.FantasyPositions); err != nil {
			return nil, time.Time{}, fmt.Errorf("unmarshalling fantasy positions for %s: %w", id, err)
		}
		players[id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterating players: %w", err)
	}

	return players, time.UnixMilli(fetchedAt), nil
}

// Save replaces the cached dictionary for sport in a single transaction.
func (s *Store) Save(ctx context.Context, sport string, players map[string]domain.RawPlayer, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM players WHERE sport = ?", sport); err != nil {
		return fmt.Errorf("clearing players: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO player_fetches (sport, fetched_at) VALUES (?, ?)
		ON CONFLICT(sport) DO UPDATE SET fetched_at = excluded.fetched_at`,
		sport, fetchedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("recording fetch time: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players (sport, player_id, full_name, first_name, last_name, team, position, fantasy_positions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for id, p := range players {
		positions := p.FantasyPositions
		if positions == nil {
			positions = []string{}
		}
		positionsJSON, err := json.Marshal(positions)
		if err != nil {
			return fmt.Errorf("marshalling fantasy positions for %s: %w", id, err)
		}
		if _, err := stmt.ExecContext(ctx, sport, id,
			p.FullName, p.FirstName, p.LastName, p.Team, p.Position, string(positionsJSON),
		); err != nil {
			return fmt.Errorf("inserting player %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_player_cache.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
