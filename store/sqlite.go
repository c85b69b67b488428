package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"team-planner/game"
)

// ErrNotFound is returned when no team is saved under the requested name.
var ErrNotFound = errors.New("team not found")

var ErrEmptyName = errors.New("team name is empty")

const schema = `
CREATE TABLE IF NOT EXISTS teams (
    name        TEXT PRIMARY KEY,
    payload     TEXT NOT NULL,
    members     INTEGER NOT NULL,
    exported_at TEXT NOT NULL DEFAULT '',
    saved_at    TEXT NOT NULL
);
`

// Summary describes a saved team without its payload.
type Summary struct {
	Name       string    `json:"name"`
	Members    int       `json:"members"`
	ExportedAt time.Time `json:"exportedAt"`
	SavedAt    time.Time `json:"savedAt"`
}

// Store keeps team-export records in a local SQLite database in WAL mode.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at dbPath and creates the schema.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Save validates payload as a team export and stores it verbatim under name,
// replacing any earlier record.
func (s *Store) Save(ctx context.Context, name string, payload []byte) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	members, err := game.ParseExport(payload)
	if err != nil {
		return fmt.Errorf("store: save %q: %w", name, err)
	}
	count := 0
	for i, m := range members {
		if i == game.TeamSize {
			break
		}
		if m != nil {
			count++
		}
	}

	var meta struct {
		ExportedAt time.Time `json:"exportedAt"`
	}
	// A bad timestamp only loses metadata.
	_ = json.Unmarshal(payload, &meta)
	exportedAt := ""
	if !meta.ExportedAt.IsZero() {
		exportedAt = meta.ExportedAt.UTC().Format(time.RFC3339Nano)
	}

	const q = `
		INSERT INTO teams (name, payload, members, exported_at, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			payload     = excluded.payload,
			members     = excluded.members,
			exported_at = excluded.exported_at,
			saved_at    = excluded.saved_at`
	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, q, name, string(payload), count, exportedAt, savedAt); err != nil {
		return fmt.Errorf("store: save %q: %w", name, err)
	}
	return nil
}

// SaveRoster serializes r and saves it under name.
func (s *Store) SaveRoster(ctx context.Context, name string, r *game.Roster) error {
	payload, err := r.MarshalExport()
	if err != nil {
		return fmt.Errorf("store: marshal %q: %w", name, err)
	}
	return s.Save(ctx, name, payload)
}

// Load returns the stored export record for name.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM teams WHERE name = ?", name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %q: %w", name, err)
	}
	return []byte(payload), nil
}

// LoadRoster loads name and rebuilds the roster from it.
func (s *Store) LoadRoster(ctx context.Context, name string, opts ...game.RosterOption) (*game.Roster, error) {
	payload, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return game.Deserialize(payload, opts...)
}

// List returns every saved team ordered by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, members, exported_at, saved_at FROM teams ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sum                 Summary
			exportedAt, savedAt string
		)
		if err := rows.Scan(&sum.Name, &sum.Members, &exportedAt, &savedAt); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		sum.ExportedAt = parseTime(exportedAt)
		sum.SavedAt = parseTime(savedAt)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return out, nil
}

// Delete removes the team saved under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM teams WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("store: %q: %w", name, ErrNotFound)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func parseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
