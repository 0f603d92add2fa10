// Package storage provides SQLite-based persistence for generated levels.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/courier-levels/internal/level"
)

// timeLayout is used for created_at so rows sort lexically by time.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// minPrefix is the shortest ID prefix Find accepts.
const minPrefix = 4

// ErrAmbiguous is returned when an ID prefix matches more than one level.
var ErrAmbiguous = errors.New("storage: ambiguous level id prefix")

// Store manages the SQLite database connection for level history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Record is a stored level together with how it was produced.
type Record struct {
	ID        string
	Name      string
	Origin    level.OriginKind
	Tier      string
	Prompt    string
	Config    level.Config
	CreatedAt time.Time
}

// ShortID returns the first eight characters of the ID.
func (r Record) ShortID() string {
	if len(r.ID) <= 8 {
		return r.ID
	}
	return r.ID[:8]
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS levels (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			origin TEXT NOT NULL,
			tier TEXT NOT NULL DEFAULT '',
			prompt TEXT NOT NULL DEFAULT '',
			config TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_levels_created ON levels(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_levels_origin ON levels(origin);

		CREATE TABLE IF NOT EXISTS current_level (
			slot INTEGER PRIMARY KEY CHECK (slot = 1),
			level_id TEXT NOT NULL REFERENCES levels(id) ON DELETE CASCADE
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save records a level and returns the stored record with its new ID.
func (s *Store) Save(cfg level.Config, origin level.Origin) (Record, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return Record{}, fmt.Errorf("storage: cannot encode level: %w", err)
	}

	rec := Record{
		ID:        uuid.NewString(),
		Name:      cfg.Name,
		Origin:    origin.Kind,
		Tier:      origin.Tier,
		Prompt:    origin.Prompt,
		Config:    cfg.Clone(),
		CreatedAt: s.now().UTC(),
	}

	_, err = s.db.Exec(
		`INSERT INTO levels (id, name, origin, tier, prompt, config, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, string(rec.Origin), rec.Tier, rec.Prompt, string(data),
		rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Record{}, fmt.Errorf("storage: cannot save level: %w", err)
	}

	return rec, nil
}

const selectRecord = `SELECT id, name, origin, tier, prompt, config, created_at FROM levels`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec       Record
		origin    string
		data      string
		createdAt any
	)
	if err := row.Scan(&rec.ID, &rec.Name, &origin, &rec.Tier, &rec.Prompt, &data, &createdAt); err != nil {
		return Record{}, err
	}
	rec.Origin = level.OriginKind(origin)
	rec.CreatedAt = parseTime(createdAt)

	if err := json.Unmarshal([]byte(data), &rec.Config); err != nil {
		return Record{}, fmt.Errorf("storage: level %s has corrupt config: %w", rec.ID, err)
	}
	return rec, nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// Get retrieves a level by its full ID. Returns nil if it does not exist.
func (s *Store) Get(id string) (*Record, error) {
	rec, err := scanRecord(s.db.QueryRow(selectRecord+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level: %w", err)
	}
	return &rec, nil
}

// Find retrieves a level by full ID or by a unique prefix of at least four
// characters. Returns nil if nothing matches.
func (s *Store) Find(idOrPrefix string) (*Record, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if rec, err := s.Get(idOrPrefix); rec != nil || err != nil {
		return rec, err
	}
	if len(idOrPrefix) < minPrefix {
		return nil, nil
	}

	rows, err := s.db.Query(selectRecord+` WHERE id LIKE ? || '%' LIMIT 2`, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level: %w", err)
	}
	defer rows.Close()

	records, err := collect(rows)
	if err != nil {
		return nil, err
	}
	switch len(records) {
	case 0:
		return nil, nil
	case 1:
		return &records[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguous, idOrPrefix)
	}
}

// Recent retrieves the most recently stored levels, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(selectRecord+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// Delete removes a level. Deleting the current level clears it.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec("DELETE FROM current_level WHERE level_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot clear current level: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM levels WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete level: %w", err)
	}
	return nil
}

// SetCurrent marks a stored level as the one the game should load.
func (s *Store) SetCurrent(id string) error {
	_, err := s.db.Exec(
		`INSERT INTO current_level (slot, level_id) VALUES (1, ?)
		 ON CONFLICT(slot) DO UPDATE SET level_id = excluded.level_id`,
		id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set current level: %w", err)
	}
	return nil
}

// Current returns the level marked current. Returns nil if none is set.
func (s *Store) Current() (*Record, error) {
	var id string
	err := s.db.QueryRow("SELECT level_id FROM current_level WHERE slot = 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query current level: %w", err)
	}
	return s.Get(id)
}

// ClearCurrent unsets the current level so the game uses its built-in one.
func (s *Store) ClearCurrent() error {
	if _, err := s.db.Exec("DELETE FROM current_level"); err != nil {
		return fmt.Errorf("storage: cannot clear current level: %w", err)
	}
	return nil
}

// OriginStats contains aggregated counts for one origin kind.
type OriginStats struct {
	Origin    level.OriginKind
	Count     int
	LastSaved time.Time
}

// Stats retrieves level counts grouped by origin.
func (s *Store) Stats() (map[level.OriginKind]*OriginStats, error) {
	rows, err := s.db.Query(
		`SELECT origin, COUNT(*), MAX(created_at)
		 FROM levels
		 GROUP BY origin`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[level.OriginKind]*OriginStats)
	for rows.Next() {
		var (
			origin string
			st     OriginStats
			last   any
		)
		if err := rows.Scan(&origin, &st.Count, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Origin = level.OriginKind(origin)
		st.LastSaved = parseTime(last)
		stats[st.Origin] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
