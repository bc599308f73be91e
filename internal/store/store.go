// Package store provides the SQLite-backed local history of opened garden
// links.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fentz26/gardenview/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound indicates no history entry matched.
var ErrNotFound = errors.New("history entry not found")

// ErrAmbiguous indicates an ID prefix matched more than one entry.
var ErrAmbiguous = errors.New("history id prefix is ambiguous")

// View is one remembered garden link.
type View struct {
	ID          string
	Fingerprint string
	GardenID    string
	Name        string
	Payload     string
	Beds        int
	Plantings   int
	Tasks       int
	FirstOpened time.Time
	LastOpened  time.Time
	OpenCount   int
}

// Store provides access to the history database.
type Store struct {
	db *sql.DB
}

// New creates a new Store and runs migrations.
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS views (
		id TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL UNIQUE,
		garden_id TEXT,
		name TEXT NOT NULL,
		payload TEXT NOT NULL,
		beds INTEGER NOT NULL DEFAULT 0,
		plantings INTEGER NOT NULL DEFAULT 0,
		tasks INTEGER NOT NULL DEFAULT 0,
		first_opened DATETIME NOT NULL,
		last_opened DATETIME NOT NULL,
		open_count INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_views_last_opened ON views(last_opened);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Fingerprint identifies a payload independently of where it was opened.
func Fingerprint(payload string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(payload)))
	return hex.EncodeToString(hash[:])
}

const viewColumns = `id, fingerprint, garden_id, name, payload, beds, plantings, tasks, first_opened, last_opened, open_count`

// Record remembers that a payload was opened. Opening the same payload again
// bumps its count and last-opened time.
func (s *Store) Record(payload string, g *models.Garden) (*View, error) {
	if g == nil {
		return nil, fmt.Errorf("record view: nil garden")
	}
	now := time.Now().UTC()
	fp := Fingerprint(payload)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE views SET last_opened = ?, open_count = open_count + 1, name = ? WHERE fingerprint = ?`,
		now, g.Name, fp,
	)
	if err != nil {
		return nil, fmt.Errorf("update view: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_, err = tx.Exec(
			`INSERT INTO views (`+viewColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
			uuid.New().String(), fp, g.ID, g.Name, strings.TrimSpace(payload),
			len(g.Beds), g.PlantingCount(), len(g.Tasks), now, now,
		)
		if err != nil {
			return nil, fmt.Errorf("insert view: %w", err)
		}
	}

	v, err := scanView(tx.QueryRow(`SELECT `+viewColumns+` FROM views WHERE fingerprint = ?`, fp))
	if err != nil {
		return nil, fmt.Errorf("query view: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return v, nil
}

// Recent returns up to limit entries, most recently opened first. A limit of
// zero or less returns everything.
func (s *Store) Recent(limit int) ([]View, error) {
	query := `SELECT ` + viewColumns + ` FROM views ORDER BY last_opened DESC, id`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryViews(query, args...)
}

// Search returns entries whose garden name contains query.
func (s *Store) Search(query string) ([]View, error) {
	return s.queryViews(
		`SELECT `+viewColumns+` FROM views WHERE name LIKE ? ORDER BY last_opened DESC LIMIT 50`,
		"%"+strings.TrimSpace(query)+"%",
	)
}

// Get returns the entry whose ID equals or starts with idPrefix.
func (s *Store) Get(idPrefix string) (*View, error) {
	idPrefix = strings.TrimSpace(idPrefix)
	if idPrefix == "" {
		return nil, ErrNotFound
	}
	views, err := s.queryViews(
		`SELECT `+viewColumns+` FROM views WHERE substr(id, 1, ?) = ? ORDER BY id LIMIT 2`,
		len(idPrefix), idPrefix,
	)
	if err != nil {
		return nil, err
	}
	switch {
	case len(views) == 0:
		return nil, ErrNotFound
	case len(views) > 1 && views[0].ID != idPrefix:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, idPrefix)
	}
	return &views[0], nil
}

// Delete removes one entry.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM views WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every entry and reports how many were removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM views`)
	if err != nil {
		return 0, fmt.Errorf("clear views: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) queryViews(query string, args ...interface{}) ([]View, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query views: %w", err)
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan view: %w", err)
		}
		views = append(views, *v)
	}
	return views, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanView(row scanner) (*View, error) {
	var v View
	var gardenID sql.NullString
	err := row.Scan(&v.ID, &v.Fingerprint, &gardenID, &v.Name, &v.Payload,
		&v.Beds, &v.Plantings, &v.Tasks, &v.FirstOpened, &v.LastOpened, &v.OpenCount)
	if err != nil {
		return nil, err
	}
	if gardenID.Valid {
		v.GardenID = gardenID.String
	}
	return &v, nil
}
