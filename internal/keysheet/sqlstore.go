package keysheet

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"enigma/internal/logging"

	_ "modernc.org/sqlite"
)

// nullStr converts a sql.NullString to a plain string (empty if null).
func nullStr(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db  *sql.DB
	log *slog.Logger
}

var _ Store = (*SqlStore)(nil)

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .enigma) if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db, log: logging.New("keysheet")}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit schema tx: %w", err)
		}
		s.log.Debug("created key-sheet schema", "version", currentSchemaVersion)
		return nil
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("schema_version table is empty")
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != currentSchemaVersion {
		return fmt.Errorf("unknown schema version %d (this build reads version %d)", v, currentSchemaVersion)
	}
	return nil
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// Save implements Store.
func (s *SqlStore) Save(sh *Sheet) (int64, error) {
	if err := checkSheet(sh); err != nil {
		return 0, err
	}
	payload, err := json.Marshal(sh.Key)
	if err != nil {
		return 0, fmt.Errorf("marshal settings: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := nowUTC()
	var (
		id        int64
		ref       string
		createdAt string
	)
	err = tx.QueryRow("SELECT id, ref, created_at FROM sheets WHERE name = ?", sh.Name).Scan(&id, &ref, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		ref, createdAt = uuid.NewString(), now
		res, err := tx.Exec(
			`INSERT INTO sheets(ref, name, note, settings, created_at, updated_at)
			 VALUES(?, ?, ?, ?, ?, ?)`,
			ref, sh.Name, sh.Note, string(payload), now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("insert sheet: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("last insert id: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("look up sheet: %w", err)
	default:
		if _, err := tx.Exec(
			"UPDATE sheets SET note = ?, settings = ?, updated_at = ? WHERE id = ?",
			sh.Note, string(payload), now, id,
		); err != nil {
			return 0, fmt.Errorf("update sheet: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save tx: %w", err)
	}

	sh.ID, sh.Ref, sh.CreatedAt, sh.UpdatedAt = id, ref, createdAt, now
	s.log.Debug("saved key sheet", "name", sh.Name, "ref", ref)
	return id, nil
}

const selectSheet = `SELECT id, ref, name, note, settings, created_at, updated_at FROM sheets`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSheet(row rowScanner) (*Sheet, error) {
	var (
		sh      Sheet
		note    sql.NullString
		payload string
	)
	if err := row.Scan(&sh.ID, &sh.Ref, &sh.Name, &note, &payload, &sh.CreatedAt, &sh.UpdatedAt); err != nil {
		return nil, err
	}
	sh.Note = nullStr(note)
	if err := json.Unmarshal([]byte(payload), &sh.Key); err != nil {
		return nil, fmt.Errorf("decode settings of sheet %q: %w", sh.Name, err)
	}
	return &sh, nil
}

// Get implements Store.
func (s *SqlStore) Get(name string) (*Sheet, error) {
	sh, err := scanSheet(s.db.QueryRow(selectSheet+" WHERE name = ?", name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sheet: %w", err)
	}
	return sh, nil
}

// List implements Store.
func (s *SqlStore) List() ([]*Sheet, error) {
	rows, err := s.db.Query(selectSheet + " ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	defer rows.Close()
	var out []*Sheet
	for rows.Next() {
		sh, err := scanSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("list sheets: %w", err)
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

// Delete implements Store.
func (s *SqlStore) Delete(name string) error {
	res, err := s.db.Exec("DELETE FROM sheets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete sheet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sheet: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
