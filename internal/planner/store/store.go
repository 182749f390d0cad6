// Package store keeps the durable mirror of the planner Draft: a small
// sqlite key/value table holding the JSON-serialized draft plus the
// session-scoped launcher-nudge flag. Persistence is best-effort; the widget
// must keep working when the mirror is missing or corrupt.
package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/tiertech/blueprint/internal/planner/catalog"
	"github.com/tiertech/blueprint/internal/planner/draft"
)

const (
	draftKey    = "draft/v1"
	nudgePrefix = "nudge/"
)

func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func OpenTemp() (*sql.DB, error) {
	dir, err := os.MkdirTemp("", "planner-db-")
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, "state.db"))
}

func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	return err
}

// SaveDraft mirrors the full draft under the draft key, replacing any
// previous value.
func SaveDraft(db *sql.DB, d draft.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, draftKey, string(raw))
	return err
}

// LoadDraft returns the mirrored draft, or the canonical empty draft when
// the key is missing or its value does not parse. It never fails the caller.
func LoadDraft(db *sql.DB) draft.Draft {
	row := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, draftKey)
	var raw string
	if err := row.Scan(&raw); err != nil {
		return draft.New()
	}
	var d draft.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return draft.New()
	}
	if d.Reasons == nil {
		d.Reasons = []catalog.ReasonID{}
	}
	if d.Followups == nil {
		d.Followups = []string{}
	}
	return d
}

// ClearDraft removes the mirrored draft.
func ClearDraft(db *sql.DB) error {
	_, err := db.Exec(`DELETE FROM kv WHERE key = ?`, draftKey)
	return err
}

// NudgeShown reports whether the one-time launcher nudge already fired for
// the given session.
func NudgeShown(db *sql.DB, session string) bool {
	row := db.QueryRow(`SELECT 1 FROM kv WHERE key = ?`, nudgePrefix+session)
	var one int
	return row.Scan(&one) == nil
}

// MarkNudgeShown records that the launcher nudge fired for the session. The
// flag is never reset within a session.
func MarkNudgeShown(db *sql.DB, session string) error {
	_, err := db.Exec(`INSERT INTO kv (key, value) VALUES (?, '1')
ON CONFLICT(key) DO NOTHING`, nudgePrefix+session)
	return err
}
