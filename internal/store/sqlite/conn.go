package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) a SQLite database at the given path, enables WAL
// journal mode and applies the schema.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS admins (
    admin_id      TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL,
    access_key    TEXT NOT NULL UNIQUE,
    creation_time INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS kids (
    kid_id        TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    age           INTEGER NOT NULL DEFAULT 0,
    gender        TEXT NOT NULL DEFAULT '',
    admin_id      TEXT,
    board_config  TEXT,
    creation_time INTEGER NOT NULL,
    update_time   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS practitioners (
    practitioner_id TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    role            TEXT NOT NULL DEFAULT '',
    email           TEXT NOT NULL DEFAULT '',
    phone           TEXT NOT NULL DEFAULT '',
    creation_time   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS kid_practitioners (
    kid_id          TEXT NOT NULL,
    practitioner_id TEXT NOT NULL,
    creation_time   INTEGER NOT NULL,
    PRIMARY KEY (kid_id, practitioner_id)
);

CREATE TABLE IF NOT EXISTS parents (
    parent_id     TEXT PRIMARY KEY,
    kid_id        TEXT NOT NULL,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL DEFAULT '',
    phone         TEXT NOT NULL DEFAULT '',
    creation_time INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    session_id     TEXT PRIMARY KEY,
    kid_id         TEXT NOT NULL,
    therapist_id   TEXT,
    scheduled_date INTEGER NOT NULL,
    type           TEXT NOT NULL,
    status         TEXT NOT NULL,
    form_id        TEXT,
    creation_time  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_kid ON sessions (kid_id);

CREATE TABLE IF NOT EXISTS forms (
    form_id          TEXT PRIMARY KEY,
    session_id       TEXT NOT NULL,
    kid_id           TEXT NOT NULL,
    therapist_name   TEXT NOT NULL DEFAULT '',
    session_date     INTEGER NOT NULL,
    cooperation      INTEGER NOT NULL DEFAULT 0,
    session_duration INTEGER NOT NULL DEFAULT 0,
    sitting_duration INTEGER NOT NULL DEFAULT 0,
    communication    TEXT NOT NULL DEFAULT '',
    notes            TEXT NOT NULL DEFAULT '',
    goals_worked_on  TEXT NOT NULL DEFAULT '[]',
    creation_time    INTEGER NOT NULL,
    update_time      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_forms_kid ON forms (kid_id);
CREATE INDEX IF NOT EXISTS idx_forms_session ON forms (session_id);

CREATE TABLE IF NOT EXISTS meeting_forms (
    form_id        TEXT PRIMARY KEY,
    session_id     TEXT NOT NULL,
    kid_id         TEXT NOT NULL,
    session_date   INTEGER NOT NULL,
    attendees      TEXT NOT NULL DEFAULT '[]',
    summary        TEXT NOT NULL DEFAULT '',
    behavior_notes TEXT NOT NULL DEFAULT '',
    decisions      TEXT NOT NULL DEFAULT '',
    next_steps     TEXT NOT NULL DEFAULT '',
    creation_time  INTEGER NOT NULL,
    update_time    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meeting_forms_session ON meeting_forms (session_id);

CREATE TABLE IF NOT EXISTS goals (
    goal_id           TEXT PRIMARY KEY,
    kid_id            TEXT NOT NULL,
    category_id       TEXT NOT NULL,
    title             TEXT NOT NULL,
    is_active         INTEGER NOT NULL DEFAULT 1,
    creation_time     INTEGER NOT NULL,
    deactivation_time INTEGER
);
CREATE INDEX IF NOT EXISTS idx_goals_kid ON goals (kid_id);

CREATE TABLE IF NOT EXISTS goal_library (
    item_id       TEXT PRIMARY KEY,
    title         TEXT NOT NULL,
    category_id   TEXT NOT NULL,
    usage_count   INTEGER NOT NULL DEFAULT 1,
    creation_time INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
    notification_id    TEXT PRIMARY KEY,
    kid_id             TEXT NOT NULL,
    admin_id           TEXT NOT NULL,
    message            TEXT NOT NULL,
    recipient_type     TEXT NOT NULL,
    recipient_id       TEXT NOT NULL,
    dismissed          INTEGER NOT NULL DEFAULT 0,
    dismissed_by_admin INTEGER NOT NULL DEFAULT 0,
    creation_time      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS board_requests (
    request_id    TEXT PRIMARY KEY,
    kid_id        TEXT NOT NULL,
    requested_by  TEXT NOT NULL DEFAULT '',
    description   TEXT NOT NULL DEFAULT '',
    status        TEXT NOT NULL DEFAULT 'open',
    creation_time INTEGER NOT NULL,
    update_time   INTEGER NOT NULL
);
`
