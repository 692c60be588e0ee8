package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"apexbank/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Each :memory: connection is its own database.
	if path == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS local_storage (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			last_activity DATETIME NOT NULL,
			expires_at DATETIME NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Get reads a local-storage value. The bool is false when the key is unset.
func (db *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := db.conn.QueryRowContext(ctx, "SELECT value FROM local_storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set writes a local-storage value, replacing any previous one.
func (db *DB) Set(ctx context.Context, key string, value []byte) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, utc(time.Now()))
	return err
}

// Remove deletes a local-storage value. Removing a missing key is not an error.
func (db *DB) Remove(ctx context.Context, key string) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM local_storage WHERE key = ?", key)
	return err
}

// RemoveOrphanedKeys deletes local-storage values stored under
// prefix+token whose token no longer has a session row.
func (db *DB) RemoveOrphanedKeys(ctx context.Context, prefix string) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		DELETE FROM local_storage
		WHERE substr(key, 1, ?) = ?
		  AND substr(key, ?) NOT IN (SELECT token FROM sessions)
	`, len(prefix), prefix, len(prefix)+1)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Times are stored in UTC so the text columns compare chronologically.
func utc(t time.Time) time.Time { return t.UTC() }

// CreateSession records a new browser session.
func (db *DB) CreateSession(token string, expiresAt time.Time) error {
	now := utc(time.Now())
	_, err := db.conn.Exec(
		"INSERT INTO sessions (token, created_at, last_activity, expires_at) VALUES (?, ?, ?, ?)",
		token, now, now, utc(expiresAt),
	)
	return err
}

// ValidateSessionWithInfo returns the session for token if it has not expired.
func (db *DB) ValidateSessionWithInfo(token string) (*models.Session, error) {
	row := db.conn.QueryRow(`
		SELECT token, created_at, last_activity, expires_at
		FROM sessions
		WHERE token = ? AND expires_at > ?
	`, token, utc(time.Now()))

	var s models.Session
	if err := row.Scan(&s.Token, &s.CreatedAt, &s.LastActivity, &s.ExpiresAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// RenewSession updates the last_activity and expires_at for a session.
func (db *DB) RenewSession(token string, newExpiresAt time.Time) error {
	_, err := db.conn.Exec(
		"UPDATE sessions SET last_activity = ?, expires_at = ? WHERE token = ?",
		utc(time.Now()), utc(newExpiresAt), token,
	)
	return err
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(token string) error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

// CleanExpiredSessions removes all expired sessions and reports how many
// were deleted.
func (db *DB) CleanExpiredSessions() (int64, error) {
	res, err := db.conn.Exec("DELETE FROM sessions WHERE expires_at <= ?", utc(time.Now()))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SessionExists reports whether a row for token is stored, expired or not.
func (db *DB) SessionExists(token string) (bool, error) {
	var n int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM sessions WHERE token = ?", token).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// SessionCount returns the number of stored sessions, expired or not.
func (db *DB) SessionCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count)
	return count, err
}
