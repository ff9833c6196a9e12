package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ShamilRahmanPK/job-seeker/internal/domain/user"
)

// SQLiteStore keeps the current session in a single-row table inside a
// local state database, so the CLI stays logged in between runs.
type SQLiteStore struct {
	db *sql.DB
}

const sessionSchema = `
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL,
	user_id TEXT NOT NULL,
	user_name TEXT NOT NULL,
	user_email TEXT NOT NULL,
	user_phone TEXT NOT NULL DEFAULT '',
	user_role TEXT NOT NULL,
	saved_at TEXT NOT NULL
);`

// OpenSQLiteStore opens (creating if needed) the state database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	if _, err := db.Exec(sessionSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare session table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, user_id, user_name, user_email, user_phone, user_role
		FROM session WHERE id = 1`)
	var sess Session
	var role string
	err := row.Scan(&sess.Token, &sess.User.ID, &sess.User.Name, &sess.User.Email, &sess.User.Phone, &role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if normalized, ok := user.NormalizeRole(role); ok {
		sess.User.Role = normalized
	} else {
		sess.User.Role = user.Role(role)
	}
	return &sess, nil
}

func (s *SQLiteStore) Save(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, token, user_id, user_name, user_email, user_phone, user_role, saved_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			user_name = excluded.user_name,
			user_email = excluded.user_email,
			user_phone = excluded.user_phone,
			user_role = excluded.user_role,
			saved_at = excluded.saved_at`,
		sess.Token,
		sess.User.ID,
		sess.User.Name,
		sess.User.Email,
		sess.User.Phone,
		string(sess.User.Role),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
