package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/fleetgate/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

func (s *SQLiteStore) CreateSession(ctx context.Context, sess *model.Session) error {
	s.logger.Debug("sql", "op", "insert", "table", "sessions", "id", sess.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, name, email, phone_number, avatar_url, role,
		                       profile_created_at, access_token, refresh_token,
		                       expires_at, created_at, session_expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.Name, sess.Email, sess.PhoneNumber, sess.AvatarURL,
		string(sess.Role), sess.ProfileCreatedAt.Unix(), sess.AccessToken, sess.RefreshToken,
		sess.ExpiresAt.Unix(), sess.CreatedAt.Unix(), sess.SessionExpiresAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	s.logger.Debug("sql", "op", "select", "table", "sessions", "id", id)

	var sess model.Session
	var role string
	var profileCreated, expires, created, ceiling int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, email, phone_number, avatar_url, role,
		        profile_created_at, access_token, refresh_token,
		        expires_at, created_at, session_expires_at
		 FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.UserID, &sess.Name, &sess.Email, &sess.PhoneNumber, &sess.AvatarURL,
		&role, &profileCreated, &sess.AccessToken, &sess.RefreshToken,
		&expires, &created, &ceiling)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess.Role = model.Role(role)
	sess.ProfileCreatedAt = time.Unix(profileCreated, 0).UTC()
	sess.ExpiresAt = time.Unix(expires, 0).UTC()
	sess.CreatedAt = time.Unix(created, 0).UTC()
	sess.SessionExpiresAt = time.Unix(ceiling, 0).UTC()

	return &sess, nil
}

func (s *SQLiteStore) UpdateSession(ctx context.Context, sess *model.Session) error {
	s.logger.Debug("sql", "op", "update", "table", "sessions", "id", sess.ID)

	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions
		 SET name = ?, email = ?, phone_number = ?, avatar_url = ?,
		     access_token = ?, refresh_token = ?, expires_at = ?
		 WHERE id = ?`,
		sess.Name, sess.Email, sess.PhoneNumber, sess.AvatarURL,
		sess.AccessToken, sess.RefreshToken, sess.ExpiresAt.Unix(),
		sess.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", sess.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "sessions", "id", id)

	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	s.logger.Debug("sql", "op", "delete_expired", "table", "sessions")

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE session_expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
