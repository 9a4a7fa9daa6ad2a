package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	_ "github.com/lib/pq"

	"github.com/osa911/apexdrive/internal/logging"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS contact_sessions (
	id TEXT PRIMARY KEY,
	last_submission TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`
	selectLastSQL = `SELECT last_submission FROM contact_sessions WHERE id = $1 AND expires_at > $2`
	upsertLastSQL = `INSERT INTO contact_sessions (id, last_submission, expires_at) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET last_submission = EXCLUDED.last_submission, expires_at = EXCLUDED.expires_at`
	deleteExpiredSQL = `DELETE FROM contact_sessions WHERE expires_at <= $1`
)

// PostgresStore keeps session state in the contact_sessions table.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

// OpenPostgres opens a lib/pq connection, waits for the server with
// exponential backoff and creates the table when missing.
func OpenPostgres(ctx context.Context, databaseURL string, ttl time.Duration) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		c, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return struct{}{}, db.PingContext(c)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(5))
	if err != nil {
		_ = db.Close()
		return nil, logging.WrapError(fmt.Errorf("%w: %w", logging.ErrConnection, err), "postgres: ping")
	}

	store := NewPostgresStore(db, ttl)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Migrate creates the sessions table.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("postgres: create contact_sessions: %w", err)
	}
	return nil
}

func (s *PostgresStore) LastSubmission(ctx context.Context, id string) (time.Time, bool, error) {
	var last time.Time
	err := s.db.QueryRowContext(ctx, selectLastSQL, id, s.now()).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("postgres: load session %s: %w", id, err)
	}
	return last, true, nil
}

func (s *PostgresStore) SetLastSubmission(ctx context.Context, id string, t time.Time) error {
	if _, err := s.db.ExecContext(ctx, upsertLastSQL, id, t, s.now().Add(s.ttl)); err != nil {
		return fmt.Errorf("postgres: save session %s: %w", id, err)
	}
	return nil
}

// DeleteExpired removes sessions past their lifetime.
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, deleteExpiredSQL, s.now())
	if err != nil {
		return 0, fmt.Errorf("postgres: delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
