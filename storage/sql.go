package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStore keeps user records in Postgres via sqlx. It implements the same
// Store contract as FileStore; the backend is selected in configuration.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open sqlx connection. Migrations are expected to have
// been applied already (see core/database.RunMigrations).
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Get returns the record for userID and whether one exists.
func (s *SQLStore) Get(ctx context.Context, userID int64) (Record, bool, error) {
	var rec Record
	err := s.db.GetContext(ctx, &rec,
		`SELECT correct, locked_until, verified FROM quiz_users WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("store: get user %d: %w", userID, err)
	}
	return rec, true, nil
}

// Put upserts the record for userID.
func (s *SQLStore) Put(ctx context.Context, userID int64, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_users (user_id, correct, locked_until, verified)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET correct = EXCLUDED.correct,
		     locked_until = EXCLUDED.locked_until,
		     verified = EXCLUDED.verified`,
		userID, rec.Correct, rec.LockedUntil, rec.Verified)
	if err != nil {
		return fmt.Errorf("store: put user %d: %w", userID, err)
	}
	return nil
}

// Stats reports aggregate counts.
func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowxContext(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE verified),
		        COUNT(*) FILTER (WHERE locked_until > $1)
		 FROM quiz_users`, time.Now().Unix()).
		Scan(&st.Total, &st.Verified, &st.Locked)
	if err != nil {
		return Stats{}, fmt.Errorf("store: stats: %w", err)
	}
	return st, nil
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
