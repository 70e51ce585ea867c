// Package storage persists per-user verification and lockout records.
package storage

import "context"

// Record is the durable verification state of a single user.
//
// Correct holds the expected answer to the most recently issued challenge and
// is only meaningful while Verified is false. LockedUntil is epoch seconds;
// zero means not locked. Records are never deleted: once Verified is true the
// user is never challenged again.
type Record struct {
	Correct     int   `json:"correct" db:"correct"`
	LockedUntil int64 `json:"locked_until" db:"locked_until"`
	Verified    bool  `json:"verified" db:"verified"`
}

// Stats summarizes the store contents for diagnostics.
type Stats struct {
	Total    int
	Verified int
	Locked   int
}

// Store is the injected key-value abstraction over user records.
type Store interface {
	// Get returns the record for userID and whether one exists.
	Get(ctx context.Context, userID int64) (Record, bool, error)
	// Put overwrites the record for userID, creating it if absent.
	Put(ctx context.Context, userID int64, rec Record) error
	// Stats reports aggregate counts; Locked counts records with a lock
	// expiring in the future.
	Stats(ctx context.Context) (Stats, error)
	// Close releases backing resources.
	Close() error
}
