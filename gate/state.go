package gate

import (
	"time"

	"github.com/TaliaJudy/mathquiz/storage"
)

// State classifies a user for the challenge gate. It is derived from the
// stored record on every event; nothing persists the state name itself.
type State string

const (
	// StateUnseen means no record exists for the user yet.
	StateUnseen State = "unseen"
	// StatePending means a challenge was issued and not yet answered.
	StatePending State = "pending"
	// StateLocked means a wrong answer locked the user until a future time.
	StateLocked State = "locked"
	// StateVerified is terminal: the user answered correctly at least once.
	StateVerified State = "verified"
)

// DeriveState maps a stored record (and its presence) to a gate state.
// A lock that has already expired counts as pending: the time comparison at
// event entry is the only thing that clears a lock.
func DeriveState(rec storage.Record, exists bool, now time.Time) State {
	switch {
	case !exists:
		return StateUnseen
	case rec.Verified:
		return StateVerified
	case rec.LockedUntil > now.Unix():
		return StateLocked
	default:
		return StatePending
	}
}
