// Package gate implements the verification and lockout state machine that
// decides whether a user's messages are relayed, challenged, or refused.
package gate

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/TaliaJudy/mathquiz/core/logger"
	"github.com/TaliaJudy/mathquiz/quiz"
	"github.com/TaliaJudy/mathquiz/storage"
	"log/slog"
)

// LockDuration is how long a wrong answer locks a user out.
const LockDuration = 24 * time.Hour

// OutcomeKind discriminates the result of a text event.
type OutcomeKind int

const (
	// OutcomeRelay means the user is verified; echo the text verbatim.
	OutcomeRelay OutcomeKind = iota
	// OutcomeChallenge means a fresh challenge was issued and persisted.
	OutcomeChallenge
	// OutcomeRefuse means the user is locked; report remaining hours.
	OutcomeRefuse
)

// Outcome is the gate's decision for an inbound text event.
type Outcome struct {
	Kind      OutcomeKind
	Question  quiz.Question
	HoursLeft int
}

// Verdict discriminates the result of an answer selection.
type Verdict int

const (
	// VerdictNoChallenge means no record exists; prompt to send a message first.
	VerdictNoChallenge Verdict = iota
	// VerdictCorrect means the user is now verified.
	VerdictCorrect
	// VerdictWrong means the user is now locked for LockDuration.
	VerdictWrong
)

// Option customises a Gate.
type Option func(*Gate)

// WithClock replaces the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithRand replaces the challenge randomness source, used by tests.
func WithRand(rng *rand.Rand) Option {
	return func(g *Gate) { g.rng = rng }
}

// Gate orchestrates challenge issuance and answer validation against a store.
type Gate struct {
	store storage.Store
	now   func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New builds a Gate over the given store.
func New(store storage.Store, opts ...Option) *Gate {
	g := &Gate{
		store: store,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// HandleText decides what to do with a plain text message from userID.
//
// Verified users are relayed. Locked users are refused with the remaining
// whole hours. Everyone else gets a freshly generated challenge: an unanswered
// pending challenge is regenerated rather than re-shown, and an expired lock
// behaves exactly like a first contact.
func (g *Gate) HandleText(ctx context.Context, userID int64) (Outcome, error) {
	rec, exists, err := g.store.Get(ctx, userID)
	if err != nil {
		return Outcome{}, err
	}

	now := g.now()
	state := DeriveState(rec, exists, now)

	switch state {
	case StateVerified:
		logger.Debug(ctx, "gate", "text.relay",
			slog.Int64("user_id", userID),
			slog.String("state", string(state)),
		)
		return Outcome{Kind: OutcomeRelay}, nil

	case StateLocked:
		hoursLeft := int((rec.LockedUntil - now.Unix()) / 3600)
		logger.Info(ctx, "gate", "text.refused",
			slog.Int64("user_id", userID),
			slog.String("state", string(state)),
			slog.Int64("locked_until", rec.LockedUntil),
			slog.Int("hours_left", hoursLeft),
		)
		return Outcome{Kind: OutcomeRefuse, HoursLeft: hoursLeft}, nil
	}

	q := g.generate()
	if err := g.store.Put(ctx, userID, storage.Record{Correct: q.Correct}); err != nil {
		return Outcome{}, err
	}
	logger.Info(ctx, "gate", "challenge.issued",
		slog.Int64("user_id", userID),
		slog.String("state", string(state)),
	)
	return Outcome{Kind: OutcomeChallenge, Question: q}, nil
}

// HandleAnswer validates an answer selection against the pending record.
// A selection from a user with no record is rejected and creates nothing.
func (g *Gate) HandleAnswer(ctx context.Context, userID int64, choice int) (Verdict, error) {
	rec, exists, err := g.store.Get(ctx, userID)
	if err != nil {
		return VerdictNoChallenge, err
	}
	if !exists {
		logger.Info(ctx, "gate", "answer.no_challenge",
			slog.Int64("user_id", userID),
			slog.Int("choice", choice),
		)
		return VerdictNoChallenge, nil
	}

	if choice == rec.Correct {
		rec.Verified = true
		if err := g.store.Put(ctx, userID, rec); err != nil {
			return VerdictNoChallenge, err
		}
		logger.Info(ctx, "gate", "answer.correct",
			slog.Int64("user_id", userID),
			slog.Bool("verified", true),
		)
		return VerdictCorrect, nil
	}

	rec.LockedUntil = g.now().Add(LockDuration).Unix()
	if err := g.store.Put(ctx, userID, rec); err != nil {
		return VerdictNoChallenge, err
	}
	logger.Info(ctx, "gate", "answer.wrong",
		slog.Int64("user_id", userID),
		slog.Int("choice", choice),
		slog.Int64("locked_until", rec.LockedUntil),
	)
	return VerdictWrong, nil
}

func (g *Gate) generate() quiz.Question {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return quiz.Generate(g.rng)
}
