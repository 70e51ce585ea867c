package gate

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/TaliaJudy/mathquiz/storage"
)

func newTestGate(t *testing.T, now *time.Time) (*Gate, *storage.FileStore) {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	g := New(store,
		WithClock(func() time.Time { return *now }),
		WithRand(rand.New(rand.NewSource(7))),
	)
	return g, store
}

func TestFirstTextIssuesChallenge(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_800_000_000, 0)
	g, store := newTestGate(t, &now)

	out, err := g.HandleText(ctx, 100)
	if err != nil {
		t.Fatalf("handle text: %v", err)
	}
	if out.Kind != OutcomeChallenge {
		t.Fatalf("expected challenge, got kind %d", out.Kind)
	}
	if len(out.Question.Options) != 4 {
		t.Fatalf("expected 4 options, got %v", out.Question.Options)
	}

	rec, ok, err := store.Get(ctx, 100)
	if err != nil || !ok {
		t.Fatalf("record not created: ok=%v err=%v", ok, err)
	}
	if rec.Verified || rec.LockedUntil != 0 || rec.Correct != out.Question.Correct {
		t.Fatalf("unexpected record %+v, want correct=%d", rec, out.Question.Correct)
	}
}

func TestPendingTextRegeneratesChallenge(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_800_000_000, 0)
	g, store := newTestGate(t, &now)

	first, err := g.HandleText(ctx, 100)
	if err != nil {
		t.Fatalf("first text: %v", err)
	}
	second, err := g.HandleText(ctx, 100)
	if err != nil {
		t.Fatalf("second text: %v", err)
	}
	if second.Kind != OutcomeChallenge {
		t.Fatalf("expected a fresh challenge, got kind %d", second.Kind)
	}

	// The stored answer must track the latest challenge, not the first one.
	rec, _, _ := store.Get(ctx, 100)
	if rec.Correct != second.Question.Correct {
		t.Fatalf("stored correct=%d, want latest %d (first was %d)",
			rec.Correct, second.Question.Correct, first.Question.Correct)
	}
}

func TestCorrectAnswerVerifiesAndRelays(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_800_000_000, 0)
	g, store := newTestGate(t, &now)

	out, err := g.HandleText(ctx, 100)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	v, err := g.HandleAnswer(ctx, 100, out.Question.Correct)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if v != VerdictCorrect {
		t.Fatalf("expected VerdictCorrect, got %d", v)
	}

	rec, _, _ := store.Get(ctx, 100)
	if !rec.Verified {
		t.Fatalf("record not verified: %+v", rec)
	}

	relay, err := g.HandleText(ctx, 100)
	if err != nil {
		t.Fatalf("relay text: %v", err)
	}
	if relay.Kind != OutcomeRelay {
		t.Fatalf("expected relay for verified user, got kind %d", relay.Kind)
	}
}

func TestWrongAnswerLocksFor24Hours(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_800_000_000, 0)
	g, store := newTestGate(t, &now)

	out, err := g.HandleText(ctx, 100)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	wrong := out.Question.Correct + 1
	v, err := g.HandleAnswer(ctx, 100, wrong)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if v != VerdictWrong {
		t.Fatalf("expected VerdictWrong, got %d", v)
	}

	rec, _, _ := store.Get(ctx, 100)
	if rec.LockedUntil != now.Unix()+86400 {
		t.Fatalf("locked_until=%d, want %d", rec.LockedUntil, now.Unix()+86400)
	}

	// One second later: refused with 23 whole hours remaining.
	now = now.Add(1 * time.Second)
	refused, err := g.HandleText(ctx, 100)
	if err != nil {
		t.Fatalf("text while locked: %v", err)
	}
	if refused.Kind != OutcomeRefuse {
		t.Fatalf("expected refusal, got kind %d", refused.Kind)
	}
	if refused.HoursLeft != 23 {
		t.Fatalf("hours_left=%d, want 23", refused.HoursLeft)
	}
}

func TestExpiredLockBehavesLikeFirstContact(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_800_000_000, 0)
	g, _ := newTestGate(t, &now)

	out, _ := g.HandleText(ctx, 100)
	if _, err := g.HandleAnswer(ctx, 100, out.Question.Correct+1); err != nil {
		t.Fatalf("answer: %v", err)
	}

	now = now.Add(LockDuration + time.Second)
	after, err := g.HandleText(ctx, 100)
	if err != nil {
		t.Fatalf("text after expiry: %v", err)
	}
	if after.Kind != OutcomeChallenge {
		t.Fatalf("expected fresh challenge after lock expiry, got kind %d", after.Kind)
	}
}

func TestAnswerWithoutRecordCreatesNothing(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_800_000_000, 0)
	g, store := newTestGate(t, &now)

	v, err := g.HandleAnswer(ctx, 100, 5)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if v != VerdictNoChallenge {
		t.Fatalf("expected VerdictNoChallenge, got %d", v)
	}
	if _, ok, _ := store.Get(ctx, 100); ok {
		t.Fatal("record must not be created by a stray answer")
	}
}

func TestDeriveState(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)
	cases := []struct {
		name   string
		rec    storage.Record
		exists bool
		want   State
	}{
		{"unseen", storage.Record{}, false, StateUnseen},
		{"pending", storage.Record{Correct: 3}, true, StatePending},
		{"locked", storage.Record{LockedUntil: now.Unix() + 60}, true, StateLocked},
		{"lock expired", storage.Record{LockedUntil: now.Unix() - 60}, true, StatePending},
		{"verified", storage.Record{Verified: true}, true, StateVerified},
		{"verified wins over lock", storage.Record{Verified: true, LockedUntil: now.Unix() + 60}, true, StateVerified},
	}
	for _, tc := range cases {
		if got := DeriveState(tc.rec, tc.exists, now); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}
