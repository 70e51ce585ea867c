package quiz

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateOptionSet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		q := Generate(rng)
		if len(q.Options) != OptionCount {
			t.Fatalf("expected %d options, got %d (%v)", OptionCount, len(q.Options), q.Options)
		}
		seen := map[int]struct{}{}
		containsCorrect := false
		for _, o := range q.Options {
			if _, dup := seen[o]; dup {
				t.Fatalf("duplicate option %d in %v", o, q.Options)
			}
			seen[o] = struct{}{}
			if o == q.Correct {
				containsCorrect = true
			}
			if o < q.Correct-decoySpread || o > q.Correct+decoySpread {
				t.Fatalf("option %d outside [%d,%d]", o, q.Correct-decoySpread, q.Correct+decoySpread)
			}
		}
		if !containsCorrect {
			t.Fatalf("options %v do not contain correct answer %d", q.Options, q.Correct)
		}
	}
}

func TestGenerateArithmetic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		q := Generate(rng)
		var a, b int
		var op string
		if _, err := fmt.Sscanf(q.Prompt, "%d %s %d = ?", &a, &op, &b); err != nil {
			t.Fatalf("unparseable prompt %q: %v", q.Prompt, err)
		}
		if a < operandMin || a > operandMax || b < operandMin || b > operandMax {
			t.Fatalf("operands out of range in %q", q.Prompt)
		}
		want := a + b
		if op == "-" {
			want = a - b
		} else if op != "+" {
			t.Fatalf("unexpected operator %q in %q", op, q.Prompt)
		}
		if q.Correct != want {
			t.Fatalf("prompt %q: correct = %d, want %d", q.Prompt, q.Correct, want)
		}
	}
}

func TestGenerateNegativeResultsAllowed(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sawNegative := false
	for i := 0; i < 5000 && !sawNegative; i++ {
		q := Generate(rng)
		if strings.Contains(q.Prompt, "-") && q.Correct < 0 {
			sawNegative = true
		}
	}
	if !sawNegative {
		t.Fatal("expected at least one negative correct answer across 5000 draws")
	}
}
