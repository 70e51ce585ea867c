// Package quiz generates the arithmetic challenges used to gate new users.
package quiz

import (
	"fmt"
	"math/rand"
)

const (
	operandMin = 1
	operandMax = 20

	// decoySpread bounds decoy options to [correct-decoySpread, correct+decoySpread].
	decoySpread = 10

	// OptionCount is the number of answer options presented per challenge.
	OptionCount = 4
)

// Question is a single arithmetic challenge with its answer options.
type Question struct {
	Prompt  string
	Correct int
	Options []int
}

// Generate produces a fresh challenge: two operands in [1,20], operator + or -,
// and four distinct options containing the correct answer. The result may be
// negative; it is never clamped. rng must not be nil.
func Generate(rng *rand.Rand) Question {
	a := operandMin + rng.Intn(operandMax-operandMin+1)
	b := operandMin + rng.Intn(operandMax-operandMin+1)

	op := "+"
	correct := a + b
	if rng.Intn(2) == 1 {
		op = "-"
		correct = a - b
	}

	options := []int{correct}
	seen := map[int]struct{}{correct: {}}
	// The window holds 21 candidates for 3 decoys, so this terminates quickly.
	for len(options) < OptionCount {
		decoy := correct - decoySpread + rng.Intn(2*decoySpread+1)
		if _, dup := seen[decoy]; dup {
			continue
		}
		seen[decoy] = struct{}{}
		options = append(options, decoy)
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Question{
		Prompt:  fmt.Sprintf("%d %s %d = ?", a, op, b),
		Correct: correct,
		Options: options,
	}
}
